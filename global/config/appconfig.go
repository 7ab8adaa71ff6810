package config

import (
	"strings"
	"time"

	"ChatProject/tools/errs"
	"ChatProject/tools/security"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// AppConfig is the gateway configuration. Every field can be set from the
// environment; empty infrastructure addresses switch that integration off.
type AppConfig struct {
	NodeID   int64  `env:"NODE_ID"`
	Port     int    `env:"PORT"`
	LogLevel string `env:"LOG_LEVEL"`

	JWTSecret string `env:"JWT_SECRET"`
	JWTAlg    string `env:"JWT_ALG"`

	CORSOrigin string `env:"CORS_ORIGIN"`

	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`

	NatsURL             string `env:"NATS_URL"`
	NatsEventsSubject   string `env:"NATS_EVENTS_SUBJECT"`
	NatsPresenceSubject string `env:"NATS_PRESENCE_SUBJECT"`
	NatsQueue           string `env:"NATS_QUEUE"` // empty: every node receives every envelope
	NatsJetStream       bool   `env:"NATS_JETSTREAM"`
	NatsUser            string `env:"NATS_USER"`
	NatsPassword        string `env:"NATS_PASSWORD"`

	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaGroupID string `env:"KAFKA_GROUP_ID"`
	KafkaTopics  string `env:"KAFKA_TOPICS"`

	KafkaPresenceTopic string `env:"KAFKA_PRESENCE_TOPIC"`
	KafkaEnsureTopics  bool   `env:"KAFKA_ENSURE_TOPICS"`

	SendQueueSize int           `env:"SEND_QUEUE_SIZE"`
	PingInterval  time.Duration `env:"PING_INTERVAL"`
	PongWait      time.Duration `env:"PONG_WAIT"`
	WriteWait     time.Duration `env:"WRITE_WAIT"`
	ReadLimit     int64         `env:"READ_LIMIT"`

	RelayVerifyMembership bool `env:"RELAY_VERIFY_MEMBERSHIP"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Default returns the configuration used when no variable overrides a field.
func Default() AppConfig {
	return AppConfig{
		NodeID:                1,
		Port:                  8080,
		LogLevel:              "info",
		JWTAlg:                "HS256",
		CORSOrigin:            "*",
		RedisDB:               0,
		NatsEventsSubject:     "chat.events.>",
		NatsPresenceSubject:   "chat.presence",
		KafkaGroupID:          "chat-gateway",
		KafkaTopics:           "chat.events",
		SendQueueSize:         256,
		PingInterval:          25 * time.Second,
		PongWait:              60 * time.Second,
		WriteWait:             10 * time.Second,
		ReadLimit:             64 * 1024,
		RelayVerifyMembership: true,
		ShutdownTimeout:       10 * time.Second,
	}
}

// Load reads an optional .env file, then the process environment, on top of Default.
func Load(files ...string) (AppConfig, error) {
	_ = godotenv.Load(files...)

	cfg := Default()
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return AppConfig{}, errs.WrapMsg(err, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errs.ErrArgs.WrapMsg("JWT_SECRET is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errs.ErrArgs.WrapMsg("PORT out of range", "port", c.Port)
	}
	if c.SendQueueSize <= 0 {
		return errs.ErrArgs.WrapMsg("SEND_QUEUE_SIZE must be positive", "size", c.SendQueueSize)
	}
	if c.PingInterval >= c.PongWait {
		return errs.ErrArgs.WrapMsg("PING_INTERVAL must be shorter than PONG_WAIT")
	}
	return nil
}

func (c AppConfig) JWTOptions() security.Options {
	opts := security.DefaultOptions([]byte(c.JWTSecret))
	opts.Alg = c.JWTAlg
	return opts
}

func (c AppConfig) KafkaBrokerList() []string { return splitList(c.KafkaBrokers) }

func (c AppConfig) KafkaTopicList() []string { return splitList(c.KafkaTopics) }

func (c AppConfig) NatsServers() []string { return splitList(c.NatsURL) }

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
