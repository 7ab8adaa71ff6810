package global

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ChatProject/global/config"
	"ChatProject/logger"
	"ChatProject/middleware"
	midsec "ChatProject/middleware/security"
	"ChatProject/module/chat/handler"
	"ChatProject/module/chat/service"
	"ChatProject/module/chat/store"
	"ChatProject/service/chat"
	"ChatProject/service/chat/handlers"
	"ChatProject/service/kafka"
	"ChatProject/service/natsx"
	"ChatProject/service/storage"
	redisx "ChatProject/service/storage/redis"

	"github.com/Shopify/sarama"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App is every long lived component of one gateway node. Optional
// integrations stay nil when their address is not configured.
type App struct {
	Cfg  config.AppConfig
	Chat *chat.Server
	HTTP *http.Server

	DB     *pgxpool.Pool
	Store  store.Store
	Redis  *redis.Client
	Mirror *storage.PresenceMirror

	Nats          *natsx.NatsManager
	KafkaGroup    sarama.ConsumerGroup
	KafkaProducer *kafka.Producer

	stopConsumers context.CancelFunc
}

// ConfigAll connects the configured integrations and builds the gateway.
// Failing to reach a configured integration is fatal for startup.
func ConfigAll(ctx context.Context, cfg config.AppConfig) (*App, error) {
	app := &App{Cfg: cfg}
	var observers []chat.PresenceObserver

	if cfg.DatabaseURL != "" {
		if err := app.configDB(ctx); err != nil {
			app.Close()
			return nil, err
		}
	} else {
		logger.Warn("[global] DATABASE_URL not set, REST api disabled")
	}

	if cfg.RedisAddr != "" {
		if err := app.configRedis(ctx); err != nil {
			app.Close()
			return nil, err
		}
		observers = append(observers, app.Mirror)
	}

	if cfg.NatsURL != "" {
		if err := app.configNats(); err != nil {
			app.Close()
			return nil, err
		}
		observers = append(observers, chat.NewPresencePublisher(app.Nats, natsx.BizPresence, cfg.NodeID))
	}

	if len(cfg.KafkaBrokerList()) > 0 && cfg.KafkaPresenceTopic != "" {
		p, err := kafka.NewProducer(app.kafkaConfig())
		if err != nil {
			app.Close()
			return nil, err
		}
		app.KafkaProducer = p
		observers = append(observers, chat.NewPresencePublisher(p, cfg.KafkaPresenceTopic, cfg.NodeID))
	}

	var groups *service.GroupService
	opts := chat.Options{
		NodeID: cfg.NodeID,
		Client: chat.ClientConf{
			SendQueueSize: cfg.SendQueueSize,
			PingInterval:  cfg.PingInterval,
			PongWait:      cfg.PongWait,
			WriteWait:     cfg.WriteWait,
			ReadLimit:     cfg.ReadLimit,
		},
		Auth:             chat.NewJWTAuthenticator(cfg.JWTOptions()),
		VerifyMembership: cfg.RelayVerifyMembership,
		Observers:        observers,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || middleware.OriginAllowed(cfg.CORSOrigin, origin)
		},
	}
	if app.Store != nil {
		opts.Members = chat.MembershipFunc(func(ctx context.Context, groupID int64) ([]chat.UserID, error) {
			return groups.GroupMemberIDs(ctx, groupID)
		})
	}
	app.Chat = chat.NewServer(opts)
	handlers.RegisterDefaults(app.Chat.Disp())

	var api *handler.Handler
	if app.Store != nil {
		groups = service.NewGroupService(app.Store, app.Chat.Notifier())
		api = handler.New(service.NewMessageService(app.Store, app.Chat.Notifier()), groups)
	}

	var cluster ClusterPresence
	if app.Mirror != nil {
		cluster = app.Mirror
	}
	app.HTTP = &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           ConfigEngine(cfg, app.Chat, api, cluster),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app, nil
}

func (a *App) configDB(ctx context.Context) error {
	pool, err := store.Open(ctx, a.Cfg.DatabaseURL)
	if err != nil {
		return err
	}
	a.DB = pool
	pg := store.NewPgStore(pool)
	if err := pg.EnsureSchema(ctx); err != nil {
		return err
	}
	a.Store = pg
	return nil
}

func (a *App) configRedis(ctx context.Context) error {
	rdb, err := redisx.NewClient(ctx, redisx.Config{
		Addr:     a.Cfg.RedisAddr,
		Password: a.Cfg.RedisPassword,
		DB:       a.Cfg.RedisDB,
	})
	if err != nil {
		return err
	}
	a.Redis = rdb
	a.Mirror = storage.NewPresenceMirror(rdb, a.Cfg.NodeID, "chat")
	// entries left by a previous run of this node are stale
	n, err := a.Mirror.Reset(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("[global] cleared stale presence", zap.Int("users", n))
	}
	return nil
}

func (a *App) configNats() error {
	m, err := natsx.NewNatsManager(natsx.NatsxConfig{
		Servers:  a.Cfg.NatsServers(),
		Name:     "chat-gateway-" + strconv.FormatInt(a.Cfg.NodeID, 10),
		User:     a.Cfg.NatsUser,
		Password: a.Cfg.NatsPassword,
	}, natsx.NatsxRecover(), natsx.NatsxLogging(), natsx.NatsxIdemMiddleware(natsx.NewMemIdem(time.Minute), time.Minute))
	if err != nil {
		return err
	}
	a.Nats = m

	events := natsx.NatsxRoute{
		Biz:     natsx.BizChatEvents,
		Subject: a.Cfg.NatsEventsSubject,
		Queue:   a.Cfg.NatsQueue,
	}
	if a.Cfg.NatsJetStream {
		events.Mode = natsx.JetStreamPush
		events.Durable = "chat-gateway-" + strconv.FormatInt(a.Cfg.NodeID, 10)
	}
	if err := m.RegisterRoute(events); err != nil {
		return err
	}
	return m.RegisterRoute(natsx.NatsxRoute{
		Biz:     natsx.BizPresence,
		Subject: a.Cfg.NatsPresenceSubject,
	})
}

func (a *App) kafkaConfig() kafka.Config {
	kc := kafka.DefaultConfig()
	kc.Brokers = a.Cfg.KafkaBrokerList()
	kc.GroupID = a.Cfg.KafkaGroupID
	kc.Topics = a.Cfg.KafkaTopicList()
	kc.EnsureTopicsOnStart = a.Cfg.KafkaEnsureTopics
	return kc
}

// StartConsumers subscribes the collaborator event buses. Envelopes go
// straight to the local connections of this node.
func (a *App) StartConsumers(ctx context.Context) error {
	ctx, a.stopConsumers = context.WithCancel(ctx)

	if a.Nats != nil {
		if err := a.Nats.Subscribe(natsx.BizChatEvents, natsx.EnvelopeHandler(a.Chat)); err != nil {
			return err
		}
		logger.Info("[global] nats events subscribed", zap.String("subject", a.Cfg.NatsEventsSubject))
	}

	if len(a.Cfg.KafkaBrokerList()) > 0 {
		kc := a.kafkaConfig()
		if kc.EnsureTopicsOnStart {
			if err := kafka.EnsureTopicsOnBrokers(kc, kc.Topics); err != nil {
				return err
			}
		}
		router := kafka.NewRouter()
		router.RegisterDefaultHandlers(kc.Topics, kafka.EnvelopeHandler(a.Chat))
		group, err := kafka.StartConsumerGroup(ctx, kc, router)
		if err != nil {
			return err
		}
		a.KafkaGroup = group
		logger.Info("[global] kafka consumer started", zap.Strings("topics", kc.Topics), zap.String("group", kc.GroupID))
	}
	return nil
}

// Shutdown stops accepting requests, closes every live connection so
// presence is flushed, then releases the integrations.
func (a *App) Shutdown(ctx context.Context) error {
	var first error
	if a.HTTP != nil {
		if err := a.HTTP.Shutdown(ctx); err != nil {
			first = err
		}
	}
	if a.Chat != nil {
		if err := a.Chat.Shutdown(ctx); err != nil && first == nil {
			first = err
		}
	}
	a.Close()
	return first
}

// Close releases the integrations in reverse order of dependency.
func (a *App) Close() {
	if a.stopConsumers != nil {
		a.stopConsumers()
	}
	if a.KafkaGroup != nil {
		if err := a.KafkaGroup.Close(); err != nil {
			logger.Warn("[global] close kafka group", zap.Error(err))
		}
	}
	if a.KafkaProducer != nil {
		if err := a.KafkaProducer.Close(); err != nil {
			logger.Warn("[global] close kafka producer", zap.Error(err))
		}
	}
	if a.Nats != nil {
		if err := a.Nats.Close(); err != nil {
			logger.Warn("[global] drain nats", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// ClusterPresence is the cluster-wide online set, kept by storage.PresenceMirror.
type ClusterPresence interface {
	OnlineUsers(ctx context.Context) ([]chat.UserID, error)
}

// ConfigEngine builds the gin engine: the websocket endpoint, liveness and,
// when a store is configured, the REST api. cluster may be nil.
func ConfigEngine(cfg config.AppConfig, srv *chat.Server, api *handler.Handler, cluster ClusterPresence) *gin.Engine {
	r := gin.New()
	middleware.NewManager(gin.Recovery(), middleware.Logging(), middleware.Origin(cfg.CORSOrigin)).Install(r)

	r.GET("/ws", srv.HandleWS)
	r.GET("/healthz", func(c *gin.Context) {
		users, conns := srv.Registry().Count()
		data := gin.H{
			"node":        srv.NodeID(),
			"users":       users,
			"connections": conns,
		}
		if cluster != nil {
			// a redis outage degrades the report, not liveness
			if online, err := cluster.OnlineUsers(c.Request.Context()); err != nil {
				logger.Warn("[healthz] cluster presence", zap.Error(err))
			} else {
				data["clusterUsers"] = len(online)
			}
		}
		middleware.OK(c, http.StatusOK, data, "ok")
	})

	if api != nil {
		auth := midsec.Middleware(func(token string) (int64, error) {
			uid, err := srv.Authenticate(token)
			return int64(uid), err
		})
		api.Register(r.Group("/api/v1"), auth)
	}
	return r
}
