package kafka

import (
	"context"

	"ChatProject/logger"
	"ChatProject/tools/errs"

	"github.com/Shopify/sarama"
	"go.uber.org/zap"
)

// HeaderKey is the message header whose value becomes the Kafka record key.
const HeaderKey = "key"

// Producer publishes synchronously. It satisfies chat.Publisher with the
// topic as the business name.
type Producer struct {
	sp sarama.SyncProducer
}

func NewProducer(c Config) (*Producer, error) {
	if len(c.Brokers) == 0 {
		return nil, errs.ErrArgs.WrapMsg("kafka brokers missing")
	}
	sp, err := sarama.NewSyncProducer(c.Brokers, BuildBaseConfig(c))
	if err != nil {
		return nil, errs.WrapMsg(err, "new sync producer")
	}
	return &Producer{sp: sp}, nil
}

func NewProducerFrom(sp sarama.SyncProducer) *Producer {
	return &Producer{sp: sp}
}

func (p *Producer) Publish(_ context.Context, topic string, data []byte, hdr map[string]string) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(data),
	}
	for k, v := range hdr {
		if k == HeaderKey {
			msg.Key = sarama.StringEncoder(v)
			continue
		}
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}
	partition, offset, err := p.sp.SendMessage(msg)
	if err != nil {
		return errs.WrapMsg(err, "kafka send", "topic", topic)
	}
	logger.Debug("[kafka] sent", zap.String("topic", topic), zap.Int32("partition", partition), zap.Int64("offset", offset))
	return nil
}

func (p *Producer) Close() error {
	return p.sp.Close()
}
