package kafka

import (
	"context"
	"time"

	"ChatProject/logger"
	"ChatProject/tools/errs"
	"ChatProject/tools/safe"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ConsumerGroupHandler hands every claimed message to the router. A message is
// marked even when its handler fails; collaborator events are not replayed.
type ConsumerGroupHandler struct {
	router *Router
}

func NewConsumerGroupHandler(r *Router) *ConsumerGroupHandler {
	return &ConsumerGroupHandler{router: r}
}

func (h *ConsumerGroupHandler) Setup(s sarama.ConsumerGroupSession) error {
	logger.Info("[kafka] consumer group setup", zap.String("member", s.MemberID()), zap.Int32("generation", s.GenerationID()))
	return nil
}

func (h *ConsumerGroupHandler) Cleanup(s sarama.ConsumerGroupSession) error {
	logger.Info("[kafka] consumer group cleanup", zap.String("member", s.MemberID()))
	return nil
}

func (h *ConsumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		fields := []zap.Field{zap.String("topic", msg.Topic), zap.Int32("partition", msg.Partition), zap.Int64("offset", msg.Offset)}

		handler, err := h.router.GetHandler(msg.Topic)
		if err != nil {
			logger.Warn("[kafka] no handler", append(fields, zap.Error(err))...)
		} else if err := safe.Run("kafka-handler", func() {
			if herr := handler(session.Context(), msg.Topic, msg.Key, msg.Value); herr != nil {
				logger.Warn("[kafka] handler error", append(fields, zap.Error(herr))...)
			}
		}); err != nil {
			logger.Error("[kafka] handler panic", append(fields, zap.Error(err))...)
		}

		session.MarkMessage(msg, "")
	}
	return nil
}

// StartConsumerGroup joins the group and consumes topics until ctx is done or
// the returned group is closed.
func StartConsumerGroup(ctx context.Context, c Config, router *Router) (sarama.ConsumerGroup, error) {
	if len(c.Brokers) == 0 {
		return nil, errs.ErrArgs.WrapMsg("kafka brokers missing")
	}
	topics := c.Topics
	if len(topics) == 0 {
		topics = router.Topics()
	}
	if len(topics) == 0 {
		return nil, errs.ErrArgs.WrapMsg("kafka topics missing")
	}

	group, err := sarama.NewConsumerGroup(c.Brokers, c.GroupID, BuildBaseConfig(c))
	if err != nil {
		return nil, errs.WrapMsg(err, "new consumer group", "group", c.GroupID)
	}

	safe.Go("kafka-group-errors", func() {
		for err := range group.Errors() {
			logger.Warn("[kafka] consumer group error", zap.Error(err))
		}
	})

	handler := NewConsumerGroupHandler(router)
	safe.Go("kafka-group", func() {
		for {
			err := group.Consume(ctx, topics, handler)
			if errors.Is(err, sarama.ErrClosedConsumerGroup) || ctx.Err() != nil {
				return
			}
			if err != nil {
				logger.Warn("[kafka] consume error", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
			}
		}
	})
	return group, nil
}
