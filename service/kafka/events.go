package kafka

import (
	"context"

	"ChatProject/logger"
	"ChatProject/tools/errs"

	"go.uber.org/zap"
)

// EnvelopeSink delivers a collaborator envelope to local connections.
type EnvelopeSink interface {
	DeliverEnvelope(raw []byte) (int, error)
}

func EnvelopeHandler(sink EnvelopeSink) MessageHandler {
	return func(_ context.Context, topic string, _, value []byte) error {
		n, err := sink.DeliverEnvelope(value)
		if err != nil {
			if errs.ErrArgs.Is(err) {
				logger.Warn("[kafka] drop malformed envelope", zap.String("topic", topic), zap.Error(err))
				return nil
			}
			return err
		}
		logger.Debug("[kafka] envelope delivered", zap.String("topic", topic), zap.Int("conns", n))
		return nil
	}
}
