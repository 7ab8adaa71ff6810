package natsx

import (
	"context"

	"ChatProject/logger"
	"ChatProject/tools/errs"

	"go.uber.org/zap"
)

// Biz names used by the gateway.
const (
	BizChatEvents = "chat-events"
	BizPresence   = "chat-presence"
)

// EnvelopeSink delivers a collaborator envelope to local connections.
type EnvelopeSink interface {
	DeliverEnvelope(raw []byte) (int, error)
}

// EnvelopeHandler feeds bus messages into sink. Envelopes that can never be
// delivered are logged and acknowledged so they are not redelivered forever.
func EnvelopeHandler(sink EnvelopeSink) NatsxHandler {
	return func(_ context.Context, msg NatsxMessage) error {
		n, err := sink.DeliverEnvelope(msg.Data)
		if err != nil {
			if errs.ErrArgs.Is(err) {
				logger.Warn("[natsx] drop malformed envelope", zap.String("subject", msg.Subject), zap.Error(err))
				return nil
			}
			return err
		}
		logger.Debug("[natsx] envelope delivered", zap.String("subject", msg.Subject), zap.Int("conns", n))
		return nil
	}
}
