package natsx

import (
	"context"
	"time"

	"ChatProject/logger"
	"ChatProject/tools/safe"

	"go.uber.org/zap"
)

// NatsxMessage is what handlers see of a delivery.
type NatsxMessage struct {
	Subject string
	Data    []byte
	Header  map[string]string
}

type NatsxHandler func(ctx context.Context, msg NatsxMessage) error

// NatsxMiddleware wraps a handler (logging, recovery, dedup).
type NatsxMiddleware func(NatsxHandler) NatsxHandler

// NatsxChain applies mws so that mws[0] is outermost.
func NatsxChain(h NatsxHandler, mws ...NatsxMiddleware) NatsxHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// NatsxLogging logs failed deliveries and, at debug, every delivery.
func NatsxLogging() NatsxMiddleware {
	return func(next NatsxHandler) NatsxHandler {
		return func(ctx context.Context, msg NatsxMessage) error {
			start := time.Now()
			err := next(ctx, msg)
			if err != nil {
				logger.Warn("[natsx] handle failed",
					zap.String("subject", msg.Subject), zap.Int("bytes", len(msg.Data)), zap.Error(err))
				return err
			}
			logger.Debug("[natsx] handled",
				zap.String("subject", msg.Subject), zap.Duration("took", time.Since(start)))
			return nil
		}
	}
}

// NatsxRecover turns a handler panic into an error so JetStream naks it.
func NatsxRecover() NatsxMiddleware {
	return func(next NatsxHandler) NatsxHandler {
		return func(ctx context.Context, msg NatsxMessage) (err error) {
			if perr := safe.Run("natsx-handler", func() { err = next(ctx, msg) }); perr != nil {
				return perr
			}
			return err
		}
	}
}
