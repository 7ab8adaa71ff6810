package safe

import (
	"ChatProject/logger"
	"ChatProject/tools/errs"

	"go.uber.org/zap"
)

// Go starts f on a new goroutine that recovers from panic, so a single
// misbehaving connection or consumer cannot take the process down.
func Go(name string, f func()) {
	go Run(name, f)
}

// Run calls f and converts a panic into a logged error.
func Run(name string, f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.ErrPanic(r)
			logger.Error("panic recovered", zap.String("goroutine", name), zap.Error(err))
		}
	}()
	f()
	return nil
}
