package chat

import (
	"context"
	"sync"

	"ChatProject/tools/errs"

	"github.com/golang/glog"
)

// Handler processes one kind of inbound relay frame.
type Handler interface {
	Event() string
	Handle(ctx *Context, f *Frame) error
}

// Context is what a handler sees of the session that sent the frame.
type Context struct {
	context.Context
	S      *Server
	Client *Client
}

// ErrSessionClosed is returned by a handler that wants the session ended.
var ErrSessionClosed = errs.NewCodeError(499, "session closed by client")

type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

func (d *Dispatcher) Register(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[h.Event()] = h
}

func (d *Dispatcher) Dispatch(ctx *Context, f *Frame) error {
	h := d.GetHandler(f.Event)
	if h == nil {
		return errs.ErrArgs.WrapMsg("unsupported event", "event", f.Event)
	}
	return h.Handle(ctx, f)
}

func (d *Dispatcher) GetHandler(event string) Handler {
	d.mu.RLock()
	h, ok := d.handlers[event]
	d.mu.RUnlock()
	if !ok {
		glog.Infof("no handler for event=%s", event)
		return nil
	}
	return h
}

func (d *Dispatcher) Events() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.handlers))
	for k := range d.handlers {
		out = append(out, k)
	}
	return out
}
