package kafka

import (
	"context"
	"sync"

	"ChatProject/tools/errs"
)

type MessageHandler func(ctx context.Context, topic string, key, value []byte) error

// Router maps topics to handlers.
type Router struct {
	mu         sync.RWMutex
	handlerMap map[string]MessageHandler
}

func NewRouter() *Router {
	return &Router{handlerMap: make(map[string]MessageHandler)}
}

func (r *Router) RegisterHandler(topic string, handler MessageHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlerMap[topic] = handler
}

// RegisterDefaultHandlers installs the same handler for every topic.
func (r *Router) RegisterDefaultHandlers(topics []string, handler MessageHandler) {
	for _, t := range topics {
		r.RegisterHandler(t, handler)
	}
}

func (r *Router) GetHandler(topic string) (MessageHandler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.handlerMap[topic]; ok {
		return h, nil
	}
	return nil, errs.ErrRecordNotFound.WrapMsg("no handler registered for topic", "topic", topic)
}

func (r *Router) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlerMap))
	for t := range r.handlerMap {
		out = append(out, t)
	}
	return out
}
