package chat

import (
	"ChatProject/logger"

	"go.uber.org/zap"
)

// Router resolves target users to their live connections and enqueues the
// encoded event on each one. Offline targets are skipped silently and a
// failing connection never affects the others.
type Router struct {
	reg *Registry
}

func NewRouter(reg *Registry) *Router {
	return &Router{reg: reg}
}

// Deliver emits ev on every connection of every target and returns the number
// of connections that accepted it. A target listed twice receives it twice.
func (r *Router) Deliver(ev Event, targets ...UserID) int {
	if len(targets) == 0 {
		return 0
	}
	payload, ok := encode(ev)
	if !ok {
		return 0
	}
	n := 0
	for _, uid := range targets {
		for _, c := range r.reg.ConnectionsFor(uid) {
			if emit(c, ev, payload) {
				n++
			}
		}
	}
	return n
}

// Broadcast emits ev on every live connection.
func (r *Router) Broadcast(ev Event) int {
	conns := r.reg.All()
	if len(conns) == 0 {
		return 0
	}
	payload, ok := encode(ev)
	if !ok {
		return 0
	}
	n := 0
	for _, c := range conns {
		if emit(c, ev, payload) {
			n++
		}
	}
	return n
}

// Send emits ev on exactly one connection.
func (r *Router) Send(c *Client, ev Event) bool {
	payload, ok := encode(ev)
	if !ok {
		return false
	}
	return emit(c, ev, payload)
}

func encode(ev Event) ([]byte, bool) {
	payload, err := EncodeEvent(ev)
	if err != nil {
		logger.Error("[fanout] encode event", zap.Error(err))
		return nil, false
	}
	return payload, true
}

func emit(c *Client, ev Event, payload []byte) bool {
	if err := c.Enqueue(payload); err != nil {
		logger.Warn("[fanout] drop event",
			zap.String("event", ev.EventName()),
			zap.String("conn", c.ConnID),
			zap.Stringer("user", c.UserID),
			zap.Error(err))
		return false
	}
	return true
}
