package chat

import (
	"context"
	"sync"
	"time"

	"ChatProject/logger"
	"ChatProject/tools/safe"

	"go.uber.org/zap"
)

const observerTimeout = 3 * time.Second

type presenceChange struct {
	user   UserID
	online bool
}

// Presence fires the online/offline protocol. Only a user's first connection
// and last disconnection are broadcast; every new connection additionally
// receives the current online set. Observers run on one goroutine so they see
// transitions in order.
type Presence struct {
	router    *Router
	reg       *Registry
	observers []PresenceObserver

	// seq spans a registry mutation and the frames it causes, so a
	// transition's broadcast can never overtake the next one.
	seq sync.Mutex

	mu      sync.Mutex
	closed  bool
	changes chan presenceChange
	done    chan struct{}
}

func NewPresence(reg *Registry, router *Router, observers ...PresenceObserver) *Presence {
	p := &Presence{
		router:    router,
		reg:       reg,
		observers: observers,
		done:      make(chan struct{}),
	}
	if len(observers) == 0 {
		close(p.done)
		return p
	}
	p.changes = make(chan presenceChange, 1024)
	safe.Go("presence-observers", p.run)
	return p
}

// Attach registers c and fires the connect rules. It reports whether c is
// the user's first connection.
func (p *Presence) Attach(c *Client) bool {
	p.seq.Lock()
	defer p.seq.Unlock()

	first := p.reg.Register(c.UserID, c)
	c.setState(StateRegistered)
	if first {
		p.router.Broadcast(UserOnline{UserID: c.UserID})
		p.notify(c.UserID, true)
	}
	p.router.Send(c, OnlineUsers{OnlineUsers: p.reg.OnlineUserIDs()})
	return first
}

// Detach unregisters c and fires the disconnect rules. It reports whether c
// was the user's last connection.
func (p *Presence) Detach(c *Client) bool {
	p.seq.Lock()
	defer p.seq.Unlock()

	last := p.reg.Unregister(c.UserID, c.ConnID)
	if last {
		p.router.Broadcast(UserOffline{UserID: c.UserID})
		p.notify(c.UserID, false)
	}
	return last
}

func (p *Presence) notify(user UserID, online bool) {
	if p.changes == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.changes <- presenceChange{user: user, online: online}:
	default:
		logger.Warn("[presence] observer queue full, dropping change",
			zap.Stringer("user", user), zap.Bool("online", online))
	}
}

func (p *Presence) run() {
	defer close(p.done)
	for ch := range p.changes {
		for _, o := range p.observers {
			ctx, cancel := context.WithTimeout(context.Background(), observerTimeout)
			var err error
			if ch.online {
				err = o.UserOnline(ctx, ch.user)
			} else {
				err = o.UserOffline(ctx, ch.user)
			}
			cancel()
			if err != nil {
				logger.Warn("[presence] observer failed",
					zap.Stringer("user", ch.user), zap.Bool("online", ch.online), zap.Error(err))
			}
		}
	}
}

// Close flushes pending observer notifications.
func (p *Presence) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed && p.changes != nil {
		p.closed = true
		close(p.changes)
	}
	p.mu.Unlock()
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
