package chat

import (
	"context"
	"net/http"
	"sync"

	"ChatProject/logger"
	"ChatProject/tools/ids"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Options wires a Server. Auth is required; everything else is optional.
type Options struct {
	NodeID int64
	Client ClientConf
	Auth   Authenticator

	// Members resolves group membership for the group deletion relay. When nil
	// that relay falls back to a broadcast to every connection.
	Members MembershipResolver
	// VerifyMembership rejects group relays from users that are not members.
	VerifyMembership bool

	Observers   []PresenceObserver
	CheckOrigin func(r *http.Request) bool
}

// Server owns the registry and every component built on it.
type Server struct {
	opts     Options
	reg      *Registry
	router   *Router
	presence *Presence
	disp     *Dispatcher
	notifier *Notifier
	ids      *ids.Generator
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	shuttingDown bool
}

func NewServer(opts Options) *Server {
	opts.Client.norm()
	if opts.CheckOrigin == nil {
		opts.CheckOrigin = func(r *http.Request) bool { return true }
	}
	reg := NewRegistry()
	router := NewRouter(reg)
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		opts:     opts,
		reg:      reg,
		router:   router,
		presence: NewPresence(reg, router, opts.Observers...),
		disp:     NewDispatcher(),
		notifier: NewNotifier(reg, router),
		ids:      ids.NewGenerator(opts.NodeID),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.CheckOrigin,
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Server) Registry() *Registry          { return s.reg }
func (s *Server) Router() *Router              { return s.router }
func (s *Server) Disp() *Dispatcher            { return s.disp }
func (s *Server) Notifier() *Notifier          { return s.notifier }
func (s *Server) Members() MembershipResolver  { return s.opts.Members }
func (s *Server) VerifyMembership() bool       { return s.opts.VerifyMembership }
func (s *Server) Authenticator() Authenticator { return s.opts.Auth }
func (s *Server) NodeID() int64                { return s.opts.NodeID }

// DeliverEnvelope routes an event published by a collaborator on the bus.
func (s *Server) DeliverEnvelope(raw []byte) (int, error) {
	env, ev, err := ParseEnvelope(raw)
	if err != nil {
		return 0, err
	}
	return s.router.Deliver(ev, env.To...), nil
}

// admit counts a new session unless shutdown has begun.
func (s *Server) admit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shuttingDown {
		return false
	}
	s.wg.Add(1)
	return true
}

// Shutdown closes every live connection, waits for their cleanup and flushes
// presence observers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shuttingDown = true
	s.mu.Unlock()

	s.cancel()
	for _, c := range s.reg.All() {
		_ = c.conn.Close()
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("[chat] shutdown timed out with live sessions", zap.Error(ctx.Err()))
		return ctx.Err()
	}
	return s.presence.Close(ctx)
}
