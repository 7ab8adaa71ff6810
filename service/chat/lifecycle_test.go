package chat

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"ChatProject/tools/errs"

	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	To UserID `json:"to"`
}

// newLifecycleServer wires a server with a relay that forwards "echo" frames
// to the "to" user as msg-receive, and a "bye" frame that ends the session.
func newLifecycleServer() *Server {
	s := NewServer(Options{})
	s.Disp().Register(funcHandler{event: "echo", fn: func(ctx *Context, f *Frame) error {
		var p echoPayload
		if err := json.Unmarshal(f.Data, &p); err != nil || p.To == 0 {
			return errs.ErrArgs.WrapMsg("to is required")
		}
		ctx.S.Router().Deliver(MessageReceive{From: ctx.Client.UserID, Message: "echo"}, p.To)
		return nil
	}})
	s.Disp().Register(funcHandler{event: "bye", fn: func(*Context, *Frame) error { return ErrSessionClosed }})
	return s
}

// serve runs a session in the background and returns a channel closed when it ends.
func serve(s *Server, uid UserID, conn Conn) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Serve(uid, conn)
	}()
	return done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end")
	}
}

func TestServe_RegistersAndAnnounces(t *testing.T) {
	req := require.New(t)
	s := newLifecycleServer()
	conn := newFakeConn()

	// When an authenticated user connects
	done := serve(s, 1, conn)

	// Then the session is registered and gets the presence frames
	req.Equal([]string{EventUserOnline, EventOnlineUsers}, conn.waitEvents(t, 2))
	req.True(s.Registry().IsOnline(1))
	c := s.Registry().ConnectionsFor(1)[0]
	req.Equal(StateRegistered, c.State())
	req.NotEmpty(c.ConnID)

	// When the peer closes
	close(conn.in)
	waitDone(t, done)

	// Then the registry no longer knows the user
	req.False(s.Registry().IsOnline(1))
	req.Equal(StateClosed, c.State())
	req.True(conn.isClosed())
}

func TestServe_RelaysBetweenUsers(t *testing.T) {
	req := require.New(t)
	s := newLifecycleServer()
	alice, bob := newFakeConn(), newFakeConn()
	aliceDone := serve(s, 1, alice)
	alice.waitEvents(t, 2)
	bobDone := serve(s, 2, bob)
	bob.waitEvents(t, 2)

	// When alice relays a frame to bob
	alice.push(t, "echo", echoPayload{To: 2})

	// Then bob receives it, alice only saw bob come online
	req.Equal([]string{EventUserOnline, EventOnlineUsers, EventMessageReceive}, bob.waitEvents(t, 3))
	req.Equal([]string{EventUserOnline, EventOnlineUsers, EventUserOnline}, alice.waitEvents(t, 3))

	frames := bob.frames()
	req.JSONEq(`{"from":1,"message":"echo"}`, string(frames[2].Data))

	// When bob leaves alice is told
	close(bob.in)
	waitDone(t, bobDone)
	events := alice.waitEvents(t, 4)
	req.Equal(EventUserOffline, events[3])

	close(alice.in)
	waitDone(t, aliceDone)
}

func TestServe_BadFramesKeepTheSessionOpen(t *testing.T) {
	req := require.New(t)
	s := newLifecycleServer()
	conn := newFakeConn()
	done := serve(s, 1, conn)
	conn.waitEvents(t, 2)

	// When the client sends garbage, an unknown event and an invalid payload
	conn.in <- []byte(`{{{`)
	conn.push(t, "nope", map[string]any{})
	conn.push(t, "echo", map[string]any{})

	// Then each one is answered with an error frame
	events := conn.waitEvents(t, 5)
	req.Equal([]string{EventError, EventError, EventError}, events[2:])
	var ev ErrorEvent
	req.NoError(json.Unmarshal(conn.frames()[3].Data, &ev))
	req.Equal(400, ev.Code)

	// And the session is still registered
	req.True(s.Registry().IsOnline(1))

	close(conn.in)
	waitDone(t, done)
}

func TestServe_LogoutEndsSession(t *testing.T) {
	req := require.New(t)
	s := newLifecycleServer()
	conn := newFakeConn()
	done := serve(s, 1, conn)
	conn.waitEvents(t, 2)

	conn.push(t, "bye", map[string]any{})

	waitDone(t, done)
	req.False(s.Registry().IsOnline(1))
	req.True(conn.isClosed())
}

func TestServe_TransportErrorCleansUpOnce(t *testing.T) {
	req := require.New(t)
	obs := &recordingObserver{}
	s := NewServer(Options{Observers: []PresenceObserver{obs}})
	conn := newFakeConn()
	done := serve(s, 8, conn)
	conn.waitEvents(t, 2)
	c := s.Registry().ConnectionsFor(8)[0]

	// When the transport dies under the reader
	_ = conn.Close()
	waitDone(t, done)

	// And teardown is invoked again
	s.teardown(c)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req.NoError(s.presence.Close(ctx))

	// Then the user went offline exactly once
	req.Equal([]string{"online:8", "offline:8"}, obs.snapshot())
	users, conns := s.Registry().Count()
	req.Zero(users)
	req.Zero(conns)
}

func TestServe_ConcurrentSessionsOfOneUser(t *testing.T) {
	req := require.New(t)
	obs := &recordingObserver{}
	s := NewServer(Options{Observers: []PresenceObserver{obs}})

	const n = 8
	conns := make([]*fakeConn, n)
	dones := make([]<-chan struct{}, n)
	for i := range conns {
		conns[i] = newFakeConn()
		dones[i] = serve(s, 3, conns[i])
	}
	req.Eventually(func() bool {
		_, c := s.Registry().Count()
		return c == n
	}, 2*time.Second, 5*time.Millisecond)

	var wg sync.WaitGroup
	for i := range conns {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			close(conns[i].in)
			<-dones[i]
		}(i)
	}
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req.NoError(s.presence.Close(ctx))
	req.Equal([]string{"online:3", "offline:3"}, obs.snapshot())
}

func TestServer_Shutdown(t *testing.T) {
	req := require.New(t)
	s := newLifecycleServer()
	conns := []*fakeConn{newFakeConn(), newFakeConn()}
	for i, c := range conns {
		serve(s, UserID(i+1), c)
	}
	req.Eventually(func() bool { return len(s.Registry().All()) == 2 }, 2*time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req.NoError(s.Shutdown(ctx))

	req.Empty(s.Registry().All())
	for _, c := range conns {
		req.True(c.isClosed())
	}
}

func TestServer_ServeAfterShutdownIsRefused(t *testing.T) {
	req := require.New(t)
	s := newLifecycleServer()
	req.NoError(s.Shutdown(context.Background()))

	// When a connection is handed over after shutdown
	conn := newFakeConn()
	waitDone(t, serve(s, 1, conn))

	// Then it is closed without ever being registered
	req.True(conn.isClosed())
	req.False(s.Registry().IsOnline(1))
	req.Empty(conn.frames())
}

func TestServer_ShutdownRacingNewSessions(t *testing.T) {
	req := require.New(t)
	s := newLifecycleServer()
	conns := make([]*fakeConn, 20)
	dones := make([]<-chan struct{}, 20)
	for i := range conns {
		conns[i] = newFakeConn()
	}

	// When sessions arrive while the server shuts down
	for i := range conns[:10] {
		dones[i] = serve(s, UserID(i+1), conns[i])
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	shut := make(chan error, 1)
	go func() { shut <- s.Shutdown(ctx) }()
	for i := 10; i < len(conns); i++ {
		dones[i] = serve(s, UserID(i+1), conns[i])
	}

	// Then shutdown completes and no session outlives it
	req.NoError(<-shut)
	for i, done := range dones {
		waitDone(t, done)
		req.True(conns[i].isClosed())
	}
	req.Empty(s.Registry().All())
}

func TestServer_Authenticate(t *testing.T) {
	req := require.New(t)

	_, err := NewServer(Options{}).Authenticate("x")
	req.ErrorIs(err, errs.ErrUnauthorized)

	s := NewServer(Options{Auth: AuthenticatorFunc(func(token string) (UserID, error) {
		if token == "ok" {
			return 5, nil
		}
		return 0, context.DeadlineExceeded
	})})
	uid, err := s.Authenticate("ok")
	req.NoError(err)
	req.Equal(UserID(5), uid)

	_, err = s.Authenticate("bad")
	req.ErrorIs(err, errs.ErrUnauthorized)
}
