package chat

import (
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// fakeConn is an in-memory transport. Frames pushed on in are read by the
// session; closing in ends it like a peer close.
type fakeConn struct {
	in chan []byte

	mu     sync.Mutex
	writes [][]byte
	closes int

	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 16), closed: make(chan struct{})}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case b, ok := <-f.in:
		if !ok {
			return 0, nil, &websocket.CloseError{Code: websocket.CloseNormalClosure}
		}
		return websocket.TextMessage, b, nil
	case <-f.closed:
		return 0, nil, net.ErrClosed
	}
}

func (f *fakeConn) WriteMessage(mt int, data []byte) error {
	select {
	case <-f.closed:
		return net.ErrClosed
	default:
	}
	if mt != websocket.TextMessage {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, append([]byte(nil), data...))
	return nil
}

func (f *fakeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (f *fakeConn) SetReadDeadline(time.Time) error           { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error          { return nil }
func (f *fakeConn) SetReadLimit(int64)                        {}
func (f *fakeConn) SetPongHandler(func(string) error)         {}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	f.closes++
	f.mu.Unlock()
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

func (f *fakeConn) push(t *testing.T, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	b, err := json.Marshal(Frame{Event: event, Data: raw})
	require.NoError(t, err)
	f.in <- b
}

func (f *fakeConn) frames() []Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Frame, 0, len(f.writes))
	for _, w := range f.writes {
		var fr Frame
		if json.Unmarshal(w, &fr) == nil {
			out = append(out, fr)
		}
	}
	return out
}

func (f *fakeConn) events() []string {
	var out []string
	for _, fr := range f.frames() {
		out = append(out, fr.Event)
	}
	return out
}

// waitEvents blocks until the connection has written at least n frames.
func (f *fakeConn) waitEvents(t *testing.T, n int) []string {
	t.Helper()
	require.Eventually(t, func() bool { return len(f.frames()) >= n },
		2*time.Second, 5*time.Millisecond, "want %d frames, got %v", n, f.events())
	return f.events()
}

// newIdleClient builds a client whose queue is inspected directly; no writer runs.
func newIdleClient(connID string, uid UserID) *Client {
	return NewClient(connID, uid, newFakeConn(), ClientConf{SendQueueSize: 16})
}

// queued drains whatever is waiting in c's send queue.
func queued(t *testing.T, c *Client) []Frame {
	t.Helper()
	var out []Frame
	for {
		select {
		case b, ok := <-c.send:
			if !ok {
				return out
			}
			var fr Frame
			require.NoError(t, json.Unmarshal(b, &fr))
			out = append(out, fr)
		default:
			return out
		}
	}
}

func queuedEvents(t *testing.T, c *Client) []string {
	t.Helper()
	var out []string
	for _, fr := range queued(t, c) {
		out = append(out, fr.Event)
	}
	return out
}
