package chat

import (
	"sync"
	"sync/atomic"
	"time"

	"ChatProject/logger"
	"ChatProject/tools/errs"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ClientConf tunes a single session.
type ClientConf struct {
	SendQueueSize int           // outbound frames buffered per connection
	PingInterval  time.Duration // keepalive ping period, must be < PongWait
	PongWait      time.Duration // read deadline renewed by every pong or frame
	WriteWait     time.Duration // deadline for a single write
	ReadLimit     int64         // max inbound frame size
}

func (c *ClientConf) norm() {
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = 256
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingInterval <= 0 || c.PingInterval >= c.PongWait {
		c.PingInterval = c.PongWait * 9 / 10
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = 64 * 1024
	}
}

// State is the lifecycle stage of a session.
type State int32

const (
	StateConnecting State = iota
	StateAuthenticated
	StateRegistered
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateRegistered:
		return "registered"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

var (
	errQueueFull    = errs.ErrInternal.WithDetail("send queue full")
	errClientClosed = errs.ErrInternal.WithDetail("client closed")
)

// Client is one live session of a user. Frames reach the transport only
// through the send queue, drained by a single writer goroutine, so every
// connection sees its events in enqueue order.
type Client struct {
	ConnID string
	UserID UserID

	conn Conn
	conf ClientConf

	state atomic.Int32

	mu     sync.Mutex
	closed bool
	send   chan []byte

	done      chan struct{} // closed once the writer exits
	closeOnce sync.Once
	createdAt time.Time
}

func NewClient(connID string, userID UserID, conn Conn, conf ClientConf) *Client {
	conf.norm()
	return &Client{
		ConnID:    connID,
		UserID:    userID,
		conn:      conn,
		conf:      conf,
		send:      make(chan []byte, conf.SendQueueSize),
		done:      make(chan struct{}),
		createdAt: time.Now(),
	}
}

func (c *Client) State() State { return State(c.state.Load()) }

func (c *Client) setState(s State) { c.state.Store(int32(s)) }

// Enqueue hands payload to the writer without blocking.
func (c *Client) Enqueue(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return errQueueFull
	}
}

// closeSend stops accepting frames; the writer flushes what is queued and exits.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Done is closed when the writer goroutine has exited.
func (c *Client) Done() <-chan struct{} { return c.done }

func (c *Client) writePump() {
	ticker := time.NewTicker(c.conf.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.conf.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Warn("[WS] write failed",
					zap.String("conn", c.ConnID), zap.Stringer("user", c.UserID), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.conf.WriteWait)); err != nil {
				logger.Info("[WS] ping failed",
					zap.String("conn", c.ConnID), zap.Stringer("user", c.UserID), zap.Error(err))
				return
			}
		}
	}
}
