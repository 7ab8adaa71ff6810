package chat

import (
	"context"
	"net"
	"time"

	"ChatProject/logger"
	"ChatProject/tools/errs"
	"ChatProject/tools/safe"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Serve runs an authenticated session to completion: it registers the
// connection, fires the presence rules, relays inbound frames until the
// transport fails or the client logs out, and always cleans up exactly once.
func (s *Server) Serve(userID UserID, conn Conn) {
	if !s.admit() {
		logger.Info("[WS] refused, shutting down", zap.Stringer("user", userID))
		_ = conn.Close()
		return
	}
	defer s.wg.Done()

	c := NewClient(s.ids.GenerateString(), userID, conn, s.opts.Client)
	c.setState(StateAuthenticated)
	safe.Go("chat-writer", c.writePump)

	defer s.teardown(c)
	first := s.presence.Attach(c)
	logger.Info("[WS] registered",
		zap.String("conn", c.ConnID), zap.Stringer("user", userID), zap.Bool("first", first))
	// registered after Shutdown took its snapshot of live connections
	if s.ctx.Err() != nil {
		return
	}

	if err := safe.Run("chat-reader", func() { s.readLoop(c) }); err != nil {
		logger.Error("[WS] read loop aborted", zap.String("conn", c.ConnID), zap.Error(err))
	}
}

// Authenticate verifies token with the configured Authenticator.
func (s *Server) Authenticate(token string) (UserID, error) {
	if s.opts.Auth == nil {
		return 0, errs.ErrUnauthorized.WrapMsg("no authenticator configured")
	}
	uid, err := s.opts.Auth.Authenticate(token)
	if err != nil {
		if _, ok := errs.As(err); !ok {
			err = errs.ErrUnauthorized.WrapMsg("verify token", "err", err)
		}
		return 0, err
	}
	return uid, nil
}

func (s *Server) readLoop(c *Client) {
	conn := c.conn
	conn.SetReadLimit(c.conf.ReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(c.conf.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.conf.PongWait))
	})

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			logReadError(c, err)
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(c.conf.PongWait))
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		f, err := ParseFrame(data)
		if err != nil {
			s.reject(c, err)
			continue
		}

		ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
		err = s.disp.Dispatch(&Context{Context: ctx, S: s, Client: c}, f)
		cancel()
		if errors.Is(err, ErrSessionClosed) {
			logger.Info("[WS] client logout", zap.String("conn", c.ConnID), zap.Stringer("user", c.UserID))
			return
		}
		if err != nil {
			s.reject(c, err)
		}
	}
}

// reject answers a bad frame with an error event; the session stays open.
func (s *Server) reject(c *Client, err error) {
	logger.Info("[WS] frame rejected",
		zap.String("conn", c.ConnID), zap.Stringer("user", c.UserID), zap.Error(err))
	ev := ErrorEvent{Code: errs.ErrInternal.Code, Msg: errs.ErrInternal.Msg}
	if ce, ok := errs.As(err); ok {
		ev.Code, ev.Msg = ce.Code, ce.Msg
		if ce.Detail != "" {
			ev.Msg += ": " + ce.Detail
		}
	}
	s.router.Send(c, ev)
}

func (s *Server) teardown(c *Client) {
	c.closeOnce.Do(func() {
		last := s.presence.Detach(c)
		c.closeSend()
		c.setState(StateClosed)

		select {
		case <-c.done:
		case <-time.After(c.conf.WriteWait):
		}
		_ = c.conn.Close()
		logger.Info("[WS] closed",
			zap.String("conn", c.ConnID), zap.Stringer("user", c.UserID), zap.Bool("last", last),
			zap.Duration("age", time.Since(c.createdAt)))
	})
}

func logReadError(c *Client, err error) {
	fields := []zap.Field{zap.String("conn", c.ConnID), zap.Stringer("user", c.UserID), zap.Error(err)}
	var ne net.Error
	switch {
	case websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived):
		logger.Info("[WS] peer closed", fields...)
	case errors.As(err, &ne) && ne.Timeout():
		logger.Info("[WS] read timeout", fields...)
	default:
		logger.Info("[WS] read error", fields...)
	}
}
