package handlers

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	"ChatProject/mocks"
	"ChatProject/service/chat"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type pipeConn struct {
	in     chan []byte
	mu     sync.Mutex
	out    []chat.Frame
	closed chan struct{}
	once   sync.Once
}

func newPipeConn() *pipeConn {
	return &pipeConn{in: make(chan []byte, 8), closed: make(chan struct{})}
}

func (p *pipeConn) ReadMessage() (int, []byte, error) {
	select {
	case b, ok := <-p.in:
		if !ok {
			return 0, nil, &websocket.CloseError{Code: websocket.CloseNormalClosure}
		}
		return websocket.TextMessage, b, nil
	case <-p.closed:
		return 0, nil, net.ErrClosed
	}
}

func (p *pipeConn) WriteMessage(mt int, data []byte) error {
	if mt != websocket.TextMessage {
		return nil
	}
	var f chat.Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	p.mu.Lock()
	p.out = append(p.out, f)
	p.mu.Unlock()
	return nil
}

func (p *pipeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (p *pipeConn) SetReadDeadline(time.Time) error           { return nil }
func (p *pipeConn) SetWriteDeadline(time.Time) error          { return nil }
func (p *pipeConn) SetReadLimit(int64)                        {}
func (p *pipeConn) SetPongHandler(func(string) error)         {}
func (p *pipeConn) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

func (p *pipeConn) send(t *testing.T, event string, data string) {
	t.Helper()
	b, err := json.Marshal(chat.Frame{Event: event, Data: json.RawMessage(data)})
	require.NoError(t, err)
	p.in <- b
}

func (p *pipeConn) frames() []chat.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]chat.Frame(nil), p.out...)
}

// waitFor returns the first frame named event, failing after a second.
func (p *pipeConn) waitFor(t *testing.T, event string) chat.Frame {
	t.Helper()
	var got chat.Frame
	require.Eventually(t, func() bool {
		for _, f := range p.frames() {
			if f.Event == event {
				got = f
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond, "no %s frame", event)
	return got
}

func (p *pipeConn) has(event string) bool {
	for _, f := range p.frames() {
		if f.Event == event {
			return true
		}
	}
	return false
}

type session struct {
	conn *pipeConn
	done chan struct{}
}

func connect(t *testing.T, s *chat.Server, uid chat.UserID) *session {
	t.Helper()
	ss := &session{conn: newPipeConn(), done: make(chan struct{})}
	go func() {
		defer close(ss.done)
		s.Serve(uid, ss.conn)
	}()
	ss.conn.waitFor(t, chat.EventOnlineUsers)
	t.Cleanup(func() {
		_ = ss.conn.Close()
		<-ss.done
	})
	return ss
}

func newRelayServer(opts chat.Options) *chat.Server {
	s := chat.NewServer(opts)
	RegisterDefaults(s.Disp())
	return s
}

func TestRegisterDefaults(t *testing.T) {
	req := require.New(t)
	d := chat.NewDispatcher()

	RegisterDefaults(d)

	req.ElementsMatch([]string{
		EventSendMsg, EventDeleteMsgForEveryone, EventDeleteGroupMsgForEveryone, EventLogout,
	}, d.Events())
}

func TestSendMsg_UsesSessionUserAsSender(t *testing.T) {
	req := require.New(t)
	s := newRelayServer(chat.Options{})
	alice := connect(t, s, 1)
	bob := connect(t, s, 2)

	// When alice claims to be someone else
	alice.conn.send(t, EventSendMsg, `{"to":2,"from":99,"message":{"text":"hey"}}`)

	// Then bob sees the message from alice
	f := bob.conn.waitFor(t, chat.EventMessageReceive)
	req.JSONEq(`{"from":1,"message":{"text":"hey"}}`, string(f.Data))
	req.False(alice.conn.has(chat.EventMessageReceive))
}

func TestSendMsg_NumericStringsAreAccepted(t *testing.T) {
	req := require.New(t)
	s := newRelayServer(chat.Options{})
	alice := connect(t, s, 1)
	bob := connect(t, s, 2)

	alice.conn.send(t, EventSendMsg, `{"to":"2","message":"hi"}`)

	f := bob.conn.waitFor(t, chat.EventMessageReceive)
	req.JSONEq(`{"from":1,"message":"hi"}`, string(f.Data))
}

func TestSendMsg_MissingRecipient(t *testing.T) {
	req := require.New(t)
	s := newRelayServer(chat.Options{})
	alice := connect(t, s, 1)

	alice.conn.send(t, EventSendMsg, `{"message":"hi"}`)

	f := alice.conn.waitFor(t, chat.EventError)
	var ev chat.ErrorEvent
	req.NoError(json.Unmarshal(f.Data, &ev))
	req.Equal(400, ev.Code)
}

func TestSendMsg_OfflineRecipientIsSilent(t *testing.T) {
	req := require.New(t)
	s := newRelayServer(chat.Options{})
	alice := connect(t, s, 1)

	alice.conn.send(t, EventSendMsg, `{"to":5,"message":"anyone?"}`)
	alice.conn.send(t, EventLogout, `{}`)

	<-alice.done
	req.False(alice.conn.has(chat.EventError))
}

func TestDeleteMsgForEveryone(t *testing.T) {
	req := require.New(t)
	s := newRelayServer(chat.Options{})
	alice := connect(t, s, 1)
	bob1 := connect(t, s, 2)
	bob2 := connect(t, s, 2)

	alice.conn.send(t, EventDeleteMsgForEveryone, `{"messageId":314,"to":2}`)

	for _, b := range []*session{bob1, bob2} {
		f := b.conn.waitFor(t, chat.EventMessageDeleted)
		req.JSONEq(`{"messageId":314}`, string(f.Data))
	}
}

func TestDeleteGroupMsg_MembersOnly(t *testing.T) {
	req := require.New(t)
	members := chat.MembershipFunc(func(_ context.Context, groupID int64) ([]chat.UserID, error) {
		if groupID != 10 {
			return nil, nil
		}
		return []chat.UserID{1, 2, 2}, nil
	})
	s := newRelayServer(chat.Options{Members: members, VerifyMembership: true})
	alice := connect(t, s, 1)
	bob := connect(t, s, 2)
	carol := connect(t, s, 3)

	// When a member deletes a group message
	alice.conn.send(t, EventDeleteGroupMsgForEveryone, `{"groupId":10,"messageId":7}`)

	// Then members are told and the outsider is not
	f := bob.conn.waitFor(t, chat.EventGroupMessageDeleted)
	req.JSONEq(`{"groupId":10,"messageId":7}`, string(f.Data))
	alice.conn.waitFor(t, chat.EventGroupMessageDeleted)

	// When the outsider tries the same
	carol.conn.send(t, EventDeleteGroupMsgForEveryone, `{"groupId":10,"messageId":8}`)

	// Then only the outsider hears back, with an error
	f = carol.conn.waitFor(t, chat.EventError)
	var ev chat.ErrorEvent
	req.NoError(json.Unmarshal(f.Data, &ev))
	req.Equal(403, ev.Code)
	req.False(carol.conn.has(chat.EventGroupMessageDeleted))
}

func TestDeleteGroupMsg_NoResolverBroadcasts(t *testing.T) {
	s := newRelayServer(chat.Options{})
	alice := connect(t, s, 1)
	outsider := connect(t, s, 9)

	alice.conn.send(t, EventDeleteGroupMsgForEveryone, `{"groupId":10,"messageId":7}`)

	outsider.conn.waitFor(t, chat.EventGroupMessageDeleted)
	alice.conn.waitFor(t, chat.EventGroupMessageDeleted)
}

func TestDeleteGroupMsg_ResolverFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMembershipResolver(ctrl)

	// Given a resolver that cannot reach the store
	members.EXPECT().GroupMemberIDs(gomock.Any(), int64(10)).Return(nil, errors.New("db down"))
	s := newRelayServer(chat.Options{Members: members})
	alice := connect(t, s, 1)

	// When a group deletion is relayed
	alice.conn.send(t, EventDeleteGroupMsgForEveryone, `{"groupId":10,"messageId":7}`)

	// Then the sender gets an internal error and nothing is fanned out
	f := alice.conn.waitFor(t, chat.EventError)
	var ev chat.ErrorEvent
	req.NoError(json.Unmarshal(f.Data, &ev))
	req.Equal(500, ev.Code)
	req.False(alice.conn.has(chat.EventGroupMessageDeleted))
}

func TestDeleteGroupMsg_UnverifiedSenderStillFansOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMembershipResolver(ctrl)
	members.EXPECT().GroupMemberIDs(gomock.Any(), int64(10)).Return([]chat.UserID{2}, nil)

	s := newRelayServer(chat.Options{Members: members, VerifyMembership: false})
	alice := connect(t, s, 1)
	bob := connect(t, s, 2)

	alice.conn.send(t, EventDeleteGroupMsgForEveryone, `{"groupId":10,"messageId":7}`)

	bob.conn.waitFor(t, chat.EventGroupMessageDeleted)
}

func TestLogout(t *testing.T) {
	req := require.New(t)
	s := newRelayServer(chat.Options{})
	alice := connect(t, s, 1)

	alice.conn.send(t, EventLogout, `{}`)

	select {
	case <-alice.done:
	case <-time.After(time.Second):
		t.Fatal("logout did not end the session")
	}
	req.False(s.Registry().IsOnline(1))
}
