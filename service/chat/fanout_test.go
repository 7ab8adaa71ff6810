package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouter_Deliver_NoTargets(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	c := newIdleClient("c1", 1)
	reg.Register(1, c)

	req.Zero(NewRouter(reg).Deliver(MessageDeleted{MessageID: 1}))
	req.Empty(queued(t, c))
}

func TestRouter_Deliver_OfflineTargetIsSkipped(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	online := newIdleClient("c1", 1)
	reg.Register(1, online)

	n := NewRouter(reg).Deliver(MessageDeleted{MessageID: 9}, 2, 1)

	req.Equal(1, n)
	req.Equal([]string{EventMessageDeleted}, queuedEvents(t, online))
}

func TestRouter_Deliver_EveryHandleOfTheUser(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	handles := []*Client{newIdleClient("a", 1), newIdleClient("b", 1), newIdleClient("c", 1)}
	for _, c := range handles {
		reg.Register(1, c)
	}
	other := newIdleClient("o", 2)
	reg.Register(2, other)

	// When a message is delivered to the user with three tabs open
	n := NewRouter(reg).Deliver(MessageReceive{From: 2, Message: "hi"}, 1)

	// Then each tab gets it once and nobody else does
	req.Equal(3, n)
	for _, c := range handles {
		frames := queued(t, c)
		req.Len(frames, 1)
		req.Equal(EventMessageReceive, frames[0].Event)
		req.JSONEq(`{"from":2,"message":"hi"}`, string(frames[0].Data))
	}
	req.Empty(queued(t, other))
}

func TestRouter_Deliver_DuplicateTargets(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	c := newIdleClient("c1", 1)
	reg.Register(1, c)

	n := NewRouter(reg).Deliver(MessageDeleted{MessageID: 1}, 1, 1)

	req.Equal(2, n)
	req.Len(queued(t, c), 2)
}

func TestRouter_Deliver_FullQueueOnlyAffectsThatConnection(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	slow := NewClient("slow", 1, newFakeConn(), ClientConf{SendQueueSize: 1})
	fast := newIdleClient("fast", 1)
	reg.Register(1, slow)
	reg.Register(1, fast)
	router := NewRouter(reg)

	// Given the slow connection's queue is already full
	req.Equal(2, router.Deliver(MessageDeleted{MessageID: 1}, 1))

	// When another event is delivered
	n := router.Deliver(MessageDeleted{MessageID: 2}, 1)

	// Then it is dropped for the slow connection only
	req.Equal(1, n)
	req.Len(queued(t, slow), 1)
	req.Len(queued(t, fast), 2)
}

func TestRouter_Deliver_ClosedClient(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	c := newIdleClient("c1", 1)
	reg.Register(1, c)
	c.closeSend()

	req.Zero(NewRouter(reg).Deliver(MessageDeleted{MessageID: 1}, 1))
}

func TestRouter_Broadcast(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	clients := []*Client{newIdleClient("a", 1), newIdleClient("b", 1), newIdleClient("c", 2)}
	for _, c := range clients {
		reg.Register(c.UserID, c)
	}

	req.Equal(3, NewRouter(reg).Broadcast(UserOnline{UserID: 9}))
	for _, c := range clients {
		req.Equal([]string{EventUserOnline}, queuedEvents(t, c))
	}

	req.Zero(NewRouter(NewRegistry()).Broadcast(UserOnline{UserID: 9}))
}

func TestRouter_Send_PreservesOrder(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	c := newIdleClient("c1", 1)
	router := NewRouter(reg)

	for i := int64(1); i <= 5; i++ {
		req.True(router.Send(c, MessageDeleted{MessageID: i}))
	}

	frames := queued(t, c)
	req.Len(frames, 5)
	for i, fr := range frames {
		ev, err := DecodeEvent(fr.Event, fr.Data)
		req.NoError(err)
		req.Equal(int64(i+1), ev.(*MessageDeleted).MessageID)
	}
}
