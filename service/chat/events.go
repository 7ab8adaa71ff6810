package chat

import (
	"encoding/json"
	"time"

	"ChatProject/tools/errs"
)

// Outbound event names.
const (
	EventUserOnline          = "user-online"
	EventUserOffline         = "user-offline"
	EventOnlineUsers         = "online-users"
	EventMessageReceive      = "msg-receive"
	EventMessageRead         = "message-read"
	EventMessageDeleted      = "msg-deleted"
	EventGroupMessageReceive = "group-msg-receive"
	EventGroupMessageDeleted = "group-msg-deleted"
	EventGroupCreated        = "group-created"
	EventRemovedFromGroup    = "removed-from-group"
	EventError               = "error"
)

// Event is one outbound notification. The set of implementations is closed.
type Event interface {
	EventName() string
	isEvent()
}

type UserOnline struct {
	UserID UserID `json:"userId"`
}

type UserOffline struct {
	UserID UserID `json:"userId"`
}

type OnlineUsers struct {
	OnlineUsers []UserID `json:"onlineUsers"`
}

type MessageReceive struct {
	From    UserID `json:"from"`
	Message any    `json:"message"`
}

type MessageRead struct {
	MessageID int64     `json:"messageId"`
	From      UserID    `json:"from"`
	ReadAt    time.Time `json:"readAt"`
}

type MessageDeleted struct {
	MessageID int64 `json:"messageId"`
}

type GroupMessageReceive struct {
	GroupID int64 `json:"groupId"`
	Message any   `json:"message"`
}

type GroupMessageDeleted struct {
	GroupID   int64 `json:"groupId"`
	MessageID int64 `json:"messageId"`
}

type GroupCreated struct {
	Group any `json:"group"`
}

type RemovedFromGroup struct {
	GroupID   int64  `json:"groupId"`
	GroupName string `json:"groupName"`
}

// ErrorEvent tells a single connection that its last frame was rejected.
type ErrorEvent struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (UserOnline) EventName() string          { return EventUserOnline }
func (UserOffline) EventName() string         { return EventUserOffline }
func (OnlineUsers) EventName() string         { return EventOnlineUsers }
func (MessageReceive) EventName() string      { return EventMessageReceive }
func (MessageRead) EventName() string         { return EventMessageRead }
func (MessageDeleted) EventName() string      { return EventMessageDeleted }
func (GroupMessageReceive) EventName() string { return EventGroupMessageReceive }
func (GroupMessageDeleted) EventName() string { return EventGroupMessageDeleted }
func (GroupCreated) EventName() string        { return EventGroupCreated }
func (RemovedFromGroup) EventName() string    { return EventRemovedFromGroup }
func (ErrorEvent) EventName() string          { return EventError }

func (UserOnline) isEvent()          {}
func (UserOffline) isEvent()         {}
func (OnlineUsers) isEvent()         {}
func (MessageReceive) isEvent()      {}
func (MessageRead) isEvent()         {}
func (MessageDeleted) isEvent()      {}
func (GroupMessageReceive) isEvent() {}
func (GroupMessageDeleted) isEvent() {}
func (GroupCreated) isEvent()        {}
func (RemovedFromGroup) isEvent()    {}
func (ErrorEvent) isEvent()          {}

// deliverable lists the events collaborators may push through an envelope.
// Presence and error events are owned by the gateway itself.
var deliverable = map[string]func() Event{
	EventMessageReceive:      func() Event { return &MessageReceive{} },
	EventMessageRead:         func() Event { return &MessageRead{} },
	EventMessageDeleted:      func() Event { return &MessageDeleted{} },
	EventGroupMessageReceive: func() Event { return &GroupMessageReceive{} },
	EventGroupMessageDeleted: func() Event { return &GroupMessageDeleted{} },
	EventGroupCreated:        func() Event { return &GroupCreated{} },
	EventRemovedFromGroup:    func() Event { return &RemovedFromGroup{} },
}

// DecodeEvent builds the typed event for name from its JSON payload.
func DecodeEvent(name string, data json.RawMessage) (Event, error) {
	ctor, ok := deliverable[name]
	if !ok {
		return nil, errs.ErrArgs.WrapMsg("unknown event", "event", name)
	}
	ev := ctor()
	if len(data) > 0 {
		if err := json.Unmarshal(data, ev); err != nil {
			return nil, errs.ErrArgs.WrapMsg("decode event payload", "event", name, "err", err)
		}
	}
	return ev, nil
}
