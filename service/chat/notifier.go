package chat

import (
	"time"

	"github.com/samber/lo"
)

// Notifier is the emission surface for the REST collaborators. Every method
// returns the number of connections the event was queued on.
type Notifier struct {
	reg    *Registry
	router *Router
}

func NewNotifier(reg *Registry, router *Router) *Notifier {
	return &Notifier{reg: reg, router: router}
}

func (n *Notifier) DirectMessage(from, to UserID, message any) int {
	return n.router.Deliver(MessageReceive{From: from, Message: message}, to)
}

// MessageRead tells the original sender that reader has read messageID.
func (n *Notifier) MessageRead(sender UserID, messageID int64, reader UserID, readAt time.Time) int {
	return n.router.Deliver(MessageRead{MessageID: messageID, From: reader, ReadAt: readAt}, sender)
}

func (n *Notifier) MessageDeleted(recipient UserID, messageID int64) int {
	return n.router.Deliver(MessageDeleted{MessageID: messageID}, recipient)
}

// GroupMessage fans a group message out to members. Members are deduplicated
// since a group audience is a set.
func (n *Notifier) GroupMessage(groupID int64, members []UserID, message any) int {
	return n.router.Deliver(GroupMessageReceive{GroupID: groupID, Message: message}, lo.Uniq(members)...)
}

func (n *Notifier) GroupMessageDeleted(groupID, messageID int64, members []UserID) int {
	return n.router.Deliver(GroupMessageDeleted{GroupID: groupID, MessageID: messageID}, lo.Uniq(members)...)
}

func (n *Notifier) GroupCreated(admin UserID, group any) int {
	return n.router.Deliver(GroupCreated{Group: group}, admin)
}

func (n *Notifier) RemovedFromGroup(user UserID, groupID int64, groupName string) int {
	return n.router.Deliver(RemovedFromGroup{GroupID: groupID, GroupName: groupName}, user)
}

func (n *Notifier) IsOnline(id UserID) bool { return n.reg.IsOnline(id) }

func (n *Notifier) OnlineUserIDs() []UserID { return n.reg.OnlineUserIDs() }
