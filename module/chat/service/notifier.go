//go:generate go run go.uber.org/mock/mockgen -source=notifier.go -destination=../../../mocks/mock_notifier.go -package=mocks
package service

import (
	"time"

	"ChatProject/service/chat"

	"github.com/samber/lo"
)

// Notifier is the part of the realtime core the REST services emit through.
// *chat.Notifier implements it.
type Notifier interface {
	DirectMessage(from, to chat.UserID, message any) int
	MessageRead(sender chat.UserID, messageID int64, reader chat.UserID, readAt time.Time) int
	MessageDeleted(recipient chat.UserID, messageID int64) int
	GroupMessage(groupID int64, members []chat.UserID, message any) int
	GroupMessageDeleted(groupID, messageID int64, members []chat.UserID) int
	GroupCreated(admin chat.UserID, group any) int
	RemovedFromGroup(user chat.UserID, groupID int64, groupName string) int
	IsOnline(id chat.UserID) bool
	OnlineUserIDs() []chat.UserID
}

var _ Notifier = (*chat.Notifier)(nil)

func userIDs(ids []int64) []chat.UserID {
	return lo.Map(ids, func(id int64, _ int) chat.UserID { return chat.UserID(id) })
}
