package model

import "time"

// Contact is one entry of a user's chat list: the peer and the latest
// message exchanged with them that the user has not deleted.
type Contact struct {
	ID                  int64     `db:"peer_id" json:"id"`
	Username            string    `db:"username" json:"username"`
	MessageID           int64     `db:"message_id" json:"messageId"`
	Type                string    `db:"type" json:"type"`
	Message             string    `db:"message" json:"message"`
	MessageStatus       string    `db:"message_status" json:"messageStatus"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	SenderID            int64     `db:"sender_id" json:"senderId"`
	ReceiverID          int64     `db:"receiver_id" json:"receiverId"`
	TotalUnreadMessages int64     `db:"total_unread" json:"totalUnreadMessages"`
}
