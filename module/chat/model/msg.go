package model

import "time"

// Delivery status of a direct message.
const (
	StatusSent      = "sent"      // receiver was offline when it was stored
	StatusDelivered = "delivered" // receiver had a live connection
	StatusRead      = "read"
)

// Content types. File uploads are out of scope, so anything but text is a
// client supplied reference.
const (
	TypeText        = "text"
	TypeImage       = "image"
	TypeVideo       = "video"
	TypeAudio       = "audio"
	TypeApplication = "application"
)

// Message is one direct message between two users.
type Message struct {
	ID            int64     `db:"id" json:"id"`
	SenderID      int64     `db:"sender_id" json:"senderId"`
	ReceiverID    int64     `db:"receiver_id" json:"receiverId"`
	Type          string    `db:"type" json:"type"`
	Message       string    `db:"message" json:"message"`
	MessageStatus string    `db:"message_status" json:"messageStatus"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// Involves reports whether user sent or received m.
func (m *Message) Involves(user int64) bool {
	return m.SenderID == user || m.ReceiverID == user
}

// Peer returns the other side of the conversation as seen by user.
func (m *Message) Peer(user int64) int64 {
	if m.SenderID == user {
		return m.ReceiverID
	}
	return m.SenderID
}

// NormType maps an empty or unknown type onto text.
func NormType(t string) string {
	switch t {
	case TypeImage, TypeVideo, TypeAudio, TypeApplication:
		return t
	default:
		return TypeText
	}
}
