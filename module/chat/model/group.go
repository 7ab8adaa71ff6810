package model

import (
	"time"
)

// Group is a named audience with one admin.
type Group struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	About     *string   `db:"about" json:"about"`
	Avatar    string    `db:"avatar" json:"avatar"`
	AdminID   int64     `db:"admin_id" json:"adminId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Members []int64 `db:"-" json:"members,omitempty"`
}

// GroupMessage is a message posted to a group. ReadAt is the viewer's own
// read time when the message is listed for one user.
type GroupMessage struct {
	ID        int64     `db:"id" json:"id"`
	GroupID   int64     `db:"group_id" json:"groupId"`
	SenderID  int64     `db:"sender_id" json:"senderId"`
	Type      string    `db:"type" json:"type"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	ReadAt *time.Time `db:"-" json:"readAt,omitempty"`
}
