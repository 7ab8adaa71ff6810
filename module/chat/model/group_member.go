package model

import "time"

// GroupMember is one (group, user) membership row.
type GroupMember struct {
	GroupID  int64     `db:"group_id" json:"groupId"`
	UserID   int64     `db:"user_id" json:"userId"`
	JoinedAt time.Time `db:"joined_at" json:"joinedAt"`
}

// GroupSummary is a group as listed for one member, with that member's unread count.
type GroupSummary struct {
	Group
	UnreadCount     int64      `json:"unreadCount"`
	LastMessageTime *time.Time `json:"lastMessageTime"`
}
