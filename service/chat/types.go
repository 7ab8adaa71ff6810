//go:generate go run go.uber.org/mock/mockgen -source=types.go -destination=../../mocks/mock_membership.go -package=mocks -exclude_interfaces=Conn,Authenticator,PresenceObserver
package chat

import (
	"context"
	"strconv"
	"time"
)

// UserID identifies a logical user. It is supplied by the bearer verifier and
// never parsed from client frames for authentication purposes.
type UserID int64

func (u UserID) String() string { return strconv.FormatInt(int64(u), 10) }

// Conn is the transport of one live session. *websocket.Conn satisfies it.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Authenticator turns a bearer credential into a user id.
type Authenticator interface {
	Authenticate(token string) (UserID, error)
}

type AuthenticatorFunc func(token string) (UserID, error)

func (f AuthenticatorFunc) Authenticate(token string) (UserID, error) { return f(token) }

// MembershipResolver lists the members of a group.
type MembershipResolver interface {
	GroupMemberIDs(ctx context.Context, groupID int64) ([]UserID, error)
}

type MembershipFunc func(ctx context.Context, groupID int64) ([]UserID, error)

func (f MembershipFunc) GroupMemberIDs(ctx context.Context, groupID int64) ([]UserID, error) {
	return f(ctx, groupID)
}

// PresenceObserver is told about online/offline transitions after the
// broadcast went out. Errors are logged only.
type PresenceObserver interface {
	UserOnline(ctx context.Context, id UserID) error
	UserOffline(ctx context.Context, id UserID) error
}
