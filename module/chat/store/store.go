//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../../../mocks/mock_store.go -package=mocks
package store

import (
	"context"
	_ "embed"
	"time"

	"ChatProject/module/chat/model"
	"ChatProject/tools/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// Store persists users' direct messages and groups.
type Store interface {
	EnsureSchema(ctx context.Context) error
	// ExistingUserIDs returns the subset of ids that belong to a user.
	ExistingUserIDs(ctx context.Context, ids []int64) ([]int64, error)

	CreateMessage(ctx context.Context, m *model.Message) error
	GetMessage(ctx context.Context, id int64) (*model.Message, error)
	// Conversation lists the messages between viewer and peer in id order,
	// minus the ones viewer deleted for themselves.
	Conversation(ctx context.Context, viewer, peer int64) ([]model.Message, error)
	MarkRead(ctx context.Context, ids []int64) error
	// HideMessage deletes a message for one user. It reports false when it was already hidden.
	HideMessage(ctx context.Context, messageID, userID int64) (bool, error)
	DeleteMessage(ctx context.Context, id int64) error
	ClearConversation(ctx context.Context, viewer, peer int64) (int64, error)
	// Contacts lists, newest first, one entry per peer user has exchanged a
	// visible message with, counting the unread messages from that peer.
	Contacts(ctx context.Context, user int64) ([]model.Contact, error)
	// MarkDelivered moves every message user received in status sent to delivered.
	MarkDelivered(ctx context.Context, user int64) (int64, error)

	CreateGroup(ctx context.Context, g *model.Group, members []int64) error
	GetGroup(ctx context.Context, id int64) (*model.Group, error)
	GroupsOf(ctx context.Context, userID int64) ([]model.GroupSummary, error)
	GroupMemberIDs(ctx context.Context, groupID int64) ([]int64, error)
	IsGroupMember(ctx context.Context, groupID, userID int64) (bool, error)
	// AddGroupMember reports false when the user already was a member.
	AddGroupMember(ctx context.Context, groupID, userID int64) (bool, error)
	// RemoveGroupMember reports false when the user was not a member.
	RemoveGroupMember(ctx context.Context, groupID, userID int64) (bool, error)

	// CreateGroupMessage stores m and marks it read for its sender.
	CreateGroupMessage(ctx context.Context, m *model.GroupMessage) error
	GetGroupMessage(ctx context.Context, id int64) (*model.GroupMessage, error)
	GroupMessages(ctx context.Context, groupID, viewer int64) ([]model.GroupMessage, error)
	DeleteGroupMessage(ctx context.Context, id int64) error
	// HideGroupMessage deletes a group message for one user. It reports false
	// when it was already hidden.
	HideGroupMessage(ctx context.Context, messageID, userID int64) (bool, error)
	ClearGroupMessages(ctx context.Context, groupID, userID int64) (int64, error)
	MarkGroupRead(ctx context.Context, groupID, userID int64) (int64, error)
}

// PgStore is the Postgres Store.
type PgStore struct {
	DB *pgxpool.Pool
}

var _ Store = (*PgStore)(nil)

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{DB: pool}
}

// Open dials url and verifies the pool with a ping.
func Open(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, errs.ErrArgs.WrapMsg("database url is empty")
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, errs.WrapMsg(err, "open database")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errs.WrapMsg(err, "ping database")
	}
	return pool, nil
}

func (s *PgStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.Exec(ctx, schemaSQL); err != nil {
		return errs.WrapMsg(err, "ensure schema")
	}
	return nil
}

func (s *PgStore) ExistingUserIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.DB.Query(ctx, `SELECT id FROM users WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, errs.WrapMsg(err, "query users")
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	return out, errs.Wrap(err)
}

// notFound maps pgx.ErrNoRows onto ErrRecordNotFound.
func notFound(err error, what string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrRecordNotFound.WrapMsg(what+" not found", "id", id)
	}
	return errs.WrapMsg(err, "load "+what, "id", id)
}
