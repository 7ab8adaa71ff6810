package store

import (
	"context"

	"ChatProject/module/chat/model"
	"ChatProject/tools/errs"

	"github.com/jackc/pgx/v5"
)

const messageColumns = `id, sender_id, receiver_id, type, message, message_status, created_at`

func (s *PgStore) CreateMessage(ctx context.Context, m *model.Message) error {
	err := s.DB.QueryRow(ctx,
		`INSERT INTO messages (sender_id, receiver_id, type, message, message_status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		m.SenderID, m.ReceiverID, m.Type, m.Message, m.MessageStatus,
	).Scan(&m.ID, &m.CreatedAt)
	return errs.WrapMsg(err, "insert message", "from", m.SenderID, "to", m.ReceiverID)
}

func (s *PgStore) GetMessage(ctx context.Context, id int64) (*model.Message, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id)
	if err != nil {
		return nil, errs.WrapMsg(err, "query message", "id", id)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Message])
	if err != nil {
		return nil, notFound(err, "message", id)
	}
	return m, nil
}

func (s *PgStore) Conversation(ctx context.Context, viewer, peer int64) ([]model.Message, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT `+messageColumns+` FROM messages m
		 WHERE ((m.sender_id = $1 AND m.receiver_id = $2) OR (m.sender_id = $2 AND m.receiver_id = $1))
		   AND NOT EXISTS (SELECT 1 FROM deleted_messages d WHERE d.message_id = m.id AND d.user_id = $1)
		 ORDER BY m.id`,
		viewer, peer)
	if err != nil {
		return nil, errs.WrapMsg(err, "query conversation", "viewer", viewer, "peer", peer)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Message])
	return out, errs.Wrap(err)
}

func (s *PgStore) MarkRead(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.DB.Exec(ctx, `UPDATE messages SET message_status = $2 WHERE id = ANY($1)`, ids, model.StatusRead)
	return errs.WrapMsg(err, "mark messages read", "count", len(ids))
}

func (s *PgStore) HideMessage(ctx context.Context, messageID, userID int64) (bool, error) {
	tag, err := s.DB.Exec(ctx,
		`INSERT INTO deleted_messages (message_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		messageID, userID)
	if err != nil {
		return false, errs.WrapMsg(err, "hide message", "id", messageID, "user", userID)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteMessage removes the message; per-user deletions go with it through the cascade.
func (s *PgStore) DeleteMessage(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return errs.WrapMsg(err, "delete message", "id", id)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrRecordNotFound.WrapMsg("message not found", "id", id)
	}
	return nil
}

func (s *PgStore) ClearConversation(ctx context.Context, viewer, peer int64) (int64, error) {
	tag, err := s.DB.Exec(ctx,
		`INSERT INTO deleted_messages (message_id, user_id)
		 SELECT id, $1 FROM messages
		 WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		 ON CONFLICT DO NOTHING`,
		viewer, peer)
	if err != nil {
		return 0, errs.WrapMsg(err, "clear conversation", "viewer", viewer, "peer", peer)
	}
	return tag.RowsAffected(), nil
}

func (s *PgStore) Contacts(ctx context.Context, user int64) ([]model.Contact, error) {
	rows, err := s.DB.Query(ctx,
		`WITH visible AS (
		     SELECT m.*, CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END AS peer_id
		     FROM messages m
		     WHERE (m.sender_id = $1 OR m.receiver_id = $1)
		       AND NOT EXISTS (SELECT 1 FROM deleted_messages d WHERE d.message_id = m.id AND d.user_id = $1)
		 ), latest AS (
		     SELECT DISTINCT ON (peer_id) * FROM visible ORDER BY peer_id, id DESC
		 ), unread AS (
		     SELECT sender_id AS peer_id, count(*) AS n FROM visible
		     WHERE receiver_id = $1 AND sender_id <> $1 AND message_status <> $2
		     GROUP BY sender_id
		 )
		 SELECT l.peer_id, u.username, l.id AS message_id, l.type, l.message, l.message_status,
		        l.created_at, l.sender_id, l.receiver_id, COALESCE(n.n, 0) AS total_unread
		 FROM latest l
		 JOIN users u ON u.id = l.peer_id
		 LEFT JOIN unread n ON n.peer_id = l.peer_id
		 ORDER BY l.id DESC`,
		user, model.StatusRead)
	if err != nil {
		return nil, errs.WrapMsg(err, "query contacts", "user", user)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Contact])
	return out, errs.Wrap(err)
}

func (s *PgStore) MarkDelivered(ctx context.Context, user int64) (int64, error) {
	tag, err := s.DB.Exec(ctx,
		`UPDATE messages SET message_status = $2 WHERE receiver_id = $1 AND message_status = $3`,
		user, model.StatusDelivered, model.StatusSent)
	if err != nil {
		return 0, errs.WrapMsg(err, "mark delivered", "user", user)
	}
	return tag.RowsAffected(), nil
}
