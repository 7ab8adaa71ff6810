package store

import (
	"context"
	"time"

	"ChatProject/module/chat/model"
	"ChatProject/tools/errs"

	"github.com/jackc/pgx/v5"
)

const (
	groupColumns        = `id, name, about, avatar, admin_id, created_at`
	groupMessageColumns = `id, group_id, sender_id, type, message, created_at`
)

// CreateGroup inserts the group and its members in one transaction.
func (s *PgStore) CreateGroup(ctx context.Context, g *model.Group, members []int64) error {
	return pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO chat_groups (name, about, avatar, admin_id) VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at`,
			g.Name, g.About, g.Avatar, g.AdminID,
		).Scan(&g.ID, &g.CreatedAt)
		if err != nil {
			return errs.WrapMsg(err, "insert group", "name", g.Name)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO group_members (group_id, user_id) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
			g.ID, members)
		if err != nil {
			return errs.WrapMsg(err, "insert group members", "group", g.ID)
		}
		g.Members = members
		return nil
	})
}

func (s *PgStore) GetGroup(ctx context.Context, id int64) (*model.Group, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+groupColumns+` FROM chat_groups WHERE id = $1`, id)
	if err != nil {
		return nil, errs.WrapMsg(err, "query group", "id", id)
	}
	g, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Group])
	if err != nil {
		return nil, notFound(err, "group", id)
	}
	return g, nil
}

// GroupsOf lists the groups userID belongs to with their unread count and
// the time of the latest message.
func (s *PgStore) GroupsOf(ctx context.Context, userID int64) ([]model.GroupSummary, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT g.id, g.name, g.about, g.avatar, g.admin_id, g.created_at,
		        (SELECT count(*) FROM group_messages gm
		          WHERE gm.group_id = g.id
		            AND NOT EXISTS (SELECT 1 FROM group_message_reads r WHERE r.message_id = gm.id AND r.user_id = $1)),
		        (SELECT max(gm.created_at) FROM group_messages gm WHERE gm.group_id = g.id)
		 FROM chat_groups g
		 JOIN group_members m ON m.group_id = g.id AND m.user_id = $1
		 ORDER BY g.id`,
		userID)
	if err != nil {
		return nil, errs.WrapMsg(err, "query groups", "user", userID)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.GroupSummary, error) {
		var gs model.GroupSummary
		err := row.Scan(&gs.ID, &gs.Name, &gs.About, &gs.Avatar, &gs.AdminID, &gs.CreatedAt,
			&gs.UnreadCount, &gs.LastMessageTime)
		return gs, err
	})
	return out, errs.Wrap(err)
}

func (s *PgStore) GroupMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	rows, err := s.DB.Query(ctx, `SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY user_id`, groupID)
	if err != nil {
		return nil, errs.WrapMsg(err, "query group members", "group", groupID)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	return out, errs.Wrap(err)
}

func (s *PgStore) IsGroupMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var ok bool
	err := s.DB.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`,
		groupID, userID).Scan(&ok)
	return ok, errs.WrapMsg(err, "check membership", "group", groupID, "user", userID)
}

func (s *PgStore) AddGroupMember(ctx context.Context, groupID, userID int64) (bool, error) {
	tag, err := s.DB.Exec(ctx,
		`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		groupID, userID)
	if err != nil {
		return false, errs.WrapMsg(err, "add group member", "group", groupID, "user", userID)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PgStore) RemoveGroupMember(ctx context.Context, groupID, userID int64) (bool, error) {
	tag, err := s.DB.Exec(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return false, errs.WrapMsg(err, "remove group member", "group", groupID, "user", userID)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PgStore) CreateGroupMessage(ctx context.Context, m *model.GroupMessage) error {
	return pgx.BeginFunc(ctx, s.DB, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO group_messages (group_id, sender_id, type, message) VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at`,
			m.GroupID, m.SenderID, m.Type, m.Message,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return errs.WrapMsg(err, "insert group message", "group", m.GroupID)
		}
		var readAt time.Time
		err = tx.QueryRow(ctx,
			`INSERT INTO group_message_reads (message_id, user_id) VALUES ($1, $2) RETURNING read_at`,
			m.ID, m.SenderID).Scan(&readAt)
		if err != nil {
			return errs.WrapMsg(err, "insert sender read", "message", m.ID)
		}
		m.ReadAt = &readAt
		return nil
	})
}

func (s *PgStore) GetGroupMessage(ctx context.Context, id int64) (*model.GroupMessage, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+groupMessageColumns+` FROM group_messages WHERE id = $1`, id)
	if err != nil {
		return nil, errs.WrapMsg(err, "query group message", "id", id)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.GroupMessage])
	if err != nil {
		return nil, notFound(err, "group message", id)
	}
	return m, nil
}

// GroupMessages lists the group's messages in id order with viewer's read
// time, minus the ones viewer deleted for themselves.
func (s *PgStore) GroupMessages(ctx context.Context, groupID, viewer int64) ([]model.GroupMessage, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT gm.id, gm.group_id, gm.sender_id, gm.type, gm.message, gm.created_at, r.read_at
		 FROM group_messages gm
		 LEFT JOIN group_message_reads r ON r.message_id = gm.id AND r.user_id = $2
		 WHERE gm.group_id = $1
		   AND NOT EXISTS (SELECT 1 FROM deleted_group_messages d WHERE d.message_id = gm.id AND d.user_id = $2)
		 ORDER BY gm.id`,
		groupID, viewer)
	if err != nil {
		return nil, errs.WrapMsg(err, "query group messages", "group", groupID)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.GroupMessage, error) {
		var m model.GroupMessage
		err := row.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.Type, &m.Message, &m.CreatedAt, &m.ReadAt)
		return m, err
	})
	return out, errs.Wrap(err)
}

// DeleteGroupMessage removes the message; reads and per-user deletions go
// with it through the cascade.
func (s *PgStore) DeleteGroupMessage(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM group_messages WHERE id = $1`, id)
	if err != nil {
		return errs.WrapMsg(err, "delete group message", "id", id)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrRecordNotFound.WrapMsg("group message not found", "id", id)
	}
	return nil
}

func (s *PgStore) HideGroupMessage(ctx context.Context, messageID, userID int64) (bool, error) {
	tag, err := s.DB.Exec(ctx,
		`INSERT INTO deleted_group_messages (message_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		messageID, userID)
	if err != nil {
		return false, errs.WrapMsg(err, "hide group message", "id", messageID, "user", userID)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PgStore) ClearGroupMessages(ctx context.Context, groupID, userID int64) (int64, error) {
	tag, err := s.DB.Exec(ctx,
		`INSERT INTO deleted_group_messages (message_id, user_id)
		 SELECT id, $2 FROM group_messages WHERE group_id = $1
		 ON CONFLICT DO NOTHING`,
		groupID, userID)
	if err != nil {
		return 0, errs.WrapMsg(err, "clear group messages", "group", groupID, "user", userID)
	}
	return tag.RowsAffected(), nil
}

func (s *PgStore) MarkGroupRead(ctx context.Context, groupID, userID int64) (int64, error) {
	tag, err := s.DB.Exec(ctx,
		`INSERT INTO group_message_reads (message_id, user_id)
		 SELECT id, $2 FROM group_messages WHERE group_id = $1
		 ON CONFLICT DO NOTHING`,
		groupID, userID)
	if err != nil {
		return 0, errs.WrapMsg(err, "mark group read", "group", groupID, "user", userID)
	}
	return tag.RowsAffected(), nil
}
