package service

import (
	"context"
	"strings"
	"time"

	"ChatProject/logger"
	"ChatProject/module/chat/model"
	"ChatProject/module/chat/store"
	"ChatProject/service/chat"
	"ChatProject/tools/errs"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// MessageService owns direct messages: it persists through the store first
// and only then notifies live connections.
type MessageService struct {
	store  store.Store
	notify Notifier
	now    func() time.Time
}

func NewMessageService(s store.Store, n Notifier) *MessageService {
	return &MessageService{store: s, notify: n, now: time.Now}
}

// Send stores a direct message from the authenticated user. The status is
// delivered when the receiver has a live connection at that moment.
func (s *MessageService) Send(ctx context.Context, from, to int64, text, typ string) (*model.Message, error) {
	if to <= 0 {
		return nil, errs.ErrArgs.WrapMsg("receiver is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.ErrArgs.WrapMsg("message is required")
	}
	online := s.notify.IsOnline(chat.UserID(to))
	m := &model.Message{
		SenderID:      from,
		ReceiverID:    to,
		Type:          model.NormType(typ),
		Message:       text,
		MessageStatus: lo.Ternary(online, model.StatusDelivered, model.StatusSent),
	}
	if err := s.store.CreateMessage(ctx, m); err != nil {
		return nil, err
	}
	if online {
		s.notify.DirectMessage(chat.UserID(from), chat.UserID(to), m)
	}
	return m, nil
}

// Conversation returns the messages between viewer and peer. Every message
// peer sent that viewer had not read yet is marked read, and peer is told so.
func (s *MessageService) Conversation(ctx context.Context, viewer, peer int64) ([]model.Message, error) {
	if peer <= 0 {
		return nil, errs.ErrArgs.WrapMsg("peer is required")
	}
	msgs, err := s.store.Conversation(ctx, viewer, peer)
	if err != nil {
		return nil, err
	}
	unread := lo.Filter(msgs, func(m model.Message, _ int) bool {
		return m.SenderID == peer && m.MessageStatus != model.StatusRead
	})
	if len(unread) == 0 {
		return msgs, nil
	}
	if err := s.store.MarkRead(ctx, lo.Map(unread, func(m model.Message, _ int) int64 { return m.ID })); err != nil {
		return nil, err
	}

	readAt := s.now()
	for i := range msgs {
		if msgs[i].SenderID == peer && msgs[i].MessageStatus != model.StatusRead {
			msgs[i].MessageStatus = model.StatusRead
		}
	}
	for _, m := range unread {
		s.notify.MessageRead(chat.UserID(m.SenderID), m.ID, chat.UserID(viewer), readAt)
	}
	return msgs, nil
}

// DeleteForMe hides a message for user only. It reports false when the
// message was already hidden.
func (s *MessageService) DeleteForMe(ctx context.Context, user, messageID int64) (bool, error) {
	m, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return false, err
	}
	if !m.Involves(user) {
		return false, errs.ErrForbidden.WrapMsg("not a participant of this message", "id", messageID)
	}
	return s.store.HideMessage(ctx, messageID, user)
}

// DeleteForEveryone deletes a message its sender owns and tells the receiver.
func (s *MessageService) DeleteForEveryone(ctx context.Context, user, messageID int64) error {
	m, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if m.SenderID != user {
		return errs.ErrForbidden.WrapMsg("only the sender can delete a message for everyone", "id", messageID)
	}
	if err := s.store.DeleteMessage(ctx, messageID); err != nil {
		return err
	}
	s.notify.MessageDeleted(chat.UserID(m.ReceiverID), messageID)
	return nil
}

// Clear hides the whole conversation with peer for user.
func (s *MessageService) Clear(ctx context.Context, user, peer int64) (int64, error) {
	if peer <= 0 {
		return 0, errs.ErrArgs.WrapMsg("peer is required")
	}
	return s.store.ClearConversation(ctx, user, peer)
}

// Forward kinds of the source message.
const (
	ForwardPrivate = "private"
	ForwardGroup   = "group"
)

type ForwardTarget struct {
	ID      int64 `json:"id" validate:"required"`
	IsGroup bool  `json:"isGroup"`
}

type ForwardRequest struct {
	MessageID   int64           `json:"messageId" validate:"required"`
	MessageType string          `json:"messageType" validate:"required,oneof=private group"`
	Targets     []ForwardTarget `json:"targets" validate:"required,min=1,dive"`
}

type ForwardResult struct {
	Messages      []model.Message      `json:"messages"`
	GroupMessages []model.GroupMessage `json:"groupMessages"`
}

// Forward copies a message user can see to every target. All targets are
// checked before anything is written.
func (s *MessageService) Forward(ctx context.Context, user int64, req ForwardRequest) (*ForwardResult, error) {
	if len(req.Targets) == 0 {
		return nil, errs.ErrArgs.WrapMsg("targets are required")
	}
	text, typ, err := s.forwardSource(ctx, user, req)
	if err != nil {
		return nil, err
	}
	for _, t := range lo.Filter(req.Targets, func(t ForwardTarget, _ int) bool { return t.IsGroup }) {
		ok, err := s.store.IsGroupMember(ctx, t.ID, user)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errs.ErrForbidden.WrapMsg("not a member of the target group", "group", t.ID)
		}
	}

	res := &ForwardResult{Messages: []model.Message{}, GroupMessages: []model.GroupMessage{}}
	for _, t := range req.Targets {
		if t.IsGroup {
			gm := &model.GroupMessage{GroupID: t.ID, SenderID: user, Type: typ, Message: text}
			if err := s.store.CreateGroupMessage(ctx, gm); err != nil {
				return nil, err
			}
			members, err := s.store.GroupMemberIDs(ctx, t.ID)
			if err != nil {
				logger.Warn("[message] forward: load members", zap.Int64("group", t.ID), zap.Error(err))
			} else {
				s.notify.GroupMessage(t.ID, userIDs(members), gm)
			}
			res.GroupMessages = append(res.GroupMessages, *gm)
			continue
		}
		online := s.notify.IsOnline(chat.UserID(t.ID))
		m := &model.Message{
			SenderID:      user,
			ReceiverID:    t.ID,
			Type:          typ,
			Message:       text,
			MessageStatus: lo.Ternary(online, model.StatusDelivered, model.StatusSent),
		}
		if err := s.store.CreateMessage(ctx, m); err != nil {
			return nil, err
		}
		if online {
			s.notify.DirectMessage(chat.UserID(user), chat.UserID(t.ID), m)
		}
		res.Messages = append(res.Messages, *m)
	}
	return res, nil
}

func (s *MessageService) forwardSource(ctx context.Context, user int64, req ForwardRequest) (string, string, error) {
	switch req.MessageType {
	case ForwardPrivate:
		m, err := s.store.GetMessage(ctx, req.MessageID)
		if err != nil {
			return "", "", err
		}
		if !m.Involves(user) {
			return "", "", errs.ErrRecordNotFound.WrapMsg("message not found", "id", req.MessageID)
		}
		return m.Message, m.Type, nil
	case ForwardGroup:
		m, err := s.store.GetGroupMessage(ctx, req.MessageID)
		if err != nil {
			return "", "", err
		}
		ok, err := s.store.IsGroupMember(ctx, m.GroupID, user)
		if err != nil {
			return "", "", err
		}
		if !ok {
			return "", "", errs.ErrRecordNotFound.WrapMsg("message not found", "id", req.MessageID)
		}
		return m.Message, m.Type, nil
	default:
		return "", "", errs.ErrArgs.WrapMsg("unknown message type", "type", req.MessageType)
	}
}

// InitialContacts is the chat list a client loads after login.
type InitialContacts struct {
	Users       []model.Contact `json:"users"`
	OnlineUsers []chat.UserID   `json:"onlineUsers"`
}

// InitialContacts moves what user received while offline from sent to
// delivered, then lists their contacts and who is online.
func (s *MessageService) InitialContacts(ctx context.Context, user int64) (*InitialContacts, error) {
	n, err := s.store.MarkDelivered(ctx, user)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		logger.Debug("[message] caught up deliveries", zap.Int64("user", user), zap.Int64("count", n))
	}
	contacts, err := s.store.Contacts(ctx, user)
	if err != nil {
		return nil, err
	}
	return &InitialContacts{
		Users:       lo.Ternary(contacts == nil, []model.Contact{}, contacts),
		OnlineUsers: s.OnlineUsers(),
	}, nil
}

// OnlineUsers is the ascending snapshot of users with a live connection.
func (s *MessageService) OnlineUsers() []chat.UserID {
	return s.notify.OnlineUserIDs()
}
