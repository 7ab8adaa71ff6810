package handlers

import (
	"ChatProject/logger"
	"ChatProject/service/chat"
	"ChatProject/tools/decode"
	"ChatProject/tools/errs"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Relay event names accepted from clients.
const (
	EventSendMsg                   = "send-msg"
	EventDeleteMsgForEveryone      = "delete-msg-for-everyone"
	EventDeleteGroupMsgForEveryone = "delete-group-msg-for-everyone"
	EventLogout                    = "logout"
)

// RegisterDefaults installs the relay handlers on d.
func RegisterDefaults(d *chat.Dispatcher) {
	d.Register(SendMsgHandler{})
	d.Register(DeleteMsgHandler{})
	d.Register(DeleteGroupMsgHandler{})
	d.Register(LogoutHandler{})
}

type SendMsgPayload struct {
	To      chat.UserID `json:"to" validate:"required"`
	From    chat.UserID `json:"from"`
	Message any         `json:"message"`
}

// SendMsgHandler relays send-msg to the recipient as msg-receive. The sender
// is always the authenticated user of the session.
type SendMsgHandler struct{}

func (SendMsgHandler) Event() string { return EventSendMsg }

func (SendMsgHandler) Handle(ctx *chat.Context, f *chat.Frame) error {
	p, err := decode.DecodeJSON[SendMsgPayload](f.Data)
	if err != nil {
		return err
	}
	from := ctx.Client.UserID
	if p.From != 0 && p.From != from {
		logger.Debug("[relay] send-msg from mismatch, using session user",
			zap.Stringer("declared", p.From), zap.Stringer("session", from))
	}
	ctx.S.Router().Deliver(chat.MessageReceive{From: from, Message: p.Message}, p.To)
	return nil
}

type DeleteMsgPayload struct {
	MessageID int64       `json:"messageId" validate:"required"`
	To        chat.UserID `json:"to" validate:"required"`
}

// DeleteMsgHandler relays delete-msg-for-everyone to the recipient as msg-deleted.
type DeleteMsgHandler struct{}

func (DeleteMsgHandler) Event() string { return EventDeleteMsgForEveryone }

func (DeleteMsgHandler) Handle(ctx *chat.Context, f *chat.Frame) error {
	p, err := decode.DecodeJSON[DeleteMsgPayload](f.Data)
	if err != nil {
		return err
	}
	ctx.S.Router().Deliver(chat.MessageDeleted{MessageID: p.MessageID}, p.To)
	return nil
}

type DeleteGroupMsgPayload struct {
	GroupID   int64 `json:"groupId" validate:"required"`
	MessageID int64 `json:"messageId" validate:"required"`
}

// DeleteGroupMsgHandler relays delete-group-msg-for-everyone as
// group-msg-deleted. With a membership resolver only the members hear it,
// otherwise every connection does.
type DeleteGroupMsgHandler struct{}

func (DeleteGroupMsgHandler) Event() string { return EventDeleteGroupMsgForEveryone }

func (DeleteGroupMsgHandler) Handle(ctx *chat.Context, f *chat.Frame) error {
	p, err := decode.DecodeJSON[DeleteGroupMsgPayload](f.Data)
	if err != nil {
		return err
	}
	ev := chat.GroupMessageDeleted{GroupID: p.GroupID, MessageID: p.MessageID}

	members := ctx.S.Members()
	if members == nil {
		ctx.S.Router().Broadcast(ev)
		return nil
	}
	ids, err := members.GroupMemberIDs(ctx, p.GroupID)
	if err != nil {
		return errs.ErrInternal.WrapMsg("resolve group members", "groupId", p.GroupID, "err", err)
	}
	if ctx.S.VerifyMembership() && !lo.Contains(ids, ctx.Client.UserID) {
		return errs.ErrForbidden.WrapMsg("not a member of this group", "groupId", p.GroupID)
	}
	ctx.S.Router().Deliver(ev, lo.Uniq(ids)...)
	return nil
}

// LogoutHandler ends the session on request.
type LogoutHandler struct{}

func (LogoutHandler) Event() string { return EventLogout }

func (LogoutHandler) Handle(*chat.Context, *chat.Frame) error { return chat.ErrSessionClosed }
