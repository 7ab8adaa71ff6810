package service

import (
	"context"
	"strings"

	"ChatProject/logger"
	"ChatProject/module/chat/model"
	"ChatProject/module/chat/store"
	"ChatProject/service/chat"
	"ChatProject/tools/errs"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// GroupService owns groups, their membership and group messages.
type GroupService struct {
	store  store.Store
	notify Notifier
}

func NewGroupService(s store.Store, n Notifier) *GroupService {
	return &GroupService{store: s, notify: n}
}

var _ chat.MembershipResolver = (*GroupService)(nil)

// GroupMemberIDs lets the realtime relay resolve group audiences from the store.
func (s *GroupService) GroupMemberIDs(ctx context.Context, groupID int64) ([]chat.UserID, error) {
	ids, err := s.store.GroupMemberIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return userIDs(ids), nil
}

type CreateGroupRequest struct {
	Name    string  `json:"name" validate:"required,min=3"`
	About   string  `json:"about" validate:"max=50"`
	Avatar  string  `json:"avatar"`
	Members []int64 `json:"members"`
}

// Create makes admin the owner of a new group. The admin is always a member
// and every other member must be an existing user.
func (s *GroupService) Create(ctx context.Context, admin int64, req CreateGroupRequest) (*model.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.ErrArgs.WrapMsg("group name is required")
	}
	members := lo.Uniq(append([]int64{admin}, req.Members...))
	existing, err := s.store.ExistingUserIDs(ctx, members)
	if err != nil {
		return nil, err
	}
	if missing := lo.Without(members, existing...); len(missing) > 0 {
		return nil, errs.ErrArgs.WrapMsg("users not found", "ids", missing)
	}

	g := &model.Group{Name: name, Avatar: req.Avatar, AdminID: admin}
	if about := strings.TrimSpace(req.About); about != "" {
		g.About = &about
	}
	if err := s.store.CreateGroup(ctx, g, members); err != nil {
		return nil, err
	}
	s.notify.GroupCreated(chat.UserID(admin), g)
	return g, nil
}

// List returns the groups user belongs to with unread counts.
func (s *GroupService) List(ctx context.Context, user int64) ([]model.GroupSummary, error) {
	return s.store.GroupsOf(ctx, user)
}

func (s *GroupService) Members(ctx context.Context, groupID, user int64) ([]int64, error) {
	if err := s.requireMember(ctx, groupID, user); err != nil {
		return nil, err
	}
	return s.store.GroupMemberIDs(ctx, groupID)
}

// Send posts a message from a member and fans it out to the members.
func (s *GroupService) Send(ctx context.Context, groupID, sender int64, text, typ string) (*model.GroupMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errs.ErrArgs.WrapMsg("message is required")
	}
	if err := s.requireMember(ctx, groupID, sender); err != nil {
		return nil, err
	}
	m := &model.GroupMessage{GroupID: groupID, SenderID: sender, Type: model.NormType(typ), Message: text}
	if err := s.store.CreateGroupMessage(ctx, m); err != nil {
		return nil, err
	}
	s.fanout(ctx, groupID, func(members []chat.UserID) {
		s.notify.GroupMessage(groupID, members, m)
	})
	return m, nil
}

func (s *GroupService) Messages(ctx context.Context, groupID, user int64) ([]model.GroupMessage, error) {
	if err := s.requireMember(ctx, groupID, user); err != nil {
		return nil, err
	}
	return s.store.GroupMessages(ctx, groupID, user)
}

// DeleteForEveryone deletes a group message its sender owns and tells every member.
func (s *GroupService) DeleteForEveryone(ctx context.Context, groupID, messageID, user int64) error {
	m, err := s.store.GetGroupMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if m.GroupID != groupID {
		return errs.ErrRecordNotFound.WrapMsg("message not found in group", "group", groupID, "id", messageID)
	}
	if m.SenderID != user {
		return errs.ErrForbidden.WrapMsg("only the sender can delete a message for everyone", "id", messageID)
	}
	if err := s.store.DeleteGroupMessage(ctx, messageID); err != nil {
		return err
	}
	s.fanout(ctx, groupID, func(members []chat.UserID) {
		s.notify.GroupMessageDeleted(groupID, messageID, members)
	})
	return nil
}

// DeleteForMe hides one message of the group for user only. It reports
// false when the message was already hidden.
func (s *GroupService) DeleteForMe(ctx context.Context, groupID, messageID, user int64) (bool, error) {
	if err := s.requireMember(ctx, groupID, user); err != nil {
		return false, err
	}
	m, err := s.store.GetGroupMessage(ctx, messageID)
	if err != nil {
		return false, err
	}
	if m.GroupID != groupID {
		return false, errs.ErrRecordNotFound.WrapMsg("message not found in group", "group", groupID, "id", messageID)
	}
	return s.store.HideGroupMessage(ctx, messageID, user)
}

// Clear hides every message of the group for user.
func (s *GroupService) Clear(ctx context.Context, groupID, user int64) (int64, error) {
	if err := s.requireMember(ctx, groupID, user); err != nil {
		return 0, err
	}
	return s.store.ClearGroupMessages(ctx, groupID, user)
}

// RemoveMember lets the admin remove another member, who is then told.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, admin, user int64) error {
	g, err := s.adminGroup(ctx, groupID, admin)
	if err != nil {
		return err
	}
	if user == g.AdminID {
		return errs.ErrArgs.WrapMsg("the admin cannot be removed from the group")
	}
	removed, err := s.store.RemoveGroupMember(ctx, groupID, user)
	if err != nil {
		return err
	}
	if !removed {
		return errs.ErrArgs.WrapMsg("user is not a member of the group", "user", user)
	}
	s.notify.RemovedFromGroup(chat.UserID(user), groupID, g.Name)
	return nil
}

// AddMembers lets the admin add users. Unknown users and current members are
// skipped; the ids actually added are returned.
func (s *GroupService) AddMembers(ctx context.Context, groupID, admin int64, users []int64) ([]int64, error) {
	if len(users) == 0 {
		return nil, errs.ErrArgs.WrapMsg("at least one user is required")
	}
	if _, err := s.adminGroup(ctx, groupID, admin); err != nil {
		return nil, err
	}
	existing, err := s.store.ExistingUserIDs(ctx, lo.Uniq(users))
	if err != nil {
		return nil, err
	}
	added := make([]int64, 0, len(existing))
	for _, id := range existing {
		ok, err := s.store.AddGroupMember(ctx, groupID, id)
		if err != nil {
			return nil, err
		}
		if ok {
			added = append(added, id)
		}
	}
	return added, nil
}

// MarkRead records a read for every group message user has not read yet.
func (s *GroupService) MarkRead(ctx context.Context, groupID, user int64) (int64, error) {
	if err := s.requireMember(ctx, groupID, user); err != nil {
		return 0, err
	}
	return s.store.MarkGroupRead(ctx, groupID, user)
}

func (s *GroupService) requireMember(ctx context.Context, groupID, user int64) error {
	ok, err := s.store.IsGroupMember(ctx, groupID, user)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrForbidden.WrapMsg("not a member of this group", "group", groupID)
	}
	return nil
}

func (s *GroupService) adminGroup(ctx context.Context, groupID, admin int64) (*model.Group, error) {
	g, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g.AdminID != admin {
		return nil, errs.ErrForbidden.WrapMsg("only the group admin can change members", "group", groupID)
	}
	return g, nil
}

// fanout loads the members and hands them to emit. The write already
// succeeded, so a failed lookup is logged rather than returned.
func (s *GroupService) fanout(ctx context.Context, groupID int64, emit func([]chat.UserID)) {
	ids, err := s.store.GroupMemberIDs(ctx, groupID)
	if err != nil {
		logger.Warn("[group] load members for fan-out", zap.Int64("group", groupID), zap.Error(err))
		return
	}
	emit(userIDs(ids))
}
