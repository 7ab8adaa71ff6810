package service

import (
	"context"
	"testing"

	"ChatProject/mocks"
	"ChatProject/module/chat/model"
	"ChatProject/service/chat"
	"ChatProject/tools/errs"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newGroupService(t *testing.T) (*GroupService, *mocks.MockStore, *mocks.MockNotifier) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	n := mocks.NewMockNotifier(ctrl)
	return NewGroupService(st, n), st, n
}

func TestGroupService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should include the admin once and notify the admin", func(t *testing.T) {
		req := require.New(t)
		svc, st, n := newGroupService(t)

		// Given members that repeat the admin
		st.EXPECT().ExistingUserIDs(ctx, []int64{1, 2, 3}).Return([]int64{1, 2, 3}, nil)
		st.EXPECT().CreateGroup(ctx, gomock.Any(), []int64{1, 2, 3}).DoAndReturn(
			func(_ context.Context, g *model.Group, members []int64) error {
				g.ID = 40
				g.Members = members
				return nil
			})
		n.EXPECT().GroupCreated(chat.UserID(1), gomock.Any()).Return(1)

		// When the admin creates the group
		g, err := svc.Create(ctx, 1, CreateGroupRequest{Name: " team ", About: "", Members: []int64{2, 1, 3, 2}})

		// Then the group is stored with a trimmed name and no about
		req.NoError(err)
		req.Equal(int64(40), g.ID)
		req.Equal("team", g.Name)
		req.Nil(g.About)
		req.Equal(int64(1), g.AdminID)
	})

	t.Run("should reject unknown members", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		st.EXPECT().ExistingUserIDs(ctx, []int64{1, 9}).Return([]int64{1}, nil)
		st.EXPECT().CreateGroup(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Create(ctx, 1, CreateGroupRequest{Name: "team", Members: []int64{9}})

		req.ErrorIs(err, errs.ErrArgs)
		req.Contains(err.Error(), "users not found")
	})
}

func TestGroupService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("should fan a member's message out to the members", func(t *testing.T) {
		req := require.New(t)
		svc, st, n := newGroupService(t)

		st.EXPECT().IsGroupMember(ctx, int64(40), int64(1)).Return(true, nil)
		st.EXPECT().CreateGroupMessage(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, m *model.GroupMessage) error {
			m.ID = 7
			return nil
		})
		st.EXPECT().GroupMemberIDs(ctx, int64(40)).Return([]int64{1, 2, 3}, nil)
		n.EXPECT().GroupMessage(int64(40), []chat.UserID{1, 2, 3}, gomock.Any()).Return(3)

		m, err := svc.Send(ctx, 40, 1, "hello", "")

		req.NoError(err)
		req.Equal(int64(7), m.ID)
		req.Equal(model.TypeText, m.Type)
	})

	t.Run("should forbid a non member", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		st.EXPECT().IsGroupMember(ctx, int64(40), int64(5)).Return(false, nil)
		st.EXPECT().CreateGroupMessage(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Send(ctx, 40, 5, "hello", "")

		req.ErrorIs(err, errs.ErrForbidden)
	})

	t.Run("should keep the message when the member lookup fails", func(t *testing.T) {
		req := require.New(t)
		svc, st, n := newGroupService(t)

		st.EXPECT().IsGroupMember(ctx, int64(40), int64(1)).Return(true, nil)
		st.EXPECT().CreateGroupMessage(ctx, gomock.Any()).Return(nil)
		st.EXPECT().GroupMemberIDs(ctx, int64(40)).Return(nil, errs.ErrInternal.Wrap())
		n.EXPECT().GroupMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Send(ctx, 40, 1, "hello", "")

		req.NoError(err)
	})
}

func TestGroupService_DeleteForEveryone(t *testing.T) {
	ctx := context.Background()

	t.Run("should delete and tell every member", func(t *testing.T) {
		req := require.New(t)
		svc, st, n := newGroupService(t)

		st.EXPECT().GetGroupMessage(ctx, int64(7)).Return(&model.GroupMessage{ID: 7, GroupID: 40, SenderID: 1}, nil)
		st.EXPECT().DeleteGroupMessage(ctx, int64(7)).Return(nil)
		st.EXPECT().GroupMemberIDs(ctx, int64(40)).Return([]int64{1, 2}, nil)
		n.EXPECT().GroupMessageDeleted(int64(40), int64(7), []chat.UserID{1, 2}).Return(2)

		req.NoError(svc.DeleteForEveryone(ctx, 40, 7, 1))
	})

	t.Run("should refuse a message from another group", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		st.EXPECT().GetGroupMessage(ctx, int64(7)).Return(&model.GroupMessage{ID: 7, GroupID: 41, SenderID: 1}, nil)

		req.ErrorIs(svc.DeleteForEveryone(ctx, 40, 7, 1), errs.ErrRecordNotFound)
	})

	t.Run("should forbid anyone but the sender", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		st.EXPECT().GetGroupMessage(ctx, int64(7)).Return(&model.GroupMessage{ID: 7, GroupID: 40, SenderID: 1}, nil)
		st.EXPECT().DeleteGroupMessage(gomock.Any(), gomock.Any()).Times(0)

		req.ErrorIs(svc.DeleteForEveryone(ctx, 40, 7, 2), errs.ErrForbidden)
	})
}

func TestGroupService_RemoveMember(t *testing.T) {
	ctx := context.Background()
	group := &model.Group{ID: 40, Name: "team", AdminID: 1}

	t.Run("should remove and tell the removed user", func(t *testing.T) {
		req := require.New(t)
		svc, st, n := newGroupService(t)

		st.EXPECT().GetGroup(ctx, int64(40)).Return(group, nil)
		st.EXPECT().RemoveGroupMember(ctx, int64(40), int64(2)).Return(true, nil)
		n.EXPECT().RemovedFromGroup(chat.UserID(2), int64(40), "team").Return(1)

		req.NoError(svc.RemoveMember(ctx, 40, 1, 2))
	})

	t.Run("should only let the admin remove", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		st.EXPECT().GetGroup(ctx, int64(40)).Return(group, nil)

		req.ErrorIs(svc.RemoveMember(ctx, 40, 2, 3), errs.ErrForbidden)
	})

	t.Run("should never remove the admin", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		st.EXPECT().GetGroup(ctx, int64(40)).Return(group, nil)
		st.EXPECT().RemoveGroupMember(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req.ErrorIs(svc.RemoveMember(ctx, 40, 1, 1), errs.ErrArgs)
	})

	t.Run("should reject a user who is not a member", func(t *testing.T) {
		req := require.New(t)
		svc, st, n := newGroupService(t)

		st.EXPECT().GetGroup(ctx, int64(40)).Return(group, nil)
		st.EXPECT().RemoveGroupMember(ctx, int64(40), int64(8)).Return(false, nil)
		n.EXPECT().RemovedFromGroup(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req.ErrorIs(svc.RemoveMember(ctx, 40, 1, 8), errs.ErrArgs)
	})
}

func TestGroupService_AddMembers(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	svc, st, _ := newGroupService(t)

	// Given user 9 does not exist and user 2 is already a member
	st.EXPECT().GetGroup(ctx, int64(40)).Return(&model.Group{ID: 40, AdminID: 1}, nil)
	st.EXPECT().ExistingUserIDs(ctx, []int64{2, 3, 9}).Return([]int64{2, 3}, nil)
	st.EXPECT().AddGroupMember(ctx, int64(40), int64(2)).Return(false, nil)
	st.EXPECT().AddGroupMember(ctx, int64(40), int64(3)).Return(true, nil)

	// When the admin adds them
	added, err := svc.AddMembers(ctx, 40, 1, []int64{2, 3, 9, 3})

	// Then only the new user is reported
	req.NoError(err)
	req.Equal([]int64{3}, added)
}

func TestGroupService_MarkRead(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	svc, st, _ := newGroupService(t)

	st.EXPECT().IsGroupMember(ctx, int64(40), int64(2)).Return(true, nil)
	st.EXPECT().MarkGroupRead(ctx, int64(40), int64(2)).Return(int64(4), nil)

	n, err := svc.MarkRead(ctx, 40, 2)

	req.NoError(err)
	req.Equal(int64(4), n)
}

func TestGroupService_GroupMemberIDs(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	svc, st, _ := newGroupService(t)

	st.EXPECT().GroupMemberIDs(ctx, int64(40)).Return([]int64{1, 2}, nil)

	var resolver chat.MembershipResolver = svc
	ids, err := resolver.GroupMemberIDs(ctx, 40)

	req.NoError(err)
	req.Equal([]chat.UserID{1, 2}, ids)
}

func TestGroupService_DeleteForMe(t *testing.T) {
	ctx := context.Background()

	t.Run("should hide the message for the member", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		st.EXPECT().IsGroupMember(ctx, int64(4), int64(1)).Return(true, nil)
		st.EXPECT().GetGroupMessage(ctx, int64(9)).Return(&model.GroupMessage{ID: 9, GroupID: 4, SenderID: 2}, nil)
		st.EXPECT().HideGroupMessage(ctx, int64(9), int64(1)).Return(true, nil)

		hidden, err := svc.DeleteForMe(ctx, 4, 9, 1)

		req.NoError(err)
		req.True(hidden)
	})

	t.Run("should refuse a non member", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		st.EXPECT().IsGroupMember(ctx, int64(4), int64(1)).Return(false, nil)
		st.EXPECT().HideGroupMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.DeleteForMe(ctx, 4, 9, 1)

		req.ErrorIs(err, errs.ErrForbidden)
	})

	t.Run("should not reach into another group", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		// Given a message that belongs to group 5
		st.EXPECT().IsGroupMember(ctx, int64(4), int64(1)).Return(true, nil)
		st.EXPECT().GetGroupMessage(ctx, int64(9)).Return(&model.GroupMessage{ID: 9, GroupID: 5}, nil)
		st.EXPECT().HideGroupMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		// When it is addressed through group 4
		_, err := svc.DeleteForMe(ctx, 4, 9, 1)

		// Then it is not found
		req.ErrorIs(err, errs.ErrRecordNotFound)
	})
}

func TestGroupService_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("should clear the group for a member", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		st.EXPECT().IsGroupMember(ctx, int64(4), int64(1)).Return(true, nil)
		st.EXPECT().ClearGroupMessages(ctx, int64(4), int64(1)).Return(int64(3), nil)

		n, err := svc.Clear(ctx, 4, 1)

		req.NoError(err)
		req.Equal(int64(3), n)
	})

	t.Run("should refuse a non member", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newGroupService(t)

		st.EXPECT().IsGroupMember(ctx, int64(4), int64(1)).Return(false, nil)
		st.EXPECT().ClearGroupMessages(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Clear(ctx, 4, 1)

		req.ErrorIs(err, errs.ErrForbidden)
	})
}
