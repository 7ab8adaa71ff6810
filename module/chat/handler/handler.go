package handler

import (
	"net/http"
	"strconv"

	"ChatProject/middleware"
	"ChatProject/middleware/security"
	"ChatProject/module/chat/service"
	"ChatProject/tools/decode"
	"ChatProject/tools/errs"

	"github.com/gin-gonic/gin"
)

// Handler exposes the message and group services under /message and /group.
type Handler struct {
	Messages *service.MessageService
	Groups   *service.GroupService
}

func New(m *service.MessageService, g *service.GroupService) *Handler {
	return &Handler{Messages: m, Groups: g}
}

// Register mounts every route on r behind auth.
func (h *Handler) Register(r gin.IRouter, auth gin.HandlerFunc) {
	opt := middleware.RouteOpt{Auth: auth}

	msg := r.Group("/message")
	middleware.POST(msg, "/addMessages", h.addMessage, opt)
	middleware.GET(msg, "/getMessages/:to", h.getMessages, opt)
	middleware.GET(msg, "/onlineUsers", h.onlineUsers, opt)
	middleware.GET(msg, "/getInitialContacts", h.initialContacts, opt)
	middleware.POST(msg, "/forward", h.forward, opt)
	middleware.DELETE(msg, "/clear/:peer", h.clearChat, opt)
	middleware.DELETE(msg, "/deleteForMe/:messageId", h.deleteForMe, opt)
	middleware.DELETE(msg, "/deleteForEveryone/:messageId", h.deleteForEveryone, opt)

	grp := r.Group("/group")
	middleware.GET(grp, "/unread", h.listGroups, opt)
	middleware.POST(grp, "/create", h.createGroup, opt)
	middleware.GET(grp, "/groupMember/:groupId", h.groupMembers, opt)
	middleware.GET(grp, "/:groupId/messages", h.groupMessages, opt)
	middleware.POST(grp, "/:groupId/messages", h.sendGroupMessage, opt)
	middleware.POST(grp, "/:groupId/mark-as-read", h.markGroupRead, opt)
	middleware.POST(grp, "/:groupId/add", h.addMembers, opt)
	middleware.DELETE(grp, "/:groupId/remove", h.removeMember, opt)
	middleware.DELETE(grp, "/:groupId/messages/clear", h.clearGroupChat, opt)
	middleware.DELETE(grp, "/:groupId/message/:messageId/delete-for-me", h.deleteGroupMessageForMe, opt)
	middleware.DELETE(grp, "/:groupId/message/:messageId/delete-for-everyone", h.deleteGroupMessage, opt)
}

// bind decodes the JSON body with weak typing so "7" and 7 both fill an id.
func bind[T any](c *gin.Context) (*T, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		middleware.Fail(c, errs.ErrArgs.WrapMsg("read body", "err", err))
		return nil, false
	}
	v, err := decode.DecodeJSON[T](raw)
	if err != nil {
		middleware.Fail(c, err)
		return nil, false
	}
	return v, true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.Fail(c, errs.ErrArgs.WrapMsg("invalid path parameter", name, c.Param(name)))
		return 0, false
	}
	return id, true
}

func currentUser(c *gin.Context) (int64, bool) {
	uid, ok := security.UserID(c)
	if !ok {
		middleware.Fail(c, errs.ErrUnauthorized.WrapMsg("please login"))
	}
	return uid, ok
}

type addMessageReq struct {
	To      int64  `json:"to" validate:"required"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type"`
}

func (h *Handler) addMessage(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := bind[addMessageReq](c)
	if !ok {
		return
	}
	m, err := h.Messages.Send(c.Request.Context(), uid, req.To, req.Message, req.Type)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, m, "Message sent")
}

func (h *Handler) getMessages(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	peer, ok := pathID(c, "to")
	if !ok {
		return
	}
	msgs, err := h.Messages.Conversation(c.Request.Context(), uid, peer)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, msgs, "")
}

func (h *Handler) onlineUsers(c *gin.Context) {
	middleware.OK(c, http.StatusOK, gin.H{"onlineUsers": h.Messages.OnlineUsers()}, "")
}

func (h *Handler) initialContacts(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	res, err := h.Messages.InitialContacts(c.Request.Context(), uid)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, res, "Initial data")
}

func (h *Handler) forward(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := bind[service.ForwardRequest](c)
	if !ok {
		return
	}
	res, err := h.Messages.Forward(c.Request.Context(), uid, *req)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, res, "Message forwarded")
}

func (h *Handler) clearChat(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	peer, ok := pathID(c, "peer")
	if !ok {
		return
	}
	n, err := h.Messages.Clear(c.Request.Context(), uid, peer)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, gin.H{"cleared": n}, "Chat cleared successfully.")
}

func (h *Handler) deleteForMe(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	hidden, err := h.Messages.DeleteForMe(c.Request.Context(), uid, id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if !hidden {
		middleware.OK(c, http.StatusOK, nil, "Message already deleted for you.")
		return
	}
	middleware.OK(c, http.StatusOK, nil, "Message deleted for you successfully.")
}

func (h *Handler) deleteForEveryone(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	if err := h.Messages.DeleteForEveryone(c.Request.Context(), uid, id); err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, nil, "Message deleted for everyone.")
}

func (h *Handler) listGroups(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	groups, err := h.Groups.List(c.Request.Context(), uid)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, groups, "Groups with unread counts")
}

func (h *Handler) createGroup(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := bind[service.CreateGroupRequest](c)
	if !ok {
		return
	}
	g, err := h.Groups.Create(c.Request.Context(), uid, *req)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusCreated, g, "Group created successfully.")
}

func (h *Handler) groupMembers(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	gid, ok := pathID(c, "groupId")
	if !ok {
		return
	}
	members, err := h.Groups.Members(c.Request.Context(), gid, uid)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, members, "Group members fetched successfully.")
}

func (h *Handler) groupMessages(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	gid, ok := pathID(c, "groupId")
	if !ok {
		return
	}
	msgs, err := h.Groups.Messages(c.Request.Context(), gid, uid)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, gin.H{"messages": msgs}, "Group messages fetched successfully.")
}

type groupMessageReq struct {
	Message string `json:"message" validate:"required"`
	Type    string `json:"type"`
}

func (h *Handler) sendGroupMessage(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	gid, ok := pathID(c, "groupId")
	if !ok {
		return
	}
	req, ok := bind[groupMessageReq](c)
	if !ok {
		return
	}
	m, err := h.Groups.Send(c.Request.Context(), gid, uid, req.Message, req.Type)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, m, "Message sent successfully.")
}

func (h *Handler) markGroupRead(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	gid, ok := pathID(c, "groupId")
	if !ok {
		return
	}
	n, err := h.Groups.MarkRead(c.Request.Context(), gid, uid)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, gin.H{"markedAsRead": n}, "Messages marked as read")
}

type addMembersReq struct {
	UserIDs []int64 `json:"userIds" validate:"required,min=1"`
}

func (h *Handler) addMembers(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	gid, ok := pathID(c, "groupId")
	if !ok {
		return
	}
	req, ok := bind[addMembersReq](c)
	if !ok {
		return
	}
	added, err := h.Groups.AddMembers(c.Request.Context(), gid, uid, req.UserIDs)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, gin.H{"addedUsers": added},
		strconv.Itoa(len(added))+" users added to the group.")
}

type removeMemberReq struct {
	UserID int64 `json:"userId" validate:"required"`
}

func (h *Handler) removeMember(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	gid, ok := pathID(c, "groupId")
	if !ok {
		return
	}
	req, ok := bind[removeMemberReq](c)
	if !ok {
		return
	}
	if err := h.Groups.RemoveMember(c.Request.Context(), gid, uid, req.UserID); err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, nil, "Member removed successfully.")
}

func (h *Handler) deleteGroupMessage(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	gid, ok := pathID(c, "groupId")
	if !ok {
		return
	}
	mid, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	if err := h.Groups.DeleteForEveryone(c.Request.Context(), gid, mid, uid); err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, nil, "Message deleted for everyone.")
}

func (h *Handler) clearGroupChat(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	gid, ok := pathID(c, "groupId")
	if !ok {
		return
	}
	n, err := h.Groups.Clear(c.Request.Context(), gid, uid)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	middleware.OK(c, http.StatusOK, gin.H{"cleared": n}, "Group chat cleared successfully.")
}

func (h *Handler) deleteGroupMessageForMe(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	gid, ok := pathID(c, "groupId")
	if !ok {
		return
	}
	mid, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	hidden, err := h.Groups.DeleteForMe(c.Request.Context(), gid, mid, uid)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if !hidden {
		middleware.OK(c, http.StatusOK, nil, "Message already deleted from group.")
		return
	}
	middleware.OK(c, http.StatusOK, nil, "Message deleted from group.")
}
