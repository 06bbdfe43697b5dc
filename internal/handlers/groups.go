package handlers

import (
	"strings"

	"github.com/Avinash-006/UniChat/internal/middleware"
	"github.com/Avinash-006/UniChat/internal/models"
	"github.com/Avinash-006/UniChat/internal/services"
	"github.com/Avinash-006/UniChat/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type GroupsHandler struct {
	Groups *services.GroupService
}

func NewGroupsHandler(groups *services.GroupService) *GroupsHandler {
	return &GroupsHandler{Groups: groups}
}

type createGroupRequest struct {
	Name            string `json:"name"`
	Password        string `json:"password"`
	CreatorUsername string `json:"creatorUsername"`
}

func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.CreatorUsername) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "creatorUsername is required")
	}
	middleware.SetActor(c, req.CreatorUsername)

	group, err := h.Groups.CreateGroup(c.UserContext(), req.Name, req.Password, req.CreatorUsername)
	if err != nil {
		return respondError(c, "group_create_failed", err)
	}
	return utils.Success(c, fiber.StatusCreated, group)
}

type joinGroupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *GroupsHandler) Join(c *fiber.Ctx) error {
	groupID, err := parseID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req joinGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Username) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "username is required")
	}
	middleware.SetActor(c, req.Username)

	group, err := h.Groups.JoinGroup(c.UserContext(), groupID, req.Password, req.Username)
	if err != nil {
		return respondError(c, "group_join_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, group)
}

type leaveGroupRequest struct {
	Username string `json:"username"`
}

type leaveGroupResponse struct {
	Outcome models.LeaveOutcome `json:"outcome"`
	Message string              `json:"message"`
}

func (h *GroupsHandler) Leave(c *fiber.Ctx) error {
	groupID, err := parseID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req leaveGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	middleware.SetActor(c, req.Username)

	result, err := h.Groups.LeaveGroup(c.UserContext(), groupID, req.Username)
	if err != nil {
		return respondError(c, "group_leave_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, leaveGroupResponse{Outcome: result, Message: result.Message()})
}

func (h *GroupsHandler) ListForUser(c *fiber.Ctx) error {
	username := c.Params("username")
	middleware.SetActor(c, username)

	groups, err := h.Groups.GetUserGroups(c.UserContext(), username)
	if err != nil {
		return respondError(c, "group_list_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, groups)
}

type sendMessageRequest struct {
	SenderUsername string `json:"senderUsername"`
	Content        string `json:"content"`
	Type           string `json:"type"`
}

func (h *GroupsHandler) SendMessage(c *fiber.Ctx) error {
	groupID, err := parseID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	middleware.SetActor(c, req.SenderUsername)

	message, err := h.Groups.SendMessage(c.UserContext(), groupID, req.SenderUsername, req.Content, req.Type)
	if err != nil {
		return respondError(c, "message_send_failed", err)
	}
	return utils.Success(c, fiber.StatusCreated, message)
}

func (h *GroupsHandler) Messages(c *fiber.Ctx) error {
	groupID, err := parseID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	messages, err := h.Groups.GetGroupMessages(c.UserContext(), groupID)
	if err != nil {
		return respondError(c, "message_list_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, messages)
}

func (h *GroupsHandler) SharedFiles(c *fiber.Ctx) error {
	username := c.Params("username")
	middleware.SetActor(c, username)

	files, err := h.Groups.GetSharedFiles(c.UserContext(), username)
	if err != nil {
		return respondError(c, "shared_files_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, files)
}
