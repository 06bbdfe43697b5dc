package handlers

import (
	"strconv"
	"strings"

	"github.com/Avinash-006/UniChat/internal/middleware"
	"github.com/Avinash-006/UniChat/internal/services"
	"github.com/Avinash-006/UniChat/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type UsersHandler struct {
	Users *services.UserService
}

func NewUsersHandler(users *services.UserService) *UsersHandler {
	return &UsersHandler{Users: users}
}

type userRequest struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UsersHandler) Add(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return utils.Error(c, fiber.StatusBadRequest, "username, email and password are required")
	}

	user, err := h.Users.Register(c.UserContext(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, "user_register_failed", err)
	}
	middleware.SetActor(c, user.Username)

	return utils.Success(c, fiber.StatusCreated, user)
}

func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.ID == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "id is required")
	}

	updated, err := h.Users.Update(c.UserContext(), services.UpdateInput{
		ID:       req.ID,
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, "user_update_failed", err)
	}

	return utils.Success(c, fiber.StatusOK, newOutcome(updated, "User updated successfully", "Cannot update user"))
}

func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	deleted, err := h.Users.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, "user_delete_failed", err)
	}

	return utils.Success(c, fiber.StatusOK, newOutcome(deleted, "User deleted successfully", "Cannot delete user"))
}

func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, "user_list_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, users)
}

func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.Users.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, "user_get_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}

func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.Users.Login(c.UserContext(), services.Credentials{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, "user_login_failed", err)
	}
	middleware.SetActor(c, user.Username)

	return utils.Success(c, fiber.StatusOK, user)
}

func (h *UsersHandler) SetFavourite(c *fiber.Ctx) error {
	fileID, err := parseID(c.Params("fileId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}
	favourite, err := strconv.ParseBool(c.Params("isFavourite"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "isFavourite must be true or false")
	}

	updated, err := h.Users.SetFavourite(c.UserContext(), fileID, favourite)
	if err != nil {
		return respondError(c, "file_favourite_failed", err)
	}

	return utils.Success(c, fiber.StatusOK, newOutcome(updated, "Favourite status updated", "Cannot update favourite status"))
}

func (h *UsersHandler) ListFavourites(c *fiber.Ctx) error {
	username := c.Params("username")
	middleware.SetActor(c, username)

	files, err := h.Users.ListFavourites(c.UserContext(), username)
	if err != nil {
		return respondError(c, "file_favourites_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, files)
}
