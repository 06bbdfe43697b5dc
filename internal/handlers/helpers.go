package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Avinash-006/UniChat/internal/services"
	"github.com/Avinash-006/UniChat/pkg/logger"
	"github.com/Avinash-006/UniChat/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func parseID(value string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
}

// respondError maps service errors onto HTTP statuses. Unrecognized errors
// are logged and reported as a generic failure.
func respondError(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrFileNotFound):
		return utils.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.Error(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvalidGroupPassword):
		return utils.Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotGroupMember),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		return utils.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidFileName):
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	logger.Error(action, err, map[string]interface{}{
		"path":   c.Path(),
		"method": c.Method(),
	})
	return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
}

// outcome is the body returned by update and delete style endpoints that
// report "nothing to change" without failing.
type outcome struct {
	Done    bool   `json:"done"`
	Message string `json:"message"`
}

func newOutcome(done bool, success, failure string) outcome {
	if done {
		return outcome{Done: true, Message: success}
	}
	return outcome{Done: false, Message: failure}
}
