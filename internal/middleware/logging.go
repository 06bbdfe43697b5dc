package middleware

import (
	"time"

	"github.com/Avinash-006/UniChat/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		latency := time.Since(start)
		statusCode := c.Response().StatusCode()

		details := map[string]interface{}{
			"method":        c.Method(),
			"path":          c.Path(),
			"status_code":   statusCode,
			"latency_ms":    latency.Milliseconds(),
			"user_agent":    c.Get("User-Agent"),
			"ip":            c.IP(),
			"request_body":  logger.GetRequestBodySummary(c),
			"response_body": logger.GetResponseSizeSummary(c),
			"request_id":    GetRequestID(c),
		}

		if username := logger.GetUserIDFromContext(c); username != nil {
			if statusCode >= 400 {
				logger.ErrorWithUser(*username, "http_request", err, details)
			} else {
				logger.InfoWithUser(*username, "http_request", details)
			}
		} else {
			if statusCode >= 400 {
				logger.Error("http_request", err, details)
			} else {
				logger.Info("http_request", details)
			}
		}

		return err
	}
}

// SecurityLogger records refused credentials and probes for missing
// resources.
func SecurityLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		var reason string
		switch c.Response().StatusCode() {
		case fiber.StatusUnauthorized:
			reason = "invalid_credentials"
		case fiber.StatusForbidden:
			reason = "access_denied"
		case fiber.StatusNotFound:
			reason = "not_found"
		default:
			return err
		}

		username := logger.GetUserIDFromContext(c)
		details := map[string]interface{}{
			"method":     c.Method(),
			"path":       c.Path(),
			"ip":         c.IP(),
			"user_id":    username,
			"reason":     reason,
			"request_id": GetRequestID(c),
		}

		if username != nil {
			logger.WarnWithUser(*username, reason, details)
		} else {
			logger.Warn(reason+"_anonymous", details)
		}

		return err
	}
}
