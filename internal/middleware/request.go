package middleware

import (
	"github.com/Avinash-006/UniChat/internal/services"
	"github.com/Avinash-006/UniChat/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	requestIDKey    = "requestID"
	actorKey        = "actor"
	RequestIDHeader = "X-Request-ID"
)

func CORS(allowedOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + RequestIDHeader,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	})
}

// RequestContext assigns every request an id and exposes it, together with
// the client address, to the services through the request's user context.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > 36 {
			requestID = logger.GenerateRequestID()
		}
		c.Locals(requestIDKey, requestID)
		c.Set(RequestIDHeader, requestID)

		c.SetUserContext(services.WithRequestMeta(c.UserContext(), services.RequestMeta{
			IPAddress: c.IP(),
			RequestID: requestID,
		}))
		return c.Next()
	}
}

func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// SetActor records the username a request acts on behalf of so request logs
// can attribute it.
func SetActor(c *fiber.Ctx, username string) {
	if username != "" {
		c.Locals(actorKey, username)
	}
}
