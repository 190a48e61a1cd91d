package middleware

import (
	"time"

	"learnpath/internal/logging"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger logging.Logger
}

func NewAccessLogMiddleware(logger logging.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = logging.Nop()
	}
	return &AccessLogMiddleware{logger: logger.With("component", "access")}
}

// Middleware tags the request with an id and logs one line once it is done.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		m.logger.Info(c.Context(), "http request",
			"request_id", rid,
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start).String(),
			"ip", c.IP(),
			"user_agent", c.Get("User-Agent"),
		)

		return err
	}
}
