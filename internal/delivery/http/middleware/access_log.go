package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware tags every request with an X-Request-ID (honoring one sent by
// the client) and writes a single access line after the handler runs.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		if m != nil && m.logger != nil {
			m.logger.Printf(
				"access | rid=%s ip=%s method=%s path=%s status=%d latency=%s bytes=%d",
				rid,
				c.IP(),
				c.Method(),
				c.OriginalURL(),
				c.Response().StatusCode(),
				time.Since(start).Round(time.Microsecond),
				c.Response().Header.ContentLength(),
			)
		}

		return err
	}
}
