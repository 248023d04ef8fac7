package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// RequestLogger logs every request except health checks once the handler
// has produced a status.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Path()
		if path != "/health" {
			log.Infow("request",
				"method", c.Method(),
				"path", path,
				"status", c.Response().StatusCode(),
				"duration", time.Since(start),
			)
		}
		return err
	}
}

// Recover turns a handler panic into a 500 and logs the panic value.
func Recover(log *zap.SugaredLogger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Errorw("handler panicked", "method", c.Method(), "path", c.Path(), "panic", e)
		},
	})
}
