package middleware

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"task-api/pkg/logger"
)

// ErrorHandler logs every request and turns a panic into a generic 500.
func ErrorHandler(log *logger.Loggers) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				log.Error.Error(fmt.Sprintf("Recovered from panic: %v", r), zap.String("stack", string(debug.Stack())))
				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"status":  fiber.StatusInternalServerError,
					"message": "Internal server error",
				})
			}
		}()

		err = c.Next()
		// *fiber.Error (unknown route, limiter) gets its status written before logging
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		// Logging request masuk
		log.Request.Info("Incoming request",
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}
