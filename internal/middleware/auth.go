package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"task-api/internal/auth"
	"task-api/internal/models"
	"task-api/pkg/logger"
)

const (
	msgTokenRequired = "A token is required."
	msgInvalidToken  = "Invalid token was provided."
	msgInternalError = "Internal server error"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireToken admits a request only with a valid "Authorization: Bearer <token>"
// header. The verified claims are attached to c.UserContext().
func RequireToken(tokens TokenVerifier, log *logger.Loggers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return reject(c, msgTokenRequired)
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return reject(c, msgTokenRequired)
		}

		claims, err := tokens.Verify(parts[1])
		if errors.Is(err, auth.ErrMissingSecret) {
			log.Error.Error("Token verification is not configured", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.NewTaskResponse(fiber.StatusInternalServerError, msgInternalError))
		}
		if err != nil {
			log.Security.Warn("Rejected bearer token",
				zap.String("ip", c.IP()),
				zap.String("url", c.OriginalURL()),
				zap.Error(err),
			)
			return reject(c, msgInvalidToken)
		}

		c.SetUserContext(auth.WithClaims(c.UserContext(), claims))
		return c.Next()
	}
}

func reject(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.NewTaskResponse(fiber.StatusUnauthorized, message))
}
