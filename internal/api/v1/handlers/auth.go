package handlers

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"task-api/internal/models"
	"task-api/internal/repository"
	"task-api/pkg/crypto"
	"task-api/pkg/logger"
)

type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

type AuthHandler struct {
	users    UserFinder
	tokens   TokenIssuer
	validate *validator.Validate
	log      *logger.Loggers
}

func NewAuthHandler(users UserFinder, tokens TokenIssuer, validate *validator.Validate, log *logger.Loggers) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, validate: validate, log: log}
}

// struct LoginRequest menerima inputan dari user
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func loginResponse(c *fiber.Ctx, status int, message, token string) error {
	return c.Status(status).JSON(models.LoginResponse{Status: status, Message: message, Token: token})
}

// Login checks the credentials and answers with a signed bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.Audit.Warn("Bad request in login", zap.Error(err))
		return loginResponse(c, fiber.StatusBadRequest, msgInvalidRequest, "")
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Audit.Warn("Validation error during login", zap.Error(err))
		return loginResponse(c, fiber.StatusBadRequest, msgInvalidRequest, "")
	}

	user, err := h.users.GetByUsername(c.UserContext(), req.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		h.log.Security.Warn("User not found", zap.String("username", req.Username))
		return loginResponse(c, fiber.StatusNotFound, "User does not exist.", "")
	}
	if err != nil {
		h.log.Error.Error("Error fetching user", zap.Error(err))
		return loginResponse(c, fiber.StatusInternalServerError, msgInternalError, "")
	}

	if !crypto.CheckPassword(user.Password, req.Password) {
		h.log.Security.Warn("Invalid password", zap.String("username", req.Username))
		return loginResponse(c, fiber.StatusUnauthorized, "User credentials are invalid.", "")
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error.Error("Error generating token", zap.Error(err))
		return loginResponse(c, fiber.StatusInternalServerError, msgInternalError, "")
	}

	h.log.Audit.Info("Login success", zap.Int64("user_id", user.ID))
	return loginResponse(c, fiber.StatusOK, "User was successfully logged in.", token)
}
