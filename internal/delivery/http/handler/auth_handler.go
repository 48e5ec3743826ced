package handler

import (
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/jwt"
	"skill-matrix/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler exchanges the shared operator key for a bearer token. The key
// itself never leaves config; only its bcrypt hash is compared.
type AuthHandler struct {
	jwt             jwt.Service
	operatorKeyHash string
}

type tokenRequest struct {
	OperatorKey string `json:"operator_key"`
}

func NewAuthHandler(jwtSvc jwt.Service, operatorKeyHash string) *AuthHandler {
	return &AuthHandler{jwt: jwtSvc, operatorKeyHash: operatorKeyHash}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/token", h.Token)
}

func (h *AuthHandler) Token(c fiber.Ctx) error {
	if h.jwt == nil || h.operatorKeyHash == "" {
		return middleware.NewAppError(fiber.StatusNotFound, "Auth disabled", nil, nil)
	}

	var req tokenRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.operatorKeyHash), []byte(req.OperatorKey)); err != nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid operator key", nil, err)
	}

	token, err := h.jwt.GenerateToken("operator")
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
	})
}
