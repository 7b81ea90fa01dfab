package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/middleware"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register creates a new user and returns a bearer token.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Registration payload"
// @Success 201 {object} models.Token
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	token, err := h.svc.Register(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(token)
}

// Login verifies credentials and returns a bearer token. The body may be
// JSON or form-urlencoded; the username field accepts an email address too.
// @Summary Log in
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.Token
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	token, err := h.svc.Login(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(token)
}

// Me returns the authenticated user's profile.
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "missing token"})
	}

	user, err := h.svc.ResolveUser(claims)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user.Response())
}
