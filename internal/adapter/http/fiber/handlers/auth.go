package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/ports"
)

type AuthHandler struct {
	service ports.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service ports.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login accepts form-encoded or JSON credentials and returns a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	token, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in ports.UserInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	user, err := h.service.Register(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Me returns the user owning the bearer token set by the auth middleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)

	user, err := h.service.CurrentUser(c.Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	current, _ := c.Locals("username").(string)
	target := c.Params("username")

	var in ports.UserInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	user, err := h.service.UpdateUser(c.Context(), current, target, in)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	current, _ := c.Locals("username").(string)
	target := c.Params("username")

	if err := h.service.DeleteUser(c.Context(), current, target); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
