package handlers

import (
	"strings"

	"github.com/Sididaher/achat-app/models"
	"github.com/Sididaher/achat-app/web/middleware"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// AuthStore is the user lookup surface the auth screens need.
type AuthStore interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
}

type AuthHandler struct {
	store  AuthStore
	secret string
}

func NewAuthHandler(store AuthStore, secret string) *AuthHandler {
	return &AuthHandler{store: store, secret: secret}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login exchanges email/password for a signed session token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and password are required"})
	}

	user, err := h.store.GetByEmail(strings.ToLower(req.Email))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token, err := middleware.GenerateToken(h.secret, user.ID, string(user.Role))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "unable to generate token"})
	}

	return c.JSON(authResponse{Token: token, User: user})
}

// Session returns the acting user, looked up fresh from the store.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no active session"})
	}

	user, err := h.store.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no active session"})
	}

	return c.JSON(fiber.Map{"user": user})
}

// Logout acknowledges sign-out. Tokens are stateless; the client
// discards its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "signed out"})
}
