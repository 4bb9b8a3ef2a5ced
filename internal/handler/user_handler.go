package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/arturoeanton/go-code-review-api/internal/port"
	"github.com/arturoeanton/go-code-review-api/internal/service"
	"github.com/gofiber/fiber/v3"
)

// UserHandler handles user registration and listing.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register sets up user routes.
func (h *UserHandler) Register(api fiber.Router) {
	users := api.Group("/users")
	users.Post("/", h.Create)
	users.Get("/", h.List)
}

// Create registers a new user.
func (h *UserHandler) Create(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || !strings.Contains(body.Email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "a valid email is required"})
	}
	if body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password is required"})
	}

	user, err := h.users.Register(c.Context(), body.Email, body.Password, body.FullName)
	if err != nil {
		if errors.Is(err, port.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// List returns users with skip/limit pagination.
func (h *UserHandler) List(c fiber.Ctx) error {
	users, err := h.users.List(c.Context(), queryInt(c, "skip", 0), queryInt(c, "limit", 100))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(users)
}

// queryInt reads an integer query param with a default value.
func queryInt(c fiber.Ctx, key string, defaultVal int) int {
	v := c.Query(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
