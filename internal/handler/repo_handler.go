package handler

import (
	"errors"

	"github.com/arturoeanton/go-code-review-api/internal/port"
	"github.com/arturoeanton/go-code-review-api/internal/service"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// RepoHandler handles repository registration and listing.
type RepoHandler struct {
	repos *service.RepoService
}

// NewRepoHandler creates a new repo handler.
func NewRepoHandler(repos *service.RepoService) *RepoHandler {
	return &RepoHandler{repos: repos}
}

// Register sets up repository routes.
func (h *RepoHandler) Register(api fiber.Router) {
	repos := api.Group("/repositories")
	repos.Post("/", h.Create)
	repos.Get("/", h.List)
}

// Create registers a new repository for an existing owner.
func (h *RepoHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name        string `json:"name"`
		URL         string `json:"url"`
		Description string `json:"description"`
		OwnerID     string `json:"owner_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if body.Name == "" || body.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and url are required"})
	}
	if _, err := uuid.Parse(body.OwnerID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "owner_id must be a valid UUID"})
	}

	repo, err := h.repos.Create(c.Context(), body.Name, body.URL, body.Description, body.OwnerID)
	if err != nil {
		if errors.Is(err, port.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(repo)
}

// List returns repositories with skip/limit pagination.
func (h *RepoHandler) List(c fiber.Ctx) error {
	repos, err := h.repos.List(c.Context(), queryInt(c, "skip", 0), queryInt(c, "limit", 100))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(repos)
}
