package handler

import (
	"errors"
	"time"

	"github.com/arturoeanton/go-code-review-api/internal/domain"
	"github.com/arturoeanton/go-code-review-api/internal/port"
	"github.com/arturoeanton/go-code-review-api/internal/service"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// AnalysisHandler handles code analysis, report retrieval, fix generation
// and history listing.
type AnalysisHandler struct {
	analysis *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(analysis *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// Register sets up analysis routes.
func (h *AnalysisHandler) Register(api fiber.Router) {
	analysis := api.Group("/analysis")
	analysis.Post("/analyze", h.Analyze)
	analysis.Get("/report/:reportId", h.GetReport)
	analysis.Post("/report/:reportId/fix", h.Fix)
	analysis.Get("/history/:userId", h.History)
}

// Analyze reviews a code snippet and persists the report. The AI side never
// fails this endpoint: a degraded score-0 report is still a 201.
func (h *AnalysisHandler) Analyze(c fiber.Ctx) error {
	var body struct {
		Code         string `json:"code"`
		RepositoryID string `json:"repository_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if _, err := uuid.Parse(body.RepositoryID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "repository_id must be a valid UUID"})
	}

	report, err := h.analysis.Analyze(c.Context(), body.RepositoryID, body.Code)
	if err != nil {
		if errors.Is(err, port.ErrRepoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// reportDetailResponse is the report-detail payload, with issues
// reconstructed from the stored AI payload.
type reportDetailResponse struct {
	ID             string    `json:"id"`
	RepositoryName string    `json:"repository_name"`
	Score          int       `json:"score"`
	Summary        string    `json:"summary"`
	Issues         []string  `json:"issues"`
	CodeContent    string    `json:"code_content"`
	CreatedAt      time.Time `json:"created_at"`
}

// GetReport returns the details of a stored report.
func (h *AnalysisHandler) GetReport(c fiber.Ctx) error {
	reportID := c.Params("reportId")
	if _, err := uuid.Parse(reportID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "report id must be a valid UUID"})
	}

	report, err := h.analysis.GetReport(c.Context(), reportID)
	if err != nil {
		if errors.Is(err, port.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(reportDetailResponse{
		ID:             report.ID,
		RepositoryName: report.RepositoryName,
		Score:          report.DebtScore,
		Summary:        report.Summary,
		Issues:         report.Issues(),
		CodeContent:    report.CodeContent,
		CreatedAt:      report.CreatedAt,
	})
}

// Fix asks the AI for corrected code based on a stored report. The result
// is returned to the caller and never persisted.
func (h *AnalysisHandler) Fix(c fiber.Ctx) error {
	reportID := c.Params("reportId")
	if _, err := uuid.Parse(reportID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "report id must be a valid UUID"})
	}

	fixed, err := h.analysis.Fix(c.Context(), reportID)
	if err != nil {
		switch {
		case errors.Is(err, port.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, port.ErrNoStoredCode):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"fixed_code": fixed})
}

// History returns all reports across a user's repositories, newest first.
func (h *AnalysisHandler) History(c fiber.Ctx) error {
	userID := c.Params("userId")
	if _, err := uuid.Parse(userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user id must be a valid UUID"})
	}

	items, err := h.analysis.History(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if items == nil {
		items = []domain.HistoryItem{}
	}
	return c.JSON(items)
}
