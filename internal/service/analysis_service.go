package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/arturoeanton/go-code-review-api/internal/domain"
	"github.com/arturoeanton/go-code-review-api/internal/port"
)

// AnalysisService orchestrates AI code review: it validates references,
// drives the AI provider, and persists or reads reports.
type AnalysisService struct {
	repos   port.RepoStore
	reports port.ReportStore
	ai      port.AIProvider
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(repos port.RepoStore, reports port.ReportStore, ai port.AIProvider) *AnalysisService {
	return &AnalysisService{repos: repos, reports: reports, ai: ai}
}

// Analyze reviews a code snippet against a registered repository and
// persists the resulting report. The AI call never fails outright: a broken
// model response is persisted as a score-0 report with a diagnostic summary.
// Repeated analyses of the same repository each create their own report.
func (s *AnalysisService) Analyze(ctx context.Context, repositoryID, code string) (*domain.AnalysisReport, error) {
	repo, err := s.repos.GetRepoByID(ctx, repositoryID)
	if err != nil {
		return nil, err
	}

	slog.Info("analyzing code", "repo_id", repo.ID, "model", s.ai.ModelName(), "code_bytes", len(code))
	result := s.ai.Analyze(ctx, code)

	fullReport, err := json.Marshal(result)
	if err != nil {
		fullReport = json.RawMessage("{}")
	}

	report := &domain.AnalysisReport{
		RepositoryID: repo.ID,
		DebtScore:    result.Score,
		Summary:      result.Summary,
		CodeContent:  code,
		FullReport:   fullReport,
	}

	created, err := s.reports.CreateReport(ctx, report)
	if err != nil {
		return nil, err
	}

	slog.Info("report persisted", "report_id", created.ID, "score", created.DebtScore)
	return created, nil
}

// GetReport returns a report with its repository name. Issues are extracted
// from the stored payload by the caller via domain.AnalysisReport.Issues.
func (s *AnalysisService) GetReport(ctx context.Context, reportID string) (*domain.ReportDetail, error) {
	return s.reports.GetReportByID(ctx, reportID)
}

// Fix regenerates corrected code for a stored report. Reports created
// before code was stored have no source text; those fail with
// port.ErrNoStoredCode before any AI call. The corrected code is returned
// to the caller and never persisted.
func (s *AnalysisService) Fix(ctx context.Context, reportID string) (string, error) {
	report, err := s.reports.GetReportByID(ctx, reportID)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(report.CodeContent) == "" {
		return "", port.ErrNoStoredCode
	}

	slog.Info("generating fix", "report_id", report.ID, "issues", len(report.Issues()))
	return s.ai.Fix(ctx, report.CodeContent, report.Issues())
}

// History returns all reports across the user's repositories, newest
// first. The result set is unbounded.
func (s *AnalysisService) History(ctx context.Context, userID string) ([]domain.HistoryItem, error) {
	return s.reports.ListReportsByUser(ctx, userID)
}
