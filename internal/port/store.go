package port

import (
	"context"

	"github.com/arturoeanton/go-code-review-api/internal/domain"
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a new user. A duplicate email yields ErrEmailTaken.
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)

	// ListUsers returns users with offset/limit pagination.
	ListUsers(ctx context.Context, offset, limit int) ([]domain.User, error)
}

// RepoStore persists repositories.
type RepoStore interface {
	// CreateRepo inserts a new repository. A missing owner yields
	// ErrUserNotFound.
	CreateRepo(ctx context.Context, r *domain.Repository) (*domain.Repository, error)

	// GetRepoByID returns a repository or ErrRepoNotFound.
	GetRepoByID(ctx context.Context, id string) (*domain.Repository, error)

	// ListRepos returns repositories with offset/limit pagination.
	ListRepos(ctx context.Context, offset, limit int) ([]domain.Repository, error)
}

// ReportStore persists analysis reports.
type ReportStore interface {
	// CreateReport inserts a new report. A missing repository yields
	// ErrRepoNotFound.
	CreateReport(ctx context.Context, r *domain.AnalysisReport) (*domain.AnalysisReport, error)

	// GetReportByID returns a report joined with its repository name,
	// or ErrReportNotFound.
	GetReportByID(ctx context.Context, id string) (*domain.ReportDetail, error)

	// ListReportsByUser returns all reports across the user's
	// repositories, newest first.
	ListReportsByUser(ctx context.Context, userID string) ([]domain.HistoryItem, error)
}
