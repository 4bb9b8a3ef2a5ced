package service

import (
	"context"
	"log/slog"

	"github.com/arturoeanton/go-code-review-api/internal/domain"
	"github.com/arturoeanton/go-code-review-api/internal/port"
)

// RepoService manages repository registration and listing.
type RepoService struct {
	store port.RepoStore
}

// NewRepoService creates a new repository service.
func NewRepoService(store port.RepoStore) *RepoService {
	return &RepoService{store: store}
}

// Create registers a new repository for an owner. A missing owner yields
// port.ErrUserNotFound.
func (s *RepoService) Create(ctx context.Context, name, url, description, ownerID string) (*domain.Repository, error) {
	repo := &domain.Repository{
		Name:        name,
		URL:         url,
		Description: description,
		OwnerID:     ownerID,
	}

	created, err := s.store.CreateRepo(ctx, repo)
	if err != nil {
		return nil, err
	}

	slog.Info("repository registered", "repo_id", created.ID, "owner_id", ownerID)
	return created, nil
}

// List returns repositories with offset/limit pagination.
func (s *RepoService) List(ctx context.Context, skip, limit int) ([]domain.Repository, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.store.ListRepos(ctx, skip, limit)
}
