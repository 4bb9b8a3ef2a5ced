package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arturoeanton/go-code-review-api/internal/domain"
	"github.com/arturoeanton/go-code-review-api/internal/port"
	"golang.org/x/crypto/bcrypt"
)

const defaultPageSize = 100

// UserService manages user accounts.
type UserService struct {
	store port.UserStore
}

// NewUserService creates a new user service.
func NewUserService(store port.UserStore) *UserService {
	return &UserService{store: store}
}

// Register creates a new user with a bcrypt-hashed password. Email
// comparison is case-sensitive as stored; a duplicate yields
// port.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:          email,
		HashedPassword: string(hash),
		FullName:       fullName,
		IsActive:       true,
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", created.ID)
	return created, nil
}

// List returns users with offset/limit pagination. Negative offsets are
// treated as zero; a non-positive limit falls back to the default page size.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.store.ListUsers(ctx, skip, limit)
}
