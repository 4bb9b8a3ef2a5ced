package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arturoeanton/go-code-review-api/internal/domain"
	"github.com/arturoeanton/go-code-review-api/internal/port"
	"github.com/lib/pq"
)

// Postgres error codes inspected when mapping constraint violations to
// domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresStore handles all relational database operations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// InitSchema creates the tables if they do not exist. Foreign keys cascade
// from parent to child so deleting a user removes its repositories and
// deleting a repository removes its reports.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS repositories (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS analysis_reports (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		repository_id UUID NOT NULL REFERENCES repositories(id) ON DELETE CASCADE,
		debt_score INTEGER NOT NULL DEFAULT 0,
		summary TEXT NOT NULL DEFAULT '',
		code_content TEXT,
		full_report JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		action TEXT NOT NULL,
		resource TEXT NOT NULL,
		resource_id TEXT NOT NULL DEFAULT '',
		details JSONB,
		ip TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// pqCode returns the Postgres error code, or "" for non-pq errors.
func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// --- Users ---

// CreateUser inserts a new user. The unique index on email turns duplicate
// registrations into port.ErrEmailTaken.
func (s *PostgresStore) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (email, hashed_password, full_name, is_active)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, email, hashed_password, full_name, is_active, created_at`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query,
		u.Email, u.HashedPassword, u.FullName, u.IsActive,
	).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.FullName,
		&user.IsActive, &user.CreatedAt,
	)
	if err != nil {
		if pqCode(err) == pgUniqueViolation {
			return nil, port.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// ListUsers returns users with offset/limit pagination, oldest first.
func (s *PostgresStore) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, error) {
	query := `SELECT id, email, hashed_password, full_name, is_active, created_at
	          FROM users ORDER BY created_at OFFSET $1 LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.IsActive, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// --- Repositories ---

// CreateRepo inserts a new repository. The foreign key on owner_id turns a
// missing owner into port.ErrUserNotFound, closing the race a separate
// existence check would leave open.
func (s *PostgresStore) CreateRepo(ctx context.Context, r *domain.Repository) (*domain.Repository, error) {
	query := `INSERT INTO repositories (name, url, description, owner_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, name, url, description, owner_id, created_at`

	var repo domain.Repository
	err := s.db.QueryRowContext(ctx, query,
		r.Name, r.URL, r.Description, r.OwnerID,
	).Scan(
		&repo.ID, &repo.Name, &repo.URL, &repo.Description, &repo.OwnerID, &repo.CreatedAt,
	)
	if err != nil {
		if pqCode(err) == pgForeignKeyViolation {
			return nil, port.ErrUserNotFound
		}
		return nil, fmt.Errorf("create repository: %w", err)
	}
	return &repo, nil
}

// GetRepoByID returns a repository or port.ErrRepoNotFound.
func (s *PostgresStore) GetRepoByID(ctx context.Context, id string) (*domain.Repository, error) {
	query := `SELECT id, name, url, description, owner_id, created_at
	          FROM repositories WHERE id = $1`

	var r domain.Repository
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.Name, &r.URL, &r.Description, &r.OwnerID, &r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrRepoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get repository: %w", err)
	}
	return &r, nil
}

// ListRepos returns repositories with offset/limit pagination, oldest first.
func (s *PostgresStore) ListRepos(ctx context.Context, offset, limit int) ([]domain.Repository, error) {
	query := `SELECT id, name, url, description, owner_id, created_at
	          FROM repositories ORDER BY created_at OFFSET $1 LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	defer rows.Close()

	repos := []domain.Repository{}
	for rows.Next() {
		var r domain.Repository
		if err := rows.Scan(
			&r.ID, &r.Name, &r.URL, &r.Description, &r.OwnerID, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan repository: %w", err)
		}
		repos = append(repos, r)
	}
	return repos, rows.Err()
}

// --- Analysis reports ---

// CreateReport inserts a new analysis report. The foreign key on
// repository_id turns a missing repository into port.ErrRepoNotFound.
func (s *PostgresStore) CreateReport(ctx context.Context, r *domain.AnalysisReport) (*domain.AnalysisReport, error) {
	details := r.FullReport
	if len(details) == 0 || !json.Valid(details) {
		details = json.RawMessage("{}")
	}

	query := `INSERT INTO analysis_reports (repository_id, debt_score, summary, code_content, full_report)
	          VALUES ($1, $2, $3, $4, $5::jsonb)
	          RETURNING id, repository_id, debt_score, summary, COALESCE(code_content, ''), created_at`

	var report domain.AnalysisReport
	err := s.db.QueryRowContext(ctx, query,
		r.RepositoryID, r.DebtScore, r.Summary, r.CodeContent, string(details),
	).Scan(
		&report.ID, &report.RepositoryID, &report.DebtScore, &report.Summary,
		&report.CodeContent, &report.CreatedAt,
	)
	if err != nil {
		if pqCode(err) == pgForeignKeyViolation {
			return nil, port.ErrRepoNotFound
		}
		return nil, fmt.Errorf("create report: %w", err)
	}
	report.FullReport = details
	return &report, nil
}

// GetReportByID returns a report joined with its repository name, or
// port.ErrReportNotFound.
func (s *PostgresStore) GetReportByID(ctx context.Context, id string) (*domain.ReportDetail, error) {
	query := `SELECT ar.id, ar.repository_id, r.name, ar.debt_score, ar.summary,
	                 COALESCE(ar.code_content, ''), COALESCE(ar.full_report::text, ''), ar.created_at
	          FROM analysis_reports ar
	          JOIN repositories r ON r.id = ar.repository_id
	          WHERE ar.id = $1`

	var d domain.ReportDetail
	var fullReport string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.RepositoryID, &d.RepositoryName, &d.DebtScore, &d.Summary,
		&d.CodeContent, &fullReport, &d.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if fullReport != "" {
		d.FullReport = json.RawMessage(fullReport)
	}
	return &d, nil
}

// ListReportsByUser returns all reports across the user's repositories,
// newest first. No limit is applied, matching the history contract.
func (s *PostgresStore) ListReportsByUser(ctx context.Context, userID string) ([]domain.HistoryItem, error) {
	query := `SELECT ar.id, r.name, ar.debt_score, ar.summary, ar.created_at
	          FROM analysis_reports ar
	          JOIN repositories r ON r.id = ar.repository_id
	          WHERE r.owner_id = $1
	          ORDER BY ar.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	items := []domain.HistoryItem{}
	for rows.Next() {
		var it domain.HistoryItem
		if err := rows.Scan(&it.ID, &it.RepositoryName, &it.Score, &it.Summary, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// --- Audit logs ---

// WriteAudit implements middleware.AuditWriter.
func (s *PostgresStore) WriteAudit(action, resource, resourceID, details, ip, userAgent string) error {
	query := `INSERT INTO audit_logs (action, resource, resource_id, details, ip, user_agent)
	          VALUES ($1, $2, $3, $4::jsonb, $5, $6)`
	_, err := s.db.ExecContext(context.Background(), query,
		action, resource, resourceID, details, ip, userAgent,
	)
	return err
}

// ListAuditLogs returns recent audit logs with optional filters.
func (s *PostgresStore) ListAuditLogs(ctx context.Context, limit int, action string) ([]domain.AuditLog, error) {
	query := `SELECT id, action, resource, resource_id, details::text, ip, user_agent, created_at
	          FROM audit_logs`
	args := []interface{}{}
	argIdx := 1

	if action != "" {
		query += fmt.Sprintf(" WHERE action = $%d", argIdx)
		args = append(args, action)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var l domain.AuditLog
		if err := rows.Scan(
			&l.ID, &l.Action, &l.Resource, &l.ResourceID,
			&l.Details, &l.IP, &l.UserAgent, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
