package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/arturoeanton/go-code-review-api/internal/domain"
	"github.com/arturoeanton/go-code-review-api/internal/port"
	"github.com/arturoeanton/go-code-review-api/internal/service"
	"github.com/gofiber/fiber/v3"
)

// Shared fakes backing the services under test.

type fakeUserStore struct {
	byEmail map[string]*domain.User
	listed  []domain.User
}

func (f *fakeUserStore) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	if f.byEmail == nil {
		f.byEmail = map[string]*domain.User{}
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, port.ErrEmailTaken
	}
	stored := *u
	stored.ID = "11111111-1111-1111-1111-111111111111"
	stored.CreatedAt = time.Now()
	f.byEmail[u.Email] = &stored
	return &stored, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context, offset, limit int) ([]domain.User, error) {
	return f.listed, nil
}

type fakeRepoStore struct {
	repos     map[string]*domain.Repository
	ownerGone bool
}

func (f *fakeRepoStore) CreateRepo(_ context.Context, r *domain.Repository) (*domain.Repository, error) {
	if f.ownerGone {
		return nil, port.ErrUserNotFound
	}
	stored := *r
	stored.ID = "22222222-2222-2222-2222-222222222222"
	stored.CreatedAt = time.Now()
	return &stored, nil
}

func (f *fakeRepoStore) GetRepoByID(_ context.Context, id string) (*domain.Repository, error) {
	if r, ok := f.repos[id]; ok {
		return r, nil
	}
	return nil, port.ErrRepoNotFound
}

func (f *fakeRepoStore) ListRepos(_ context.Context, offset, limit int) ([]domain.Repository, error) {
	return []domain.Repository{}, nil
}

type fakeReportStore struct {
	created []*domain.AnalysisReport
	details map[string]*domain.ReportDetail
	history []domain.HistoryItem
}

func (f *fakeReportStore) CreateReport(_ context.Context, r *domain.AnalysisReport) (*domain.AnalysisReport, error) {
	stored := *r
	stored.ID = "33333333-3333-3333-3333-333333333333"
	stored.CreatedAt = time.Now()
	f.created = append(f.created, &stored)
	return &stored, nil
}

func (f *fakeReportStore) GetReportByID(_ context.Context, id string) (*domain.ReportDetail, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, port.ErrReportNotFound
}

func (f *fakeReportStore) ListReportsByUser(_ context.Context, userID string) ([]domain.HistoryItem, error) {
	return f.history, nil
}

type fakeAI struct {
	result port.ReviewResult
	fixed  string
	fixErr error
}

func (f *fakeAI) ModelName() string { return "fake-model" }

func (f *fakeAI) Analyze(_ context.Context, code string) port.ReviewResult { return f.result }

func (f *fakeAI) Fix(_ context.Context, code string, issues []string) (string, error) {
	return f.fixed, f.fixErr
}

// newTestApp wires the full route surface against fakes.
func newTestApp(users *fakeUserStore, repos *fakeRepoStore, reports *fakeReportStore, ai *fakeAI) *fiber.App {
	app := fiber.New()
	api := app.Group("/api/v1")

	NewUserHandler(service.NewUserService(users)).Register(api)
	NewRepoHandler(service.NewRepoService(repos)).Register(api)
	NewAnalysisHandler(service.NewAnalysisService(repos, reports, ai)).Register(api)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	decoded := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		_ = json.Unmarshal(raw, &decoded)
	}
	decoded["_raw"] = string(raw)
	return resp, decoded
}
