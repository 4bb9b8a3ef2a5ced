package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/arturoeanton/go-code-review-api/internal/adapter/ai"
	"github.com/arturoeanton/go-code-review-api/internal/adapter/store"
	"github.com/arturoeanton/go-code-review-api/internal/handler"
	"github.com/arturoeanton/go-code-review-api/internal/middleware"
	"github.com/arturoeanton/go-code-review-api/internal/service"
	"github.com/arturoeanton/go-code-review-api/pkg/config"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting HumanFlow AI",
		"port", cfg.Port,
		"model", cfg.GeminiModel,
		"ai_timeout", cfg.AITimeout,
	)

	// ── Database ─────────────────────────────────────────────────────────
	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	if err := pgStore.InitSchema(context.Background()); err != nil {
		slog.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// ── Adapters ─────────────────────────────────────────────────────────
	geminiAI := ai.NewGeminiProvider(ai.GeminiConfig{
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		APIKey:  cfg.GeminiAPIKey,
		Timeout: cfg.AITimeout,
	})

	// ── Services ─────────────────────────────────────────────────────────
	userService := service.NewUserService(pgStore)
	repoService := service.NewRepoService(pgStore)
	analysisService := service.NewAnalysisService(pgStore, pgStore, geminiAI)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	// Audit middleware (logs all requests)
	app.Use(middleware.AuditMiddleware(pgStore))

	// Health check
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	// ── Routes ───────────────────────────────────────────────────────────
	api := app.Group("/api/v1")

	userHandler := handler.NewUserHandler(userService)
	userHandler.Register(api)

	repoHandler := handler.NewRepoHandler(repoService)
	repoHandler.Register(api)

	analysisHandler := handler.NewAnalysisHandler(analysisService)
	analysisHandler.Register(api)

	auditHandler := handler.NewAuditHandler(pgStore)
	auditHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
