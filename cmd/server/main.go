package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/clients"
	"github.com/yukikurage/portal-api/internal/config"
	"github.com/yukikurage/portal-api/internal/database"
	"github.com/yukikurage/portal-api/internal/handlers"
	"github.com/yukikurage/portal-api/internal/logging"
	"github.com/yukikurage/portal-api/internal/middleware"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/services"
	"github.com/yukikurage/portal-api/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Init(cfg)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logging.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	db := database.GetDB()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logging.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Upstream clients, each behind its own circuit breaker
	docs := clients.NewDocumentIndex(clients.NewClient("documents", cfg.Upstream.DocumentsURL, cfg.Upstream))
	llm := clients.NewFlaskLLM(clients.NewClient("llm", cfg.Upstream.LLMURL, cfg.Upstream))
	gpus := clients.NewGPUMetrics(clients.NewClient("metrics", cfg.Upstream.MetricsURL, cfg.Upstream))

	// Initialize AI service
	var aiService *services.AIService
	var completer services.ChatCompleter
	if cfg.OpenAI.APIKey != "" {
		aiService = services.NewAIService(cfg.OpenAI)
		completer = aiService
	} else {
		logging.Logger.Warn("OPENAI_API_KEY is not set, OpenAI endpoints will answer 503")
	}

	pool := worker.NewPool(cfg.Prompt.Workers)

	// Repositories and services
	projectRepo := repository.NewProjectRepository(db)
	serverRepo := repository.NewServerRepository(db)
	envRepo := repository.NewEnvironmentRepository(db)

	projectService := services.NewProjectService(projectRepo, services.NewReadmeSync(docs))
	serverService := services.NewServerService(serverRepo)
	envService := services.NewEnvironmentService(envRepo, projectRepo, serverRepo)
	taskService := services.NewTaskService(repository.NewTaskRepository(db), projectRepo, aiService)
	noteService := services.NewDailyNoteService(repository.NewDailyNoteRepository(db))
	metricsCache := services.NewMetricsCache(cfg.Metrics.CacheTTL, gpus.Fetch, nil)
	prompts := services.NewPromptRouter(pool, cfg.Prompt.Timeout, completer, llm)

	// Initialize Gin router
	r := gin.New()
	r.Use(middleware.RequestLogger(logging.Logger))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.HTTP.AllowedOrigins))

	handlers.RegisterRoutes(r, handlers.Handlers{
		Projects:     handlers.NewProjectHandler(projectService),
		Servers:      handlers.NewServerHandler(serverService),
		Environments: handlers.NewEnvironmentHandler(envService),
		Tasks:        handlers.NewTaskHandler(taskService),
		DailyNotes:   handlers.NewDailyNoteHandler(noteService),
		Documents:    handlers.NewDocumentHandler(docs),
		Prompts:      handlers.NewPromptHandler(prompts),
		Metrics:      handlers.NewMetricsHandler(metricsCache),
		Health:       handlers.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: r,
	}

	// Start server
	go func() {
		logging.Logger.WithField("addr", srv.Addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.WithError(err).Error("Server forced to shutdown")
	}
	if err := pool.Drain(ctx); err != nil {
		logging.Logger.WithError(err).Warn("Prompt jobs still running at shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logging.Logger.Info("Server exited")
}
