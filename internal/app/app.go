package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"docuchat/backend/internal/api"
	"docuchat/backend/internal/config"
	"docuchat/backend/internal/database"
	"docuchat/backend/internal/document"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/repository"
	"docuchat/backend/internal/service"
	"docuchat/backend/internal/vectorstore"
)

// App bundles the wired components of the service so tests and Run share the
// same assembly.
type App struct {
	Config *config.Config
	DB     *sql.DB
	System *service.SystemService
	Server *http.Server
}

// NewApp wires the full dependency graph from a configuration: database,
// repository, vector store, language model provider, services, and the HTTP
// server. It does not start anything.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.VectorDBPath)
	if err != nil {
		return nil, fmt.Errorf("could not initialize database: %w", err)
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	repo := repository.NewSQLiteChunkRepository(db)
	store := vectorstore.New()
	loader := document.NewLoader(cfg.DocsDir)
	splitter := document.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)

	systemService := service.NewSystemService(cfg, loader, splitter, store, repo, provider)
	ragService := service.NewRAGService(provider, store, cfg.RetrievalK, cfg.MaxInputChars)
	chatService := service.NewChatService(systemService, ragService)

	chatHandler := api.NewChatHandler(chatService, systemService)
	router := api.NewRouter(chatHandler, cfg.CORSOrigin)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for the long-running reinitialize endpoint
		IdleTimeout:       120 * time.Second,
	}

	return &App{Config: cfg, DB: db, System: systemService, Server: server}, nil
}

// newProvider selects the configured language model backend.
func newProvider(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case config.ProviderOllama:
		return llm.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel), nil
	case config.ProviderGemini:
		return llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderGroq:
		return llm.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel, cfg.LogFile)

	logConfigSource()

	ctx := context.Background()

	application, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to assemble application", "error", err)
		return 1
	}
	defer func() {
		if err := application.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Info("Successfully connected to SQLite database.")

	// A failed initialization is not fatal: the server still answers status
	// requests and reports the failure, and a reinitialize can recover once
	// the backend comes up.
	if err := application.System.Initialize(ctx); err != nil {
		slog.Error("System initialization failed, serving in degraded mode", "error", err)
	}

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel, logFile string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Warn("Could not open log file, logging to stdout only", "file", logFile, "error", err)
		} else {
			out = io.MultiWriter(os.Stdout, f)
		}
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
