package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/config"
	"github.com/glytehq/glyte-engine/pkg/handlers"
	"github.com/glytehq/glyte-engine/pkg/llm"
	"github.com/glytehq/glyte-engine/pkg/logging"
	"github.com/glytehq/glyte-engine/pkg/store"
	"github.com/glytehq/glyte-engine/pkg/store/postgres"
	"github.com/glytehq/glyte-engine/pkg/store/sqlite"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Log startup configuration
	log.Printf("Configuration loaded:")
	log.Printf("  Environment: %s", cfg.Env)
	log.Printf("  Store driver: %s", cfg.Store.Driver)
	if cfg.Store.Driver == "sqlite" {
		log.Printf("  Database: %s", cfg.Store.Path)
	} else {
		log.Printf("  Database: %s@%s:%d/%s", cfg.Store.Postgres.User, cfg.Store.Postgres.Host, cfg.Store.Postgres.Port, cfg.Store.Postgres.Database)
	}
	log.Printf("  AI provider: %s", orDisabled(cfg.AI.Provider))

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := newStore(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	// An unconfigured AI provider is fine; LLM-backed features degrade to
	// their heuristic results.
	client, err := llm.NewClient(cfg.AI, logger)
	if err != nil && !errors.Is(err, apperrors.ErrAINotConfigured) {
		log.Fatalf("Failed to build AI client: %v", err)
	}

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewTablesHandler(st, logger).RegisterRoutes(mux)
	handlers.NewProfileHandler(st, logger).RegisterRoutes(mux)
	handlers.NewChartsHandler(st, logger).RegisterRoutes(mux)
	handlers.NewRelationshipsHandler(st, client, logger).RegisterRoutes(mux)
	handlers.NewClassifyHandler(st, logger).RegisterRoutes(mux)
	handlers.NewAskHandler(st, client, logger).RegisterRoutes(mux)

	// Serve static UI files from ui/dist
	fs := http.FileServer(http.Dir("./ui/dist"))
	mux.Handle("/", fs)

	addr := cfg.BindAddr + ":" + cfg.Port
	log.Printf("Starting glyte-engine on %s (version: %s)", addr, cfg.Version)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newStore builds the storage backend selected by configuration.
func newStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return postgres.New(context.Background(), cfg.Store.Postgres, logger)
	default:
		return sqlite.New(sqlite.Config{
			Path:           cfg.Store.Path,
			DataDirs:       cfg.Store.DataDirs,
			MigrationsPath: cfg.Store.MigrationsPath,
		}, logger)
	}
}

func orDisabled(provider string) string {
	if provider == "" {
		return "disabled"
	}
	return provider
}
