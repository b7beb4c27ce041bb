// Package bootstrap wires configuration, storage, the extraction gateway
// and the HTTP surface into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/assets"
	"intake-backend/internal/extraction"
	"intake-backend/internal/extraction/fallback"
	"intake-backend/internal/extraction/gemini"
	"intake-backend/internal/intake"
	"intake-backend/internal/schema"
	"intake-backend/internal/shared/config"
	"intake-backend/internal/shared/storage/db"
	"intake-backend/internal/students"
	"intake-backend/internal/uploads"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	StudentsRepo students.Repo
	UploadsRepo  uploads.Repo
	Extractor    extraction.Extractor

	IntakeService *intake.Service
}

// Build prepares shared dependencies and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}

	if sqlDB != nil {
		app.StudentsRepo = &students.PGRepo{DB: sqlDB}
		app.UploadsRepo = &uploads.PGRepo{DB: sqlDB}
	} else {
		app.StudentsRepo = students.NewMemoryRepo()
		app.UploadsRepo = uploads.NewMemoryRepo()
	}

	primary, fb, err := buildExtractors(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Extractor = primary

	app.IntakeService = &intake.Service{
		Fetcher:        assets.NewFetcher(cfg.MaxAssetBytes, cfg.FetchTimeout),
		Extractor:      primary,
		Fallback:       fb,
		Students:       app.StudentsRepo,
		Uploads:        app.UploadsRepo,
		FetchTimeout:   cfg.FetchTimeout,
		ExtractTimeout: cfg.ExtractTimeout,
		BatchWorkers:   cfg.BatchWorkers,
		BatchMaxItems:  cfg.BatchMaxItems,
		CallbackClient: &http.Client{Timeout: cfg.FetchTimeout},
	}

	app.Router = NewRouter(cfg, Handlers{
		Intake:   intake.NewHandler(app.IntakeService),
		Students: students.NewHandler(app.StudentsRepo),
		Uploads:  uploads.NewHandler(app.UploadsRepo),
		Schemas:  schema.NewHandler(),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// buildExtractors returns the primary extractor and the quota fallback.
// Without a GCP project the local fallback serves as primary so dev runs
// still produce results.
func buildExtractors(ctx context.Context, cfg config.Config) (extraction.Extractor, extraction.Extractor, error) {
	if strings.TrimSpace(cfg.GCPProjectID) == "" {
		if !isDevLike(cfg.Env) {
			return nil, nil, fmt.Errorf("GCP_PROJECT_ID is required")
		}
		log.Printf("bootstrap: GCP_PROJECT_ID empty; using local fallback extractor")
		return fallback.New(), nil, nil
	}

	client, err := gemini.NewClient(ctx, cfg.GCPProjectID, cfg.GCPRegion, cfg.GeminiModel, cfg.ExtractRate, cfg.ExtractBurst)
	if err != nil {
		return nil, nil, fmt.Errorf("init gemini client: %w", err)
	}

	if !cfg.FallbackEnabled {
		return client, nil, nil
	}
	return client, fallback.New(), nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
