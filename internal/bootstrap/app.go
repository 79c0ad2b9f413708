package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "resume-critiquer/internal/auth"
	"resume-critiquer/internal/critiques"
	"resume-critiquer/internal/extractions"
	"resume-critiquer/internal/llm"
	openai "resume-critiquer/internal/llm/openai"
	"resume-critiquer/internal/shared/config"
	"resume-critiquer/internal/shared/server"
	"resume-critiquer/internal/shared/storage/db"
	"resume-critiquer/internal/shared/storage/object"
	localstore "resume-critiquer/internal/shared/storage/object/local"
	s3store "resume-critiquer/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Store             object.ObjectStore
	CritiquesRepo     critiques.Repo
	CritiquesService  *critiques.Service
	CritiqueHandler   *critiques.Handler
	ExtractionHandler *extractions.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo critiques.Repo
	if sqlDB != nil {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		repo = &critiques.PGRepo{DB: sqlDB}
	} else {
		repo = critiques.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if cfg.LLMProvider == "openai" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
		if err != nil {
			if !isDevLike(cfg.Env) {
				return nil, err
			}
			log.Printf("bootstrap: openai client unavailable, critiques disabled: %v", err)
		} else {
			llmClient = client
		}
	}

	critiqueSvc := critiques.NewService(repo, llmClient)

	app := &App{
		Config:            cfg,
		DB:                sqlDB,
		Store:             store,
		CritiquesRepo:     repo,
		CritiquesService:  critiqueSvc,
		CritiqueHandler:   critiques.NewHandler(critiqueSvc),
		ExtractionHandler: extractions.NewHandler(store),
		GoogleAuth: googleauth.NewGoogleService(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
			cfg.UIRedirectURL,
		),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		CritiqueHandler:   app.CritiqueHandler,
		ExtractionHandler: app.ExtractionHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

// Shutdown drains background persistence and closes the database.
func (a *App) Shutdown() {
	if a.CritiquesService != nil {
		a.CritiquesService.Flush()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
