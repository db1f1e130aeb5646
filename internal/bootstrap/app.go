package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"cvlens-backend/internal/llm"
	"cvlens-backend/internal/llm/openrouter"
	"cvlens-backend/internal/resumes"
	"cvlens-backend/internal/shared/config"
	"cvlens-backend/internal/shared/server"
	"cvlens-backend/internal/shared/storage/db"
	"cvlens-backend/internal/shared/storage/object"
	localstore "cvlens-backend/internal/shared/storage/object/local"
	s3store "cvlens-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	LLM            llm.Client
	ResumesRepo    resumes.Repo
	ResumesService *resumes.Service
	ResumesHandler *resumes.Handler
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

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	var repo resumes.Repo
	if sqlDB != nil {
		repo = &resumes.PGRepo{DB: sqlDB}
	} else {
		repo = resumes.NewMemoryRepo()
	}

	svc := &resumes.Service{
		Store: store,
		Repo:  repo,
		LLM:   llmClient,
	}
	handler := resumes.NewHandler(svc)

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		Store:          store,
		LLM:            llmClient,
		ResumesRepo:    repo,
		ResumesService: svc,
		ResumesHandler: handler,
	}
	app.Router = server.NewRouter(cfg, server.RouterDeps{
		Resumes: handler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, errMissingDatabaseURL
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions())
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
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.LocalStoreBaseURL), nil
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openrouter":
		if strings.TrimSpace(cfg.OpenRouterAPIKey) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: OPENROUTER_API_KEY empty; completions disabled")
				return llm.PlaceholderClient{}, nil
			}
			return nil, errMissingAPIKey
		}
		return openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.LLMModel)
	default:
		return llm.PlaceholderClient{}, nil
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
