package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pep299/club-recommender/internal/cache"
	"github.com/pep299/club-recommender/internal/catalog"
	"github.com/pep299/club-recommender/internal/config"
	"github.com/pep299/club-recommender/internal/gemini"
	"github.com/pep299/club-recommender/internal/handlers"
	"github.com/pep299/club-recommender/internal/logger"
	"github.com/pep299/club-recommender/internal/recommend"
	"github.com/pep299/club-recommender/internal/session"
)

// Application bundles the wired components so the server and Cloud
// Function entrypoints share one construction path.
type Application struct {
	Config       *config.Config
	Logger       *zap.Logger
	Store        session.Store
	Catalog      *catalog.Catalog
	Engine       *recommend.Engine
	Server       *handlers.Server
	ProfileCache cache.Cache

	cleanup []func() error
}

// New creates the application with all dependencies wired from config.
func New(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	app := &Application{
		Config: cfg,
		Logger: logger.New(cfg.LogLevel, cfg.LogFormat),
	}

	if err := app.buildStore(ctx); err != nil {
		return nil, err
	}
	if err := app.buildCatalog(ctx); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.buildProfileCache(ctx); err != nil {
		app.Close()
		return nil, err
	}

	var generator recommend.KeywordGenerator
	if cfg.GeminiAPIKey != "" {
		generator = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel,
			time.Duration(cfg.GeminiTimeoutSeconds)*time.Second)
	} else {
		app.Logger.Warn("no Gemini API key configured, keyword profiles use the fallback list")
	}

	profiler := recommend.NewProfiler(generator, app.Logger)
	app.Engine = recommend.NewEngine(app.Store, app.Catalog, profiler, app.ProfileCache, app.Logger, nil)
	app.Server = handlers.NewServer(cfg, app.Store, app.Engine, app.Logger)

	return app, nil
}

func (a *Application) buildStore(ctx context.Context) error {
	ttl := time.Duration(a.Config.SessionTTLHours) * time.Hour

	switch a.Config.SessionStore {
	case "redis":
		store, err := session.NewRedisStore(ctx, session.RedisOptions{
			Address:  a.Config.RedisAddress,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
			TTL:      ttl,
		})
		if err != nil {
			return fmt.Errorf("creating redis session store: %w", err)
		}
		a.Store = store
	default:
		a.Store = session.NewMemoryStore(ttl)
	}

	a.cleanup = append(a.cleanup, a.Store.Close)
	return nil
}

func (a *Application) buildCatalog(ctx context.Context) error {
	var (
		cat *catalog.Catalog
		err error
	)

	switch a.Config.CatalogSource {
	case "file":
		cat, err = catalog.LoadCSVFile(a.Config.CatalogFile)
	case "gcs":
		cat, err = catalog.LoadCSVObject(ctx, a.Config.CatalogBucket, a.Config.CatalogObject)
	default:
		cat = catalog.Default()
	}
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	a.Catalog = cat
	a.Logger.Info("catalog loaded",
		zap.String("source", a.Config.CatalogSource),
		zap.Int("campus", len(cat.InScope())),
		zap.Int("external", len(cat.ExternalPool())))
	return nil
}

func (a *Application) buildProfileCache(ctx context.Context) error {
	ttl := time.Duration(a.Config.CacheTTLHours) * time.Hour

	switch a.Config.CacheBackend {
	case "off":
		return nil
	case "gcs":
		c, err := cache.NewCloudStorage(ctx, a.Config.CacheBucket, ttl)
		if err != nil {
			return fmt.Errorf("creating profile cache: %w", err)
		}
		a.ProfileCache = c
	default:
		a.ProfileCache = cache.NewMemory(ttl)
	}

	a.cleanup = append(a.cleanup, a.ProfileCache.Close)
	return nil
}

// Close releases application resources in reverse construction order.
func (a *Application) Close() error {
	var firstErr error
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		if err := a.cleanup[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.cleanup = nil
	return firstErr
}
