package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pep299/club-recommender/internal/application"
	"github.com/pep299/club-recommender/internal/session"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("Club Recommender Server\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment Variables:\n")
		fmt.Printf("  GEMINI_API_KEY        Gemini API key (optional; fallback keywords without it)\n")
		fmt.Printf("  PORT                  Server port (default: 8080)\n")
		fmt.Printf("  HOST                  Server host (default: 0.0.0.0)\n")
		fmt.Printf("  SESSION_STORE         Session store: memory or redis (default: memory)\n")
		fmt.Printf("  CATALOG_SOURCE        Catalog source: static, file, or gcs (default: static)\n")
		fmt.Printf("  CACHE_BACKEND         Profile cache: memory, gcs, or off (default: memory)\n")
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Club Recommender Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := application.New(ctx)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer app.Close()

	logger := app.Logger
	defer logger.Sync()

	router := app.Server.SetupRoutes()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", app.Config.Host, app.Config.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Scheduled maintenance: expired-session sweep and profile cache purge.
	c := cron.New()
	if store, ok := app.Store.(*session.MemoryStore); ok {
		if _, err := c.AddFunc("@every 10m", func() {
			if removed := store.Sweep(); removed > 0 {
				logger.Info("swept expired sessions", zap.Int("removed", removed))
			}
		}); err != nil {
			logger.Error("scheduling session sweep", zap.Error(err))
		}
	}
	if purger, ok := app.ProfileCache.(interface {
		PurgeExpired(context.Context) (int, error)
	}); ok {
		if _, err := c.AddFunc("@daily", func() {
			purged, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.Error("purging profile cache", zap.Error(err))
				return
			}
			logger.Info("purged expired cached profiles", zap.Int("purged", purged))
		}); err != nil {
			logger.Error("scheduling cache purge", zap.Error(err))
		}
	}
	c.Start()
	defer c.Stop()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server",
			zap.String("host", app.Config.Host),
			zap.String("port", app.Config.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-sigChan
	logger.Info("shutting down server")

	cancel()
	c.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
