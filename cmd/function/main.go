package main

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/pep299/club-recommender/internal/application"
)

var (
	appOnce sync.Once
	appErr  error
	router  http.Handler
)

func init() {
	// Register HTTP function for Cloud Functions deployments
	functions.HTTP("RecommendClubs", RecommendClubs)
}

// RecommendClubs serves the full recommendation API behind a single
// Cloud Functions entrypoint. The application is built once and reused
// across invocations so in-memory sessions survive between requests of
// the same instance.
func RecommendClubs(w http.ResponseWriter, r *http.Request) {
	appOnce.Do(func() {
		app, err := application.New(context.Background())
		if err != nil {
			appErr = err
			return
		}
		router = app.Server.SetupRoutes()
	})

	if appErr != nil {
		log.Printf("Failed to create application: %v", appErr)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	router.ServeHTTP(w, r)
}

func main() {
	// This main function is required for Cloud Functions
	// The actual function registration happens in init()
}
