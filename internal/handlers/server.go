package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pep299/club-recommender/internal/config"
	"github.com/pep299/club-recommender/internal/recommend"
	"github.com/pep299/club-recommender/internal/session"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	config *config.Config
	store  session.Store
	engine *recommend.Engine
	logger *zap.Logger
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Config, store session.Store, engine *recommend.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		config: cfg,
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// SetupRoutes configures HTTP routes.
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.corsMiddleware)
	api.Use(s.loggingMiddleware)

	// OPTIONS is routed so the CORS middleware can answer preflights.
	api.HandleFunc("/health", s.healthHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/questions", s.questionsHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/init-session", s.initSessionHandler).Methods("POST", "OPTIONS")
	api.HandleFunc("/submit", s.submitHandler).Methods("POST", "OPTIONS")
	api.HandleFunc("/results", s.resultsHandler).Methods("GET", "OPTIONS")

	return r
}

// Middleware functions

// corsMiddleware adds CORS headers so the quiz frontend can call the API
// from another origin.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap the ResponseWriter to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.statusCode),
			zap.Duration("duration", time.Since(start)))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
