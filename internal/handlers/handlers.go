package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pep299/club-recommender/internal/quiz"
	"github.com/pep299/club-recommender/internal/session"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// healthHandler provides a health check endpoint.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"version":   "v1.0.0",
	})
}

// questionsHandler serves the static quiz.
func (s *Server) questionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, quiz.Questions)
}

// initSessionHandler creates or refreshes a session. A missing sessionId is
// not an error: one is minted and returned so clients can store it.
func (s *Server) initSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
		Nickname  string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	sess, err := s.store.Init(r.Context(), req.SessionID, req.Nickname)
	if err != nil {
		s.logger.Error("initializing session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to initialize session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"sessionId": sess.ID,
		"nickname":  sess.Nickname,
	})
}

// submitHandler records one answer, replacing any earlier answer for the
// same question.
func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID  string `json:"sessionId"`
		QuestionID string `json:"questionId"`
		OptionID   string `json:"optionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" || req.QuestionID == "" || req.OptionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId, questionId, and optionId are required")
		return
	}
	if _, _, ok := quiz.LookupOption(req.QuestionID, req.OptionID); !ok {
		writeError(w, http.StatusBadRequest, "unknown question or option")
		return
	}

	err := s.store.Put(r.Context(), req.SessionID, session.Answer{
		QuestionID: req.QuestionID,
		OptionID:   req.OptionID,
	})
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		s.logger.Error("recording answer", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record answer")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// resultsHandler computes and returns the persona and recommendations for a
// session.
func (s *Server) resultsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	if _, err := s.store.Get(r.Context(), sessionID); errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	} else if err != nil {
		s.logger.Error("loading session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	result, err := s.engine.Recommend(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("computing recommendations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute recommendations")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
