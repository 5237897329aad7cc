// Package web exposes the dashboard generation HTTP API.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"dashforge/internal/llm"
	"dashforge/internal/task"
	"dashforge/internal/workflow"
)

// Request bodies are small JSON documents; anything larger is abuse.
const maxBodyBytes = 1 << 20

// Server provides the API handlers and state.
type Server struct {
	runs   *workflow.Service
	tasks  *task.Store
	models []llm.ModelInfo
}

// NewServer creates a new API server.
func NewServer(runs *workflow.Service, tasks *task.Store, models []llm.ModelInfo) *Server {
	return &Server{runs: runs, tasks: tasks, models: models}
}

// Routes returns the router for the API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/dashboards/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleTask)
	mux.HandleFunc("POST /api/tasks/{id}/feedback", s.handleFeedback)
	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return mux
}

type generateRequest struct {
	Text       string `json:"text"`
	Provider   string `json:"provider"`
	MaxRepairs int    `json:"max_repairs"`
	UseContext bool   `json:"use_context"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.MaxRepairs < 0 {
		writeError(w, http.StatusBadRequest, "max_repairs must be positive")
		return
	}

	id, err := s.runs.Submit(r.Context(), workflow.Request{
		Text:       req.Text,
		Provider:   req.Provider,
		MaxRepairs: req.MaxRepairs,
		UseContext: req.UseContext,
	})
	switch {
	case errors.Is(err, workflow.ErrEmptyRequest):
		writeError(w, http.StatusBadRequest, "text is required")
		return
	case errors.Is(err, workflow.ErrUnknownProvider):
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	case err != nil:
		log.Error().Err(err).Msg("submit failed")
		writeError(w, http.StatusInternalServerError, "could not start generation")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"task_id": id,
		"status":  task.StatusPending,
	})
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type feedbackRequest struct {
	Dashboard map[string]any `json:"dashboard"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Dashboard == nil {
		writeError(w, http.StatusBadRequest, "dashboard is required")
		return
	}

	t, err := s.tasks.SubmitCorrection(r.PathValue("id"), req.Dashboard)
	switch {
	case errors.Is(err, task.ErrNotFound):
		writeError(w, http.StatusNotFound, "task not found")
		return
	case errors.Is(err, task.ErrInvalidState):
		writeError(w, http.StatusConflict, "task is not awaiting human correction")
		return
	case err != nil:
		log.Error().Err(err).Msg("feedback failed")
		writeError(w, http.StatusInternalServerError, "could not apply correction")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"models": s.models})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("writing response failed")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
