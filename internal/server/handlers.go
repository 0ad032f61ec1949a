package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/internal/pipeline"
	"github.com/datavex/leadforge/internal/resilience"
)

type analyzeRequest struct {
	ServiceCategory string `json:"service_category"`
}

type deepAnalyzeRequest struct {
	Domain          string `json:"domain"`
	ServiceCategory string `json:"service_category"`
}

type errorResponse struct {
	Error      string   `json:"error"`
	AgentTrace []string `json:"agent_trace,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	cat, err := model.ParseServiceCategory(req.ServiceCategory)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := s.orch.Campaign(r.Context(), cat)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeepAnalyze(w http.ResponseWriter, r *http.Request) {
	var req deepAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	cat, err := model.ParseServiceCategory(req.ServiceCategory)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := s.orch.Deep(r.Context(), req.Domain, cat)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerateEmail(w http.ResponseWriter, r *http.Request) {
	var req model.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	draft, err := s.orch.Email(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// writeError maps pipeline failure classes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case eris.Is(err, pipeline.ErrInvalidInput):
		status = http.StatusBadRequest
	case eris.Is(err, resilience.ErrBreakerOpen):
		status = http.StatusServiceUnavailable
	case eris.Is(err, pipeline.ErrSchema), eris.Is(err, pipeline.ErrProvider):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		zap.L().Error("server: request failed", zap.Error(err))
	}

	resp := errorResponse{Error: err.Error()}
	var traced *pipeline.TraceError
	if errors.As(err, &traced) {
		resp.AgentTrace = traced.Trace
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}
