package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/fsearch/internal/models"
	"go.uber.org/zap"
)

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	var req models.FindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("find request",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("pattern", req.Pattern),
		zap.Int("limit", req.Options.Limit))

	start := time.Now()
	results, err := s.engine.Find(r.Context(), req.Pattern, req.Options)
	if err != nil {
		s.logger.Error("find failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, &models.FindResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Pattern:   req.Pattern,
	})
}

func (s *Server) handleRoots(w http.ResponseWriter, r *http.Request) {
	roots := s.engine.Config().Roots
	if roots == nil {
		roots = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"roots": roots})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
