package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"listing_scout/internal/domain"
	"listing_scout/internal/lib/logger/sl"
	"listing_scout/internal/lib/metrics"
	"listing_scout/internal/services/filtering"
	"listing_scout/internal/services/pipeline"
	"listing_scout/internal/services/presets"
	"listing_scout/internal/services/sorting"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", sl.Err(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respond(w, status, errorResponse{Success: false, Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.metrics.GetStats())
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]any{
		"success":    true,
		"presets":    s.presets.Describe(),
		"categories": s.presets.ByCategory(),
	})
}

type scoreMotivationRequest struct {
	Property map[string]any        `json:"property"`
	History  []domain.StatusChange `json:"history"`
	Market   domain.Market         `json:"market"`
}

func (s *Server) handleScoreMotivation(w http.ResponseWriter, r *http.Request) {
	var req scoreMotivationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Property) == 0 {
		s.respondError(w, http.StatusBadRequest, "property is required")
		return
	}

	timer := s.metrics.StartTimer(metrics.StageMotivation)
	score := s.scorer.Motivation(domain.Record(req.Property), req.History, req.Market)
	timer.Stop(nil)

	s.respond(w, http.StatusOK, map[string]any{
		"success": true,
		"score":   score,
	})
}

type scoreInvestmentRequest struct {
	Properties []map[string]any `json:"properties"`
}

func (s *Server) handleScoreInvestment(w http.ResponseWriter, r *http.Request) {
	var req scoreInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Properties) == 0 {
		s.respondError(w, http.StatusBadRequest, "properties are required")
		return
	}

	batch, skipped := domain.NewBatch(req.Properties)

	timer := s.metrics.StartTimer(metrics.StageInvestment)
	ranked := s.scorer.Investment(batch)
	timer.Stop(nil)

	s.respond(w, http.StatusOK, map[string]any{
		"success":    true,
		"properties": ranked,
		"count":      len(ranked),
		"skipped":    skipped,
	})
}

type refineRequest struct {
	Properties []map[string]any `json:"properties"`
	pipeline.Request
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	batch, skipped := domain.NewBatch(req.Properties)

	result, err := s.refiner.Process(batch, req.Request)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, presets.ErrUnknownPreset) ||
			errors.Is(err, filtering.ErrInvalidMatchType) ||
			errors.Is(err, sorting.ErrSortSpecMismatch) {
			status = http.StatusBadRequest
		}
		s.log.Error("refine failed", sl.Err(err))
		s.respondError(w, status, err.Error())
		return
	}

	s.respond(w, http.StatusOK, map[string]any{
		"success":    true,
		"properties": result,
		"count":      len(result),
		"skipped":    skipped,
	})
}
