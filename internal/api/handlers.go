package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/calculation"
	"github.com/kmeehan/nestegg/internal/config"
	"github.com/kmeehan/nestegg/internal/domain"
	"github.com/kmeehan/nestegg/internal/waterfall"
)

// WaterfallRequest carries a monthly budget, the fact snapshot, and an
// optional pinned plan change.
type WaterfallRequest struct {
	Budget decimal.Decimal     `json:"budget"`
	Facts  domain.SavingsFacts `json:"facts"`
	Change *domain.Change      `json:"change,omitempty"`
}

// PlanRequest carries a full profile snapshot and an optional plan change.
type PlanRequest struct {
	Profile domain.Profile `json:"profile"`
	Change  *domain.Change `json:"change,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Allocate runs the income allocator over one pay period.
func (s *Server) Allocate(w http.ResponseWriter, r *http.Request) {
	var inputs domain.IncomeInputs
	if !s.decode(w, r, &inputs) {
		return
	}

	parser := config.NewInputParser()
	if err := parser.ValidateIncome(&inputs); err != nil {
		s.badRequest(w, err)
		return
	}

	writeJSON(w, http.StatusOK, calculation.Allocate(inputs))
}

// Waterfall partitions a monthly savings budget, optionally with one
// bucket pinned.
func (s *Server) Waterfall(w http.ResponseWriter, r *http.Request) {
	var req WaterfallRequest
	if !s.decode(w, r, &req) {
		return
	}

	parser := config.NewInputParser()
	if req.Change != nil {
		if err := parser.ValidateChange(req.Change); err != nil {
			s.badRequest(w, err)
			return
		}
	}

	var breakdown domain.SavingsBreakdown
	if req.Change != nil {
		breakdown = waterfall.ApplyChange(req.Budget, req.Facts, s.engine.Policy, *req.Change)
	} else {
		breakdown = waterfall.Run(req.Budget, req.Facts, s.engine.Policy)
	}
	writeJSON(w, http.StatusOK, breakdown)
}

// Simulate runs the net-worth simulator over a scenario.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var in domain.ScenarioInput
	if !s.decode(w, r, &in) {
		return
	}
	if in.HorizonMonths <= 0 {
		s.badRequestMsg(w, "horizonMonths must be positive")
		return
	}
	writeJSON(w, http.StatusOK, calculation.Simulate(in))
}

// Plan runs the full pipeline over a profile snapshot.
func (s *Server) Plan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if !s.decode(w, r, &req) {
		return
	}

	parser := config.NewInputParser()
	if err := parser.ValidateProfile(&req.Profile); err != nil {
		s.badRequest(w, err)
		return
	}
	if req.Change != nil {
		if err := parser.ValidateChange(req.Change); err != nil {
			s.badRequest(w, err)
			return
		}
	}

	result, err := s.engine.BuildPlan(req.Profile, req.Change)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.badRequest(w, err)
		return false
	}
	return true
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.logger.Warnf("bad request: %v", err)
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (s *Server) badRequestMsg(w http.ResponseWriter, msg string) {
	s.logger.Warnf("bad request: %s", msg)
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
