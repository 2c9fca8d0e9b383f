package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gammaflip/internal/gex"
)

// Server serves the latest exposure snapshots over HTTP.
type Server struct {
	store  *Store
	logger *zap.Logger
}

func NewServer(store *Store, logger *zap.Logger) *Server {
	return &Server{store: store, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTickers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"tickers": s.store.Tickers()})
}

// handleGex returns the full latest snapshot for a ticker: per-strike
// aggregates, total gamma, the profile and the flip point.
func (s *Server) handleGex(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	res, ok := s.store.Get(ticker)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no analysis available for " + ticker})
		return
	}

	s.writeJSON(w, http.StatusOK, res)
}

// handleProfile returns only the spot-level profile curves and flip point.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	res, ok := s.store.Get(ticker)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no analysis available for " + ticker})
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Ticker    string      `json:"ticker"`
		Spot      float64     `json:"spot"`
		Profile   gex.Profile `json:"profile"`
		ZeroGamma *float64    `json:"zero_gamma,omitempty"`
	}{
		Ticker:    res.Ticker,
		Spot:      res.Spot,
		Profile:   res.Profile,
		ZeroGamma: res.ZeroGamma,
	})
}
