// Package api exposes the analysis pipeline over HTTP for the browser
// extension: POST /analyze and GET /health.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/veritas-checks/veritas/internal/annotate"
	"github.com/veritas-checks/veritas/internal/model"
)

// Analyzer is the pipeline surface the server depends on
type Analyzer interface {
	Analyze(ctx context.Context, text string, maxClaims int) (*model.AnalysisResult, error)
}

// AnalyzeRequest is the JSON body accepted by POST /analyze
type AnalyzeRequest struct {
	URL         string `json:"url,omitempty"`
	Title       string `json:"title,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Text        string `json:"text"`
	MaxClaims   int    `json:"max_claims,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the analysis API
type Server struct {
	analyzer Analyzer
	cfg      model.ServerConfig
	logger   *zap.Logger
	http     *http.Server
}

// NewServer builds the server and its routes
func NewServer(analyzer Analyzer, cfg model.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{analyzer: analyzer, cfg: cfg, logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost, http.MethodOptions)
	router.Use(s.corsMiddleware, s.loggingMiddleware)

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown or failure
func (s *Server) ListenAndServe() error {
	s.logger.Info("api listening", zap.String("addr", s.cfg.Addr))
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the routed handler for tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "mode": "retrieval-only"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if len(req.Text) < s.cfg.MinTextLength {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "text too short to analyze",
		})
		return
	}
	if req.MaxClaims < 0 || req.MaxClaims > s.cfg.MaxClaimsCap {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "max_claims out of range",
		})
		return
	}

	ctx := r.Context()
	if s.cfg.DeadlineSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.DeadlineSec)*time.Second)
		defer cancel()
	}

	result, err := s.analyzer.Analyze(ctx, req.Text, req.MaxClaims)
	if err != nil {
		if errors.Is(err, annotate.ErrAnnotatorUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Error: "linguistic annotator unavailable",
			})
			return
		}
		s.logger.Error("analyze failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "analysis failed"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
