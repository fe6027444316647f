// Package api serves the latest analysis results over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hzlparlak/Crm-Analytics/internal/adapters/report"
)

// DocumentProvider hands out the analysis document of the latest run.
// Using an interface keeps the handler layer loosely coupled to the
// pipeline that produces documents.
type DocumentProvider interface {
	Latest(ctx context.Context) (*report.Document, error)
}

// Server wires HTTP routes for the report API.
type Server struct {
	healthHandler   *HealthHandler
	summaryHandler  *SummaryHandler
	segmentsHandler *SegmentsHandler
	churnHandler    *ChurnHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(provider DocumentProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		summaryHandler:  NewSummaryHandler(provider),
		segmentsHandler: NewSegmentsHandler(provider),
		churnHandler:    NewChurnHandler(provider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/api/summary", MetricsMiddleware(s.summaryHandler.HandleSummary, "summary"))
	mux.HandleFunc("/api/segments", MetricsMiddleware(s.segmentsHandler.HandleSegments, "segments"))
	mux.HandleFunc("/api/churn", MetricsMiddleware(s.churnHandler.HandleChurn, "churn"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// latest resolves the provider's document and translates the no-run-yet
// condition to 404 for the caller.
func latest(w http.ResponseWriter, r *http.Request, provider DocumentProvider) (*report.Document, bool) {
	doc, err := provider.Latest(r.Context())
	if err != nil {
		if errors.Is(err, report.ErrNoDocument) {
			writeError(w, http.StatusNotFound, "no_document", err)
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return nil, false
	}
	return doc, true
}

// requireGet rejects non-GET methods with 405.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return false
	}
	return true
}
