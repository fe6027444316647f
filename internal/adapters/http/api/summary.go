package api

import (
	"net/http"
	"time"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/cleaning"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/clv"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/eda"
)

// SummaryHandler serves the run-level overview.
type SummaryHandler struct {
	provider DocumentProvider
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(provider DocumentProvider) *SummaryHandler {
	return &SummaryHandler{provider: provider}
}

type summaryResponse struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Reference   time.Time          `json:"reference"`
	Cleaning    cleaning.Report    `json:"cleaning"`
	Overview    eda.Overview       `json:"overview"`
	CLV         []clv.SegmentValue `json:"clv_by_segment"`
}

// HandleSummary handles GET /api/summary requests.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	doc, ok := latest(w, r, h.provider)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		RunID:       doc.RunID,
		GeneratedAt: doc.GeneratedAt,
		Reference:   doc.Reference,
		Cleaning:    doc.Cleaning,
		Overview:    doc.EDA.Overview,
		CLV:         doc.CLV,
	})
}
