package api

import (
	"net/http"
)

// ChurnHandler serves the churn summary of the latest run.
type ChurnHandler struct {
	provider DocumentProvider
}

// NewChurnHandler creates a new churn handler.
func NewChurnHandler(provider DocumentProvider) *ChurnHandler {
	return &ChurnHandler{provider: provider}
}

type churnResponse struct {
	RunID   string  `json:"run_id"`
	Churned int     `json:"churned"`
	Active  int     `json:"active"`
	Rate    float64 `json:"rate"`
}

// HandleChurn handles GET /api/churn requests.
func (h *ChurnHandler) HandleChurn(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	doc, ok := latest(w, r, h.provider)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, churnResponse{
		RunID:   doc.RunID,
		Churned: doc.Churn.Churned,
		Active:  doc.Churn.Active,
		Rate:    doc.Churn.Rate,
	})
}
