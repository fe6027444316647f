package api

import (
	"fmt"
	"net/http"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/rfm"
)

// SegmentsHandler serves segment populations and per-segment customer lists.
type SegmentsHandler struct {
	provider DocumentProvider
}

// NewSegmentsHandler creates a new segments handler.
func NewSegmentsHandler(provider DocumentProvider) *SegmentsHandler {
	return &SegmentsHandler{provider: provider}
}

type segmentsResponse struct {
	RunID    string              `json:"run_id"`
	Segments map[rfm.Segment]int `json:"segments"`
}

type segmentCustomersResponse struct {
	RunID     string               `json:"run_id"`
	Segment   rfm.Segment          `json:"segment"`
	Customers []rfm.ScoredCustomer `json:"customers"`
}

// HandleSegments handles GET /api/segments requests. Without parameters it
// returns the population per segment; with ?segment=<name> it lists the
// customers of that segment.
func (h *SegmentsHandler) HandleSegments(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	doc, ok := latest(w, r, h.provider)
	if !ok {
		return
	}

	name := r.URL.Query().Get("segment")
	if name == "" {
		writeJSON(w, http.StatusOK, segmentsResponse{RunID: doc.RunID, Segments: doc.Segments})
		return
	}

	segment := rfm.Segment(name)
	if _, known := doc.Segments[segment]; !known {
		writeError(w, http.StatusBadRequest, "unknown_segment", fmt.Errorf("unknown segment %q", name))
		return
	}

	customers := make([]rfm.ScoredCustomer, 0)
	for _, c := range doc.Customers {
		if c.Segment == segment {
			customers = append(customers, c)
		}
	}
	writeJSON(w, http.StatusOK, segmentCustomersResponse{
		RunID:     doc.RunID,
		Segment:   segment,
		Customers: customers,
	})
}
