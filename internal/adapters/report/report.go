// Package report assembles and exports the result document of an
// analysis run as JSON or CSV files under the configured output dir.
package report

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/churn"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/cleaning"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/clv"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/eda"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/rfm"
)

// Document is the full output of one analysis run.
type Document struct {
	RunID       string               `json:"run_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Reference   time.Time            `json:"reference"`
	Cleaning    cleaning.Report      `json:"cleaning"`
	Duplicates  int                  `json:"duplicates"`
	Customers   []rfm.ScoredCustomer `json:"customers"`
	Segments    map[rfm.Segment]int  `json:"segments"`
	Churn       churn.Summary        `json:"churn"`
	Features    []churn.Features     `json:"churn_features"`
	CLV         []clv.SegmentValue   `json:"clv_by_segment"`
	EDA         EDASection           `json:"eda"`
}

// EDASection bundles the exploratory views of the cleaned dataset.
type EDASection struct {
	Overview     eda.Overview        `json:"overview"`
	Daily        []eda.Count         `json:"daily"`
	Weekdays     []eda.Count         `json:"weekdays"`
	Hours        []eda.Count         `json:"hours"`
	TopCountries []eda.Count         `json:"top_countries"`
	TopProducts  []eda.QuantityCount `json:"top_products"`
}

// SegmentCounts tallies customers per segment, with every known segment
// present even when empty.
func SegmentCounts(customers []rfm.ScoredCustomer) map[rfm.Segment]int {
	counts := make(map[rfm.Segment]int, len(rfm.Segments()))
	for _, seg := range rfm.Segments() {
		counts[seg] = 0
	}
	for _, c := range customers {
		counts[c.Segment]++
	}
	return counts
}

// Exporter persists a document somewhere and reports the paths written.
type Exporter interface {
	Export(ctx context.Context, doc *Document) ([]string, error)
}

// TimestampedFilename builds "<dir>/<name>_<timestamp>.<ext>" so repeated
// runs never clobber each other.
func TimestampedFilename(dir, name, ext string, at time.Time) string {
	stamp := at.Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", name, stamp, ext))
}
