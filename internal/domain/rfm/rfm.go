// Package rfm implements the RFM segmentation engine: per-customer
// recency/frequency/monetary metrics, quantile scoring, and rule-based
// segment assignment.
package rfm

import (
	"time"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
)

// DefaultBins is the default quantile bin count for each metric.
const DefaultBins = 5

// hoursPerDay converts the reference offset and recency durations.
const hoursPerDay = 24

// ScoredCustomer is a CustomerRFM with ordinal scores and a segment label.
type ScoredCustomer struct {
	model.CustomerRFM
	RScore  int
	FScore  int
	MScore  int
	Segment Segment
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRecencyBins sets the quantile bin count for the recency score.
func WithRecencyBins(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.rBins = k
		}
	}
}

// WithFrequencyBins sets the quantile bin count for the frequency score.
func WithFrequencyBins(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.fBins = k
		}
	}
}

// WithMonetaryBins sets the quantile bin count for the monetary score.
func WithMonetaryBins(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.mBins = k
		}
	}
}

// Engine scores customers against the distribution of the whole population.
// Scoring is two-pass: bin edges are derived from all customers first, then
// each customer is scored against those fixed edges.
type Engine struct {
	rBins int
	fBins int
	mBins int
}

// NewEngine creates an Engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rBins: DefaultBins,
		fBins: DefaultBins,
		mBins: DefaultBins,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultReference returns the reference time used when the caller supplies
// none: one day after the latest invoice in the transaction set. The zero
// time is returned for an empty input.
func DefaultReference(txs []model.Transaction) time.Time {
	var latest time.Time
	for _, tx := range txs {
		if tx.InvoiceDate.After(latest) {
			latest = tx.InvoiceDate
		}
	}
	if latest.IsZero() {
		return time.Time{}
	}
	return latest.Add(hoursPerDay * time.Hour)
}

// Compute reduces the transaction set to one CustomerRFM per distinct
// customer, in first-seen input order. A zero reference falls back to
// DefaultReference. Recency is not validated: a reference earlier than a
// customer's latest invoice yields negative recency, which is a caller
// input-date bug.
func Compute(txs []model.Transaction, reference time.Time) []model.CustomerRFM {
	if len(txs) == 0 {
		return nil
	}
	if reference.IsZero() {
		reference = DefaultReference(txs)
	}

	type accumulator struct {
		latest   time.Time
		invoices map[string]struct{}
		monetary float64
	}

	order := make([]string, 0)
	byCustomer := make(map[string]*accumulator)
	for _, tx := range txs {
		acc, ok := byCustomer[tx.CustomerID]
		if !ok {
			acc = &accumulator{invoices: make(map[string]struct{})}
			byCustomer[tx.CustomerID] = acc
			order = append(order, tx.CustomerID)
		}
		if tx.InvoiceDate.After(acc.latest) {
			acc.latest = tx.InvoiceDate
		}
		acc.invoices[tx.InvoiceNo] = struct{}{}
		acc.monetary += tx.TotalPrice
	}

	out := make([]model.CustomerRFM, 0, len(order))
	for _, id := range order {
		acc := byCustomer[id]
		out = append(out, model.CustomerRFM{
			CustomerID:  id,
			RecencyDays: int(reference.Sub(acc.latest).Hours() / hoursPerDay),
			Frequency:   len(acc.invoices),
			Monetary:    acc.monetary,
		})
	}
	return out
}

// Score assigns quantile scores and a segment to every customer. The input
// order is preserved and the input slice is not mutated.
//
// Recency scores descend with the metric: the most recent customers get the
// highest score. The reversal happens on the quantile rank, not by negating
// the metric, so skew in the distribution cannot shift bin edges.
func (e *Engine) Score(customers []model.CustomerRFM) []ScoredCustomer {
	if len(customers) == 0 {
		return nil
	}

	recency := make([]float64, len(customers))
	frequency := make([]float64, len(customers))
	monetary := make([]float64, len(customers))
	for i, c := range customers {
		recency[i] = float64(c.RecencyDays)
		frequency[i] = float64(c.Frequency)
		monetary[i] = c.Monetary
	}

	rEdges := quantileEdges(recency, e.rBins)
	fEdges := quantileEdges(frequency, e.fBins)
	mEdges := quantileEdges(monetary, e.mBins)
	rBins := binCount(rEdges)

	out := make([]ScoredCustomer, len(customers))
	for i, c := range customers {
		// Descending label sequence for recency: bin 1 (lowest recency)
		// maps to the highest score.
		rScore := rBins - assignBin(recency[i], rEdges) + 1
		fScore := assignBin(frequency[i], fEdges)
		mScore := assignBin(monetary[i], mEdges)
		out[i] = ScoredCustomer{
			CustomerRFM: c,
			RScore:      rScore,
			FScore:      fScore,
			MScore:      mScore,
			Segment:     Classify(rScore, fScore, e.rBins),
		}
	}
	return out
}
