// Package clv prepares buy-till-you-die model inputs and joins predicted
// customer lifetime values against RFM segments. Fitting BG/NBD or
// Gamma-Gamma distributions is an external statistical collaborator; this
// package owns the deterministic data preparation around it.
package clv

import (
	"sort"
	"time"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/rfm"
)

const hoursPerDay = 24

// Summary is the per-customer input row for a BTYD model. Frequency counts
// repeat invoices only: the first purchase is excluded, so the table keeps
// just customers who came back at least once with positive spend.
type Summary struct {
	CustomerID  string
	AgeDays     int     // days between first purchase and the dataset's last date
	RecencyDays int     // days between last purchase and the dataset's last date
	Frequency   int     // distinct invoices minus one
	Monetary    float64 // total spend
}

// Prediction is a predicted lifetime value for one customer.
type Prediction struct {
	CustomerID        string
	ExpectedPurchases float64
	ExpectedValue     float64 // expected spend per purchase
	CLV               float64
}

// Prepare reduces transactions to one Summary per repeat customer, in
// first-seen input order. One-time buyers and customers without positive
// spend are excluded, mirroring what the downstream fitters accept.
func Prepare(txs []model.Transaction) []Summary {
	if len(txs) == 0 {
		return nil
	}

	type accumulator struct {
		first, last time.Time
		invoices    map[string]struct{}
		monetary    float64
	}

	var lastDate time.Time
	order := make([]string, 0)
	byCustomer := make(map[string]*accumulator)
	for _, tx := range txs {
		if tx.InvoiceDate.After(lastDate) {
			lastDate = tx.InvoiceDate
		}
		acc, ok := byCustomer[tx.CustomerID]
		if !ok {
			acc = &accumulator{first: tx.InvoiceDate, last: tx.InvoiceDate, invoices: make(map[string]struct{})}
			byCustomer[tx.CustomerID] = acc
			order = append(order, tx.CustomerID)
		}
		if tx.InvoiceDate.Before(acc.first) {
			acc.first = tx.InvoiceDate
		}
		if tx.InvoiceDate.After(acc.last) {
			acc.last = tx.InvoiceDate
		}
		acc.invoices[tx.InvoiceNo] = struct{}{}
		acc.monetary += tx.TotalPrice
	}

	out := make([]Summary, 0, len(order))
	for _, id := range order {
		acc := byCustomer[id]
		frequency := len(acc.invoices) - 1
		if frequency <= 0 || acc.monetary <= 0 {
			continue
		}
		out = append(out, Summary{
			CustomerID:  id,
			AgeDays:     int(lastDate.Sub(acc.first).Hours() / hoursPerDay),
			RecencyDays: int(lastDate.Sub(acc.last).Hours() / hoursPerDay),
			Frequency:   frequency,
			Monetary:    acc.monetary,
		})
	}
	return out
}

// SegmentValue is the average predicted CLV across one segment.
type SegmentValue struct {
	Segment   rfm.Segment
	Customers int
	AvgCLV    float64
}

// BySegment joins predictions against scored customers by customer id and
// averages CLV per segment, highest first. Customers missing from either
// side are skipped.
func BySegment(predictions []Prediction, scored []rfm.ScoredCustomer) []SegmentValue {
	segmentOf := make(map[string]rfm.Segment, len(scored))
	for _, s := range scored {
		segmentOf[s.CustomerID] = s.Segment
	}

	totals := make(map[rfm.Segment]float64)
	counts := make(map[rfm.Segment]int)
	for _, p := range predictions {
		segment, ok := segmentOf[p.CustomerID]
		if !ok {
			continue
		}
		totals[segment] += p.CLV
		counts[segment]++
	}

	out := make([]SegmentValue, 0, len(totals))
	for segment, total := range totals {
		out = append(out, SegmentValue{
			Segment:   segment,
			Customers: counts[segment],
			AvgCLV:    total / float64(counts[segment]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgCLV != out[j].AvgCLV {
			return out[i].AvgCLV > out[j].AvgCLV
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}
