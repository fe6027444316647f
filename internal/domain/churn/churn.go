// Package churn flags inactive customers and builds per-customer feature
// tables for churn prediction. Model training itself is an external
// collaborator; this package only prepares its deterministic inputs.
package churn

import (
	"math"
	"time"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
)

// DefaultInactivityThreshold is the inactivity window, in days, beyond
// which a customer counts as churned.
const DefaultInactivityThreshold = 90

const (
	hoursPerDay  = 24
	daysPerMonth = 30
)

// Status is the churn flag for one customer.
type Status struct {
	CustomerID            string
	LastPurchase          time.Time
	DaysSinceLastPurchase int
	Churned               bool
}

// Summary aggregates churn across the population.
type Summary struct {
	Statuses []Status
	Churned  int
	Active   int
	Rate     float64
}

// Features is the per-customer input row for a churn model. Spread
// statistics use the sample standard deviation and fall back to zero for
// customers with a single line.
type Features struct {
	CustomerID        string
	LifetimeDays      int // days between first and last purchase
	TotalTransactions int // raw line count
	UniqueInvoices    int
	TotalQuantity     int
	AvgQuantity       float64
	StdQuantity       float64
	TotalSpend        float64
	AvgSpend          float64
	StdSpend          float64
	AvgOrderValue     float64 // spend per distinct invoice
	PurchaseFrequency float64 // invoices per 30-day month of lifetime
	Churned           bool
}

// Flag marks every customer churned whose last purchase is strictly more
// than thresholdDays before the latest invoice in the dataset. Customers
// keep first-seen input order.
func Flag(txs []model.Transaction, thresholdDays int) Summary {
	if thresholdDays <= 0 {
		thresholdDays = DefaultInactivityThreshold
	}
	if len(txs) == 0 {
		return Summary{}
	}

	var lastDate time.Time
	order := make([]string, 0)
	latest := make(map[string]time.Time)
	for _, tx := range txs {
		if tx.InvoiceDate.After(lastDate) {
			lastDate = tx.InvoiceDate
		}
		if prev, ok := latest[tx.CustomerID]; !ok {
			latest[tx.CustomerID] = tx.InvoiceDate
			order = append(order, tx.CustomerID)
		} else if tx.InvoiceDate.After(prev) {
			latest[tx.CustomerID] = tx.InvoiceDate
		}
	}

	s := Summary{Statuses: make([]Status, 0, len(order))}
	for _, id := range order {
		days := int(lastDate.Sub(latest[id]).Hours() / hoursPerDay)
		churned := days > thresholdDays
		if churned {
			s.Churned++
		} else {
			s.Active++
		}
		s.Statuses = append(s.Statuses, Status{
			CustomerID:            id,
			LastPurchase:          latest[id],
			DaysSinceLastPurchase: days,
			Churned:               churned,
		})
	}
	s.Rate = float64(s.Churned) / float64(len(s.Statuses))
	return s
}

// BuildFeatures reduces the transaction set to one feature row per
// customer, in first-seen input order.
func BuildFeatures(txs []model.Transaction, thresholdDays int) []Features {
	if thresholdDays <= 0 {
		thresholdDays = DefaultInactivityThreshold
	}
	if len(txs) == 0 {
		return nil
	}

	type accumulator struct {
		first, last time.Time
		invoices    map[string]struct{}
		quantities  []float64
		spends      []float64
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
		acc.quantities = append(acc.quantities, float64(tx.Quantity))
		acc.spends = append(acc.spends, tx.TotalPrice)
	}

	out := make([]Features, 0, len(order))
	for _, id := range order {
		acc := byCustomer[id]
		lifetime := int(acc.last.Sub(acc.first).Hours() / hoursPerDay)
		sinceLast := int(lastDate.Sub(acc.last).Hours() / hoursPerDay)
		totalQty := sum(acc.quantities)
		totalSpend := sum(acc.spends)

		f := Features{
			CustomerID:        id,
			LifetimeDays:      lifetime,
			TotalTransactions: len(acc.spends),
			UniqueInvoices:    len(acc.invoices),
			TotalQuantity:     int(totalQty),
			AvgQuantity:       totalQty / float64(len(acc.quantities)),
			StdQuantity:       sampleStd(acc.quantities),
			TotalSpend:        totalSpend,
			AvgSpend:          totalSpend / float64(len(acc.spends)),
			StdSpend:          sampleStd(acc.spends),
			AvgOrderValue:     totalSpend / float64(len(acc.invoices)),
			Churned:           sinceLast > thresholdDays,
		}
		// Single-day customers have no lifetime to normalize by.
		if lifetime > 0 {
			f.PurchaseFrequency = float64(len(acc.invoices)) / (float64(lifetime) / daysPerMonth)
		}
		out = append(out, f)
	}
	return out
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// sampleStd is the standard deviation with Bessel's correction, zero for
// fewer than two observations.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := sum(values) / float64(len(values))
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
