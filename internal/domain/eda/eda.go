// Package eda computes exploratory summaries over the cleaned transaction
// set: dataset overview, temporal activity patterns, and top countries and
// products. Chart rendering stays with the visualization collaborator.
package eda

import (
	"sort"
	"time"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
)

// DefaultTopN bounds the top-countries and top-products rankings.
const DefaultTopN = 10

const hoursPerDay = 24

// Overview holds the headline dataset metrics.
type Overview struct {
	Lines         int
	Customers     int
	Orders        int // distinct invoices
	Revenue       float64
	AvgOrderValue float64
	FirstInvoice  time.Time
	LastInvoice   time.Time
}

// Count is a labeled tally, used for rankings and temporal patterns.
type Count struct {
	Label string
	Count int
}

// QuantityCount is a labeled quantity total, used for product rankings.
type QuantityCount struct {
	Label    string
	Quantity int
}

// Summarize computes the dataset overview.
func Summarize(txs []model.Transaction) Overview {
	o := Overview{Lines: len(txs)}
	if len(txs) == 0 {
		return o
	}

	customers := make(map[string]struct{})
	invoices := make(map[string]struct{})
	o.FirstInvoice = txs[0].InvoiceDate
	o.LastInvoice = txs[0].InvoiceDate
	for _, tx := range txs {
		customers[tx.CustomerID] = struct{}{}
		invoices[tx.InvoiceNo] = struct{}{}
		o.Revenue += tx.TotalPrice
		if tx.InvoiceDate.Before(o.FirstInvoice) {
			o.FirstInvoice = tx.InvoiceDate
		}
		if tx.InvoiceDate.After(o.LastInvoice) {
			o.LastInvoice = tx.InvoiceDate
		}
	}
	o.Customers = len(customers)
	o.Orders = len(invoices)
	o.AvgOrderValue = o.Revenue / float64(o.Orders)
	return o
}

// DailyCounts tallies transaction lines per calendar day, ascending by day.
func DailyCounts(txs []model.Transaction) []Count {
	counts := make(map[string]int)
	for _, tx := range txs {
		counts[tx.InvoiceDate.Format("2006-01-02")]++
	}
	out := make([]Count, 0, len(counts))
	for day, n := range counts {
		out = append(out, Count{Label: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// WeekdayCounts tallies transaction lines per weekday, Monday first.
func WeekdayCounts(txs []model.Transaction) []Count {
	var tally [7]int
	for _, tx := range txs {
		// time.Weekday starts at Sunday; rotate so Monday leads.
		tally[(int(tx.InvoiceDate.Weekday())+6)%7]++
	}
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	out := make([]Count, 0, len(days))
	for i, day := range days {
		out = append(out, Count{Label: day, Count: tally[i]})
	}
	return out
}

// HourlyCounts tallies transaction lines per hour of day, 0..23.
func HourlyCounts(txs []model.Transaction) []Count {
	var tally [hoursPerDay]int
	for _, tx := range txs {
		tally[tx.InvoiceDate.Hour()]++
	}
	out := make([]Count, 0, hoursPerDay)
	for h := 0; h < hoursPerDay; h++ {
		out = append(out, Count{Label: time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format("15:00"), Count: tally[h]})
	}
	return out
}

// TopCountries ranks countries by transaction line count, descending,
// ties broken alphabetically.
func TopCountries(txs []model.Transaction, n int) []Count {
	if n <= 0 {
		n = DefaultTopN
	}
	counts := make(map[string]int)
	for _, tx := range txs {
		counts[tx.Country]++
	}
	out := make([]Count, 0, len(counts))
	for country, c := range counts {
		out = append(out, Count{Label: country, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TopProducts ranks product descriptions by total quantity sold,
// descending, ties broken alphabetically.
func TopProducts(txs []model.Transaction, n int) []QuantityCount {
	if n <= 0 {
		n = DefaultTopN
	}
	quantities := make(map[string]int)
	for _, tx := range txs {
		quantities[tx.Description] += tx.Quantity
	}
	out := make([]QuantityCount, 0, len(quantities))
	for product, q := range quantities {
		out = append(out, QuantityCount{Label: product, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
