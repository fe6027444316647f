// Package model contains domain models passed between pipeline stages.
package model

import "time"

// Transaction represents a single invoice line from the retail dataset.
// Fields mirror the columns of the Online Retail export.
type Transaction struct {
	InvoiceNo   string    // invoice identifier; cancellations carry a "C" prefix
	StockCode   string    // product code
	Description string    // product description
	Quantity    int       // units sold on this line
	InvoiceDate time.Time // invoice timestamp
	UnitPrice   float64   // price per unit
	CustomerID  string    // customer identifier; empty when the sale was anonymous
	Country     string    // customer country
	TotalPrice  float64   // Quantity * UnitPrice, filled in by cleaning
}

// CustomerRFM holds the per-customer recency/frequency/monetary metrics
// derived from the full transaction set for a fixed reference time.
type CustomerRFM struct {
	CustomerID  string
	RecencyDays int     // days between the reference time and the latest invoice
	Frequency   int     // count of distinct invoices, always >= 1
	Monetary    float64 // total spend over the observed period
}
