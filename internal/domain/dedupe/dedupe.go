// Package dedupe drops exact duplicate invoice lines from the raw feed.
// The retail export repeats lines when an invoice is re-emitted, so the
// same (invoice, product, quantity, timestamp) tuple can appear twice.
package dedupe

import (
	"fmt"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
)

// KeyFunc derives the identity of one invoice line.
type KeyFunc func(tx model.Transaction) string

// DefaultKey treats two lines as the same when every column that carries
// order content matches. Description is left out: it varies for the same
// stock code across exports.
func DefaultKey(tx model.Transaction) string {
	return fmt.Sprintf("%s|%s|%d|%d|%.4f|%s",
		tx.InvoiceNo, tx.StockCode, tx.Quantity, tx.InvoiceDate.Unix(), tx.UnitPrice, tx.CustomerID)
}

type filter struct {
	key KeyFunc
}

// Option applies a configuration option to the filter.
type Option func(*filter)

// WithKeyFunc overrides how line identity is derived.
func WithKeyFunc(key KeyFunc) Option {
	return func(f *filter) {
		if key != nil {
			f.key = key
		}
	}
}

// Lines returns the input without duplicate lines, keeping the first
// occurrence and the original order, plus the number of lines dropped.
func Lines(txs []model.Transaction, opts ...Option) ([]model.Transaction, int) {
	f := &filter{key: DefaultKey}
	for _, opt := range opts {
		opt(f)
	}

	seen := make(map[string]struct{}, len(txs))
	out := make([]model.Transaction, 0, len(txs))
	dropped := 0
	for _, tx := range txs {
		k := f.key(tx)
		if _, ok := seen[k]; ok {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		out = append(out, tx)
	}
	return out, dropped
}
