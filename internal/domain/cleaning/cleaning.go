// Package cleaning filters raw transaction lines down to the records the
// analytical stages trust: known customer, positive quantity and price,
// no cancellations.
package cleaning

import (
	"strings"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
)

// cancellationPrefix marks cancelled invoices in the source dataset.
const cancellationPrefix = "C"

// Report counts what Clean discarded and kept.
type Report struct {
	Input            int
	Kept             int
	MissingCustomer  int
	NonPositiveQty   int
	NonPositivePrice int
	Cancellations    int
}

// Clean returns the transactions that satisfy the input contract of the
// downstream stages, with TotalPrice filled in. The input slice is not
// modified. Filter order matters for the report counts: a line is charged
// to the first rule that rejects it.
func Clean(txs []model.Transaction) ([]model.Transaction, Report) {
	report := Report{Input: len(txs)}
	out := make([]model.Transaction, 0, len(txs))

	for _, tx := range txs {
		switch {
		case strings.TrimSpace(tx.CustomerID) == "":
			report.MissingCustomer++
		case tx.Quantity <= 0:
			report.NonPositiveQty++
		case tx.UnitPrice <= 0:
			report.NonPositivePrice++
		case strings.HasPrefix(tx.InvoiceNo, cancellationPrefix):
			report.Cancellations++
		default:
			tx.TotalPrice = float64(tx.Quantity) * tx.UnitPrice
			out = append(out, tx)
		}
	}

	report.Kept = len(out)
	return out, report
}
