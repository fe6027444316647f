// Package source loads raw transaction lines from the configured backend:
// a CSV export of the retail dataset, or a Postgres/MySQL table holding
// the same columns.
package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
)

// Source yields the full raw transaction set for one analysis run.
type Source interface {
	// Load reads every transaction line, honoring ctx for cancellation.
	Load(ctx context.Context) ([]model.Transaction, error)
}

// transactionQuery is the column contract shared by the SQL sources. The
// table mirrors the CSV export of the retail dataset.
const transactionQuery = `
SELECT invoice_no, stock_code, description, quantity, invoice_date, unit_price, customer_id, country
FROM transactions
ORDER BY invoice_date, invoice_no`

// scanTransactions drains rows into transactions. Nullable text columns
// collapse to the empty string, matching what cleaning expects.
func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var out []model.Transaction
	for rows.Next() {
		var (
			tx          model.Transaction
			description sql.NullString
			customerID  sql.NullString
			country     sql.NullString
		)
		if err := rows.Scan(&tx.InvoiceNo, &tx.StockCode, &description, &tx.Quantity,
			&tx.InvoiceDate, &tx.UnitPrice, &customerID, &country); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		tx.Description = description.String
		tx.CustomerID = customerID.String
		tx.Country = country.String
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read transaction rows: %w", err)
	}
	return out, nil
}
