package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/rfm"
)

// CSVExporter writes the tabular parts of the document as CSV files:
// the scored customer table, the segment counts, and CLV by segment.
type CSVExporter struct {
	dir string
}

// NewCSVExporter creates an exporter writing under dir.
func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{dir: dir}
}

// Export writes one CSV per table and returns the paths written.
func (e *CSVExporter) Export(ctx context.Context, doc *Document) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create output dir: %w", ErrExport, err)
	}

	var paths []string
	writers := []struct {
		name  string
		write func(*csv.Writer) error
	}{
		{"customers", e.writeCustomers(doc)},
		{"segments", e.writeSegments(doc)},
		{"churn_features", e.writeChurn(doc)},
		{"clv_by_segment", e.writeCLV(doc)},
	}
	for _, w := range writers {
		path, err := e.writeFile(w.name, doc, w.write)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (e *CSVExporter) writeFile(name string, doc *Document, write func(*csv.Writer) error) (string, error) {
	path := TimestampedFilename(e.dir, name, "csv", doc.GeneratedAt)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %w", ErrExport, filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return "", fmt.Errorf("%w: write %s: %w", ErrExport, filepath.Base(path), err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: flush %s: %w", ErrExport, filepath.Base(path), err)
	}
	return path, nil
}

func (e *CSVExporter) writeCustomers(doc *Document) func(*csv.Writer) error {
	return func(w *csv.Writer) error {
		header := []string{"customer_id", "recency_days", "frequency", "monetary", "r_score", "f_score", "m_score", "segment"}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, c := range doc.Customers {
			record := []string{
				c.CustomerID,
				strconv.Itoa(c.RecencyDays),
				strconv.Itoa(c.Frequency),
				strconv.FormatFloat(c.Monetary, 'f', 2, 64),
				strconv.Itoa(c.RScore),
				strconv.Itoa(c.FScore),
				strconv.Itoa(c.MScore),
				string(c.Segment),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	}
}

func (e *CSVExporter) writeSegments(doc *Document) func(*csv.Writer) error {
	return func(w *csv.Writer) error {
		if err := w.Write([]string{"segment", "customers"}); err != nil {
			return err
		}
		segments := make([]string, 0, len(doc.Segments))
		for seg := range doc.Segments {
			segments = append(segments, string(seg))
		}
		sort.Strings(segments)
		for _, seg := range segments {
			record := []string{seg, strconv.Itoa(doc.Segments[rfm.Segment(seg)])}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	}
}

func (e *CSVExporter) writeChurn(doc *Document) func(*csv.Writer) error {
	return func(w *csv.Writer) error {
		header := []string{
			"customer_id", "lifetime_days", "total_transactions", "unique_invoices",
			"total_quantity", "avg_quantity", "std_quantity", "total_spend",
			"avg_spend", "std_spend", "avg_order_value", "purchase_frequency", "churned",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, f := range doc.Features {
			record := []string{
				f.CustomerID,
				strconv.Itoa(f.LifetimeDays),
				strconv.Itoa(f.TotalTransactions),
				strconv.Itoa(f.UniqueInvoices),
				strconv.Itoa(f.TotalQuantity),
				strconv.FormatFloat(f.AvgQuantity, 'f', 2, 64),
				strconv.FormatFloat(f.StdQuantity, 'f', 2, 64),
				strconv.FormatFloat(f.TotalSpend, 'f', 2, 64),
				strconv.FormatFloat(f.AvgSpend, 'f', 2, 64),
				strconv.FormatFloat(f.StdSpend, 'f', 2, 64),
				strconv.FormatFloat(f.AvgOrderValue, 'f', 2, 64),
				strconv.FormatFloat(f.PurchaseFrequency, 'f', 4, 64),
				strconv.FormatBool(f.Churned),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	}
}

func (e *CSVExporter) writeCLV(doc *Document) func(*csv.Writer) error {
	return func(w *csv.Writer) error {
		if err := w.Write([]string{"segment", "customers", "avg_clv"}); err != nil {
			return err
		}
		for _, row := range doc.CLV {
			record := []string{
				string(row.Segment),
				strconv.Itoa(row.Customers),
				strconv.FormatFloat(row.AvgCLV, 'f', 2, 64),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	}
}
