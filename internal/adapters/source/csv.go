package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
)

// DefaultDateLayout matches the invoice date format of the retail CSV
// export ("2010-12-01 08:26:00").
const DefaultDateLayout = "2006-01-02 15:04:05"

// csvColumns maps the expected header names to struct fields. The header
// row of the file decides column positions, so column order is free.
var csvColumns = []string{
	"InvoiceNo", "StockCode", "Description", "Quantity",
	"InvoiceDate", "UnitPrice", "CustomerID", "Country",
}

// CSVSource reads transactions from a CSV export.
type CSVSource struct {
	path       string
	dateLayout string
	progress   bool
}

// CSVOption configures a CSVSource.
type CSVOption func(*CSVSource)

// WithDateLayout overrides the layout used to parse the InvoiceDate column.
func WithDateLayout(layout string) CSVOption {
	return func(s *CSVSource) {
		if layout != "" {
			s.dateLayout = layout
		}
	}
}

// WithProgress toggles the terminal progress bar while reading.
func WithProgress(enabled bool) CSVOption {
	return func(s *CSVSource) {
		s.progress = enabled
	}
}

// NewCSVSource creates a CSV-backed source for the file at path.
func NewCSVSource(path string, opts ...CSVOption) *CSVSource {
	s := &CSVSource{
		path:       path,
		dateLayout: DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the whole file into memory. The first row must be a header
// naming at least the eight expected columns.
func (s *CSVSource) Load(ctx context.Context) ([]model.Transaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenSource, err)
	}
	defer f.Close()

	var bar *progressbar.ProgressBar
	if s.progress {
		bar = progressbar.Default(-1, "loading transactions")
		defer func() { _ = bar.Finish() }()
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrBadRecord, err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []model.Transaction
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadRecord, line+1, err)
		}
		line++

		tx, err := s.parseRecord(record, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadRecord, line, err)
		}
		out = append(out, tx)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return out, nil
}

func (s *CSVSource) parseRecord(record []string, idx map[string]int) (model.Transaction, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	quantity, err := strconv.Atoi(get("Quantity"))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parse Quantity: %w", err)
	}
	unitPrice, err := strconv.ParseFloat(get("UnitPrice"), 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parse UnitPrice: %w", err)
	}
	invoiceDate, err := time.Parse(s.dateLayout, get("InvoiceDate"))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parse InvoiceDate: %w", err)
	}

	return model.Transaction{
		InvoiceNo:   get("InvoiceNo"),
		StockCode:   get("StockCode"),
		Description: get("Description"),
		Quantity:    quantity,
		InvoiceDate: invoiceDate,
		UnitPrice:   unitPrice,
		CustomerID:  get("CustomerID"),
		Country:     get("Country"),
	}, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range csvColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrBadRecord, col)
		}
	}
	return idx, nil
}
