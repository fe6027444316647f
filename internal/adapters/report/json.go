package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONExporter writes the whole document as one pretty-printed JSON file.
type JSONExporter struct {
	dir string
}

// NewJSONExporter creates an exporter writing under dir.
func NewJSONExporter(dir string) *JSONExporter {
	return &JSONExporter{dir: dir}
}

// Export writes "analysis_<timestamp>.json" and returns its path.
func (e *JSONExporter) Export(ctx context.Context, doc *Document) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create output dir: %w", ErrExport, err)
	}

	path := TimestampedFilename(e.dir, "analysis", "json", doc.GeneratedAt)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrExport, filepath.Base(path), err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", ErrExport, filepath.Base(path), err)
	}
	return []string{path}, nil
}
