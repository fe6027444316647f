package report

import (
	"errors"
)

// Sentinel error kinds for this package, matchable via errors.Is.
var (
	ErrExport     = errors.New("export failed")
	ErrNoDocument = errors.New("no analysis run yet")
)
