package source

import (
	"errors"
)

// Sentinel error kinds for this package, matchable via errors.Is.
var (
	ErrOpenSource = errors.New("open source failed")
	ErrBadRecord  = errors.New("bad record")
)
