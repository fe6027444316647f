package service

import (
	"errors"
)

// Sentinel error kinds for this package, matchable via errors.Is.
var (
	ErrNoSource = errors.New("no transaction source configured")
)
