package domain

import "errors"

var (
	ErrNoSamples     = errors.New("no samples")
	ErrZeroBasePrice = errors.New("zero base price")
)
