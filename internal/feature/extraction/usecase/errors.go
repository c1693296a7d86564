// Package usecase implements the ordered text-extraction chain.
package usecase

import "errors"

var (
	// ErrNoText is returned by a strategy that parsed the input but found no text,
	// e.g. an image-only PDF.
	ErrNoText = errors.New("no text extracted")

	// ErrUnsupportedFormat is returned when a strategy cannot read the input at all.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
