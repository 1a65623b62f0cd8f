package scraper

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Snapshot is the (name, price) pair extracted from one successful
// fetch-parse cycle. It is never partially populated: either both fields were
// found on the same page or no snapshot exists.
type Snapshot struct {
	Name  string
	Price decimal.Decimal
}

// ErrExhausted is returned by Retrieve when the retry budget is consumed
// without a single successful extraction.
var ErrExhausted = errors.New("retry budget exhausted")

// TransportError reports a failed GET: a network-level error or a non-2xx
// status. It is fatal for the whole run and never consumes retry budget.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %q: unexpected status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means the fetched markup could not be parsed into a document at
// all. Also fatal, aborts the run without consuming retry budget.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parsing markup: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFieldError means a selector matched nothing, or the matched text was
// unusable (e.g. a price with non-numeric residue). Recoverable: costs one
// unit of retry budget and triggers a full re-fetch.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string { return "missing field: " + e.Field }
