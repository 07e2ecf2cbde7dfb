// Package source adapts raw provider payloads (Meta Graph JSON, Google Ads
// GAQL rows, Google Ads CSV exports, CRM leads feed) into the canonical
// campaign hierarchy. Adapters never return a partial hierarchy: either the
// payload normalizes fully or the caller gets a single UnavailableError.
package source

import "fmt"

// UnavailableError signals that an adapter could not obtain or parse its raw
// payload. An empty-but-well-formed payload is not an error; downstream
// components treat empty campaign lists as valid zero data.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func unavailable(source string, format string, args ...interface{}) error {
	return &UnavailableError{Source: source, Err: fmt.Errorf(format, args...)}
}
