package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrNoFlightData is returned when no source could be fetched for a run.
	ErrNoFlightData = errors.New("no flight data available from any source")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownSource is returned for a source tag with no registered fetcher.
	ErrUnknownSource = errors.New("unknown flight source")
)

// FetchError is a whole-batch retrieval failure for one source.
type FetchError struct {
	Source Source
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s flights: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
