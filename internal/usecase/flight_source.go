package usecase

import (
	"context"

	"flightlog-reconciler/internal/domain/entity"
)

// FlightSource delivers the normalized flights one source logged on a date
type FlightSource interface {
	// Source returns the tag the records of this source carry
	Source() entity.Source

	// Flights fetches and normalizes the flights of date (YYYY-MM-DD)
	Flights(ctx context.Context, date string) ([]entity.FlightRecord, error)
}

// SourceRegistry keeps the configured sources in registration order
type SourceRegistry interface {
	// Register adds a source, replacing one with the same tag
	Register(source FlightSource)

	// Get returns the source for tag or nil
	Get(tag entity.Source) FlightSource

	// All returns the sources in registration order
	All() []FlightSource
}
