package repository

import (
	"context"

	"flightlog-reconciler/internal/domain/entity"
)

// AircraftAliasRepository defines the interface for callsign alias operations
type AircraftAliasRepository interface {
	List(ctx context.Context) ([]entity.AircraftAlias, error)
	Save(ctx context.Context, callsign, canonical string) error
}
