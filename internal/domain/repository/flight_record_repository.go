package repository

import (
	"context"

	"flightlog-reconciler/internal/domain/entity"
)

// FlightRecordRepository stores normalized flights per source and date
type FlightRecordRepository interface {
	// ReplaceDay makes records the stored copy of source for date
	ReplaceDay(ctx context.Context, source entity.Source, date string, records []entity.FlightRecord) error
	FindBySourceAndDate(ctx context.Context, source entity.Source, date string) ([]entity.FlightRecord, error)
}
