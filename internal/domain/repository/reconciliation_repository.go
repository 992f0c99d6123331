package repository

import (
	"context"

	"flightlog-reconciler/internal/domain/entity"
)

// ReconciliationRepository keeps the history of reconciliation runs
type ReconciliationRepository interface {
	Save(ctx context.Context, rec *entity.Reconciliation) error
	// FindLatestByDate returns entity.ErrNotFound when no run exists for date
	FindLatestByDate(ctx context.Context, date string) (*entity.Reconciliation, error)
}
