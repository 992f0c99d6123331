package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flightlog-reconciler/internal/domain/entity"
)

type mockSource struct {
	mock.Mock
	tag entity.Source
}

func newMockSource(tag entity.Source) *mockSource {
	return &mockSource{tag: tag}
}

func (m *mockSource) Source() entity.Source { return m.tag }

func (m *mockSource) Flights(ctx context.Context, date string) ([]entity.FlightRecord, error) {
	args := m.Called(ctx, date)
	flights, _ := args.Get(0).([]entity.FlightRecord)
	return flights, args.Error(1)
}

// listRegistry is an ordered SourceRegistry for tests
type listRegistry struct {
	sources []FlightSource
}

func (r *listRegistry) Register(source FlightSource) { r.sources = append(r.sources, source) }

func (r *listRegistry) Get(tag entity.Source) FlightSource {
	for _, s := range r.sources {
		if s.Source() == tag {
			return s
		}
	}
	return nil
}

func (r *listRegistry) All() []FlightSource { return r.sources }

type mockFlightRepo struct {
	mock.Mock
}

func (m *mockFlightRepo) ReplaceDay(ctx context.Context, source entity.Source, date string, records []entity.FlightRecord) error {
	return m.Called(ctx, source, date, records).Error(0)
}

func (m *mockFlightRepo) FindBySourceAndDate(ctx context.Context, source entity.Source, date string) ([]entity.FlightRecord, error) {
	args := m.Called(ctx, source, date)
	records, _ := args.Get(0).([]entity.FlightRecord)
	return records, args.Error(1)
}

type mockReconRepo struct {
	mock.Mock
}

func (m *mockReconRepo) Save(ctx context.Context, rec *entity.Reconciliation) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockReconRepo) FindLatestByDate(ctx context.Context, date string) (*entity.Reconciliation, error) {
	args := m.Called(ctx, date)
	rec, _ := args.Get(0).(*entity.Reconciliation)
	return rec, args.Error(1)
}

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) Reconcile(ctx context.Context, date string) (*entity.Reconciliation, error) {
	args := m.Called(ctx, date)
	rec, _ := args.Get(0).(*entity.Reconciliation)
	return rec, args.Error(1)
}
