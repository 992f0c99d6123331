package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/internal/domain/repository"
	"flightlog-reconciler/pkg/logger"
	"flightlog-reconciler/pkg/matcher"
	"flightlog-reconciler/pkg/metrics"
	"flightlog-reconciler/pkg/report"
)

const dateLayout = "2006-01-02"

// ReconcileProcessor fetches every registered source for a date and compares
// each ordered pair of the sources that answered.
type ReconcileProcessor struct {
	registry   SourceRegistry
	matcher    matcher.Matcher
	flightRepo repository.FlightRecordRepository
	reconRepo  repository.ReconciliationRepository
	metrics    *metrics.Metrics
	logger     logger.Logger
	now        func() time.Time
}

// NewReconcileProcessor creates a new reconcile processor. The repositories
// and metrics are optional and may be nil.
func NewReconcileProcessor(
	registry SourceRegistry,
	tolerance time.Duration,
	flightRepo repository.FlightRecordRepository,
	reconRepo repository.ReconciliationRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *ReconcileProcessor {
	return &ReconcileProcessor{
		registry:   registry,
		matcher:    matcher.New(tolerance),
		flightRepo: flightRepo,
		reconRepo:  reconRepo,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Today returns the current local date as YYYY-MM-DD
func (p *ReconcileProcessor) Today() string {
	return p.now().Format(dateLayout)
}

type fetchResult struct {
	source  entity.Source
	flights []entity.FlightRecord
	err     error
}

// Reconcile runs one fetch-and-compare pass for date. It fails only when the
// date is malformed or no source could be fetched; single source failures are
// reported in Reconciliation.FetchErrors.
func (p *ReconcileProcessor) Reconcile(ctx context.Context, date string) (*entity.Reconciliation, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		if p.metrics != nil {
			p.metrics.ReconcileDuration.Observe(time.Since(start).Seconds())
		}
	}()

	rec := &entity.Reconciliation{
		ID:               uuid.NewString(),
		Date:             date,
		RunAt:            p.now().UTC(),
		ToleranceSeconds: int(p.matcher.Tolerance / time.Second),
		Flights:          make(map[entity.Source][]entity.FlightRecord),
		Counts:           make(map[entity.Source]entity.LaunchCounts),
		Comparisons:      make([]entity.Comparison, 0),
	}
	log := p.logger.With("run_id", rec.ID, "date", date)

	var fetched []entity.Source
	var fetchErrs []error
	for _, res := range p.fetchAll(ctx, date) {
		if res.err != nil {
			fetchErr := &entity.FetchError{Source: res.source, Err: res.err}
			fetchErrs = append(fetchErrs, fetchErr)
			if rec.FetchErrors == nil {
				rec.FetchErrors = make(map[entity.Source]string)
			}
			rec.FetchErrors[res.source] = res.err.Error()
			log.Warn("Source fetch failed", "source", res.source, "error", res.err)
			if p.metrics != nil {
				p.metrics.FetchErrors.WithLabelValues(res.source.String()).Inc()
			}
			continue
		}

		flights := res.flights
		if flights == nil {
			flights = make([]entity.FlightRecord, 0)
		}
		fetched = append(fetched, res.source)
		rec.Flights[res.source] = flights
		rec.Counts[res.source] = report.CountByLaunchType(flights)
		log.Info("Fetched flights", "source", res.source, "count", len(flights))
		if p.metrics != nil {
			p.metrics.FlightsNormalized.WithLabelValues(res.source.String()).Add(float64(len(flights)))
		}
		p.storeFlights(ctx, log, res.source, date, flights)
	}

	if len(fetched) == 0 {
		if p.metrics != nil {
			p.metrics.ErrorsCount.WithLabelValues("reconcile").Inc()
		}
		return nil, errors.Join(append([]error{entity.ErrNoFlightData}, fetchErrs...)...)
	}

	for _, primary := range fetched {
		for _, reference := range fetched {
			if primary == reference {
				continue
			}
			unmatched := p.matcher.FindUnmatched(rec.Flights[primary], rec.Flights[reference])
			rec.Comparisons = append(rec.Comparisons, entity.Comparison{
				Primary:   primary,
				Reference: reference,
				Unmatched: unmatched,
			})
			if p.metrics != nil {
				p.metrics.UnmatchedFlights.WithLabelValues(primary.String(), reference.String()).Set(float64(len(unmatched)))
			}
		}
	}

	if p.reconRepo != nil {
		if err := p.reconRepo.Save(ctx, rec); err != nil {
			log.Error("Failed to save reconciliation", "error", err)
			if p.metrics != nil {
				p.metrics.ErrorsCount.WithLabelValues("save_reconciliation").Inc()
			}
		}
	}

	log.Info("Reconciliation completed", "sources", len(fetched), "failed", len(fetchErrs), "comparisons", len(rec.Comparisons))
	return rec, nil
}

// fetchAll queries every source concurrently and returns the results in registry order
func (p *ReconcileProcessor) fetchAll(ctx context.Context, date string) []fetchResult {
	sources := p.registry.All()
	results := make([]fetchResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src FlightSource) {
			defer wg.Done()
			flights, err := src.Flights(ctx, date)
			results[i] = fetchResult{source: src.Source(), flights: flights, err: err}
		}(i, src)
	}
	wg.Wait()
	return results
}

func (p *ReconcileProcessor) storeFlights(ctx context.Context, log logger.Logger, source entity.Source, date string, flights []entity.FlightRecord) {
	if p.flightRepo == nil {
		return
	}
	if err := p.flightRepo.ReplaceDay(ctx, source, date, flights); err != nil {
		log.Error("Failed to store flights", "source", source, "error", err)
		if p.metrics != nil {
			p.metrics.ErrorsCount.WithLabelValues("store_flights").Inc()
		}
	}
}

// Flights lists one source for date. When the live fetch fails and an earlier
// copy was stored, the stored copy is returned instead.
func (p *ReconcileProcessor) Flights(ctx context.Context, source entity.Source, date string) ([]entity.FlightRecord, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	src := p.registry.Get(source)
	if src == nil {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownSource, source)
	}

	flights, err := src.Flights(ctx, date)
	if err == nil {
		if flights == nil {
			flights = make([]entity.FlightRecord, 0)
		}
		return flights, nil
	}

	if p.metrics != nil {
		p.metrics.FetchErrors.WithLabelValues(source.String()).Inc()
	}
	fetchErr := &entity.FetchError{Source: source, Err: err}
	if p.flightRepo == nil {
		return nil, fetchErr
	}
	stored, storeErr := p.flightRepo.FindBySourceAndDate(ctx, source, date)
	if storeErr != nil || len(stored) == 0 {
		return nil, fetchErr
	}
	p.logger.Warn("Serving stored flights after fetch failure", "source", source, "date", date, "error", err)
	return stored, nil
}

// LatestReconciliation returns the last persisted run for date
func (p *ReconcileProcessor) LatestReconciliation(ctx context.Context, date string) (*entity.Reconciliation, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	if p.reconRepo == nil {
		return nil, entity.ErrNotFound
	}
	return p.reconRepo.FindLatestByDate(ctx, date)
}

// ValidateDate checks that date is a calendar date in YYYY-MM-DD form
func ValidateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", entity.ErrInvalidDate, date)
	}
	return nil
}
