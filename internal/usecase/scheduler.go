package usecase

import (
	"context"
	"time"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/pkg/logger"
)

// Reconciler runs a reconciliation for one date
type Reconciler interface {
	Reconcile(ctx context.Context, date string) (*entity.Reconciliation, error)
}

// DefaultInterval is used when a scheduler is built without a positive interval
const DefaultInterval = 5 * time.Minute

// Scheduler re-reconciles the current day at a fixed interval
type Scheduler struct {
	reconciler Reconciler
	interval   time.Duration
	logger     logger.Logger
	now        func() time.Time
}

// NewScheduler creates a new scheduler
func NewScheduler(reconciler Reconciler, interval time.Duration, logger logger.Logger) *Scheduler {
	if interval <= 0 {
		logger.Warn("Non-positive reconcile interval, using default", "interval", interval.String(), "default", DefaultInterval.String())
		interval = DefaultInterval
	}
	return &Scheduler{
		reconciler: reconciler,
		interval:   interval,
		logger:     logger,
		now:        time.Now,
	}
}

// Run reconciles today immediately and then on every tick until ctx is done
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Reconcile scheduler started", "interval", s.interval.String())
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reconcile scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	date := s.now().Format(dateLayout)
	rec, err := s.reconciler.Reconcile(ctx, date)
	if err != nil {
		s.logger.Error("Scheduled reconciliation failed", "date", date, "error", err)
		return
	}

	unmatched := 0
	for _, c := range rec.Comparisons {
		unmatched += len(c.Unmatched)
	}
	s.logger.Info("Scheduled reconciliation finished", "date", date, "run_id", rec.ID, "unmatched", unmatched)
}
