package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/pkg/logger"
)

func runScheduler(t *testing.T, reconciler Reconciler, wantCalls int, calls <-chan string) {
	t.Helper()
	s := NewScheduler(reconciler, 10*time.Millisecond, logger.NewNopLogger())
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	for i := 0; i < wantCalls; i++ {
		select {
		case date := <-calls:
			assert.Equal(t, testDate, date)
		case <-time.After(2 * time.Second):
			t.Fatalf("scheduler made %d of %d calls", i, wantCalls)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func recordingReconciler(rec *entity.Reconciliation, err error) (*mockReconciler, chan string) {
	calls := make(chan string, 1)
	r := new(mockReconciler)
	r.On("Reconcile", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		select {
		case calls <- args.String(1):
		default:
		}
	}).Return(rec, err)
	return r, calls
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r, calls := recordingReconciler(&entity.Reconciliation{
		ID:          "run-1",
		Comparisons: []entity.Comparison{{Unmatched: make([]entity.FlightRecord, 2)}},
	}, nil)
	runScheduler(t, r, 3, calls)
}

func TestScheduler_KeepsRunningAfterFailure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r, calls := recordingReconciler(nil, errors.Join(entity.ErrNoFlightData, errors.New("offline")))
	runScheduler(t, r, 2, calls)
}

func TestNewScheduler_NonPositiveIntervalUsesDefault(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		s := NewScheduler(new(mockReconciler), interval, logger.NewNopLogger())
		assert.Equal(t, DefaultInterval, s.interval)
	}
}

func TestScheduler_ZeroIntervalDoesNotPanic(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r, calls := recordingReconciler(&entity.Reconciliation{ID: "run-1"}, nil)
	s := NewScheduler(r, 0, logger.NewNopLogger())
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NotPanics(t, func() { s.Run(ctx) })
	}()

	select {
	case date := <-calls:
		assert.Equal(t, testDate, date)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never reconciled")
	}
	cancel()
	<-done
}
