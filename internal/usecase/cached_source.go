package usecase

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"flightlog-reconciler/internal/domain/entity"
)

// CachedSource remembers successful fetches per date for a while. Records are
// never mutated after normalization, so callers share the cached slice.
type CachedSource struct {
	next  FlightSource
	cache *cache.Cache
}

// NewCachedSource wraps next with a cache whose entries live for ttl
func NewCachedSource(next FlightSource, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:  next,
		cache: cache.New(ttl, ttl*2),
	}
}

// Source returns the tag of the wrapped source
func (s *CachedSource) Source() entity.Source {
	return s.next.Source()
}

// Flights serves date from the cache, fetching on a miss. Failures are not cached.
func (s *CachedSource) Flights(ctx context.Context, date string) ([]entity.FlightRecord, error) {
	if cached, found := s.cache.Get(date); found {
		return cached.([]entity.FlightRecord), nil
	}

	flights, err := s.next.Flights(ctx, date)
	if err != nil {
		return nil, err
	}
	s.cache.Set(date, flights, cache.DefaultExpiration)
	return flights, nil
}

// Invalidate drops the cached flights of date
func (s *CachedSource) Invalidate(date string) {
	s.cache.Delete(date)
}
