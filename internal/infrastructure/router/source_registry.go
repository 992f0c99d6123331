package router

import (
	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/internal/usecase"
	"flightlog-reconciler/pkg/logger"
)

// SourceRegistry routes source tags to their fetchers
type SourceRegistry struct {
	sources []usecase.FlightSource
	logger  logger.Logger
}

// NewSourceRegistry creates a new source registry
func NewSourceRegistry(logger logger.Logger) *SourceRegistry {
	return &SourceRegistry{
		sources: make([]usecase.FlightSource, 0),
		logger:  logger,
	}
}

// Register registers a source. A source with the same tag is replaced in place.
func (r *SourceRegistry) Register(source usecase.FlightSource) {
	for i, existing := range r.sources {
		if existing.Source() == source.Source() {
			r.sources[i] = source
			r.logger.Info("Replaced flight source", "source", source.Source())
			return
		}
	}
	r.sources = append(r.sources, source)
	r.logger.Info("Registered flight source", "source", source.Source())
}

// Get returns the source registered for tag
func (r *SourceRegistry) Get(tag entity.Source) usecase.FlightSource {
	for _, source := range r.sources {
		if source.Source() == tag {
			return source
		}
	}
	return nil
}

// All returns the registered sources in order
func (r *SourceRegistry) All() []usecase.FlightSource {
	out := make([]usecase.FlightSource, len(r.sources))
	copy(out, r.sources)
	return out
}
