package usecase

import (
	"context"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/pkg/normalizer"
)

// GlidingAppFetcher is the raw GlidingApp client
type GlidingAppFetcher interface {
	FetchFlights(ctx context.Context, date string) ([]normalizer.GlidingAppFlight, error)
}

// KTraxFetcher is the raw KTrax client
type KTraxFetcher interface {
	FetchSorties(ctx context.Context, date string) ([]normalizer.KTraxSortie, error)
}

// AerologReader yields every row of the Aerolog export regardless of date
type AerologReader interface {
	ReadRows(ctx context.Context) ([]normalizer.AerologRow, error)
}

// GlidingAppSource adapts the GlidingApp client to FlightSource
type GlidingAppSource struct {
	client     GlidingAppFetcher
	normalizer *normalizer.GlidingApp
}

// NewGlidingAppSource creates a GlidingApp flight source
func NewGlidingAppSource(client GlidingAppFetcher, n *normalizer.GlidingApp) *GlidingAppSource {
	return &GlidingAppSource{client: client, normalizer: n}
}

// Source returns entity.SourceGlidingApp
func (s *GlidingAppSource) Source() entity.Source {
	return entity.SourceGlidingApp
}

// Flights fetches and normalizes the GlidingApp flights of date
func (s *GlidingAppSource) Flights(ctx context.Context, date string) ([]entity.FlightRecord, error) {
	raw, err := s.client.FetchFlights(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Normalize(raw), nil
}

// KTraxSource adapts the KTrax client to FlightSource
type KTraxSource struct {
	client     KTraxFetcher
	normalizer *normalizer.KTrax
}

// NewKTraxSource creates a KTrax flight source
func NewKTraxSource(client KTraxFetcher, n *normalizer.KTrax) *KTraxSource {
	return &KTraxSource{client: client, normalizer: n}
}

// Source returns entity.SourceKTrax
func (s *KTraxSource) Source() entity.Source {
	return entity.SourceKTrax
}

// Flights fetches and normalizes the KTrax sorties of date
func (s *KTraxSource) Flights(ctx context.Context, date string) ([]entity.FlightRecord, error) {
	raw, err := s.client.FetchSorties(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Normalize(raw), nil
}

// AerologSource adapts an Aerolog workbook reader to FlightSource
type AerologSource struct {
	reader     AerologReader
	normalizer *normalizer.Aerolog
}

// NewAerologSource creates an Aerolog flight source
func NewAerologSource(reader AerologReader, n *normalizer.Aerolog) *AerologSource {
	return &AerologSource{reader: reader, normalizer: n}
}

// Source returns entity.SourceAerolog
func (s *AerologSource) Source() entity.Source {
	return entity.SourceAerolog
}

// Flights reads the export and keeps the rows flown on date
func (s *AerologSource) Flights(ctx context.Context, date string) ([]entity.FlightRecord, error) {
	rows, err := s.reader.ReadRows(ctx)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Normalize(date, rows)
}
