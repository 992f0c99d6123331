// Package app assembles the reconciler from configuration. Both the service
// and the command line tool start from here.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/api/option"

	"flightlog-reconciler/internal/domain/repository"
	"flightlog-reconciler/internal/infrastructure/config"
	"flightlog-reconciler/internal/infrastructure/oauth"
	"flightlog-reconciler/internal/infrastructure/persistence"
	"flightlog-reconciler/internal/infrastructure/router"
	"flightlog-reconciler/internal/interface/aerolog"
	"flightlog-reconciler/internal/interface/glidingapp"
	"flightlog-reconciler/internal/interface/ktrax"
	repo "flightlog-reconciler/internal/interface/repository"
	"flightlog-reconciler/internal/usecase"
	"flightlog-reconciler/pkg/callsign"
	"flightlog-reconciler/pkg/logger"
	"flightlog-reconciler/pkg/metrics"
	"flightlog-reconciler/pkg/normalizer"
)

// App holds the wired components
type App struct {
	Processor *usecase.ReconcileProcessor
	Registry  *router.SourceRegistry
	Metrics   *metrics.Metrics
	Resolver  *callsign.Resolver
	// AliasRepo is nil unless POSTGRES_DSN is set
	AliasRepo repository.AircraftAliasRepository

	mongoClient *mongo.Client
	logger      logger.Logger
}

// New builds the application. Postgres and MongoDB are only contacted when
// their DSNs are configured; sources are always registered in GA, KT, AL order.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, reg prometheus.Registerer) (*App, error) {
	a := &App{logger: log}

	aliases := callsign.DefaultAliases()
	if cfg.PostgresURI != "" {
		db, err := persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&repo.AircraftAliases{}); err != nil {
			return nil, fmt.Errorf("migrate aircraft aliases: %w", err)
		}
		a.AliasRepo = repo.NewGormAircraftAliasRepository(db)
		stored, err := a.AliasRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aircraft aliases: %w", err)
		}
		extra := make(map[string]string, len(stored))
		for _, alias := range stored {
			extra[alias.Callsign] = alias.Canonical
		}
		aliases = callsign.Merge(aliases, extra)
		log.Info("Loaded aircraft aliases", "stored", len(stored))
	}
	a.Resolver = callsign.NewResolver(aliases)

	var flightRepo repository.FlightRecordRepository
	var reconRepo repository.ReconciliationRepository
	if cfg.MongoURI != "" {
		client, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			return nil, err
		}
		a.mongoClient = client
		db := persistence.GetDatabase(client, cfg.MongoDB)
		flightRepo = repo.NewMongoFlightRecordRepository(db)
		reconRepo = repo.NewMongoReconciliationRepository(db)
	}

	a.Registry = router.NewSourceRegistry(log)
	if err := a.registerSources(ctx, cfg); err != nil {
		a.Close(ctx)
		return nil, err
	}

	a.Metrics = metrics.NewMetrics("flightlog", reg)
	a.Processor = usecase.NewReconcileProcessor(a.Registry, cfg.MatchTolerance, flightRepo, reconRepo, a.Metrics, log)
	return a, nil
}

func (a *App) registerSources(ctx context.Context, cfg *config.Config) error {
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	a.register(cfg, usecase.NewGlidingAppSource(
		glidingapp.NewClient(cfg.GlidingAppBaseURL, cfg.GlidingAppAPIToken, httpClient, a.logger),
		normalizer.NewGlidingApp(a.Resolver),
	))
	a.register(cfg, usecase.NewKTraxSource(
		ktrax.NewClient(cfg.KTraxURL, cfg.KTraxAirfieldID, cfg.KTraxTimezone, httpClient, a.logger),
		normalizer.NewKTrax(a.Resolver),
	))

	var reader usecase.AerologReader
	switch {
	case cfg.AerologDriveFileID != "":
		ts := oauth.NewDriveOAuth(cfg.DriveClientID, cfg.DriveClientSecret, cfg.DriveRefreshToken, a.logger).TokenSource(ctx)
		driveReader, err := aerolog.NewDriveReader(ctx, cfg.AerologDriveFileID, cfg.AerologSheet, cfg.AerologHeaderRow, a.logger,
			option.WithTokenSource(ts))
		if err != nil {
			return err
		}
		reader = driveReader
	case cfg.AerologPath != "":
		reader = aerolog.NewWorkbookReader(cfg.AerologPath, cfg.AerologSheet, cfg.AerologHeaderRow, a.logger)
	default:
		a.logger.Info("Aerolog source disabled: set AEROLOG_PATH or AEROLOG_DRIVE_FILE_ID")
		return nil
	}
	a.register(cfg, usecase.NewAerologSource(reader, normalizer.NewAerolog(a.Resolver)))
	return nil
}

func (a *App) register(cfg *config.Config, source usecase.FlightSource) {
	if cfg.SourceCacheTTL > 0 {
		source = usecase.NewCachedSource(source, cfg.SourceCacheTTL)
	}
	a.Registry.Register(source)
}

// Close releases the database connections
func (a *App) Close(ctx context.Context) error {
	if a.mongoClient == nil {
		return nil
	}
	return a.mongoClient.Disconnect(ctx)
}
