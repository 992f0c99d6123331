package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"flightlog-reconciler/internal/app"
	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/internal/infrastructure/config"
	"flightlog-reconciler/internal/infrastructure/router"
	repo "flightlog-reconciler/internal/interface/repository"
	"flightlog-reconciler/internal/usecase"
	"flightlog-reconciler/pkg/logger"
	"flightlog-reconciler/pkg/utils"
)

type staticSource struct {
	tag     entity.Source
	flights []entity.FlightRecord
	err     error
}

func (s staticSource) Source() entity.Source { return s.tag }

func (s staticSource) Flights(context.Context, string) ([]entity.FlightRecord, error) {
	return s.flights, s.err
}

func record(source entity.Source, uuid, cn, takeoff, launch string, note *string) entity.FlightRecord {
	return entity.FlightRecord{
		UUID:       uuid,
		CN:         cn,
		Takeoff:    utils.StringPtr(takeoff),
		LaunchType: utils.StringPtr(launch),
		Note:       note,
		Source:     source,
	}
}

func testCLI(t *testing.T, a *app.App) (*cli, *config.Config) {
	t.Helper()
	cfg := &config.Config{GlidingAppAPIToken: "token", AerologHeaderRow: 5, ReconcileInterval: time.Minute, MatchTolerance: 180 * time.Second}
	c := newCLI()
	c.loadConfig = func() (*config.Config, error) { return cfg, nil }
	c.build = func(context.Context, *config.Config, logger.Logger) (*app.App, error) { return a, nil }
	return c, cfg
}

func testApp(sources ...usecase.FlightSource) *app.App {
	registry := router.NewSourceRegistry(logger.NewNopLogger())
	for _, s := range sources {
		registry.Register(s)
	}
	return &app.App{
		Registry:  registry,
		Processor: usecase.NewReconcileProcessor(registry, 0, nil, nil, nil, logger.NewNopLogger()),
	}
}

func run(t *testing.T, c *cli, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := c.root()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCompare(t *testing.T) {
	a := testApp(
		staticSource{tag: entity.SourceGlidingApp, flights: []entity.FlightRecord{
			record(entity.SourceGlidingApp, "g1", "G-BODU", "10:02", "winch", utils.StringPtr("cable break")),
			record(entity.SourceGlidingApp, "g2", "K8", "11:00", "winch", nil),
		}},
		staticSource{tag: entity.SourceKTrax, flights: []entity.FlightRecord{
			record(entity.SourceKTrax, "1", "G-BODU", "10:03", "winch", nil),
		}},
		staticSource{tag: entity.SourceAerolog, err: errors.New("workbook missing")},
	)
	c, _ := testCLI(t, a)

	out, err := run(t, c, "compare", "--date", "2025-06-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Flights which are in Gliding.App but not in Ktrax: 1 flights")
	assert.Contains(t, out, "Flights which are in Ktrax but not in Gliding.App: 0 flights")
	assert.Contains(t, out, "Aerolog unavailable: workbook missing")
	assert.Contains(t, out, "K8")
	assert.Contains(t, out, "cable break")
}

func TestCompareFailsWithoutData(t *testing.T) {
	a := testApp(staticSource{tag: entity.SourceGlidingApp, err: errors.New("401")})
	c, _ := testCLI(t, a)

	_, err := run(t, c, "compare", "--date", "2025-06-01")
	assert.ErrorIs(t, err, entity.ErrNoFlightData)
}

func TestCompareAppliesTolerance(t *testing.T) {
	c, cfg := testCLI(t, testApp(staticSource{tag: entity.SourceGlidingApp}))

	_, err := run(t, c, "compare", "--date", "2025-06-01", "--tolerance", "60")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.MatchTolerance)
	assert.Zero(t, cfg.SourceCacheTTL)
}

func TestCompareValidatesConfig(t *testing.T) {
	c, cfg := testCLI(t, testApp())
	cfg.GlidingAppAPIToken = ""

	_, err := run(t, c, "compare")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GLIDINGAPP_API_TOKEN")
}

func TestList(t *testing.T) {
	a := testApp(staticSource{tag: entity.SourceKTrax, flights: []entity.FlightRecord{
		record(entity.SourceKTrax, "1", "G-BODU", "10:03", "tow", nil),
		record(entity.SourceKTrax, "2", "TUG SB", "10:03", "tug", nil),
	}})
	c, _ := testCLI(t, a)

	out, err := run(t, c, "list", "kt", "--date", "2025-06-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Ktrax flights on 2025-06-01")
	assert.Contains(t, out, "G-BODU")
	assert.NotContains(t, out, "TUG SB")

	out, err = run(t, c, "list", "kt", "--date", "2025-06-01", "--include-tows", "--group=false")
	require.NoError(t, err)
	assert.Contains(t, out, "TUG SB")
}

func TestListRejectsUnknownSource(t *testing.T) {
	c, _ := testCLI(t, testApp())

	_, err := run(t, c, "list", "xx")
	assert.ErrorIs(t, err, entity.ErrUnknownSource)

	_, err = run(t, c, "list")
	assert.Error(t, err)
}

func TestAlias(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&repo.AircraftAliases{}))

	a := testApp()
	a.AliasRepo = repo.NewGormAircraftAliasRepository(db)
	c, _ := testCLI(t, a)

	out, err := run(t, c, "alias", "add", "gocgc", "TUG GC")
	require.NoError(t, err)
	assert.Contains(t, out, "gocgc -> TUG GC")

	out, err = run(t, c, "alias", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "GOCGC")
	assert.Contains(t, out, "TUG GC")
}

func TestAliasNeedsPostgres(t *testing.T) {
	c, _ := testCLI(t, testApp())

	_, err := run(t, c, "alias", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestVersion(t *testing.T) {
	c, _ := testCLI(t, testApp())

	out, err := run(t, c, "version")
	require.NoError(t, err)
	assert.Equal(t, "flightcheck dev\n", out)
}
