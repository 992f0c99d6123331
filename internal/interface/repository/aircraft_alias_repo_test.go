package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAliasDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// every pooled connection would otherwise open its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&AircraftAliases{}))
	return db
}

func TestAircraftAliasSaveAndList(t *testing.T) {
	repo := NewGormAircraftAliasRepository(newAliasDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, " gelsb ", "TUG SB"))
	require.NoError(t, repo.Save(ctx, "DU", "G-BODU"))

	aliases, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, aliases, 2)
	assert.Equal(t, "DU", aliases[0].Callsign)
	assert.Equal(t, "G-BODU", aliases[0].Canonical)
	assert.Equal(t, "GELSB", aliases[1].Callsign)
	assert.Equal(t, "TUG SB", aliases[1].Canonical)
	assert.NotZero(t, aliases[1].ID)
}

func TestAircraftAliasSaveRepoints(t *testing.T) {
	repo := NewGormAircraftAliasRepository(newAliasDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "GC", "TUG GC"))
	require.NoError(t, repo.Save(ctx, "gc", "G-OCGC"))

	aliases, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	assert.Equal(t, "G-OCGC", aliases[0].Canonical)
}

func TestAircraftAliasListSkipsDeleted(t *testing.T) {
	db := newAliasDB(t)
	repo := NewGormAircraftAliasRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "SB", "TUG SB"))
	require.NoError(t, repo.Save(ctx, "OLD", "G-GONE"))
	require.NoError(t, db.Where("callsign = ?", "OLD").Delete(&AircraftAliases{}).Error)

	aliases, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	assert.Equal(t, "SB", aliases[0].Callsign)
}

func TestAircraftAliasSaveUppercasesCanonical(t *testing.T) {
	repo := NewGormAircraftAliasRepository(newAliasDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "ls8", " g-cjxx "))

	aliases, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	assert.Equal(t, "LS8", aliases[0].Callsign)
	assert.Equal(t, "G-CJXX", aliases[0].Canonical)
}
