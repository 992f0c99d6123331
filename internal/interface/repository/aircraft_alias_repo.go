package repository

import (
	"context"
	"strings"
	"time"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAircraftAliasRepository implements the AircraftAliasRepository interface
type GormAircraftAliasRepository struct {
	db *gorm.DB
}

// NewGormAircraftAliasRepository creates a new GORM aircraft alias repository
func NewGormAircraftAliasRepository(db *gorm.DB) repository.AircraftAliasRepository {
	return &GormAircraftAliasRepository{
		db: db,
	}
}

// AircraftAliases GORM model for database mapping
type AircraftAliases struct {
	ID        uint           `gorm:"primaryKey"`
	Callsign  string         `gorm:"column:callsign;uniqueIndex;not null"`
	Canonical string         `gorm:"column:canonical;not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (AircraftAliases) TableName() string {
	return "m_aircraft_aliases"
}

// List returns every active alias ordered by callsign
func (r *GormAircraftAliasRepository) List(ctx context.Context) ([]entity.AircraftAlias, error) {
	var rows []AircraftAliases
	if err := r.db.WithContext(ctx).Order("callsign").Find(&rows).Error; err != nil {
		return nil, err
	}

	aliases := make([]entity.AircraftAlias, 0, len(rows))
	for _, row := range rows {
		aliases = append(aliases, entity.AircraftAlias{
			ID:        row.ID,
			Callsign:  row.Callsign,
			Canonical: row.Canonical,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			DeletedAt: row.DeletedAt,
		})
	}
	return aliases, nil
}

// Save creates the alias or repoints an existing callsign to a new canonical id
func (r *GormAircraftAliasRepository) Save(ctx context.Context, callsign, canonical string) error {
	row := AircraftAliases{
		Callsign:  strings.ToUpper(strings.TrimSpace(callsign)),
		Canonical: strings.ToUpper(strings.TrimSpace(canonical)),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "callsign"}},
		DoUpdates: clause.AssignmentColumns([]string{"canonical", "updated_at"}),
	}).Create(&row).Error
}
