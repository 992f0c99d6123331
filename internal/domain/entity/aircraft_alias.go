package entity

import (
	"time"

	"gorm.io/gorm"
)

// AircraftAlias maps a radio callsign variant to a canonical aircraft identifier
type AircraftAlias struct {
	ID        uint
	Callsign  string
	Canonical string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
