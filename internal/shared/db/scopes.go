// Package db provides database utilities including transaction management and query scopes.
package db

import (
	"time"

	"gorm.io/gorm"
)

// CreatedBefore is a GORM scope that filters records created strictly before the cutoff.
// Retention sweeps use this to select rows that have aged out of their window.
//
// Example usage:
//
//	db.Scopes(db.CreatedBefore(cutoff)).Delete(&Model{})
func CreatedBefore(cutoff time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at < ?", cutoff)
	}
}

// OccurredBefore is a GORM scope that filters event records whose occurrence time
// is strictly before the cutoff. Usage events key retention on occurred_at rather
// than created_at because backfilled events may be inserted late.
func OccurredBefore(cutoff time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("occurred_at < ?", cutoff)
	}
}
