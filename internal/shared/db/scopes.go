package db

import (
	"gorm.io/gorm"
)

// StatusIn restricts a query to rows whose status column is one of statuses.
// An empty list leaves the query unfiltered.
func StatusIn(statuses ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(statuses) == 0 {
			return db
		}
		return db.Where("status IN ?", statuses)
	}
}

// NewestFirst orders by created_at descending, breaking ties on id.
func NewestFirst() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC")
	}
}

// Limit caps the result size; non-positive values are ignored.
func Limit(n int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if n <= 0 {
			return db
		}
		return db.Limit(n)
	}
}
