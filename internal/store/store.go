// Package store owns durable CRUD for accounts, report documents, and the
// shared starter templates. Every operation is one short transaction or a
// plain read; the store keeps no state between calls.
package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Error taxonomy. Callers match with errors.Is; the HTTP layer maps each
// to a status code.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorage      = errors.New("storage failure")
)

// Store is the document store over a GORM connection.
type Store struct {
	db *gorm.DB
}

// New returns a Store using the given connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// periodLabel derives the reporting-period label from the calendar year,
// e.g. "2026-2027".
func periodLabel(now time.Time) string {
	year := now.Year()
	return fmt.Sprintf("%d-%d", year, year+1)
}

// storageErr wraps an engine failure into the taxonomy.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
