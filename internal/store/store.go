// Package store holds the GORM-backed persistence collaborators. Each store is
// constructed with the process-owned *gorm.DB and handed to services
// explicitly.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
