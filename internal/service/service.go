// Package service implements the entity-store operations: create, search,
// update, and delete for sports, events, and selections, with the cascade
// engine running inside the same unit of work as the triggering write.
package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"sportsbook/internal/apperr"
)

// columnName maps a wire field key onto its column; the query string uses
// hyphens where the schema uses underscores.
func columnName(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), "-", "_")
}

// storeErr classifies a repository failure. Duplicate-key violations are
// client conflicts; everything else is a storage fault.
func storeErr(err error, conflict string, args ...any) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(conflict, args...)
	}
	return apperr.Storage(err)
}
