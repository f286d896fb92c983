// Package store persists the user-reward table. The service is handed a
// Store at construction so backends can be swapped without touching the
// engine logic.
package store

import (
	"context"
	"errors"

	"github.com/AkshitTiwarii/carbonx/internal/models"
)

// ErrNotFound is returned when a user has no persisted record.
var ErrNotFound = errors.New("user record not found")

// Store is the persistence boundary for user reward records.
type Store interface {
	// Load returns the entire user table.
	Load(ctx context.Context) (map[string]*models.UserRecord, error)
	// GetUser returns one user's record, or ErrNotFound.
	GetUser(ctx context.Context, userID string) (*models.UserRecord, error)
	// SaveUser persists one user's record.
	SaveUser(ctx context.Context, userID string, rec *models.UserRecord) error
	// Update atomically applies fn to a user's record and persists the
	// result. fn receives the current persisted record, or a fresh one
	// when the user has none, and mutates it in place; nothing is
	// persisted when fn returns an error. The whole load-modify-save
	// cycle runs under the store's serialization, so concurrent updates
	// to the same user cannot lose writes.
	Update(ctx context.Context, userID string, fn func(rec *models.UserRecord) error) error
}

// Backupper is implemented by stores that support point-in-time copies
// of their data, used by the scheduled backup job.
type Backupper interface {
	Backup(ctx context.Context) error
}
