package session

import (
	"context"
)

// Repository defines the interface for planning session storage.
// Implementations return errors.ErrSessionNotFound for unknown IDs.
type Repository interface {
	// Create stores a new session under its ID
	Create(ctx context.Context, sess *Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*Session, error)

	// Update replaces the stored session state
	Update(ctx context.Context, sess *Session) error
}
