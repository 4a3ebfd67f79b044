package ports

import (
	"context"

	"frontier/internal/domain"
)

// SessionStore holds one evolving session record per in-flight activity,
// keyed by session id. The store enforces the absolute expiry itself: reads
// of an expired record behave exactly like reads of a missing one.
type SessionStore interface {
	// Create persists a new session. Returns ErrSessionExists if the id
	// is already present.
	Create(ctx context.Context, session *domain.Session) error

	// Get loads a live session. Returns ErrSessionNotFound for missing
	// and expired sessions alike.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// Update re-persists a session after a turn.
	Update(ctx context.Context, session *domain.Session) error

	// Delete removes a session. Deleting an absent session is not an
	// error.
	Delete(ctx context.Context, sessionID string) error
}
