package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"frontier/internal/domain"
	"frontier/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaSessionStore implements ports.SessionStore on Nakama storage.
//
// Nakama storage has no native TTL, so the absolute expiry rides inside the
// record and reads evict lazily: an expired record is deleted on sight and
// reported as absent. Callers cannot tell expiry apart from absence, which
// is exactly the contract.
type NakamaSessionStore struct {
	nk  runtime.NakamaModule
	now func() time.Time
}

// NewNakamaSessionStore creates a session store adapter. now may be nil to
// use time.Now.
func NewNakamaSessionStore(nk runtime.NakamaModule, now func() time.Time) *NakamaSessionStore {
	if now == nil {
		now = time.Now
	}
	return &NakamaSessionStore{nk: nk, now: now}
}

// Create persists a new session with a create-only write.
func (a *NakamaSessionStore) Create(ctx context.Context, session *domain.Session) error {
	value, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      CollectionSessions,
			Key:             session.ID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return fmt.Errorf("%w: %s", ports.ErrSessionExists, session.ID)
		}
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Get loads a live session, evicting it first when expired.
func (a *NakamaSessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	reads := []*runtime.StorageRead{
		{Collection: CollectionSessions, Key: sessionID},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if len(objects) == 0 {
		return nil, ports.ErrSessionNotFound
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(objects[0].Value), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if session.Expired(a.now()) {
		_ = a.Delete(ctx, sessionID)
		return nil, ports.ErrSessionNotFound
	}
	return &session, nil
}

// Update re-persists a session. Last write wins; concurrent turns against
// one session are a client protocol violation, not something the store
// serializes.
func (a *NakamaSessionStore) Update(ctx context.Context, session *domain.Session) error {
	value, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      CollectionSessions,
			Key:             session.ID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Delete removes a session; deleting an absent session succeeds.
func (a *NakamaSessionStore) Delete(ctx context.Context, sessionID string) error {
	deletes := []*runtime.StorageDelete{
		{Collection: CollectionSessions, Key: sessionID},
	}
	if err := a.nk.StorageDelete(ctx, deletes); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

var _ ports.SessionStore = (*NakamaSessionStore)(nil)
