package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"frontier/internal/domain"
	"frontier/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaResultStore implements ports.ResultStore. Records are keyed by
// session id and written create-only, so a retried resolve that already
// recorded its result cannot overwrite the audit row.
type NakamaResultStore struct {
	nk runtime.NakamaModule
}

// NewNakamaResultStore creates a result store adapter.
func NewNakamaResultStore(nk runtime.NakamaModule) *NakamaResultStore {
	return &NakamaResultStore{nk: nk}
}

// Write persists an immutable action result record.
func (a *NakamaResultStore) Write(ctx context.Context, record domain.ActionResultRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal result record: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      CollectionResults,
			Key:             record.SessionID,
			UserID:          record.CharacterID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		// A rejected version means a prior resolve attempt got this far;
		// the record is already durable.
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return nil
		}
		return fmt.Errorf("failed to write result record: %w", err)
	}
	return nil
}

var _ ports.ResultStore = (*NakamaResultStore)(nil)
