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

// Starter character values.
const (
	starterEnergy    = 100
	starterMaxEnergy = 100
)

// NakamaBootstrapAdapter implements ports.BootstrapPort using Nakama storage
// plus wallet updates. The character document write uses Version "*" inside
// a MultiUpdate, so the document and the starting gold land atomically and
// at most once.
type NakamaBootstrapAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaBootstrapAdapter creates a new bootstrap adapter.
func NewNakamaBootstrapAdapter(nk runtime.NakamaModule) *NakamaBootstrapAdapter {
	return &NakamaBootstrapAdapter{nk: nk}
}

// InitializeCharacterOnce writes the starter character and grants starting
// gold atomically. Returns created=false when the character already exists.
func (a *NakamaBootstrapAdapter) InitializeCharacterOnce(ctx context.Context, userID string, startingGold int64, metadata map[string]interface{}) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID is required")
	}
	if startingGold < 0 {
		return false, fmt.Errorf("startingGold must not be negative")
	}

	starter := ports.Character{
		ID:              userID,
		Energy:          starterEnergy,
		MaxEnergy:       starterMaxEnergy,
		EnergyUpdatedAt: time.Now().UTC(),
		Skills: map[string]ports.SkillState{
			domain.SuitSpades:   {},
			domain.SuitHearts:   {},
			domain.SuitClubs:    {},
			domain.SuitDiamonds: {},
		},
		Cooldowns: map[string]time.Time{},
	}
	value, err := json.Marshal(starter)
	if err != nil {
		return false, fmt.Errorf("failed to marshal starter character: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{
		{
			Collection:      CollectionCharacters,
			Key:             KeyCharacterProfile,
			UserID:          userID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	walletUpdates := []*runtime.WalletUpdate{
		{
			UserID:    userID,
			Changeset: map[string]int64{"gold": startingGold},
			Metadata:  metadata,
		},
	}

	_, _, err = a.nk.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to bootstrap character: %w", err)
	}

	return true, nil
}

var _ ports.BootstrapPort = (*NakamaBootstrapAdapter)(nil)
