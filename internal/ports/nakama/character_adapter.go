package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"frontier/internal/domain"
	"frontier/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaCharacterAdapter implements ports.CharacterPort over the character
// document stored per user.
type NakamaCharacterAdapter struct {
	nk              runtime.NakamaModule
	energyPerMinute float64
}

// NewNakamaCharacterAdapter creates a character adapter. energyPerMinute
// must match the orchestrator's regeneration rate so spends and checks agree.
func NewNakamaCharacterAdapter(nk runtime.NakamaModule, energyPerMinute float64) *NakamaCharacterAdapter {
	return &NakamaCharacterAdapter{nk: nk, energyPerMinute: energyPerMinute}
}

func (a *NakamaCharacterAdapter) read(ctx context.Context, characterID string) (ports.Character, string, error) {
	reads := []*runtime.StorageRead{
		{Collection: CollectionCharacters, Key: KeyCharacterProfile, UserID: characterID},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return ports.Character{}, "", fmt.Errorf("failed to read character: %w", err)
	}
	if len(objects) == 0 {
		return ports.Character{}, "", fmt.Errorf("%w: %s", ports.ErrCharacterNotFound, characterID)
	}

	var char ports.Character
	if err := json.Unmarshal([]byte(objects[0].Value), &char); err != nil {
		return ports.Character{}, "", fmt.Errorf("failed to unmarshal character: %w", err)
	}
	char.ID = characterID
	return char, objects[0].Version, nil
}

func (a *NakamaCharacterAdapter) write(ctx context.Context, char ports.Character, version string) error {
	value, err := json.Marshal(char)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      CollectionCharacters,
			Key:             KeyCharacterProfile,
			UserID:          char.ID,
			Value:           string(value),
			Version:         version,
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write character: %w", err)
	}
	return nil
}

// Get loads the character document.
func (a *NakamaCharacterAdapter) Get(ctx context.Context, characterID string) (ports.Character, error) {
	char, _, err := a.read(ctx, characterID)
	return char, err
}

// XP needed to move off a level grows linearly.
func xpToNextLevel(level int) int64 {
	return int64(level+1) * 100
}

// GrantXP credits experience to a suit-keyed skill and applies level-ups.
func (a *NakamaCharacterAdapter) GrantXP(ctx context.Context, characterID, suit string, xp int64) error {
	if xp <= 0 {
		return nil
	}

	char, version, err := a.read(ctx, characterID)
	if err != nil {
		return err
	}
	if char.Skills == nil {
		char.Skills = make(map[string]ports.SkillState)
	}

	state := char.Skills[suit]
	state.XP += xp
	for state.XP >= xpToNextLevel(state.Level) {
		state.XP -= xpToNextLevel(state.Level)
		state.Level++
	}
	char.Skills[suit] = state

	return a.write(ctx, char, version)
}

// SpendEnergy debits energy after folding in regeneration as of the given
// time. The regenerated value is persisted alongside the debit so the next
// regeneration window starts now.
func (a *NakamaCharacterAdapter) SpendEnergy(ctx context.Context, characterID string, amount int, at time.Time) error {
	if amount <= 0 {
		return nil
	}

	char, version, err := a.read(ctx, characterID)
	if err != nil {
		return err
	}

	energy := domain.RegeneratedEnergy(char.Energy, char.MaxEnergy, char.EnergyUpdatedAt, at, a.energyPerMinute)
	energy -= amount
	if energy < 0 {
		energy = 0
	}
	char.Energy = energy
	char.EnergyUpdatedAt = at

	return a.write(ctx, char, version)
}

// StampCooldown records the earliest next start time for an action.
func (a *NakamaCharacterAdapter) StampCooldown(ctx context.Context, characterID, actionID string, until time.Time) error {
	char, version, err := a.read(ctx, characterID)
	if err != nil {
		return err
	}
	if char.Cooldowns == nil {
		char.Cooldowns = make(map[string]time.Time)
	}
	char.Cooldowns[actionID] = until

	return a.write(ctx, char, version)
}

var _ ports.CharacterPort = (*NakamaCharacterAdapter)(nil)
