package ports

import (
	"context"
	"time"
)

// SkillState tracks one suit-keyed skill.
type SkillState struct {
	Level int   `json:"level"`
	XP    int64 `json:"xp"`
}

// Character is the engine's view of a character document. Only the fields
// the resolution engine reads or writes appear here.
type Character struct {
	ID              string                `json:"id"`
	Energy          int                   `json:"energy"`
	MaxEnergy       int                   `json:"max_energy"`
	EnergyUpdatedAt time.Time             `json:"energy_updated_at"`
	Skills          map[string]SkillState `json:"skills"`
	Cooldowns       map[string]time.Time  `json:"cooldowns"`
}

// SkillLevel returns the level of the suit-keyed skill, 0 when untrained.
func (c Character) SkillLevel(suit string) int {
	return c.Skills[suit].Level
}

// CharacterPort exposes the character store the orchestrator depends on.
type CharacterPort interface {
	// Get loads a character document. Returns ErrCharacterNotFound when
	// the id does not resolve.
	Get(ctx context.Context, characterID string) (Character, error)

	// GrantXP credits experience to the suit-keyed skill, applying any
	// level-ups.
	GrantXP(ctx context.Context, characterID, suit string, xp int64) error

	// SpendEnergy debits energy after regeneration as of the given time.
	SpendEnergy(ctx context.Context, characterID string, amount int, at time.Time) error

	// StampCooldown records that the action may not be started again
	// before the given time.
	StampCooldown(ctx context.Context, characterID, actionID string, until time.Time) error
}
