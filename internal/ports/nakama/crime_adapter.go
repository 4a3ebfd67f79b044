package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"frontier/internal/domain"
	"frontier/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// crimeProfile is the per-character crime document.
type crimeProfile struct {
	Notoriety  int   `json:"notoriety"`
	Attempts   int   `json:"attempts"`
	Witnessed  int   `json:"witnessed"`
	LifetimeXP int64 `json:"lifetime_xp"`
}

// NakamaCrimeAdapter implements ports.CrimePort. The witness roll scales
// with action difficulty: a harder crime draws more eyes.
type NakamaCrimeAdapter struct {
	nk         runtime.NakamaModule
	characters *NakamaCharacterAdapter

	// rng is not goroutine safe; rolls take the mutex.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewNakamaCrimeAdapter creates a crime adapter. Criminal XP lands on the
// spades skill through the character adapter. rng may be nil to use a
// time-seeded default.
func NewNakamaCrimeAdapter(nk runtime.NakamaModule, characters *NakamaCharacterAdapter, rng *rand.Rand) *NakamaCrimeAdapter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &NakamaCrimeAdapter{nk: nk, characters: characters, rng: rng}
}

func (a *NakamaCrimeAdapter) readProfile(ctx context.Context, characterID string) (crimeProfile, string, error) {
	reads := []*runtime.StorageRead{
		{Collection: CollectionCrimeProfiles, Key: KeyCrimeProfile, UserID: characterID},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return crimeProfile{}, "", fmt.Errorf("failed to read crime profile: %w", err)
	}
	if len(objects) == 0 {
		return crimeProfile{}, "", nil
	}

	var profile crimeProfile
	if err := json.Unmarshal([]byte(objects[0].Value), &profile); err != nil {
		return crimeProfile{}, "", fmt.Errorf("failed to unmarshal crime profile: %w", err)
	}
	return profile, objects[0].Version, nil
}

func (a *NakamaCrimeAdapter) writeProfile(ctx context.Context, characterID string, profile crimeProfile, version string) error {
	value, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal crime profile: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      CollectionCrimeProfiles,
			Key:             KeyCrimeProfile,
			UserID:          characterID,
			Value:           string(value),
			Version:         version,
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write crime profile: %w", err)
	}
	return nil
}

// ResolveAttempt performs the witness roll and records notoriety.
func (a *NakamaCrimeAdapter) ResolveAttempt(ctx context.Context, characterID, actionID string, success bool, difficulty int) (ports.CrimeOutcome, error) {
	a.mu.Lock()
	witnessed := domain.WitnessRoll(a.rng, difficulty)
	a.mu.Unlock()

	profile, version, err := a.readProfile(ctx, characterID)
	if err != nil {
		return ports.CrimeOutcome{}, err
	}

	profile.Attempts++
	outcome := ports.CrimeOutcome{Witnessed: witnessed}
	if witnessed {
		profile.Witnessed++
		profile.Notoriety++
		outcome.NotorietyDelta = 1
	}

	if err := a.writeProfile(ctx, characterID, profile, version); err != nil {
		return ports.CrimeOutcome{}, err
	}
	return outcome, nil
}

// GrantCriminalXP awards criminal-skill experience.
func (a *NakamaCrimeAdapter) GrantCriminalXP(ctx context.Context, characterID string, xp int64) error {
	if xp <= 0 {
		return nil
	}

	profile, version, err := a.readProfile(ctx, characterID)
	if err != nil {
		return err
	}
	profile.LifetimeXP += xp
	if err := a.writeProfile(ctx, characterID, profile, version); err != nil {
		return err
	}

	return a.characters.GrantXP(ctx, characterID, domain.SuitSpades, xp)
}

var _ ports.CrimePort = (*NakamaCrimeAdapter)(nil)
