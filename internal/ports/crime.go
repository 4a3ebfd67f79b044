package ports

import "context"

// CrimeOutcome reports the consequences of one crime attempt.
type CrimeOutcome struct {
	// Witnessed is true when the attempt was detected; a witnessed success
	// forfeits half the gold.
	Witnessed bool
	// NotorietyDelta is how much the character's notoriety moved.
	NotorietyDelta int
}

// CrimePort defines the interface to the crime service. It is consulted only
// for crime-typed actions.
type CrimePort interface {
	// ResolveAttempt performs the witness roll and applies notoriety
	// consequences for one attempt.
	ResolveAttempt(ctx context.Context, characterID, actionID string, success bool, difficulty int) (CrimeOutcome, error)

	// GrantCriminalXP awards criminal-skill experience.
	GrantCriminalXP(ctx context.Context, characterID string, xp int64) error
}
