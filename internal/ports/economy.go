package ports

import "context"

// EconomyPort defines the interface to the economic ledger.
type EconomyPort interface {
	// GetBalance retrieves the current gold balance for a character.
	GetBalance(ctx context.Context, characterID string) (int64, error)

	// CreditGold atomically credits gold to a character's wallet with a
	// reason code for the ledger.
	CreditGold(ctx context.Context, characterID string, amount int64, reason string, metadata map[string]interface{}) error
}
