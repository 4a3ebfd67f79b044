package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"frontier/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaEconomyAdapter implements ports.EconomyPort using Nakama's wallet
// system. Every credit carries a reason code into the wallet ledger.
type NakamaEconomyAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaEconomyAdapter creates a new economy adapter.
func NewNakamaEconomyAdapter(nk runtime.NakamaModule) *NakamaEconomyAdapter {
	return &NakamaEconomyAdapter{nk: nk}
}

// GetBalance retrieves the current gold balance for a character.
func (a *NakamaEconomyAdapter) GetBalance(ctx context.Context, characterID string) (int64, error) {
	account, err := a.nk.AccountGetId(ctx, characterID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.Wallet), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return wallet["gold"], nil
}

// CreditGold applies a single wallet credit with its ledger reason.
func (a *NakamaEconomyAdapter) CreditGold(ctx context.Context, characterID string, amount int64, reason string, metadata map[string]interface{}) error {
	if amount <= 0 {
		return nil
	}

	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	metadata["reason"] = reason

	changes := map[string]int64{"gold": amount}
	if _, _, err := a.nk.WalletUpdate(ctx, characterID, changes, metadata, true); err != nil {
		return fmt.Errorf("failed to update wallet for user %s: %w", characterID, err)
	}
	return nil
}

var _ ports.EconomyPort = (*NakamaEconomyAdapter)(nil)
