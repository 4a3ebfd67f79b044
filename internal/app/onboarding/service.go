package onboarding

import (
	"context"
	"fmt"

	"frontier/internal/ports"
)

const defaultStartingGold = 500

// Result captures onboarding outcomes.
type Result struct {
	// CharacterCreated is false when the user already had a character.
	CharacterCreated bool
}

// Service bootstraps a character for a newly authenticated user.
type Service struct {
	bootstrap ports.BootstrapPort
}

// NewService constructs an onboarding service with its required port.
func NewService(bootstrap ports.BootstrapPort) *Service {
	return &Service{bootstrap: bootstrap}
}

// OnboardNewUser writes the starter character document and grants the
// starting gold at most once per user. Safe to call on every login.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.bootstrap == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	metadata := map[string]interface{}{
		"reason": "character_bootstrap",
	}
	created, err := s.bootstrap.InitializeCharacterOnce(ctx, userID, defaultStartingGold, metadata)
	if err != nil {
		return Result{}, fmt.Errorf("failed to bootstrap character: %w", err)
	}

	return Result{CharacterCreated: created}, nil
}
