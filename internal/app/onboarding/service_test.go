package onboarding

import (
	"context"
	"errors"
	"testing"
)

type fakeBootstrap struct {
	initialized map[string]bool
	calls       int
	err         error

	lastGold   int64
	lastReason string
}

func (f *fakeBootstrap) InitializeCharacterOnce(ctx context.Context, userID string, startingGold int64, metadata map[string]interface{}) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	f.lastGold = startingGold
	if reason, ok := metadata["reason"].(string); ok {
		f.lastReason = reason
	}
	if f.initialized == nil {
		f.initialized = make(map[string]bool)
	}
	if f.initialized[userID] {
		return false, nil
	}
	f.initialized[userID] = true
	return true, nil
}

func TestOnboardNewUser_CreatesOnce(t *testing.T) {
	bootstrap := &fakeBootstrap{}
	svc := NewService(bootstrap)

	result, err := svc.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if !result.CharacterCreated {
		t.Fatal("Expected character created on first login")
	}
	if bootstrap.lastGold != defaultStartingGold {
		t.Fatalf("Expected starting gold %d, got %d", defaultStartingGold, bootstrap.lastGold)
	}
	if bootstrap.lastReason != "character_bootstrap" {
		t.Fatalf("Expected bootstrap reason tag, got %q", bootstrap.lastReason)
	}

	// Repeat logins are no-ops, not errors.
	result, err = svc.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.CharacterCreated {
		t.Fatal("Expected no second character for the same user")
	}
	if bootstrap.calls != 2 {
		t.Fatalf("Expected 2 bootstrap calls, got %d", bootstrap.calls)
	}
}

func TestOnboardNewUser_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("storage unavailable")
	svc := NewService(&fakeBootstrap{err: boom})

	if _, err := svc.OnboardNewUser(context.Background(), "user-1"); !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped store error, got %v", err)
	}
}

func TestOnboardNewUser_RequiresConfiguration(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error for unconfigured service")
	}
}
