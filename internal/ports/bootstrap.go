package ports

import "context"

// BootstrapPort initializes a new character at most once per user.
type BootstrapPort interface {
	// InitializeCharacterOnce writes the starter character document and
	// grants starting gold atomically. Returns created=false when the
	// character already exists.
	InitializeCharacterOnce(ctx context.Context, userID string, startingGold int64, metadata map[string]interface{}) (bool, error)
}
