package ports

import "errors"

// Sentinel errors shared between adapters and application services. Adapters
// return (or wrap) these so services and the RPC layer can classify failures
// with errors.Is.
var (
	// ErrSessionNotFound covers absent, expired and already-resolved
	// sessions uniformly; callers cannot distinguish the three.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when creating a session whose id is
	// already taken.
	ErrSessionExists = errors.New("session already exists")

	// ErrCharacterNotFound indicates a referential integrity failure on a
	// character lookup.
	ErrCharacterNotFound = errors.New("character not found")

	// ErrActionNotFound indicates an unknown action id.
	ErrActionNotFound = errors.New("action not found")

	// ErrJobNotFound indicates an unknown job id.
	ErrJobNotFound = errors.New("job not found")
)
