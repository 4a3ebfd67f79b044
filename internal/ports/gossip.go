package ports

import "context"

// Rumor is a piece of gossip still circulating.
type Rumor struct {
	ID    string `json:"id"`
	Topic string `json:"topic"`
	Hops  int    `json:"hops"`
}

// GossipPort exposes the rumor mill to the daily spread job.
type GossipPort interface {
	// ActiveRumors lists rumors that have not yet burned out.
	ActiveRumors(ctx context.Context) ([]Rumor, error)

	// Spread propagates a rumor one hop and returns how many characters
	// heard it.
	Spread(ctx context.Context, rumorID string) (int, error)
}
