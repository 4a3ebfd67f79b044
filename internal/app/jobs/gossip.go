package jobs

import (
	"context"
	"fmt"
	"time"

	"frontier/internal/ports"
)

const gossipJobName = "gossip_spread"

// GossipService propagates every active rumor one hop per day.
type GossipService struct {
	runner *Runner
	gossip ports.GossipPort
}

// NewGossipService wires the daily gossip job.
func NewGossipService(runner *Runner, gossip ports.GossipPort) *GossipService {
	return &GossipService{runner: runner, gossip: gossip}
}

// RunDaily spreads rumors for the current day-period.
func (s *GossipService) RunDaily(ctx context.Context, now time.Time) (Result, error) {
	period := DayLabel(now)
	return s.runner.RunOnce(ctx, gossipJobName, period, func(ctx context.Context) (int, error) {
		rumors, err := s.gossip.ActiveRumors(ctx)
		if err != nil {
			return 0, fmt.Errorf("list rumors: %w", err)
		}

		heard := 0
		for _, r := range rumors {
			n, err := s.gossip.Spread(ctx, r.ID)
			if err != nil {
				return heard, fmt.Errorf("spread rumor %s: %w", r.ID, err)
			}
			heard += n
		}
		return heard, nil
	})
}
