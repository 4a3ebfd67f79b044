package jobs

import (
	"context"
	"fmt"
	"time"

	"frontier/internal/ports"
)

const protectionJobName = "protection_payments"

// ProtectionService pays each protected business owner their weekly cut,
// exactly once per ISO week regardless of how many workers tick it.
type ProtectionService struct {
	runner     *Runner
	businesses ports.BusinessPort
	economy    ports.EconomyPort
}

// NewProtectionService wires the weekly payment job.
func NewProtectionService(runner *Runner, businesses ports.BusinessPort, economy ports.EconomyPort) *ProtectionService {
	return &ProtectionService{
		runner:     runner,
		businesses: businesses,
		economy:    economy,
	}
}

// RunWeekly processes the current ISO week's payments.
func (s *ProtectionService) RunWeekly(ctx context.Context, now time.Time) (Result, error) {
	period := WeekLabel(now)
	return s.runner.RunOnce(ctx, protectionJobName, period, func(ctx context.Context) (int, error) {
		businesses, err := s.businesses.ListProtected(ctx)
		if err != nil {
			return 0, fmt.Errorf("list protected businesses: %w", err)
		}

		paid := 0
		for _, b := range businesses {
			if b.WeeklyCut <= 0 {
				continue
			}
			metadata := map[string]interface{}{
				"business_id": b.ID,
				"period":      period,
			}
			if err := s.economy.CreditGold(ctx, b.OwnerID, b.WeeklyCut, "protection_payment", metadata); err != nil {
				return paid, fmt.Errorf("pay business %s: %w", b.ID, err)
			}
			paid++
		}
		return paid, nil
	})
}
