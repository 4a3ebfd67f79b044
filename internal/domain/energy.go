package domain

import (
	"math"
	"time"
)

// RegeneratedEnergy recomputes a character's energy from the last persisted
// value. Energy accrues linearly at perMinute since updatedAt and never
// exceeds max. The persisted value is only rewritten on spend, so callers
// must run this before any energy check.
func RegeneratedEnergy(current, max int, updatedAt, now time.Time, perMinute float64) int {
	if current >= max {
		return max
	}
	if perMinute <= 0 || !now.After(updatedAt) {
		return current
	}

	minutes := now.Sub(updatedAt).Minutes()
	regained := int(math.Floor(minutes * perMinute))
	if regained <= 0 {
		return current
	}
	if current+regained > max {
		return max
	}
	return current + regained
}
