package domain

import "math"

// Rewards is the derived payout of a resolved session. It is embedded in the
// result record and never persisted on its own.
type Rewards struct {
	XP    int64    `json:"xp"`
	Gold  int64    `json:"gold"`
	Items []string `json:"items,omitempty"`
}

// Job curve breakpoints over the normalized score.
const (
	jobBonusFloor = 30.0
	jobBonusKnee  = 70.0
	jobBonusScale = 0.5
)

// JobGoldForScore interpolates gold for a repeatable job from a normalized
// score in [0,100]:
//
//	score < 30          -> goldMin
//	30 <= score < 70    -> linear goldMin..goldMax
//	score >= 70         -> goldMax scaled up to 1.5x at score 100
func JobGoldForScore(goldMin, goldMax int64, score float64) int64 {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	switch {
	case score < jobBonusFloor:
		return goldMin
	case score < jobBonusKnee:
		span := float64(goldMax - goldMin)
		return goldMin + int64(math.Round(span*(score-jobBonusFloor)/(jobBonusKnee-jobBonusFloor)))
	default:
		bonus := 1.0 + (score-jobBonusKnee)/(100.0-jobBonusKnee)*jobBonusScale
		return int64(math.Round(float64(goldMax) * bonus))
	}
}

// JobXP scales base XP by suit matches alone. Earnings and learning are
// deliberately decoupled: a lucky hand pays more gold but teaches no extra.
func JobXP(baseXP int64, suitMatches int) int64 {
	return int64(math.Round(float64(baseXP) * SuitMultiplier(suitMatches)))
}

// ActionSuccessRewards computes the payout for a successful discrete action.
// A witnessed crime loses half its gold; the XP stands either way.
func ActionSuccessRewards(baseGold, baseXP int64, suitMatches int, witnessed bool) Rewards {
	mult := BoundedMultiplier(suitMatches)
	gold := int64(math.Round(float64(baseGold) * mult))
	xp := int64(math.Round(float64(baseXP) * mult))
	if witnessed {
		gold /= 2
	}
	return Rewards{XP: xp, Gold: gold}
}

// Failure consolation share of base XP.
const failureXPShare = 0.25

// ActionFailureRewards is the XP-only consolation for a failed action,
// scaled by the damage mitigation fraction in [0,1]. No gold.
func ActionFailureRewards(baseXP int64, mitigation float64) Rewards {
	if mitigation < 0 {
		mitigation = 0
	}
	if mitigation > 1 {
		mitigation = 1
	}
	xp := int64(math.Round(float64(baseXP) * failureXPShare * (1.0 + mitigation)))
	return Rewards{XP: xp}
}
