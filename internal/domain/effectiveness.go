package domain

import "math"

// Effectiveness and reward tuning constants. Both formulas cap the influence
// of suit matches and skill explicitly so that no input combination can push
// rewards outside a small envelope.
const (
	// SuitBonusPerMatch is the effectiveness bonus per relevant-suit card.
	SuitBonusPerMatch = 0.10
	// MaxCountedSuitMatches caps how many relevant-suit cards add bonus.
	MaxCountedSuitMatches = 5
	// BoundedMultiplierCap limits the action reward multiplier.
	BoundedMultiplierCap = 1.2
	// SkillBoostPerLevel converts a skill level to a boost percent.
	SkillBoostPerLevel = 2
	// MaxSkillBoostPercent caps the skill contribution to effectiveness.
	MaxSkillBoostPercent = 50
	// RewardBaseline is the effectiveness of a reference hand (a straight
	// with no modifiers); the ratio reward curve divides by it.
	RewardBaseline = 250.0
	// JobGoldCap limits the ratio reward curve's gold multiplier.
	JobGoldCap = 2.0
	// MaxEffectiveness is the practical ceiling: a royal flush with full
	// suit and skill bonuses (500 x 1.5 x 1.5).
	MaxEffectiveness = 1125.0
)

// SuitMultiplier returns 1 + 0.10 per counted suit match, at most 1.5.
func SuitMultiplier(suitMatches int) float64 {
	if suitMatches < 0 {
		suitMatches = 0
	}
	if suitMatches > MaxCountedSuitMatches {
		suitMatches = MaxCountedSuitMatches
	}
	return 1.0 + SuitBonusPerMatch*float64(suitMatches)
}

// BoundedMultiplier is the capped reward multiplier for discrete actions.
// It never exceeds BoundedMultiplierCap regardless of suit matches.
func BoundedMultiplier(suitMatches int) float64 {
	return math.Min(BoundedMultiplierCap, SuitMultiplier(suitMatches))
}

// SkillBoostPercent derives the boost percent from a skill level, capped.
// The cap is reached at level 25.
func SkillBoostPercent(level int) int {
	if level < 0 {
		level = 0
	}
	boost := level * SkillBoostPerLevel
	if boost > MaxSkillBoostPercent {
		boost = MaxSkillBoostPercent
	}
	return boost
}

// SkillMultiplier converts a boost percent to a multiplier, at most 1.5.
func SkillMultiplier(skillBoostPercent int) float64 {
	if skillBoostPercent < 0 {
		skillBoostPercent = 0
	}
	if skillBoostPercent > MaxSkillBoostPercent {
		skillBoostPercent = MaxSkillBoostPercent
	}
	return 1.0 + float64(skillBoostPercent)/100.0
}

// Effectiveness scores an evaluated hand together with the session's captured
// skill boost: baseScore x suitMultiplier x skillMultiplier.
func Effectiveness(hr HandResult, skillBoostPercent int) float64 {
	return float64(hr.BaseScore) * SuitMultiplier(hr.SuitMatches) * SkillMultiplier(skillBoostPercent)
}

// NormalizedScore maps an effectiveness value onto [0,100] for the job
// reward curve.
func NormalizedScore(effectiveness float64) float64 {
	score := effectiveness / (MaxEffectiveness / 100.0)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// JobGoldMultiplier is the ratio reward variant: effectiveness against the
// fixed baseline, clamped to the job gold cap.
func JobGoldMultiplier(effectiveness float64) float64 {
	m := effectiveness / RewardBaseline
	if m < 0 {
		return 0
	}
	if m > JobGoldCap {
		return JobGoldCap
	}
	return m
}
