package domain

import (
	"math"
	"time"
)

// Status is the lifecycle state of a game session. Sessions are deleted at
// resolution, so StatusResolved only ever appears on returned values, never
// in the store.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// Kind distinguishes repeatable jobs from discrete actions. The two kinds
// route to different reward plans; nothing downstream branches on a flag.
type Kind string

const (
	KindAction Kind = "action"
	KindJob    Kind = "job"
)

// JobSnapshot inlines a job definition into its session. Job definitions are
// not persisted documents, so the session carries everything resolution
// needs instead of a reference.
type JobSnapshot struct {
	JobID   string    `json:"job_id"`
	GoldMin int64     `json:"gold_min"`
	GoldMax int64     `json:"gold_max"`
	BaseXP  int64     `json:"base_xp"`
	Curve   CurveKind `json:"curve"`
}

// Session is the unit of concurrency control for one in-flight activity.
// RelevantSuit and SkillBoostPercent are captured at creation so later skill
// changes cannot retroactively affect the session; effectiveness is
// reproducible from these fields alone. ExpiresAt is absolute and never
// extended by turns.
type Session struct {
	ID                string       `json:"session_id"`
	CharacterID       string       `json:"character_id"`
	ActionID          string       `json:"action_id,omitempty"`
	Job               *JobSnapshot `json:"job,omitempty"`
	Mode              Mode         `json:"mode"`
	RelevantSuit      string       `json:"relevant_suit"`
	SkillBoostPercent int          `json:"skill_boost_percent"`
	EnergyCost        int          `json:"energy_cost"`
	Hand              []Card       `json:"hand"`
	Stopped           bool         `json:"stopped"`
	Status            Status       `json:"status"`
	StartedAt         time.Time    `json:"started_at"`
	ExpiresAt         time.Time    `json:"expires_at"`
}

// Kind reports whether the session resolves as a job or an action.
func (s *Session) Kind() Kind {
	if s.Job != nil {
		return KindJob
	}
	return KindAction
}

// Expired reports whether the session's absolute expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// GameResult is the finalized outcome of a session's hand, fed to the
// session's reward plan.
type GameResult struct {
	Hand              HandResult `json:"hand"`
	Effectiveness     float64    `json:"effectiveness"`
	SkillBoostPercent int        `json:"skill_boost_percent"`
	Success           bool       `json:"success"`
	Witnessed         bool       `json:"witnessed"`
	Mitigation        float64    `json:"mitigation"`
}

// RewardPlan converts a game result into rewards. JobPlan and ActionPlan are
// the two implementations; the session kind selects between them.
type RewardPlan interface {
	Rewards(result GameResult) Rewards
}

// CurveKind selects which job gold curve applies.
type CurveKind string

const (
	// CurveScore interpolates gold over the normalized score.
	CurveScore CurveKind = "score"
	// CurveRatio multiplies max gold by effectiveness over the baseline.
	CurveRatio CurveKind = "ratio"
)

// JobPlan is the continuous reward curve for repeatable paid labor.
type JobPlan struct {
	GoldMin int64
	GoldMax int64
	BaseXP  int64
	Curve   CurveKind
}

// Rewards implements RewardPlan for jobs. Gold follows the configured curve;
// XP scales with suit matches only.
func (p JobPlan) Rewards(result GameResult) Rewards {
	var gold int64
	switch p.Curve {
	case CurveRatio:
		gold = int64(math.Round(float64(p.GoldMax) * JobGoldMultiplier(result.Effectiveness)))
	default:
		gold = JobGoldForScore(p.GoldMin, p.GoldMax, NormalizedScore(result.Effectiveness))
	}
	return Rewards{
		XP:   JobXP(p.BaseXP, result.Hand.SuitMatches),
		Gold: gold,
	}
}

// ActionPlan is the binary success/failure reward for discrete actions.
type ActionPlan struct {
	BaseGold int64
	BaseXP   int64
	Crime    bool
}

// Rewards implements RewardPlan for actions.
func (p ActionPlan) Rewards(result GameResult) Rewards {
	if !result.Success {
		return ActionFailureRewards(p.BaseXP, result.Mitigation)
	}
	return ActionSuccessRewards(p.BaseGold, p.BaseXP, result.Hand.SuitMatches, p.Crime && result.Witnessed)
}

// ActionResultRecord is the immutable audit row written once at resolve time
// for discrete actions. Jobs are logged through the economic ledger instead.
type ActionResultRecord struct {
	SessionID     string     `json:"session_id"`
	CharacterID   string     `json:"character_id"`
	ActionID      string     `json:"action_id"`
	Cards         []Card     `json:"cards"`
	Hand          HandResult `json:"hand"`
	Effectiveness float64    `json:"effectiveness"`
	Success       bool       `json:"success"`
	Witnessed     bool       `json:"witnessed"`
	Rewards       Rewards    `json:"rewards"`
	ResolvedAt    time.Time  `json:"resolved_at"`
}
