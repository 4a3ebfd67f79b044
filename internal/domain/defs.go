package domain

import "time"

// ActionDef is the static definition of a discrete action, read from the
// content catalog.
type ActionDef struct {
	ID            string
	Name          string
	Crime         bool
	Mode          Mode
	EnergyCost    int
	Difficulty    int
	BaseGold      int64
	BaseXP        int64
	RelevantSuit  string
	RequiredSkill int
	Cooldown      time.Duration
}

// JobDef is the static definition of a repeatable paid job.
type JobDef struct {
	ID           string
	Name         string
	Mode         Mode
	EnergyCost   int
	GoldMin      int64
	GoldMax      int64
	BaseXP       int64
	RelevantSuit string
	Curve        CurveKind
}
