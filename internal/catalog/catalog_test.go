package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"frontier/internal/domain"
	"frontier/internal/ports"
)

const validActions = `
actions:
  - id: pickpocket
    name: Pickpocket
    crime: true
    mode: press_your_luck
    energy_cost: 5
    difficulty: 120
    base_gold: 40
    base_xp: 15
    relevant_suit: S
  - id: mugging
    name: Mugging
    crime: true
    mode: poker
    energy_cost: 12
    difficulty: 100
    base_gold: 200
    base_xp: 50
    relevant_suit: S
    required_skill: 5
    cooldown_seconds: 300
`

const validJobs = `
jobs:
  - id: stable_hand
    name: Stable Hand
    energy_cost: 10
    gold_min: 100
    gold_max: 300
    base_xp: 20
    relevant_suit: D
  - id: prospecting
    name: Prospecting
    mode: press_your_luck
    energy_cost: 15
    gold_min: 20
    gold_max: 200
    base_xp: 25
    relevant_suit: D
    curve: ratio
`

func writeCatalog(t *testing.T, actions, jobs string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "actions.yaml"), []byte(actions), 0o600); err != nil {
		t.Fatalf("write actions.yaml: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "jobs.yaml"), []byte(jobs), 0o600); err != nil {
		t.Fatalf("write jobs.yaml: %v", err)
	}
	return dir
}

func TestLoad_ValidCatalog(t *testing.T) {
	c, err := Load(writeCatalog(t, validActions, validJobs))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	mugging, err := c.Action("mugging")
	if err != nil {
		t.Fatalf("Action returned error: %v", err)
	}
	if mugging.Mode != domain.ModePoker || !mugging.Crime {
		t.Fatalf("Unexpected action def: %+v", mugging)
	}
	if mugging.Cooldown != 5*time.Minute {
		t.Fatalf("Expected 5m cooldown, got %s", mugging.Cooldown)
	}
	if mugging.RequiredSkill != 5 {
		t.Fatalf("Expected required skill 5, got %d", mugging.RequiredSkill)
	}

	// Mode and curve default when omitted.
	stable, err := c.Job("stable_hand")
	if err != nil {
		t.Fatalf("Job returned error: %v", err)
	}
	if stable.Mode != domain.ModePoker || stable.Curve != domain.CurveScore {
		t.Fatalf("Expected poker/score defaults, got %+v", stable)
	}

	prospecting, err := c.Job("prospecting")
	if err != nil {
		t.Fatalf("Job returned error: %v", err)
	}
	if prospecting.Curve != domain.CurveRatio || prospecting.Mode != domain.ModePressYourLuck {
		t.Fatalf("Unexpected job def: %+v", prospecting)
	}
}

func TestLoad_UnknownLookups(t *testing.T) {
	c, err := Load(writeCatalog(t, validActions, validJobs))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if _, err := c.Action("train_robbery"); !errors.Is(err, ports.ErrActionNotFound) {
		t.Fatalf("Expected ErrActionNotFound, got %v", err)
	}
	if _, err := c.Job("bartending"); !errors.Is(err, ports.ErrJobNotFound) {
		t.Fatalf("Expected ErrJobNotFound, got %v", err)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		actions string
		jobs    string
		wantMsg string
	}{
		{
			name: "missing id",
			actions: `
actions:
  - name: Nameless
    difficulty: 50
    relevant_suit: S
`,
			jobs:    validJobs,
			wantMsg: "id is required",
		},
		{
			name: "bad suit",
			actions: `
actions:
  - id: pickpocket
    difficulty: 50
    relevant_suit: X
`,
			jobs:    validJobs,
			wantMsg: "unknown relevant suit",
		},
		{
			name: "non-positive difficulty",
			actions: `
actions:
  - id: pickpocket
    relevant_suit: S
`,
			jobs:    validJobs,
			wantMsg: "difficulty must be positive",
		},
		{
			name: "bad mode",
			actions: `
actions:
  - id: pickpocket
    mode: blackjack
    difficulty: 50
    relevant_suit: S
`,
			jobs:    validJobs,
			wantMsg: "unknown mode",
		},
		{
			name:    "inverted gold range",
			actions: validActions,
			jobs: `
jobs:
  - id: stable_hand
    energy_cost: 10
    gold_min: 300
    gold_max: 100
    relevant_suit: D
`,
			wantMsg: "is invalid",
		},
		{
			name:    "unknown curve",
			actions: validActions,
			jobs: `
jobs:
  - id: stable_hand
    gold_min: 100
    gold_max: 300
    relevant_suit: D
    curve: exponential
`,
			wantMsg: "unknown curve",
		},
		{
			name: "duplicate action id",
			actions: `
actions:
  - id: pickpocket
    difficulty: 50
    relevant_suit: S
  - id: pickpocket
    difficulty: 60
    relevant_suit: S
`,
			jobs:    validJobs,
			wantMsg: "duplicate action id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tc.actions, tc.jobs))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("Expected error containing %q, got %v", tc.wantMsg, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("Expected error for missing catalog files")
	}
}
