package domain

import "testing"

func TestJobGoldForScore_CurvePoints(t *testing.T) {
	const goldMin, goldMax = 100, 300

	cases := []struct {
		score float64
		want  int64
	}{
		{0, 100},
		{20, 100},
		{29.9, 100},
		{30, 100},
		{50, 200},
		{70, 300},
		{85, 375},
		{100, 450},
	}
	for _, tc := range cases {
		if got := JobGoldForScore(goldMin, goldMax, tc.score); got != tc.want {
			t.Fatalf("JobGoldForScore(score=%f) = %d, want %d", tc.score, got, tc.want)
		}
	}
}

func TestJobGoldForScore_Monotonic(t *testing.T) {
	const goldMin, goldMax = 100, 300

	prev := int64(-1)
	for score := 0.0; score <= 100; score++ {
		got := JobGoldForScore(goldMin, goldMax, score)
		if got < prev {
			t.Fatalf("Gold decreased at score %f: %d after %d", score, got, prev)
		}
		prev = got
	}
}

func TestJobXP_DecoupledFromGold(t *testing.T) {
	if got := JobXP(20, 0); got != 20 {
		t.Fatalf("Expected 20 XP with no matches, got %d", got)
	}
	if got := JobXP(20, 3); got != 26 {
		t.Fatalf("Expected 26 XP with three matches, got %d", got)
	}
	// Cap at +50% regardless of matches.
	if got := JobXP(20, 9); got != 30 {
		t.Fatalf("Expected 30 XP at cap, got %d", got)
	}
}

func TestActionSuccessRewards_WitnessPenaltyHalvesGoldOnly(t *testing.T) {
	clean := ActionSuccessRewards(200, 50, 0, false)
	if clean.Gold != 200 {
		t.Fatalf("Expected 200 gold unwitnessed, got %d", clean.Gold)
	}

	witnessed := ActionSuccessRewards(200, 50, 0, true)
	if witnessed.Gold != 100 {
		t.Fatalf("Expected 100 gold witnessed, got %d", witnessed.Gold)
	}
	if witnessed.XP != clean.XP {
		t.Fatalf("Expected XP unaffected by witness: %d vs %d", witnessed.XP, clean.XP)
	}
}

func TestActionSuccessRewards_BoundedMultiplier(t *testing.T) {
	// Five matches would be 1.5x unbounded; the action curve caps at 1.2x.
	r := ActionSuccessRewards(100, 100, 5, false)
	if r.Gold != 120 {
		t.Fatalf("Expected 120 gold at cap, got %d", r.Gold)
	}
	if r.XP != 120 {
		t.Fatalf("Expected 120 XP at cap, got %d", r.XP)
	}
}

func TestActionFailureRewards_XPOnly(t *testing.T) {
	r := ActionFailureRewards(100, 0)
	if r.Gold != 0 {
		t.Fatalf("Expected no gold on failure, got %d", r.Gold)
	}
	if r.XP != 25 {
		t.Fatalf("Expected 25 consolation XP, got %d", r.XP)
	}

	mitigated := ActionFailureRewards(100, 1)
	if mitigated.XP != 50 {
		t.Fatalf("Expected 50 XP at full mitigation, got %d", mitigated.XP)
	}

	clamped := ActionFailureRewards(100, 2.5)
	if clamped.XP != 50 {
		t.Fatalf("Expected mitigation clamp at 1.0, got %d XP", clamped.XP)
	}
}

func TestRewardPlans_RouteByKind(t *testing.T) {
	hr := HandResult{RankName: RankStraight, BaseScore: 200, SuitMatches: 0}
	result := GameResult{Hand: hr, Effectiveness: Effectiveness(hr, 0), Success: true}

	job := JobPlan{GoldMin: 100, GoldMax: 300, BaseXP: 20, Curve: CurveScore}
	jobRewards := job.Rewards(result)
	if jobRewards.Gold < 100 || jobRewards.Gold > 450 {
		t.Fatalf("Job gold %d outside curve envelope", jobRewards.Gold)
	}

	action := ActionPlan{BaseGold: 200, BaseXP: 50, Crime: true}
	actionRewards := action.Rewards(result)
	if actionRewards.Gold != 200 {
		t.Fatalf("Expected 200 action gold, got %d", actionRewards.Gold)
	}

	failed := action.Rewards(GameResult{Hand: hr, Success: false})
	if failed.Gold != 0 {
		t.Fatalf("Expected no gold on failed action, got %d", failed.Gold)
	}
}

func TestJobPlan_RatioCurve(t *testing.T) {
	hr := HandResult{RankName: RankStraight, BaseScore: 250, SuitMatches: 0}
	// Effectiveness 250 == baseline, multiplier 1.0.
	result := GameResult{Hand: hr, Effectiveness: 250, Success: true}

	plan := JobPlan{GoldMin: 20, GoldMax: 200, BaseXP: 20, Curve: CurveRatio}
	r := plan.Rewards(result)
	if r.Gold != 200 {
		t.Fatalf("Expected 200 gold at baseline ratio, got %d", r.Gold)
	}

	capped := plan.Rewards(GameResult{Hand: hr, Effectiveness: MaxEffectiveness, Success: true})
	if capped.Gold != 400 {
		t.Fatalf("Expected 400 gold at ratio cap, got %d", capped.Gold)
	}

	// 200 x 281/250 = 224.8 rounds to 225 rather than truncating.
	fractional := plan.Rewards(GameResult{Hand: hr, Effectiveness: 281, Success: true})
	if fractional.Gold != 225 {
		t.Fatalf("Expected 225 gold rounded, got %d", fractional.Gold)
	}
}
