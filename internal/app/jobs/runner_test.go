package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"frontier/internal/ports"
)

type fakeLocks struct {
	held     map[string]string
	acquires int
	err      error
}

func newFakeLocks() *fakeLocks {
	return &fakeLocks{held: make(map[string]string)}
}

func (f *fakeLocks) Acquire(ctx context.Context, key, holder string, ttl time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.acquires++
	if owner, ok := f.held[key]; ok && owner != holder {
		return false, nil
	}
	f.held[key] = holder
	return true, nil
}

func (f *fakeLocks) Release(ctx context.Context, key, holder string) error {
	if f.held[key] == holder {
		delete(f.held, key)
	}
	return nil
}

type fakeMarkers struct {
	done  map[string]bool
	marks int
}

func newFakeMarkers() *fakeMarkers {
	return &fakeMarkers{done: make(map[string]bool)}
}

func (f *fakeMarkers) Done(ctx context.Context, jobName, period string) (bool, error) {
	return f.done[jobName+":"+period], nil
}

func (f *fakeMarkers) Mark(ctx context.Context, jobName, period string, processed int, ttl time.Duration) error {
	f.done[jobName+":"+period] = true
	f.marks++
	return nil
}

func TestRunOnce_ExactlyOncePerPeriod(t *testing.T) {
	locks := newFakeLocks()
	markers := newFakeMarkers()
	runner := NewRunner(locks, markers, "worker-1", 0, 0)

	calls := 0
	work := func(ctx context.Context) (int, error) {
		calls++
		return 7, nil
	}

	first, err := runner.RunOnce(context.Background(), "payday", "2026-W35", work)
	if err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if !first.Ran || first.Processed != 7 {
		t.Fatalf("Expected first run to do the work, got %+v", first)
	}

	second, err := runner.RunOnce(context.Background(), "payday", "2026-W35", work)
	if err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if second.Ran {
		t.Fatalf("Expected second run to no-op, got %+v", second)
	}
	if second.Reason != "period already processed" {
		t.Fatalf("Unexpected reason: %q", second.Reason)
	}
	if calls != 1 {
		t.Fatalf("Expected exactly one work invocation, got %d", calls)
	}

	// A new period runs the work again.
	next, err := runner.RunOnce(context.Background(), "payday", "2026-W36", work)
	if err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if !next.Ran || calls != 2 {
		t.Fatalf("Expected new period to run, got %+v after %d calls", next, calls)
	}
}

func TestRunOnce_LockContentionIsNotAnError(t *testing.T) {
	locks := newFakeLocks()
	locks.held["payday"] = "other-worker"
	markers := newFakeMarkers()
	runner := NewRunner(locks, markers, "worker-1", 0, 0)

	result, err := runner.RunOnce(context.Background(), "payday", "2026-W35", func(ctx context.Context) (int, error) {
		t.Fatal("Work must not run under contention")
		return 0, nil
	})
	if err != nil {
		t.Fatalf("Contention must not be an error: %v", err)
	}
	if result.Ran || result.Reason != "lock contended" {
		t.Fatalf("Expected contended no-op, got %+v", result)
	}
	if markers.marks != 0 {
		t.Fatal("Expected no marker written under contention")
	}
}

func TestRunOnce_FailedWorkLeavesPeriodClaimable(t *testing.T) {
	locks := newFakeLocks()
	markers := newFakeMarkers()
	runner := NewRunner(locks, markers, "worker-1", 0, 0)

	boom := errors.New("downstream unavailable")
	if _, err := runner.RunOnce(context.Background(), "payday", "2026-W35", func(ctx context.Context) (int, error) {
		return 0, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Expected work error surfaced, got %v", err)
	}
	if markers.marks != 0 {
		t.Fatal("Expected no marker after failed work")
	}
	if _, ok := locks.held["payday"]; ok {
		t.Fatal("Expected lock released after failed work")
	}

	// The retry finds the period unclaimed.
	result, err := runner.RunOnce(context.Background(), "payday", "2026-W35", func(ctx context.Context) (int, error) {
		return 3, nil
	})
	if err != nil {
		t.Fatalf("Retry returned error: %v", err)
	}
	if !result.Ran || result.Processed != 3 {
		t.Fatalf("Expected retry to process the period, got %+v", result)
	}
}

func TestPeriodLabels(t *testing.T) {
	// Jan 1 2027 falls in ISO week 53 of 2026.
	newYear := time.Date(2027, 1, 1, 6, 0, 0, 0, time.UTC)
	if got := WeekLabel(newYear); got != "2026-W53" {
		t.Fatalf("WeekLabel = %q, want 2026-W53", got)
	}

	aug := time.Date(2026, 8, 27, 23, 59, 0, 0, time.UTC)
	if got := WeekLabel(aug); got != "2026-W35" {
		t.Fatalf("WeekLabel = %q, want 2026-W35", got)
	}
	if got := DayLabel(aug); got != "2026-08-27" {
		t.Fatalf("DayLabel = %q, want 2026-08-27", got)
	}
}

type fakeBusinesses struct {
	list []ports.Business
}

func (f *fakeBusinesses) ListProtected(ctx context.Context) ([]ports.Business, error) {
	return f.list, nil
}

type creditCall struct {
	ownerID string
	amount  int64
	reason  string
}

type fakeJobEconomy struct {
	credits []creditCall
}

func (f *fakeJobEconomy) GetBalance(ctx context.Context, id string) (int64, error) { return 0, nil }

func (f *fakeJobEconomy) CreditGold(ctx context.Context, id string, amount int64, reason string, metadata map[string]interface{}) error {
	f.credits = append(f.credits, creditCall{ownerID: id, amount: amount, reason: reason})
	return nil
}

func TestProtectionService_PaysEachBusinessOncePerWeek(t *testing.T) {
	businesses := &fakeBusinesses{list: []ports.Business{
		{ID: "b-1", OwnerID: "boss-1", WeeklyCut: 150},
		{ID: "b-2", OwnerID: "boss-2", WeeklyCut: 300},
		{ID: "b-3", OwnerID: "boss-3", WeeklyCut: 0},
	}}
	economy := &fakeJobEconomy{}
	runner := NewRunner(newFakeLocks(), newFakeMarkers(), "worker-1", 0, 0)
	svc := NewProtectionService(runner, businesses, economy)

	now := time.Date(2026, 8, 27, 3, 0, 0, 0, time.UTC)
	result, err := svc.RunWeekly(context.Background(), now)
	if err != nil {
		t.Fatalf("RunWeekly returned error: %v", err)
	}
	if !result.Ran || result.Processed != 2 {
		t.Fatalf("Expected 2 businesses paid, got %+v", result)
	}
	if len(economy.credits) != 2 {
		t.Fatalf("Expected 2 credits, got %d", len(economy.credits))
	}
	if economy.credits[0].reason != "protection_payment" || economy.credits[0].amount != 150 {
		t.Fatalf("Unexpected first credit: %+v", economy.credits[0])
	}

	// Same week, second tick: no further payments.
	again, err := svc.RunWeekly(context.Background(), now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("RunWeekly returned error: %v", err)
	}
	if again.Ran || len(economy.credits) != 2 {
		t.Fatalf("Expected second tick to no-op, got %+v with %d credits", again, len(economy.credits))
	}

	// Next week pays again.
	later, err := svc.RunWeekly(context.Background(), now.Add(7*24*time.Hour))
	if err != nil {
		t.Fatalf("RunWeekly returned error: %v", err)
	}
	if !later.Ran || len(economy.credits) != 4 {
		t.Fatalf("Expected next week to pay again, got %+v with %d credits", later, len(economy.credits))
	}
}

type fakeGossip struct {
	rumors  []ports.Rumor
	spreads []string
}

func (f *fakeGossip) ActiveRumors(ctx context.Context) ([]ports.Rumor, error) {
	return f.rumors, nil
}

func (f *fakeGossip) Spread(ctx context.Context, rumorID string) (int, error) {
	f.spreads = append(f.spreads, rumorID)
	return 2, nil
}

func TestGossipService_SpreadsOncePerDay(t *testing.T) {
	gossip := &fakeGossip{rumors: []ports.Rumor{
		{ID: "r-1", Topic: "bank robbery"},
		{ID: "r-2", Topic: "crooked sheriff"},
	}}
	runner := NewRunner(newFakeLocks(), newFakeMarkers(), "worker-1", 0, 0)
	svc := NewGossipService(runner, gossip)

	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	result, err := svc.RunDaily(context.Background(), now)
	if err != nil {
		t.Fatalf("RunDaily returned error: %v", err)
	}
	if !result.Ran || result.Processed != 4 {
		t.Fatalf("Expected 4 listeners reached, got %+v", result)
	}
	if len(gossip.spreads) != 2 {
		t.Fatalf("Expected both rumors spread, got %v", gossip.spreads)
	}

	again, err := svc.RunDaily(context.Background(), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("RunDaily returned error: %v", err)
	}
	if again.Ran || len(gossip.spreads) != 2 {
		t.Fatalf("Expected same-day rerun to no-op, got %+v", again)
	}

	tomorrow, err := svc.RunDaily(context.Background(), now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("RunDaily returned error: %v", err)
	}
	if !tomorrow.Ran || len(gossip.spreads) != 4 {
		t.Fatalf("Expected next day to spread again, got %+v", tomorrow)
	}
}
