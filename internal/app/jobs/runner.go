package jobs

import (
	"context"
	"fmt"
	"time"

	"frontier/internal/ports"
)

// Result reports one scheduled-job invocation.
type Result struct {
	// Ran is false when the lock was contended or the period was already
	// processed; the invocation did zero work.
	Ran bool `json:"ran"`
	// Processed counts the items the work function handled.
	Processed int `json:"processed"`
	// Reason explains a zero-work result for the job log.
	Reason string `json:"reason,omitempty"`
}

// Default coordination TTLs.
const (
	DefaultLockTTL   = 2 * time.Minute
	DefaultMarkerTTL = 14 * 24 * time.Hour
)

// Runner is the reusable claim-work-mark primitive for scheduled jobs that
// must run at most once per period across server processes. Contention is
// not retried: a tick that loses the lock no-ops and trusts the holder, or
// the next tick, to finish the period.
type Runner struct {
	locks   ports.LockPort
	markers ports.PeriodMarkerPort
	holder  string

	lockTTL   time.Duration
	markerTTL time.Duration
}

// NewRunner constructs a Runner identified by holder (one id per process).
// Zero TTLs fall back to the defaults.
func NewRunner(locks ports.LockPort, markers ports.PeriodMarkerPort, holder string, lockTTL, markerTTL time.Duration) *Runner {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	if markerTTL <= 0 {
		markerTTL = DefaultMarkerTTL
	}
	return &Runner{
		locks:     locks,
		markers:   markers,
		holder:    holder,
		lockTTL:   lockTTL,
		markerTTL: markerTTL,
	}
}

// RunOnce executes work at most once for (jobName, period). The lock bounds
// concurrent workers; the period marker makes reruns within the period
// no-ops. The marker is written only after work succeeds, so a failed run
// leaves the period claimable again.
func (r *Runner) RunOnce(ctx context.Context, jobName, period string, work func(context.Context) (int, error)) (Result, error) {
	acquired, err := r.locks.Acquire(ctx, jobName, r.holder, r.lockTTL)
	if err != nil {
		return Result{}, fmt.Errorf("acquire lock %q: %w", jobName, err)
	}
	if !acquired {
		return Result{Reason: "lock contended"}, nil
	}
	defer func() {
		// Best effort; an expired lock releases itself.
		_ = r.locks.Release(ctx, jobName, r.holder)
	}()

	done, err := r.markers.Done(ctx, jobName, period)
	if err != nil {
		return Result{}, fmt.Errorf("check period %q: %w", period, err)
	}
	if done {
		return Result{Reason: "period already processed"}, nil
	}

	processed, err := work(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("run %q: %w", jobName, err)
	}

	if err := r.markers.Mark(ctx, jobName, period, processed, r.markerTTL); err != nil {
		return Result{}, fmt.Errorf("mark period %q: %w", period, err)
	}

	return Result{Ran: true, Processed: processed}, nil
}
