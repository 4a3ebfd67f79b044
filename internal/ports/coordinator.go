package ports

import (
	"context"
	"time"
)

// LockPort provides short-TTL mutual exclusion across server processes.
type LockPort interface {
	// Acquire attempts to take the named lock for holder. It returns
	// false without error when another live holder has it; contention is
	// not an error.
	Acquire(ctx context.Context, key, holder string, ttl time.Duration) (bool, error)

	// Release drops the lock if holder still owns it.
	Release(ctx context.Context, key, holder string) error
}

// PeriodMarkerPort records that a scheduled job already ran for a period.
// Markers carry a TTL longer than the period to tolerate clock skew.
type PeriodMarkerPort interface {
	// Done reports whether the job has a live marker for the period.
	Done(ctx context.Context, jobName, period string) (bool, error)

	// Mark sets the period marker after the work completed.
	Mark(ctx context.Context, jobName, period string, processed int, ttl time.Duration) error
}
