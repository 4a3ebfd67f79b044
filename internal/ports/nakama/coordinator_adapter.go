package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"frontier/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// lockRecord is the stored shape of a distributed lock.
type lockRecord struct {
	Holder    string    `json:"holder"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NakamaLockAdapter implements ports.LockPort with conditional storage
// writes. A fresh lock is a create-only write; a stale lock is taken over
// with a versioned write so two workers racing for it cannot both win.
type NakamaLockAdapter struct {
	nk  runtime.NakamaModule
	now func() time.Time
}

// NewNakamaLockAdapter creates a lock adapter. now may be nil to use
// time.Now.
func NewNakamaLockAdapter(nk runtime.NakamaModule, now func() time.Time) *NakamaLockAdapter {
	if now == nil {
		now = time.Now
	}
	return &NakamaLockAdapter{nk: nk, now: now}
}

// Acquire attempts to take the named lock. Contention returns (false, nil).
func (a *NakamaLockAdapter) Acquire(ctx context.Context, key, holder string, ttl time.Duration) (bool, error) {
	record := lockRecord{Holder: holder, ExpiresAt: a.now().Add(ttl)}
	value, err := json.Marshal(record)
	if err != nil {
		return false, fmt.Errorf("failed to marshal lock: %w", err)
	}

	reads := []*runtime.StorageRead{
		{Collection: CollectionJobLocks, Key: key},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return false, fmt.Errorf("failed to read lock: %w", err)
	}

	version := "*"
	if len(objects) > 0 {
		var existing lockRecord
		if err := json.Unmarshal([]byte(objects[0].Value), &existing); err != nil {
			return false, fmt.Errorf("failed to unmarshal lock: %w", err)
		}
		if a.now().Before(existing.ExpiresAt) && existing.Holder != holder {
			return false, nil
		}
		// Stale (or our own) lock: overwrite conditional on the version
		// we read so only one contender takes it over.
		version = objects[0].Version
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      CollectionJobLocks,
			Key:             key,
			Value:           string(value),
			Version:         version,
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to write lock: %w", err)
	}
	return true, nil
}

// Release drops the lock if holder still owns it.
func (a *NakamaLockAdapter) Release(ctx context.Context, key, holder string) error {
	reads := []*runtime.StorageRead{
		{Collection: CollectionJobLocks, Key: key},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return fmt.Errorf("failed to read lock: %w", err)
	}
	if len(objects) == 0 {
		return nil
	}

	var existing lockRecord
	if err := json.Unmarshal([]byte(objects[0].Value), &existing); err != nil {
		return fmt.Errorf("failed to unmarshal lock: %w", err)
	}
	if existing.Holder != holder {
		return nil
	}

	deletes := []*runtime.StorageDelete{
		{Collection: CollectionJobLocks, Key: key, Version: objects[0].Version},
	}
	if err := a.nk.StorageDelete(ctx, deletes); err != nil && !errors.Is(err, runtime.ErrStorageRejectedVersion) {
		return fmt.Errorf("failed to delete lock: %w", err)
	}
	return nil
}

// markerRecord is the stored shape of a processed-period marker.
type markerRecord struct {
	Period      string    `json:"period"`
	Processed   int       `json:"processed"`
	CompletedAt time.Time `json:"completed_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NakamaPeriodMarkerAdapter implements ports.PeriodMarkerPort. Markers are
// write-once per (job, period); their TTL outlives the period to tolerate
// clock skew between workers.
type NakamaPeriodMarkerAdapter struct {
	nk  runtime.NakamaModule
	now func() time.Time
}

// NewNakamaPeriodMarkerAdapter creates a period marker adapter. now may be
// nil to use time.Now.
func NewNakamaPeriodMarkerAdapter(nk runtime.NakamaModule, now func() time.Time) *NakamaPeriodMarkerAdapter {
	if now == nil {
		now = time.Now
	}
	return &NakamaPeriodMarkerAdapter{nk: nk, now: now}
}

func markerKey(jobName, period string) string {
	return jobName + ":" + period
}

// Done reports whether the period has a live marker.
func (a *NakamaPeriodMarkerAdapter) Done(ctx context.Context, jobName, period string) (bool, error) {
	reads := []*runtime.StorageRead{
		{Collection: CollectionJobPeriods, Key: markerKey(jobName, period)},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return false, fmt.Errorf("failed to read period marker: %w", err)
	}
	if len(objects) == 0 {
		return false, nil
	}

	var marker markerRecord
	if err := json.Unmarshal([]byte(objects[0].Value), &marker); err != nil {
		return false, fmt.Errorf("failed to unmarshal period marker: %w", err)
	}
	return a.now().Before(marker.ExpiresAt), nil
}

// Mark records the period as processed.
func (a *NakamaPeriodMarkerAdapter) Mark(ctx context.Context, jobName, period string, processed int, ttl time.Duration) error {
	marker := markerRecord{
		Period:      period,
		Processed:   processed,
		CompletedAt: a.now(),
		ExpiresAt:   a.now().Add(ttl),
	}
	value, err := json.Marshal(marker)
	if err != nil {
		return fmt.Errorf("failed to marshal period marker: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      CollectionJobPeriods,
			Key:             markerKey(jobName, period),
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write period marker: %w", err)
	}
	return nil
}

var (
	_ ports.LockPort         = (*NakamaLockAdapter)(nil)
	_ ports.PeriodMarkerPort = (*NakamaPeriodMarkerAdapter)(nil)
)
