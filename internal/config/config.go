package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// EngineConfig tunes the action/job resolution engine.
type EngineConfig struct {
	// SessionTTLMinutes is the absolute session lifetime.
	SessionTTLMinutes int `json:"session_ttl_minutes"`
	// EnergyPerMinute is the passive regeneration rate.
	EnergyPerMinute float64 `json:"energy_per_minute"`
	// CatalogDir holds actions.yaml and jobs.yaml.
	CatalogDir string `json:"catalog_dir"`
	// JobLockTTLSeconds bounds how long a crashed worker can hold a job lock.
	JobLockTTLSeconds int `json:"job_lock_ttl_seconds"`
	// PeriodMarkerTTLHours keeps done-markers alive past their period to
	// tolerate clock skew between workers.
	PeriodMarkerTTLHours int `json:"period_marker_ttl_hours"`
}

var (
	cfg      *EngineConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadEngineConfig loads the engine configuration from the given path. A
// missing file is not an error; defaults apply.
func LoadEngineConfig(path string) error {
	loadOnce.Do(func() {
		c := defaults()

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				cfg = &c
				return
			}
			loadErr = fmt.Errorf("failed to read engine config: %w", err)
			return
		}

		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal engine config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

func defaults() EngineConfig {
	return EngineConfig{
		SessionTTLMinutes:    5,
		EnergyPerMinute:      1.0,
		CatalogDir:           "data",
		JobLockTTLSeconds:    120,
		PeriodMarkerTTLHours: 14 * 24,
	}
}

// GetEngineConfig returns the global engine configuration, falling back to
// defaults when no config was loaded.
func GetEngineConfig() EngineConfig {
	if cfg == nil {
		return defaults()
	}
	return *cfg
}

// SessionTTL returns the configured session lifetime as a duration.
func (c EngineConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// JobLockTTL returns the configured job lock lifetime as a duration.
func (c EngineConfig) JobLockTTL() time.Duration {
	return time.Duration(c.JobLockTTLSeconds) * time.Second
}

// PeriodMarkerTTL returns the configured marker lifetime as a duration.
func (c EngineConfig) PeriodMarkerTTL() time.Duration {
	return time.Duration(c.PeriodMarkerTTLHours) * time.Hour
}
