package nakama

import (
	"context"
	"database/sql"

	"frontier/internal/app/actions"
	"frontier/internal/app/jobs"
	"frontier/internal/catalog"
	"frontier/internal/config"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires the resolution engine into the Nakama runtime: loads the
// engine config and content catalogs, builds the adapters and services, and
// registers the RPCs and hooks.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	configPath := "data/engine_config.json"
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if p := env["frontier_engine_config"]; p != "" {
			configPath = p
		}
	}
	if err := config.LoadEngineConfig(configPath); err != nil {
		return err
	}
	cfg := config.GetEngineConfig()

	catalogs, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		return err
	}

	characters := NewNakamaCharacterAdapter(nk, cfg.EnergyPerMinute)
	orchestrator := actions.NewService(
		NewNakamaSessionStore(nk, nil),
		characters,
		NewNakamaEconomyAdapter(nk),
		NewNakamaCrimeAdapter(nk, characters, nil),
		catalogs,
		NewNakamaResultStore(nk),
		actions.Config{
			SessionTTL:      cfg.SessionTTL(),
			EnergyPerMinute: cfg.EnergyPerMinute,
		},
		nil,
	)

	runner := jobs.NewRunner(
		NewNakamaLockAdapter(nk, nil),
		NewNakamaPeriodMarkerAdapter(nk, nil),
		uuid.NewString(),
		cfg.JobLockTTL(),
		cfg.PeriodMarkerTTL(),
	)
	economy := NewNakamaEconomyAdapter(nk)

	h := &handlers{
		actions:    orchestrator,
		protection: jobs.NewProtectionService(runner, NewNakamaBusinessAdapter(nk), economy),
		gossip:     jobs.NewGossipService(runner, NewNakamaGossipAdapter(nk)),
	}

	if err := RegisterRPCs(initializer, h); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	logger.Info("Frontier resolution engine loaded.")
	return nil
}
