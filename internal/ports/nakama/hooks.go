package nakama

import (
	"context"
	"database/sql"

	"frontier/internal/app/onboarding"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// AfterAuthenticateDevice bootstraps a character for newly created accounts.
func AfterAuthenticateDevice(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, out *api.Session, in *api.AuthenticateDeviceRequest) error {
	if !out.Created {
		return nil
	}

	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		logger.Warn("AfterAuthenticateDevice: missing user id in context")
		return nil
	}

	service := onboarding.NewService(NewNakamaBootstrapAdapter(nk))
	result, err := service.OnboardNewUser(ctx, userID)
	if err != nil {
		logger.Error("AfterAuthenticateDevice: onboarding failed for user %s: %v", userID, err)
		return err
	}
	if !result.CharacterCreated {
		logger.Info("AfterAuthenticateDevice: character already exists for user %s", userID)
		return nil
	}

	logger.Info("Bootstrapped character for new user %s", userID)
	return nil
}
