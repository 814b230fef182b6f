package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/claimboard/internal/app/models"
	appServices "github.com/yigit/claimboard/internal/app/services"
	"github.com/yigit/claimboard/internal/config"
)

// CreateDefaultData makes sure the configured fallback mentor account exists when seeding is
// enabled, then reports whether it currently resolves. A fallback mentor that does not resolve
// is only logged here; claim operations surface it when they need one.
func CreateDefaultData(
	ctx context.Context,
	cfg *config.Config,
	userService appServices.UserService,
	fallback appServices.FallbackMentorResolver,
	lgr zerolog.Logger,
) error {
	if cfg.Claims.SeedFallbackMentor {
		lgr.Info().Str("email", cfg.Claims.FallbackMentorEmail).Msg("Checking/Creating fallback mentor account...")

		name := cfg.Claims.FallbackMentorName
		if name == "" {
			name = "Fallback Mentor"
		}
		mentor, err := userService.FindOrCreate(ctx, &appModels.User{
			Email:    cfg.Claims.FallbackMentorEmail,
			Name:     name,
			Role:     appModels.RoleMentor,
			IsActive: true,
		})
		if err != nil {
			return fmt.Errorf("error seeding fallback mentor: %w", err)
		}
		lgr.Info().Int64("userID", mentor.ID).Msg("Fallback mentor account ready")
	}

	if _, err := fallback.Resolve(ctx); err != nil {
		lgr.Warn().Err(err).Msg("Fallback mentor does not resolve; approvals without mentors will fail")
	}
	return nil
}
