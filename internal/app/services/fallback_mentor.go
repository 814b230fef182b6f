package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/app/repositories"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
)

// FallbackMentorResolver finds the account assigned to claims that name no mentor
type FallbackMentorResolver interface {
	// Resolve returns the fallback mentor or an ErrConfiguration error when the configured
	// account is missing, inactive or not allowed to mentor
	Resolve(ctx context.Context) (*models.User, error)
}

type fallbackMentorResolverImpl struct {
	email    string
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewFallbackMentorResolver creates a resolver for the account with the given email
func NewFallbackMentorResolver(email string, userRepo repositories.IUserRepository, logger zerolog.Logger) FallbackMentorResolver {
	return &fallbackMentorResolverImpl{
		email:    models.NormalizeEmail(email),
		userRepo: userRepo,
		logger:   logger,
	}
}

// Resolve looks the account up on every call so directory changes apply immediately
func (r *fallbackMentorResolverImpl) Resolve(ctx context.Context) (*models.User, error) {
	if r.email == "" {
		return nil, apperrors.NewConfigurationError("fallback mentor is not configured")
	}

	user, err := r.userRepo.FindByEmail(ctx, r.email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			r.logger.Error().Str("email", r.email).Msg("Fallback mentor account not found")
			return nil, apperrors.NewConfigurationError("fallback mentor account not found")
		}
		return nil, fmt.Errorf("error finding fallback mentor: %w", err)
	}

	if !user.IsActive || !user.Role.CanMentor() {
		r.logger.Error().
			Str("email", r.email).
			Str("role", string(user.Role)).
			Bool("active", user.IsActive).
			Msg("Fallback mentor account cannot mentor")
		return nil, apperrors.NewConfigurationError("fallback mentor account is inactive or not a mentor")
	}

	return user, nil
}
