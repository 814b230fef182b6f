package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/claimboard/internal/app/auth"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/app/models/dto"
	"github.com/yigit/claimboard/internal/app/repositories"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
	"github.com/yigit/claimboard/internal/pkg/validation"
)

// UserService defines the interface for user operations
type UserService interface {
	GetProfile(ctx context.Context, viewer auth.Viewer) (*models.User, error)
	UpdateProfile(ctx context.Context, viewer auth.Viewer, req dto.UpdateProfileRequest) (*models.User, error)
	// FindOrCreate returns the account with the user's email, creating it on first use
	FindOrCreate(ctx context.Context, user *models.User) (*models.User, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo repositories.IUserRepository
	cache    StandingsCache
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, cache StandingsCache, logger zerolog.Logger) UserService {
	if cache == nil {
		cache = noopCache{}
	}
	return &userServiceImpl{
		userRepo: userRepo,
		cache:    cache,
		logger:   logger,
	}
}

// GetProfile returns the viewer's own account
func (s *userServiceImpl) GetProfile(ctx context.Context, viewer auth.Viewer) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, viewer.UserID())
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update. Students may change every field; other roles only
// their name.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, viewer auth.Viewer, req dto.UpdateProfileRequest) (*models.User, error) {
	update := trimProfileUpdate(req.ToProfileUpdate())

	if viewer.Role() != models.RoleStudent && touchesStudentFields(update) {
		return nil, apperrors.NewForbiddenError("only students have academic profile fields")
	}
	if err := validateProfileUpdate(update); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateProfile(ctx, viewer.UserID(), update)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Error().Err(err).Int64("userID", viewer.UserID()).Msg("Error updating profile")
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	if update.TouchesStanding() {
		s.cache.Invalidate(ctx)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Profile updated")
	return user, nil
}

// FindOrCreate is used by the seed step and the dev token tool
func (s *userServiceImpl) FindOrCreate(ctx context.Context, user *models.User) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	if !user.Role.IsValid() {
		return nil, apperrors.NewValidationError("unknown role", "role")
	}
	if !validation.IsEmail(user.Email) {
		return nil, apperrors.NewValidationError("invalid email address", "email")
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	s.logger.Info().Int64("userID", id).Str("role", string(user.Role)).Msg("User created")

	return s.userRepo.FindByID(ctx, id)
}

func trimProfileUpdate(u models.ProfileUpdate) models.ProfileUpdate {
	for _, p := range []*string{u.Name, u.Department, u.RollNo, u.GithubURL, u.LinkedinURL} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	return u
}

func touchesStudentFields(u models.ProfileUpdate) bool {
	return u.Department != nil || u.Year != nil || u.RollNo != nil || u.GithubURL != nil || u.LinkedinURL != nil
}

// validateProfileUpdate repeats the request checks so the service is safe to call directly
func validateProfileUpdate(u models.ProfileUpdate) error {
	var fields []string
	if u.Name != nil && *u.Name == "" {
		fields = append(fields, "name")
	}
	if u.Year != nil && (*u.Year < 1 || *u.Year > 5) {
		fields = append(fields, "year")
	}
	if u.GithubURL != nil && *u.GithubURL != "" && !validation.IsProfileURL(*u.GithubURL, "github.com") {
		fields = append(fields, "githubUrl")
	}
	if u.LinkedinURL != nil && *u.LinkedinURL != "" && !validation.IsProfileURL(*u.LinkedinURL, "linkedin.com") {
		fields = append(fields, "linkedinUrl")
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("invalid profile fields", fields...)
	}
	return nil
}
