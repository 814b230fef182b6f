package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/claimboard/internal/app/auth"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/app/repositories"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
)

// LeaderboardService defines the interface for leaderboard operations
type LeaderboardService interface {
	Leaderboard(ctx context.Context, viewer auth.Viewer, filters models.LeaderboardFilters) (*models.LeaderboardView, error)
	MyMentors(ctx context.Context, viewer auth.Viewer) ([]int64, error)
}

// leaderboardServiceImpl implements LeaderboardService
type leaderboardServiceImpl struct {
	claimRepo repositories.IClaimRepository
	userRepo  repositories.IUserRepository
	cache     StandingsCache
	logger    zerolog.Logger
}

// NewLeaderboardService creates a new LeaderboardService. cache may be nil.
func NewLeaderboardService(
	claimRepo repositories.IClaimRepository,
	userRepo repositories.IUserRepository,
	cache StandingsCache,
	logger zerolog.Logger,
) LeaderboardService {
	if cache == nil {
		cache = noopCache{}
	}
	return &leaderboardServiceImpl{
		claimRepo: claimRepo,
		userRepo:  userRepo,
		cache:     cache,
		logger:    logger,
	}
}

// Leaderboard ranks every student with approved claims, then filters and shapes the result
// for the viewer. Ranks are global: filtering never renumbers them.
func (s *leaderboardServiceImpl) Leaderboard(ctx context.Context, viewer auth.Viewer, filters models.LeaderboardFilters) (*models.LeaderboardView, error) {
	if filters.MinCommonMentors < 0 {
		return nil, apperrors.NewValidationError("commonMentors must not be negative", "commonMentors")
	}

	standings, err := s.standings(ctx)
	if err != nil {
		return nil, err
	}

	var viewerMentors []int64
	if viewer.Role() == models.RoleStudent {
		viewerMentors = mentorsOf(standings, viewer.UserID())
	} else {
		filters.MinCommonMentors = 0
	}

	entries := ApplyFilters(standings, filters, viewerMentors)
	return ShapeForViewer(standings, entries, viewer), nil
}

// standings returns the ranked standings, from cache when possible
func (s *leaderboardServiceImpl) standings(ctx context.Context) ([]models.Standing, error) {
	if cached, ok := s.cache.GetStandings(ctx); ok {
		return cached, nil
	}

	claims, err := s.claimRepo.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing approved claims: %w", err)
	}
	aggregates := AggregateApproved(claims)

	ids := make([]int64, 0, len(aggregates))
	for _, a := range aggregates {
		ids = append(ids, a.StudentID)
	}
	users, err := s.userRepo.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error finding students: %w", err)
	}

	standings := AssignRanks(SortStandings(JoinDirectory(aggregates, users)))
	s.cache.SetStandings(ctx, standings)

	s.logger.Debug().Int("students", len(standings)).Msg("Leaderboard standings computed")
	return standings, nil
}

// MyMentors returns the mentors across the viewer's approved claims; empty for non-students
func (s *leaderboardServiceImpl) MyMentors(ctx context.Context, viewer auth.Viewer) ([]int64, error) {
	if viewer.Role() != models.RoleStudent {
		return []int64{}, nil
	}

	claims, err := s.claimRepo.ListApprovedByStudent(ctx, viewer.UserID())
	if err != nil {
		return nil, fmt.Errorf("error listing approved claims: %w", err)
	}

	out := make([]int64, 0)
	seen := make(map[int64]bool)
	for _, c := range claims {
		for _, m := range c.MentorIDs {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}
