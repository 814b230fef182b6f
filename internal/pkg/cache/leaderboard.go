package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/pkg/logger"
)

const (
	leaderboardPrefix = "leaderboard:"
	standingsKey      = "standings"

	// DefaultLeaderboardTTL bounds how stale cached standings can get if an invalidation is lost
	DefaultLeaderboardTTL = time.Minute
)

// LeaderboardCache stores the globally ranked standings
type LeaderboardCache struct {
	helper *CacheHelper
	ttl    time.Duration
}

// NewLeaderboardCache creates a leaderboard cache; a nil client disables it
func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	if ttl <= 0 {
		ttl = DefaultLeaderboardTTL
	}
	return &LeaderboardCache{
		helper: NewCacheHelper(client, leaderboardPrefix),
		ttl:    ttl,
	}
}

// GetStandings returns cached standings. ok is false on a miss, when the cache is disabled,
// or when redis fails; failures are logged and never surfaced.
func (c *LeaderboardCache) GetStandings(ctx context.Context) ([]models.Standing, bool) {
	var standings []models.Standing
	err := c.helper.Get(ctx, standingsKey, &standings)
	switch {
	case err == nil:
		return standings, true
	case errors.Is(err, ErrCacheNotFound), errors.Is(err, ErrCacheNotAvailable):
		return nil, false
	default:
		logger.Warn().Err(err).Msg("Leaderboard cache read failed")
		return nil, false
	}
}

// SetStandings stores the standings with the configured TTL
func (c *LeaderboardCache) SetStandings(ctx context.Context, standings []models.Standing) {
	if err := c.helper.Set(ctx, standingsKey, standings, c.ttl); err != nil {
		logger.Warn().Err(err).Msg("Leaderboard cache write failed")
	}
}

// Invalidate drops the cached standings
func (c *LeaderboardCache) Invalidate(ctx context.Context) {
	if err := c.helper.Delete(ctx, standingsKey); err != nil {
		logger.Warn().Err(err).Msg("Leaderboard cache invalidation failed")
	}
}
