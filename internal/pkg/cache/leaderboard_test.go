package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/claimboard/internal/app/models"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sampleStandings() []models.Standing {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []models.Standing{
		{
			StudentAggregate: models.StudentAggregate{StudentID: 1, ApprovedCount: 3, LatestApprovedAt: at, MentorIDs: []int64{9}},
			Name:             "A", Department: "Computer", Year: 2, Rank: 1,
		},
		{
			StudentAggregate: models.StudentAggregate{StudentID: 2, ApprovedCount: 1, LatestApprovedAt: at, MentorIDs: []int64{}},
			Name:             "B", Department: "IT", Year: 3, Rank: 2,
		},
	}
}

func TestLeaderboardCache_RoundTripAndInvalidate(t *testing.T) {
	mr, client := setupRedis(t)
	ctx := context.Background()
	c := NewLeaderboardCache(client, 30*time.Second)

	_, ok := c.GetStandings(ctx)
	assert.False(t, ok)

	c.SetStandings(ctx, sampleStandings())
	assert.True(t, mr.Exists("leaderboard:standings"))
	assert.Equal(t, 30*time.Second, mr.TTL("leaderboard:standings"))

	got, ok := c.GetStandings(ctx)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].StudentID)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, []int64{9}, got[0].MentorIDs)
	assert.True(t, got[0].LatestApprovedAt.Equal(sampleStandings()[0].LatestApprovedAt))

	c.Invalidate(ctx)
	_, ok = c.GetStandings(ctx)
	assert.False(t, ok)
}

func TestLeaderboardCache_ExpiresAfterTTL(t *testing.T) {
	mr, client := setupRedis(t)
	ctx := context.Background()
	c := NewLeaderboardCache(client, time.Second)

	c.SetStandings(ctx, sampleStandings())
	mr.FastForward(2 * time.Second)

	_, ok := c.GetStandings(ctx)
	assert.False(t, ok)
}

func TestLeaderboardCache_DisabledAndBroken(t *testing.T) {
	ctx := context.Background()

	t.Run("nil client", func(t *testing.T) {
		c := NewLeaderboardCache(nil, 0)
		c.SetStandings(ctx, sampleStandings())
		_, ok := c.GetStandings(ctx)
		assert.False(t, ok)
		c.Invalidate(ctx)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		mr, client := setupRedis(t)
		require.NoError(t, mr.Set("leaderboard:standings", "{not json"))
		c := NewLeaderboardCache(client, time.Minute)
		_, ok := c.GetStandings(ctx)
		assert.False(t, ok)
	})

	t.Run("server down", func(t *testing.T) {
		mr, client := setupRedis(t)
		c := NewLeaderboardCache(client, time.Minute)
		mr.Close()
		_, ok := c.GetStandings(ctx)
		assert.False(t, ok)
	})
}

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()

	client, err := NewRedisClient(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, client)

	mr := miniredis.RunT(t)
	client, err = NewRedisClient(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NotNil(t, client)
	_ = client.Close()

	_, err = NewRedisClient(ctx, "not-a-url")
	assert.Error(t, err)
}
