// Package services holds the business logic of the claim board.
//
// Services defined in this package:
//   - UserService: profile reads and partial updates
//   - ClaimService: claim submission, review and reviewer listings
//   - LeaderboardService: ranked standings and the viewer's mentors
//   - FallbackMentorResolver: the mentor assigned when a claim names none
package services

import (
	"context"

	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/pkg/events"
)

// StandingsCache stores the ranked standings between requests. Misses and failures are not
// errors; callers recompute from the store.
type StandingsCache interface {
	GetStandings(ctx context.Context) ([]models.Standing, bool)
	SetStandings(ctx context.Context, standings []models.Standing)
	Invalidate(ctx context.Context)
}

// EventPublisher emits claim lifecycle events. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event events.ClaimEvent)
}

type noopCache struct{}

func (noopCache) GetStandings(context.Context) ([]models.Standing, bool) { return nil, false }
func (noopCache) SetStandings(context.Context, []models.Standing)       {}
func (noopCache) Invalidate(context.Context)                           {}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, events.ClaimEvent) {}
