package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/claimboard/internal/pkg/logger"
)

const (
	// DefaultStream is the redis stream claim lifecycle events are appended to
	DefaultStream = "claims.events"

	TypeClaimSubmitted = "claim.submitted"
	TypeClaimReviewed  = "claim.reviewed"
)

// ClaimEvent is a claim lifecycle notification
type ClaimEvent struct {
	Type      string
	ClaimID   int64
	StudentID int64
	Status    string
	ActorID   int64
	At        time.Time
}

// Values flattens the event into stream fields
func (e ClaimEvent) Values() map[string]interface{} {
	return map[string]interface{}{
		"type":      e.Type,
		"claimId":   strconv.FormatInt(e.ClaimID, 10),
		"studentId": strconv.FormatInt(e.StudentID, 10),
		"status":    e.Status,
		"actorId":   strconv.FormatInt(e.ActorID, 10),
		"at":        e.At.UTC().Format(time.RFC3339Nano),
	}
}

// Publisher appends claim events to a redis stream. Publishing is best effort: failures are
// logged and never fail the operation that produced the event.
type Publisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewPublisher creates a publisher; a nil client makes Publish a no-op
func NewPublisher(client *redis.Client, stream string, maxLen int64) *Publisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &Publisher{client: client, stream: stream, maxLen: maxLen}
}

// Publish appends the event to the stream
func (p *Publisher) Publish(ctx context.Context, event ClaimEvent) {
	if p == nil || p.client == nil {
		return
	}
	if err := p.publish(ctx, event); err != nil {
		logger.Warn().Err(err).Str("type", event.Type).Int64("claimId", event.ClaimID).Msg("Failed to publish claim event")
	}
}

func (p *Publisher) publish(ctx context.Context, event ClaimEvent) error {
	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: event.Values(),
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}
