package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/uniclubs/universe-backend/pkg/messaging"
)

// MembershipEvent is published when a membership is activated or removed.
type MembershipEvent struct {
	Type         string    `json:"type"` // membership.activated, membership.removed
	UserID       int64     `json:"user_id"`
	ClubID       int64     `json:"club_id"`
	MembershipID int64     `json:"membership_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NotificationPublisher publishes membership events for downstream consumers.
type NotificationPublisher interface {
	PublishMembershipEvent(ctx context.Context, event *MembershipEvent) error
	Close() error
}

type redisNotificationPublisher struct {
	redisClient messaging.RedisClient
	channel     string
}

// NewRedisNotificationPublisher creates a Redis-backed publisher.
func NewRedisNotificationPublisher(client messaging.RedisClient, channel string) NotificationPublisher {
	return &redisNotificationPublisher{
		redisClient: client,
		channel:     channel,
	}
}

func (p *redisNotificationPublisher) PublishMembershipEvent(ctx context.Context, event *MembershipEvent) error {
	if event == nil {
		return fmt.Errorf("event is required")
	}

	// Per-user channel plus the firehose channel.
	userChannel := fmt.Sprintf("%s:%d", p.channel, event.UserID)

	if err := p.redisClient.Publish(ctx, userChannel, event); err != nil {
		return fmt.Errorf("failed to publish membership event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, p.channel, event); err != nil {
		return fmt.Errorf("failed to publish membership event to shared channel: %w", err)
	}

	return nil
}

func (p *redisNotificationPublisher) Close() error {
	return p.redisClient.Close()
}
