// Package events publishes account and favorite changes for other
// processes to consume.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Type names a change.
type Type string

const (
	AccountCreated   Type = "account.created"
	AccountDeleted   Type = "account.deleted"
	PasswordUpdated  Type = "account.password_updated"
	FavoriteAdded    Type = "favorite.added"
	FavoriteUpdated  Type = "favorite.updated"
	FavoriteRemoved  Type = "favorite.removed"
	FavoritesCleared Type = "favorite.cleared"
)

// Event is the JSON payload written to the channel.
type Event struct {
	Type        Type      `json:"type"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	Location    string    `json:"location,omitempty"`
	OldLocation string    `json:"old_location,omitempty"`
	Count       int64     `json:"count,omitempty"`
	At          time.Time `json:"at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// RedisPublisher publishes events on a Redis pub/sub channel
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher creates a new RedisPublisher
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish stamps ev with the current time if unset and sends it.
func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", ev.Type, p.channel, err)
	}
	return nil
}

// Channel returns the channel events are published on.
func (p *RedisPublisher) Channel() string {
	return p.channel
}

// NopPublisher drops every event. Used when Redis is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
