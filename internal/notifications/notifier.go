// Package notifications publishes post lifecycle events into Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"quill/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// PostEventsChannel is the Redis pub/sub channel for post lifecycle events.
const PostEventsChannel = "posts:events"

const (
	EventPostCreated = "post_created"
	EventPostUpdated = "post_updated"
	EventPostDeleted = "post_deleted"
)

// PostEvent is the envelope published on PostEventsChannel. Visible records
// whether readers could see the post when the event happened; events about
// hidden posts are only relayed to their owner.
type PostEvent struct {
	Type       string    `json:"type"`
	PostID     uint      `json:"post_id"`
	UserID     uint      `json:"user_id"`
	Visible    bool      `json:"visible"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every publish into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishPostEvent sends a post event to PostEventsChannel.
func (n *Notifier) PublishPostEvent(ctx context.Context, event PostEvent) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal post event: %w", err)
	}
	return n.rdb.Publish(ctx, PostEventsChannel, payload).Err()
}

// SubscribePostEvents calls onEvent for every event on PostEventsChannel
// until ctx is cancelled.
func (n *Notifier) SubscribePostEvents(ctx context.Context, onEvent func(PostEvent)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, PostEventsChannel)
	// Wait for the subscription to be confirmed so no event is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", PostEventsChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event PostEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					middleware.Logger.Warn("discarding malformed post event", slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in post event subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onEvent(event)
				}()
			}
		}
	}()

	return nil
}
