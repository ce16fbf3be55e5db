package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishAndSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan PostEvent, 1)
	require.NoError(t, n.SubscribePostEvents(ctx, func(e PostEvent) { received <- e }))

	sent := PostEvent{Type: EventPostCreated, PostID: 4, UserID: 2, OccurredAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, n.PublishPostEvent(ctx, sent))

	select {
	case got := <-received:
		assert.Equal(t, sent, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for post event")
	}
}

func TestNotifier_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishPostEvent(context.Background(), PostEvent{Type: EventPostDeleted}))
	assert.NoError(t, n.SubscribePostEvents(context.Background(), func(PostEvent) {}))

	var nilNotifier *Notifier
	assert.NoError(t, nilNotifier.PublishPostEvent(context.Background(), PostEvent{}))
}
