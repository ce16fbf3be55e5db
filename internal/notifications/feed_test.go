package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEventuallyTimeout = 2 * time.Second

func receiveEvent(t *testing.T, c *FeedClient) PostEvent {
	t.Helper()
	select {
	case raw := <-c.Send:
		var e PostEvent
		require.NoError(t, json.Unmarshal(raw, &e))
		return e
	case <-time.After(testEventuallyTimeout):
		t.Fatal("timed out waiting for feed event")
		return PostEvent{}
	}
}

func TestPostFeed_DeliverRespectsVisibility(t *testing.T) {
	feed := NewPostFeed()
	owner, err := feed.Register(7, nil)
	require.NoError(t, err)
	reader, err := feed.Register(8, nil)
	require.NoError(t, err)
	anonymous, err := feed.Register(0, nil)
	require.NoError(t, err)

	feed.Deliver(PostEvent{Type: EventPostCreated, PostID: 1, UserID: 7, Visible: false})
	feed.Deliver(PostEvent{Type: EventPostCreated, PostID: 2, UserID: 7, Visible: true})

	assert.Equal(t, uint(1), receiveEvent(t, owner).PostID)
	assert.Equal(t, uint(2), receiveEvent(t, owner).PostID)
	assert.Equal(t, uint(2), receiveEvent(t, reader).PostID)
	assert.Equal(t, uint(2), receiveEvent(t, anonymous).PostID)
	assert.Empty(t, reader.Send)
	assert.Empty(t, anonymous.Send)

	_ = feed.Shutdown(context.Background())
	assert.Zero(t, feed.Len())
}

func TestPostFeed_UnregisterIsIdempotent(t *testing.T) {
	feed := NewPostFeed()
	c, err := feed.Register(3, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Len())

	feed.Unregister(c)
	feed.Unregister(c)
	assert.Zero(t, feed.Len())

	_, open := <-c.Send
	assert.False(t, open)

	// Delivering after a client left must not panic on its closed channel.
	feed.Deliver(PostEvent{Type: EventPostDeleted, PostID: 1, UserID: 3, Visible: true})
}

func TestPostFeed_SlowClientDropsInsteadOfBlocking(t *testing.T) {
	feed := NewPostFeed()
	c, err := feed.Register(1, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBufferSize+5; i++ {
			feed.Deliver(PostEvent{Type: EventPostUpdated, PostID: uint(i + 1), UserID: 1, Visible: true})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(testEventuallyTimeout):
		t.Fatal("Deliver blocked on a full client buffer")
	}
	assert.Len(t, c.Send, sendBufferSize)
	_ = feed.Shutdown(context.Background())
}

func TestPostFeed_WiredToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	feed := NewPostFeed()
	c, err := feed.Register(0, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n := NewNotifier(rdb)
	require.NoError(t, feed.StartWiring(ctx, n))

	// Another process publishing on the channel reaches local feed clients.
	require.NoError(t, NewNotifier(rdb).PublishPostEvent(ctx, PostEvent{
		Type: EventPostCreated, PostID: 12, UserID: 4, Visible: true,
		OccurredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}))

	got := receiveEvent(t, c)
	assert.Equal(t, EventPostCreated, got.Type)
	assert.Equal(t, uint(12), got.PostID)
	assert.True(t, got.Visible)

	_ = feed.Shutdown(context.Background())
}
