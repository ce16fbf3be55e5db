package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"quill/internal/middleware"
	"quill/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// The feed is one-way; clients only send control frames.
	maxMessageSize = 512

	sendBufferSize = 64

	maxFeedClients = 1000
)

// ErrFeedFull is returned when the feed has no room for another connection.
var ErrFeedFull = errors.New("post feed connection limit reached")

// FeedClient is one websocket connection on the post feed.
type FeedClient struct {
	feed   *PostFeed
	Conn   *websocket.Conn
	Send   chan []byte
	UserID uint
}

// PostFeed fans post events out to connected websocket clients.
type PostFeed struct {
	mu      sync.RWMutex
	clients map[*FeedClient]struct{}
}

// NewPostFeed creates an empty feed.
func NewPostFeed() *PostFeed {
	return &PostFeed{clients: make(map[*FeedClient]struct{})}
}

func (f *PostFeed) Name() string { return "post feed" }

// Register adds a connection for userID. conn may be nil in tests.
func (f *PostFeed) Register(userID uint, conn *websocket.Conn) (*FeedClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.clients) >= maxFeedClients {
		return nil, ErrFeedFull
	}
	c := &FeedClient{
		feed:   f,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
		UserID: userID,
	}
	f.clients[c] = struct{}{}
	observability.FeedConnections.Inc()
	return c, nil
}

// Unregister removes c and closes its Send channel. Safe to call twice.
func (f *PostFeed) Unregister(c *FeedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.clients[c]; !ok {
		return
	}
	delete(f.clients, c)
	close(c.Send)
	observability.FeedConnections.Dec()
}

// Len reports the number of connected clients.
func (f *PostFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// Deliver relays event to every client allowed to see it: everyone when the
// post was visible, otherwise only its owner.
func (f *PostFeed) Deliver(event PostEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		middleware.Logger.Error("failed to marshal post event", slog.String("error", err.Error()))
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for c := range f.clients {
		if !event.Visible && c.UserID != event.UserID {
			continue
		}
		select {
		case c.Send <- payload:
		default:
			observability.FeedDrops.WithLabelValues("buffer_full").Inc()
			middleware.Logger.Warn("post feed client too slow, dropped event",
				slog.Uint64("user_id", uint64(c.UserID)),
				slog.Uint64("post_id", uint64(event.PostID)),
			)
		}
	}
}

// StartWiring subscribes the feed to post events published by any process.
func (f *PostFeed) StartWiring(ctx context.Context, n *Notifier) error {
	return n.SubscribePostEvents(ctx, f.Deliver)
}

// Shutdown sends a close frame to every client and drops them.
func (f *PostFeed) Shutdown(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for c := range f.clients {
		if c.Conn != nil {
			_ = c.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			_ = c.Conn.Close()
		}
		delete(f.clients, c)
		close(c.Send)
		observability.FeedConnections.Dec()
	}
	return nil
}

// ReadPump discards client frames and returns when the connection closes.
func (c *FeedClient) ReadPump() {
	defer func() {
		c.feed.Unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				middleware.Logger.Debug("post feed read failed",
					slog.Uint64("user_id", uint64(c.UserID)), slog.String("error", err.Error()))
			}
			return
		}
	}
}

// WritePump writes queued events and keepalive pings to the connection.
func (c *FeedClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
