package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quill/internal/notifications"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func postsWatchCmd() *cobra.Command {
	var url, token string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream post events from a running server",
		Long: "Connects to the server's post feed and prints one line per event.\n" +
			"Without a token only events about published posts are shown.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				token = os.Getenv("QUILL_TOKEN")
			}
			header := http.Header{}
			if token != "" {
				header.Set("Authorization", "Bearer "+token)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
			if err != nil {
				return fmt.Errorf("connect to %s: %w", url, err)
			}
			defer func() { _ = conn.Close() }()

			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", url)
			return watchFeed(ctx, conn, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&url, "url", "ws://localhost:8375/api/ws/posts", "post feed websocket URL")
	cmd.Flags().StringVar(&token, "token", "", "bearer token (default $QUILL_TOKEN)")
	return cmd
}

// watchFeed prints feed events until the server closes the connection or ctx ends.
func watchFeed(ctx context.Context, conn *websocket.Conn, out io.Writer) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read post feed: %w", err)
		}

		var e notifications.PostEvent
		if err := json.Unmarshal(raw, &e); err != nil || e.Type == "" {
			fmt.Fprintf(out, "%s\n", raw)
			continue
		}
		audience := "public"
		if !e.Visible {
			audience = "owner-only"
		}
		fmt.Fprintf(out, "%s  %-12s  post %-6d  user %-6d  %s\n",
			e.OccurredAt.UTC().Format(time.RFC3339), e.Type, e.PostID, e.UserID, audience)
	}
}
