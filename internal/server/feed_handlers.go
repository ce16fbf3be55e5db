package server

import (
	"errors"
	"log/slog"

	"quill/internal/middleware"
	"quill/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// PostFeedHandler upgrades to a websocket that streams post events.
// Plain HTTP requests get 426 Upgrade Required.
func (s *Server) PostFeedHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("userID").(uint)

		if s.feed == nil {
			_ = conn.Close()
			return
		}
		client, err := s.feed.Register(userID, conn)
		if err != nil {
			msg := "feed unavailable"
			if errors.Is(err, notifications.ErrFeedFull) {
				msg = err.Error()
			}
			middleware.Logger.Warn("post feed registration failed",
				slog.Uint64("user_id", uint64(userID)), slog.String("error", err.Error()))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+msg+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
