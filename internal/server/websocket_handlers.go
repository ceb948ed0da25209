package server

import (
	"context"
	"errors"
	"log/slog"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade admits upgrade requests to the chat relay. A session token
// in the "token" query parameter or the Authorization header identifies the
// connection; without one the connection joins as a guest. A token that does
// not resolve is rejected.
func (s *Server) WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		token := c.Query("token")
		if token == "" {
			token = middleware.ExtractToken(c.Get("Authorization"))
		}

		var userID uint
		if token != "" {
			id, err := s.sessions.Resolve(c.UserContext(), token)
			if err != nil {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Invalid or expired session"))
			}
			userID = id
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// WebSocketRelayHandler handles GET /api/ws
// @Summary Chat relay
// @Description WebSocket. Send {"type":"message","content","sessionId?","receiverId?"}; receive message and system envelopes.
// @Tags chat
// @Param token query string false "Session token"
// @Success 101
// @Failure 401 {object} models.ErrorResponse
// @Failure 426 {object} object{error=string}
// @Router /ws [get]
func (s *Server) WebSocketRelayHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		userID, _ := conn.Locals("userID").(uint)

		err := s.relay.Serve(context.Background(), conn, userID)
		if errors.Is(err, notifications.ErrServerFull) || errors.Is(err, notifications.ErrUserFull) {
			middleware.Logger.Warn("chat relay rejected connection",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("error", err.Error()))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
		}
	})
}
