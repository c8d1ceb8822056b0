package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketUpgrade lets through only WebSocket handshakes that name a game
// by its uuid and carry a resolved player id.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}
		// Games are keyed by the uuid handed out on creation
		if _, err := uuid.Parse(gameID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is malformed",
			})
		}

		// Set by EnsurePlayerID
		playerID, ok := c.Locals("playerID").(string)
		if !ok || playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// The connection context after the upgrade only sees locals, not params
		c.Locals("wsGameID", utils.CopyString(gameID))
		c.Locals("wsPlayerID", playerID)

		return c.Next()
	}
}
