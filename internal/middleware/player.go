package middleware

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
)

// MaxPlayerIDLength bounds the client supplied id. Ids key the per-game
// connection table and show up in every log line.
const MaxPlayerIDLength = 64

// EnsurePlayerID resolves the caller's id from the X-Player-ID header, or the
// playerId query parameter for browsers that cannot set headers on a
// WebSocket handshake, and stores it in the "playerID" local.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}
		if len(playerID) > MaxPlayerIDLength || strings.IndexFunc(playerID, invalidIDRune) >= 0 {
			log.Debug().Int("len", len(playerID)).Str("path", c.Path()).Msg("rejected player id")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Player ID must be at most %d printable characters without spaces.", MaxPlayerIDLength),
			})
		}

		// Fiber strings point into the request buffer, the id outlives it
		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}

func invalidIDRune(r rune) bool {
	return unicode.IsSpace(r) || !unicode.IsPrint(r)
}
