package controller

import (
	"errors"
	"strconv"

	"github.com/artem-pershin/checkers/internal/model"
	"github.com/artem-pershin/checkers/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotPlayer):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrInvalidPosition), errors.Is(err, model.ErrMalformedPlacement):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrIllegalMove), errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver), errors.Is(err, model.ErrStaleMoveSet):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	gameID, err := gc.gameService.CreateGame(playerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	x, errX := strconv.Atoi(c.Query("x"))
	y, errY := strconv.Atoi(c.Query("y"))
	if errX != nil || errY != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "x and y query parameters are required",
		})
	}
	playerID := c.Locals("playerID").(string)

	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), playerID, model.Position{X: x, Y: y})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"legalMoves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.SimpleMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.HandleMove(gameID, playerID, move); err != nil {
		return respondError(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Click(c *fiber.Ctx) error {
	var pos model.Position
	if err := c.BodyParser(&pos); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid position body",
		})
	}
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.HandleClick(gameID, playerID, pos); err != nil {
		return respondError(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Restart(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.Restart(gameID, playerID); err != nil {
		return respondError(c, err)
	}
	return gc.GetGameState(c)
}
