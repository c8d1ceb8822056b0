package service

import (
	"fmt"

	"github.com/artem-pershin/checkers/internal/model"
	"github.com/artem-pershin/checkers/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a game against the robot for playerID and returns its id.
func (gs *GameService) CreateGame(playerID string) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, playerID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.SimpleMove) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) HandleClick(gameID string, playerID string, pos model.Position) error {
	return gs.gameManager.Click(gameID, playerID, pos)
}

func (gs *GameService) LegalMoves(gameID string, playerID string, pos model.Position) ([]model.Position, error) {
	return gs.gameManager.Select(gameID, playerID, pos)
}

func (gs *GameService) Restart(gameID string, playerID string) error {
	return gs.gameManager.Restart(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

// Send delivers msg to the socket of playerID in gameID.
func (gs *GameService) Send(gameID string, playerID string, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}
