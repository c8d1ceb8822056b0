// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/artem-pershin/checkers/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

var ErrGameNotFound = errors.New("game not found")

// SettingsFunc produces the settings for each new game.
type SettingsFunc func() (model.Settings, error)

type GameManager struct {
	games    map[string]*model.Game
	settings SettingsFunc
	mu       sync.RWMutex
}

func NewGameManager(settings SettingsFunc) *GameManager {
	return &GameManager{
		games:    make(map[string]*model.Game),
		settings: settings,
	}
}

func (gm *GameManager) CreateGame(gameID string, playerID string) error {
	settings, err := gm.settings()
	if err != nil {
		return err
	}
	game, err := model.NewGame(gameID, playerID, settings)
	if err != nil {
		return err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("game %s already exists", gameID)
	}
	gm.games[gameID] = game
	log.Info().Str("game", gameID).Str("player", playerID).Msg("game created")
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.SimpleMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) Click(gameID string, playerID string, pos model.Position) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Click(playerID, pos)
}

func (gm *GameManager) Select(gameID string, playerID string, pos model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.Select(playerID, pos)
}

func (gm *GameManager) Restart(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Restart(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}
