package controller

import (
	"encoding/json"
	"fmt"

	"github.com/artem-pershin/checkers/internal/model"
	"github.com/artem-pershin/checkers/internal/service"
	"github.com/artem-pershin/checkers/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Locals("wsGameID").(string)
	playerID := c.Locals("wsPlayerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		// a duplicate is closed by the game, anything else when the handler returns
		log.Warn().Err(err).Str("game", gameID).Str("player", playerID).Msg("failed to register connection")
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Str("game", gameID).Msg("read error")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Msg("parse error")
			wsc.send(gameID, playerID, ws.ErrorMessage("malformed message"))
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("handle error")
			wsc.send(gameID, playerID, ws.ErrorMessage(err.Error()))
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeClick:
		var pos model.Position
		if err := json.Unmarshal(msg.Payload, &pos); err != nil {
			return err
		}
		return wsc.gameService.HandleClick(gameID, playerID, pos)

	case ws.MessageTypeSelect:
		var pos model.Position
		if err := json.Unmarshal(msg.Payload, &pos); err != nil {
			return err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, playerID, pos)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(moves)
		if err != nil {
			return err
		}
		wsc.send(gameID, playerID, ws.Message{Type: ws.MessageTypeLegalMoves, Payload: payload})
		return nil

	case ws.MessageTypeRestart:
		return wsc.gameService.Restart(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) send(gameID, playerID string, msg ws.Message) {
	if err := wsc.gameService.Send(gameID, playerID, msg); err != nil {
		log.Warn().Err(err).Str("game", gameID).Str("player", playerID).Msg("failed to send message")
	}
}
