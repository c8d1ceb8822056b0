package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeClick      MessageType = "click"
	MessageTypeSelect     MessageType = "select"
	MessageTypeRestart    MessageType = "restart"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorMessage builds an error message whose payload is a JSON string.
func ErrorMessage(text string) Message {
	payload, _ := json.Marshal(text)
	return Message{Type: MessageTypeError, Payload: payload}
}
