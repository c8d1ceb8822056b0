package model

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

// Opponent returns the other side.
func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

// ClientPlayer describes one side of a game as sent to clients.
type ClientPlayer struct {
	ID      string      `json:"id"`
	Color   PlayerColor `json:"color"`
	IsRobot bool        `json:"isRobot"`
}
