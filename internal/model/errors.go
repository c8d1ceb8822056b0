package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPosition is returned for coordinates outside the board.
	ErrInvalidPosition = errors.New("position outside the board")

	// ErrIllegalMove is returned when the destination is not a legal move.
	ErrIllegalMove = errors.New("illegal move")

	// ErrStaleMoveSet is returned when a move set is applied after the board changed.
	ErrStaleMoveSet = errors.New("move set no longer matches the board")

	// ErrNoLegalMoves is returned when the side to move cannot move at all.
	ErrNoLegalMoves = errors.New("no legal moves")

	// ErrMalformedPlacement indicates an unreadable initial placement.
	ErrMalformedPlacement = errors.New("malformed placement")

	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotPlayer   = errors.New("player is not part of this game")
)

// PlacementError wraps a placement failure with the line and token that caused it.
type PlacementError struct {
	Line  int    // 1-based line number, 0 when not tied to a line
	Token string // offending token, if any
	Err   error
}

func (e *PlacementError) Error() string {
	switch {
	case e.Line > 0 && e.Token != "":
		return fmt.Sprintf("placement line %d: token %q: %v", e.Line, e.Token, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("placement line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("placement: %v", e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}

func placementErr(line int, token, format string, args ...interface{}) error {
	return &PlacementError{
		Line:  line,
		Token: token,
		Err:   fmt.Errorf("%w: "+format, append([]interface{}{ErrMalformedPlacement}, args...)...),
	}
}
