package model

import (
	"fmt"
	"math/rand/v2"
)

// Engine owns the board, the turn and every rule of the game. It is not safe
// for concurrent use; callers serialise access.
type Engine struct {
	board      *Board
	whiteTurn  bool
	robotWhite bool
	ply        int
	rng        *rand.Rand
}

type EngineOption func(*Engine)

// WithRand makes the robot draw from r instead of the global source.
func WithRand(r *rand.Rand) EngineOption {
	return func(e *Engine) {
		e.rng = r
	}
}

func NewEngine(size int, robotWhite bool, opts ...EngineOption) *Engine {
	e := &Engine{
		board:      newBoard(size),
		whiteTurn:  true,
		robotWhite: robotWhite,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize clears the board and puts the men of p on it. White moves first.
// The placement is checked in full before anything is written.
func (e *Engine) Initialize(p Placement) error {
	if err := p.Validate(e.board.size); err != nil {
		return err
	}
	e.board.clear()
	for _, pos := range p.White {
		e.board.set(pos, WhiteMan)
	}
	for _, pos := range p.Black {
		e.board.set(pos, BlackMan)
	}
	e.whiteTurn = true
	e.ply = 0
	return nil
}

func (e *Engine) BoardSize() int {
	return e.board.size
}

// Cell returns the content of pos, Empty when pos is off the board.
func (e *Engine) Cell(pos Position) Cell {
	return e.board.At(pos)
}

func (e *Engine) Turn() PlayerColor {
	if e.whiteTurn {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}

func (e *Engine) RobotColor() PlayerColor {
	if e.robotWhite {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}

func (e *Engine) HumanColor() PlayerColor {
	return e.RobotColor().Opponent()
}

func (e *Engine) ownsTurn(c Cell) bool {
	return (e.whiteTurn && c.IsWhite()) || (!e.whiteTurn && c.IsBlack())
}

// MovePositions returns the legal moves of the piece on pos, or nil when pos
// is off the board, empty, or holds a piece of the side not to move.
//
// A man with a capture available may only capture; otherwise it steps one
// cell forward. A king may go anywhere its flood fill reaches.
func (e *Engine) MovePositions(pos Position) *MoveSet {
	if !pos.inside(e.board.size) {
		return nil
	}
	piece := e.board.At(pos)
	if piece == Empty || !e.ownsTurn(piece) {
		return nil
	}

	ms := &MoveSet{From: pos, Piece: piece, ply: e.ply}
	if piece.IsKing() {
		ms.Destinations = e.board.kingMoves(pos)
		return ms
	}
	if captures := e.board.manCaptures(pos); len(captures) > 0 {
		ms.Capture = true
		ms.Destinations = captures
		return ms
	}
	ms.Destinations = e.board.manSteps(pos)
	return ms
}

// CanMoveToPos reports whether the piece on selected may move to target.
func (e *Engine) CanMoveToPos(selected *Position, target Position) bool {
	if selected == nil {
		return false
	}
	ms := e.MovePositions(*selected)
	return ms != nil && ms.Contains(target)
}

// NeedDrawPossibleMoves reports whether pos holds a piece of the side to move.
func (e *Engine) NeedDrawPossibleMoves(pos Position) bool {
	return e.ownsTurn(e.board.At(pos))
}

// Move validates and applies a move from one cell to another.
func (e *Engine) Move(from, to Position) (Ply, error) {
	if !from.inside(e.board.size) || !to.inside(e.board.size) {
		return Ply{}, fmt.Errorf("%w: %v -> %v", ErrInvalidPosition, from, to)
	}
	ms := e.MovePositions(from)
	if ms == nil {
		return Ply{}, fmt.Errorf("%w: no movable piece on %v", ErrIllegalMove, from)
	}
	return e.Apply(ms, to)
}

// Apply plays the destination `to` of ms. The jumped cells carried by the
// destination are cleared, a man reaching the far row is crowned, and the
// turn passes to the other side.
func (e *Engine) Apply(ms *MoveSet, to Position) (Ply, error) {
	if ms == nil {
		return Ply{}, fmt.Errorf("%w: nothing selected", ErrIllegalMove)
	}
	if ms.ply != e.ply || e.board.At(ms.From) != ms.Piece {
		return Ply{}, ErrStaleMoveSet
	}
	d, ok := ms.Find(to)
	if !ok {
		return Ply{}, fmt.Errorf("%w: %v -> %v", ErrIllegalMove, ms.From, to)
	}

	for _, p := range d.Jumped {
		e.board.set(p, Empty)
	}
	piece := ms.Piece
	promoted := false
	if (piece.IsWhite() && to.Y == 0) || (piece.IsBlack() && to.Y == e.board.size-1) {
		promoted = !piece.IsKing()
		piece = piece.Promote()
	}
	e.board.set(to, piece)
	e.board.set(ms.From, Empty)

	ply := Ply{
		Color:    ms.Piece.Color(),
		From:     ms.From,
		To:       to,
		Captured: append([]Position{}, d.Jumped...),
		Promoted: promoted,
		Robot:    ms.Piece.Color() == e.RobotColor(),
		Notation: plyNotation(e.board.size, ms.From, d),
	}
	e.whiteTurn = !e.whiteTurn
	e.ply++
	return ply, nil
}

func (e *Engine) IsRobotMove() bool {
	return e.whiteTurn == e.robotWhite
}

// legalMoves surveys every piece of the side to move that can go somewhere.
func (e *Engine) legalMoves() []*MoveSet {
	var sets []*MoveSet
	for y := 0; y < e.board.size; y++ {
		for x := 0; x < e.board.size; x++ {
			ms := e.MovePositions(Position{X: x, Y: y})
			if ms != nil && !ms.Empty() {
				sets = append(sets, ms)
			}
		}
	}
	return sets
}

// DoRobotMove plays a uniformly random legal move for the robot. It refuses
// to act on the human's turn.
func (e *Engine) DoRobotMove() (Ply, error) {
	if !e.IsRobotMove() {
		return Ply{}, ErrNotYourTurn
	}
	return e.randomMove()
}

// randomMove plays a uniformly random legal move for the side to move. When
// any piece can capture, only capturing pieces and their captures are drawn.
func (e *Engine) randomMove() (Ply, error) {
	candidates := e.legalMoves()
	if len(candidates) == 0 {
		return Ply{}, ErrNoLegalMoves
	}

	var capturing []*MoveSet
	for _, ms := range candidates {
		if ms.HasCapture() {
			capturing = append(capturing, ms)
		}
	}
	if len(capturing) > 0 {
		ms := capturing[e.intN(len(capturing))]
		captures := ms.Captures()
		return e.Apply(ms, captures[e.intN(len(captures))].To)
	}

	ms := candidates[e.intN(len(candidates))]
	return e.Apply(ms, ms.Destinations[e.intN(len(ms.Destinations))].To)
}

func (e *Engine) intN(n int) int {
	if e.rng != nil {
		return e.rng.IntN(n)
	}
	return rand.IntN(n)
}

// IsGameEnded reports whether the side to move has no legal move left.
func (e *Engine) IsGameEnded() bool {
	for y := 0; y < e.board.size; y++ {
		for x := 0; x < e.board.size; x++ {
			ms := e.MovePositions(Position{X: x, Y: y})
			if ms != nil && !ms.Empty() {
				return false
			}
		}
	}
	return true
}

// Winner returns the side that is not to move. Only meaningful once the game ended.
func (e *Engine) Winner() PlayerColor {
	return e.Turn().Opponent()
}

// IsYouWin reports whether the human side won. Only meaningful once the game ended.
func (e *Engine) IsYouWin() bool {
	return e.Winner() == e.HumanColor()
}

// AllPieces snapshots every piece on the board for rendering.
func (e *Engine) AllPieces() []Piece {
	return e.board.Pieces()
}

func (e *Engine) String() string {
	return e.board.String()
}
