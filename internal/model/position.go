package model

import "fmt"

// Position identifies a board cell. X is the column, Y the row, origin top-left.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is a unit diagonal step.
type Direction struct {
	DX int
	DY int
}

var diagonals = [4]Direction{{DX: 1, DY: 1}, {DX: -1, DY: 1}, {DX: 1, DY: -1}, {DX: -1, DY: -1}}

// Add returns the cell one step away in direction d.
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Diff returns the absolute column distance between p and other. A distance of
// two or more means the move between them jumped something.
func (p Position) Diff(other Position) int {
	return abs(p.X - other.X)
}

func (p Position) inside(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Notation returns the algebraic square name, a1 being the bottom-left cell.
func (p Position) Notation(size int) string {
	return fmt.Sprintf("%c%d", p.X+'a', size-p.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func containsPosition(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
