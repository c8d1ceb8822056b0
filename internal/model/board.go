package model

// Cell is the content of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	WhiteMan
	WhiteKing
	BlackMan
	BlackKing
)

func (c Cell) IsWhite() bool { return c == WhiteMan || c == WhiteKing }
func (c Cell) IsBlack() bool { return c == BlackMan || c == BlackKing }
func (c Cell) IsKing() bool  { return c == WhiteKing || c == BlackKing }

// Color reports the owner of the piece. It must not be called on an empty cell.
func (c Cell) Color() PlayerColor {
	if c.IsWhite() {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}

// Promote turns a man into the king of the same colour. Kings and empty
// cells are returned unchanged.
func (c Cell) Promote() Cell {
	switch c {
	case WhiteMan:
		return WhiteKing
	case BlackMan:
		return BlackKing
	}
	return c
}

// IsEnemyOf reports whether c holds a piece of the colour opposite to other.
func (c Cell) IsEnemyOf(other Cell) bool {
	return (c.IsWhite() && other.IsBlack()) || (c.IsBlack() && other.IsWhite())
}

func (c Cell) String() string {
	switch c {
	case WhiteMan:
		return "w"
	case WhiteKing:
		return "W"
	case BlackMan:
		return "b"
	case BlackKing:
		return "B"
	}
	return "."
}

// Piece is a read-only snapshot of an occupied cell, used for rendering.
type Piece struct {
	Position Position    `json:"position"`
	Color    PlayerColor `json:"color"`
	IsKing   bool        `json:"isKing"`
}

// Board is a square grid of cells indexed as grid[y][x].
type Board struct {
	size int
	grid [][]Cell
}

func newBoard(size int) *Board {
	board := &Board{size: size}
	for i := 0; i < size; i++ {
		board.grid = append(board.grid, make([]Cell, size))
	}
	return board
}

func (b *Board) Size() int {
	return b.size
}

// At returns the cell at p, or Empty when p is off the board.
func (b *Board) At(p Position) Cell {
	if !p.inside(b.size) {
		return Empty
	}
	return b.grid[p.Y][p.X]
}

func (b *Board) set(p Position, c Cell) {
	b.grid[p.Y][p.X] = c
}

func (b *Board) isFree(p Position) bool {
	return p.inside(b.size) && b.grid[p.Y][p.X] == Empty
}

func (b *Board) clear() {
	for y := range b.grid {
		for x := range b.grid[y] {
			b.grid[y][x] = Empty
		}
	}
}

// canJump reports whether a piece of kind eater may jump over `over` into `land`.
func (b *Board) canJump(over, land Position, eater Cell) bool {
	return over.inside(b.size) && b.At(over).IsEnemyOf(eater) && b.isFree(land)
}

// Pieces lists every occupied cell in row-major order.
func (b *Board) Pieces() []Piece {
	pieces := []Piece{}
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			c := b.grid[y][x]
			if c == Empty {
				continue
			}
			pieces = append(pieces, Piece{
				Position: Position{X: x, Y: y},
				Color:    c.Color(),
				IsKing:   c.IsKing(),
			})
		}
	}
	return pieces
}

func (b *Board) String() string {
	out := make([]byte, 0, b.size*(b.size+1))
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			out = append(out, b.grid[y][x].String()...)
		}
		out = append(out, '\n')
	}
	return string(out)
}
