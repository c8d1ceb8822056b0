package model

// Destination is one legal landing cell together with the enemy cells
// jumped on the way there.
type Destination struct {
	To     Position   `json:"to"`
	Jumped []Position `json:"jumped,omitempty"`
}

func (d Destination) IsCapture() bool {
	return len(d.Jumped) > 0
}

// MoveSet is the answer to a legal-move query for one piece. It is tied to
// the ply it was computed on and must be applied before the board changes.
type MoveSet struct {
	From  Position
	Piece Cell
	// Capture is set when the piece is a man with a mandatory capture; all
	// destinations are then jump endpoints.
	Capture      bool
	Destinations []Destination

	ply int
}

// Positions returns the landing cells in discovery order.
func (ms *MoveSet) Positions() []Position {
	positions := make([]Position, 0, len(ms.Destinations))
	for _, d := range ms.Destinations {
		positions = append(positions, d.To)
	}
	return positions
}

func (ms *MoveSet) Find(to Position) (Destination, bool) {
	for _, d := range ms.Destinations {
		if d.To == to {
			return d, true
		}
	}
	return Destination{}, false
}

func (ms *MoveSet) Contains(to Position) bool {
	_, ok := ms.Find(to)
	return ok
}

// Captures returns the destinations that jump at least one piece.
func (ms *MoveSet) Captures() []Destination {
	var captures []Destination
	for _, d := range ms.Destinations {
		if d.IsCapture() {
			captures = append(captures, d)
		}
	}
	return captures
}

func (ms *MoveSet) HasCapture() bool {
	for _, d := range ms.Destinations {
		if d.IsCapture() {
			return true
		}
	}
	return false
}

func (ms *MoveSet) Empty() bool {
	return len(ms.Destinations) == 0
}

// SimpleMove is a from/to pair as sent by clients.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply records one applied move.
type Ply struct {
	Color    PlayerColor `json:"color"`
	From     Position    `json:"from"`
	To       Position    `json:"to"`
	Captured []Position  `json:"captured"`
	Promoted bool        `json:"promoted"`
	Robot    bool        `json:"robot"`
	Notation string      `json:"notation"`
}

func plyNotation(size int, from Position, d Destination) string {
	sep := "-"
	if d.IsCapture() {
		sep = "x"
	}
	return from.Notation(size) + sep + d.To.Notation(size)
}
