package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Placement lists the starting cells of the men of each colour.
type Placement struct {
	White []Position `json:"white"`
	Black []Position `json:"black"`
}

// DefaultPlacement returns the standard opening: (size-2)/2 rows of men per
// side on the dark squares, Black on top and White at the bottom.
func DefaultPlacement(size int) Placement {
	rows := (size - 2) / 2
	p := Placement{White: []Position{}, Black: []Position{}}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				continue
			}
			switch {
			case y < rows:
				p.Black = append(p.Black, Position{X: x, Y: y})
			case y >= size-rows:
				p.White = append(p.White, Position{X: x, Y: y})
			}
		}
	}
	return p
}

// Validate checks every cell against the board size and rejects cells used twice.
func (p Placement) Validate(size int) error {
	seen := make(map[Position]bool, len(p.White)+len(p.Black))
	for i, cells := range [][]Position{p.White, p.Black} {
		for _, pos := range cells {
			if !pos.inside(size) {
				return placementErr(i+1, encodeCell(pos), "%v", ErrInvalidPosition)
			}
			if seen[pos] {
				return placementErr(i+1, encodeCell(pos), "cell occupied twice")
			}
			seen[pos] = true
		}
	}
	return nil
}

// ParsePlacement reads the two-line "row,col" format: the first line holds
// the white men, the second the black men.
func ParsePlacement(r io.Reader, size int) (Placement, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for len(lines) < 2 && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Placement{}, &PlacementError{Err: fmt.Errorf("%w: %v", ErrMalformedPlacement, err)}
	}
	if len(lines) < 2 {
		return Placement{}, placementErr(len(lines)+1, "", "missing line")
	}

	var p Placement
	var err error
	if p.White, err = parsePlacementLine(lines[0], 1, size); err != nil {
		return Placement{}, err
	}
	if p.Black, err = parsePlacementLine(lines[1], 2, size); err != nil {
		return Placement{}, err
	}
	if err := p.Validate(size); err != nil {
		return Placement{}, err
	}
	return p, nil
}

// LoadPlacement parses the placement file at path.
func LoadPlacement(path string, size int) (Placement, error) {
	f, err := os.Open(path)
	if err != nil {
		return Placement{}, &PlacementError{Err: fmt.Errorf("%w: %v", ErrMalformedPlacement, err)}
	}
	defer f.Close()
	return ParsePlacement(f, size)
}

func parsePlacementLine(line string, lineNum, size int) ([]Position, error) {
	cells := []Position{}
	for _, token := range strings.Fields(line) {
		row, col, ok := strings.Cut(token, ",")
		if !ok {
			return nil, placementErr(lineNum, token, "expected row,col")
		}
		y, err := strconv.Atoi(row)
		if err != nil {
			return nil, placementErr(lineNum, token, "bad row: %v", err)
		}
		x, err := strconv.Atoi(col)
		if err != nil {
			return nil, placementErr(lineNum, token, "bad column: %v", err)
		}
		pos := Position{X: x, Y: y}
		if !pos.inside(size) {
			return nil, placementErr(lineNum, token, "%v", ErrInvalidPosition)
		}
		cells = append(cells, pos)
	}
	return cells, nil
}

// String encodes the placement back into the two-line file format.
func (p Placement) String() string {
	var sb strings.Builder
	for i, cells := range [][]Position{p.White, p.Black} {
		for j, pos := range cells {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(encodeCell(pos))
		}
		if i == 0 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

func encodeCell(pos Position) string {
	return strconv.Itoa(pos.Y) + "," + strconv.Itoa(pos.X)
}
