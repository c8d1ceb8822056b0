package model

// jumpPaths appends to paths every endpoint reachable from `from` by a chain
// of one or more jumps, each paired with the cells jumped to get there. A
// landing cell already in seen is neither listed nor expanded again, so the
// first path to reach an endpoint wins and each cell is searched once.
func (b *Board) jumpPaths(from Position, eater Cell, jumped []Position, seen map[Position]bool, paths []Destination) []Destination {
	for _, d := range diagonals {
		over := from.Add(d)
		land := over.Add(d)
		if !b.canJump(over, land, eater) || seen[land] || containsPosition(jumped, over) {
			continue
		}
		seen[land] = true
		path := append(append([]Position{}, jumped...), over)
		paths = append(paths, Destination{To: land, Jumped: path})
		paths = b.jumpPaths(land, eater, path, seen, paths)
	}
	return paths
}

// manCaptures lists the distinct capture endpoints of the man at from.
func (b *Board) manCaptures(from Position) []Destination {
	return b.jumpPaths(from, b.At(from), nil, map[Position]bool{from: true}, nil)
}

func (b *Board) manSteps(from Position) []Destination {
	dy := 1
	if b.At(from).IsWhite() {
		dy = -1
	}
	var steps []Destination
	for _, dx := range []int{1, -1} {
		to := from.Add(Direction{DX: dx, DY: dy})
		if b.isFree(to) {
			steps = append(steps, Destination{To: to})
		}
	}
	return steps
}

// frontier is a king search entry: the reached cell, the directions still
// open from it and the enemies jumped on the way.
type frontier struct {
	pos    Position
	dirs   []Direction
	jumped []Position
}

// forwardDirs keeps the two diagonals with the same vertical sense as d.
func forwardDirs(d Direction) []Direction {
	return []Direction{{DX: 1, DY: d.DY}, {DX: -1, DY: d.DY}}
}

// kingMoves flood-fills the cells a king can reach from `from`. Each cell is
// visited once. Cells reached by a step straight off the origin keep all four
// diagonals; any other cell only continues away from the origin row.
func (b *Board) kingMoves(from Position) []Destination {
	king := b.At(from)
	visited := map[Position]bool{from: true}
	stack := []frontier{{pos: from, dirs: diagonals[:]}}
	var result []Destination

	push := func(cur frontier, to Position, d Direction, over *Position) {
		visited[to] = true
		next := frontier{pos: to, dirs: forwardDirs(d), jumped: cur.jumped}
		if over != nil {
			next.jumped = append(append([]Position{}, cur.jumped...), *over)
		} else if cur.pos == from {
			next.dirs = diagonals[:]
		}
		result = append(result, Destination{To: to, Jumped: next.jumped})
		stack = append(stack, next)
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range cur.dirs {
			step := cur.pos.Add(d)
			if b.isFree(step) && !visited[step] {
				push(cur, step, d, nil)
			}
		}
		for _, d := range cur.dirs {
			over := cur.pos.Add(d)
			land := over.Add(d)
			if !visited[land] && b.canJump(over, land, king) && !containsPosition(cur.jumped, over) {
				push(cur, land, d, &over)
			}
		}
	}
	return result
}
