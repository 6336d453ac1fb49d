package domain

// Board is an immutable grid. Every drop returns a new Board and leaves the
// receiver untouched.
type Board struct {
	size Size
	// index y*width + x, row 0 is the bottom row
	stones        []Stone
	lastUsedField Field
}

func NewBoard(size Size) Board {
	return Board{
		size:   size,
		stones: make([]Stone, size.Cells()),
	}
}

func (b Board) Size() Size {
	return b.size
}

// LastUsedField is the field of the most recent drop. On an empty board the
// returned field holds no stone.
func (b Board) LastUsedField() Field {
	return b.lastUsedField
}

// StoneAt returns None for points outside the board.
func (b Board) StoneAt(p Point) Stone {
	if !b.contains(p) {
		return None
	}
	return b.stones[p.Y*b.size.Width+p.X]
}

// DropStone lets the stone fall to the lowest empty row of column.
func (b Board) DropStone(stone Stone, column int) (Board, error) {
	if column < 0 || column >= b.size.Width {
		return Board{}, ErrColumnOutOfRange
	}

	for row := 0; row < b.size.Height; row++ {
		index := row*b.size.Width + column
		if b.stones[index] != None {
			continue
		}

		stones := make([]Stone, len(b.stones))
		copy(stones, b.stones)
		stones[index] = stone

		return Board{
			size:   b.size,
			stones: stones,
			lastUsedField: Field{
				Point: Point{X: column, Y: row},
				Stone: stone,
			},
		}, nil
	}

	return Board{}, ErrColumnFull
}

// this counts the number of stones in a specific direction, starting next to p
func (b Board) countInDirection(p Point, deltaX, deltaY int, stone Stone) int {
	count := 0
	current := Point{X: p.X + deltaX, Y: p.Y + deltaY}
	for b.contains(current) && b.StoneAt(current) == stone {
		count++
		current = Point{X: current.X + deltaX, Y: current.Y + deltaY}
	}
	return count
}

func (b Board) contains(p Point) bool {
	return p.X >= 0 && p.X < b.size.Width && p.Y >= 0 && p.Y < b.size.Height
}
