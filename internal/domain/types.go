package domain

// Stone is the color a player drops into the board.
type Stone int

const (
	None   Stone = 0
	Red    Stone = 1
	Yellow Stone = 2
)

func (s Stone) String() string {
	switch s {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	default:
		return "none"
	}
}

// Point addresses a cell. X is the column, Y the row counted from the bottom (0).
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Field is a point together with the stone it holds.
type Field struct {
	Point Point `json:"point"`
	Stone Stone `json:"stone"`
}

func (f Field) IsEmpty() bool {
	return f.Stone == None
}

// Size of a board in columns (Width) and rows (Height).
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MaxSide bounds both dimensions of a board.
const MaxSide = 64

// NewSize rejects boards smaller than 2x2, sides longer than MaxSide and
// boards with an odd number of cells, so both players always get the same
// number of moves.
func NewSize(width, height int) (Size, error) {
	if width < 2 || height < 2 || width > MaxSide || height > MaxSide {
		return Size{}, ErrInvalidSize
	}
	if (width*height)%2 != 0 {
		return Size{}, ErrInvalidSize
	}
	return Size{Width: width, Height: height}, nil
}

func (s Size) Cells() int {
	return s.Width * s.Height
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)
