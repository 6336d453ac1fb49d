package domain

// WinningRule decides whether the stone just placed on board wins the game.
// Implementations must be pure.
type WinningRule interface {
	Calculate(board Board) bool
}

type direction struct {
	x, y int
}

// lineRule counts consecutive stones through the last used field along its
// directions. Only lines passing through that field can have changed, so the
// rest of the board is never scanned.
type lineRule struct {
	numberOfRequiredMatches int
	directions              []direction
}

func (r lineRule) Calculate(board Board) bool {
	last := board.LastUsedField()
	if last.IsEmpty() {
		return false
	}

	for _, d := range r.directions {
		count := 1 +
			board.countInDirection(last.Point, d.x, d.y, last.Stone) +
			board.countInDirection(last.Point, -d.x, -d.y, last.Stone)
		if count >= r.numberOfRequiredMatches {
			return true
		}
	}

	return false
}

// VerticalWinningRule matches n stones stacked in one column.
type VerticalWinningRule struct {
	lineRule
}

func NewVerticalWinningRule(numberOfRequiredMatches int) (VerticalWinningRule, error) {
	if numberOfRequiredMatches < 2 {
		return VerticalWinningRule{}, ErrInvalidWinningRule
	}
	return VerticalWinningRule{lineRule{
		numberOfRequiredMatches: numberOfRequiredMatches,
		directions:              []direction{{0, 1}},
	}}, nil
}

func (r VerticalWinningRule) NumberOfRequiredMatches() int {
	return r.numberOfRequiredMatches
}

// HorizontalWinningRule matches n stones side by side in one row.
type HorizontalWinningRule struct {
	lineRule
}

func NewHorizontalWinningRule(numberOfRequiredMatches int) (HorizontalWinningRule, error) {
	if numberOfRequiredMatches < 2 {
		return HorizontalWinningRule{}, ErrInvalidWinningRule
	}
	return HorizontalWinningRule{lineRule{
		numberOfRequiredMatches: numberOfRequiredMatches,
		directions:              []direction{{1, 0}},
	}}, nil
}

func (r HorizontalWinningRule) NumberOfRequiredMatches() int {
	return r.numberOfRequiredMatches
}

// DiagonalWinningRule matches n stones on either diagonal.
type DiagonalWinningRule struct {
	lineRule
}

func NewDiagonalWinningRule(numberOfRequiredMatches int) (DiagonalWinningRule, error) {
	if numberOfRequiredMatches < 2 {
		return DiagonalWinningRule{}, ErrInvalidWinningRule
	}
	return DiagonalWinningRule{lineRule{
		numberOfRequiredMatches: numberOfRequiredMatches,
		directions:              []direction{{1, 1}, {1, -1}},
	}}, nil
}

func (r DiagonalWinningRule) NumberOfRequiredMatches() int {
	return r.numberOfRequiredMatches
}

// MultipleWinningRule wins as soon as any of its rules wins.
type MultipleWinningRule struct {
	rules []WinningRule
}

func NewMultipleWinningRule(rules ...WinningRule) (MultipleWinningRule, error) {
	if len(rules) == 0 {
		return MultipleWinningRule{}, ErrInvalidWinningRule
	}
	for _, rule := range rules {
		if rule == nil {
			return MultipleWinningRule{}, ErrInvalidWinningRule
		}
	}
	return MultipleWinningRule{rules: append([]WinningRule(nil), rules...)}, nil
}

func (r MultipleWinningRule) Calculate(board Board) bool {
	for _, rule := range r.rules {
		if rule.Calculate(board) {
			return true
		}
	}
	return false
}

func (r MultipleWinningRule) Rules() []WinningRule {
	return append([]WinningRule(nil), r.rules...)
}

// NewCommonWinningRule is the classic rule set: n in a row horizontally,
// vertically or diagonally.
func NewCommonWinningRule(numberOfRequiredMatches int) (MultipleWinningRule, error) {
	vertical, err := NewVerticalWinningRule(numberOfRequiredMatches)
	if err != nil {
		return MultipleWinningRule{}, err
	}
	horizontal, err := NewHorizontalWinningRule(numberOfRequiredMatches)
	if err != nil {
		return MultipleWinningRule{}, err
	}
	diagonal, err := NewDiagonalWinningRule(numberOfRequiredMatches)
	if err != nil {
		return MultipleWinningRule{}, err
	}
	return NewMultipleWinningRule(vertical, horizontal, diagonal)
}
