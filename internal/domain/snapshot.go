package domain

import "fmt"

// Snapshot is the serializable form of a Game. It is what the repository
// stores and what read models render. Pending domain events are not part of it.
type Snapshot struct {
	GameID GameID        `json:"gameId"`
	State  StateSnapshot `json:"state"`
}

// StateSnapshot carries the union of all state payloads; Kind decides which
// fields are meaningful.
type StateSnapshot struct {
	Kind                   StateKind     `json:"kind"`
	Width                  int           `json:"width"`
	Height                 int           `json:"height"`
	WinningRule            *RuleSnapshot `json:"winningRule,omitempty"`
	NumberOfMovesUntilDraw int           `json:"numberOfMovesUntilDraw,omitempty"`
	// rows, bottom row first
	Board         [][]Stone `json:"board,omitempty"`
	LastUsedField *Field    `json:"lastUsedField,omitempty"`
	// current player first
	Players  []Player `json:"players,omitempty"`
	Owner    *Player  `json:"owner,omitempty"`
	Winner   *Player  `json:"winner,omitempty"`
	Resigner *Player  `json:"resigner,omitempty"`
	Aborter  *Player  `json:"aborter,omitempty"`
	Opponent *Player  `json:"opponent,omitempty"`
}

type RuleSnapshot struct {
	Type                    string         `json:"type"`
	NumberOfRequiredMatches int            `json:"numberOfRequiredMatches,omitempty"`
	Rules                   []RuleSnapshot `json:"rules,omitempty"`
}

const (
	ruleVertical   = "vertical"
	ruleHorizontal = "horizontal"
	ruleDiagonal   = "diagonal"
	ruleMultiple   = "multiple"
)

func (g *Game) Snapshot() (Snapshot, error) {
	state, err := snapshotState(g.state)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{GameID: g.id, State: state}, nil
}

func snapshotState(state State) (StateSnapshot, error) {
	switch s := state.(type) {
	case Open:
		rule, err := snapshotRule(s.configuration.WinningRule)
		if err != nil {
			return StateSnapshot{}, err
		}
		owner := s.player
		return StateSnapshot{
			Kind:        StateOpen,
			Width:       s.configuration.Size.Width,
			Height:      s.configuration.Size.Height,
			WinningRule: &rule,
			Owner:       &owner,
		}, nil
	case Running:
		rule, err := snapshotRule(s.winningRule)
		if err != nil {
			return StateSnapshot{}, err
		}
		snapshot := boardSnapshot(StateRunning, s.board)
		snapshot.WinningRule = &rule
		snapshot.NumberOfMovesUntilDraw = s.numberOfMovesUntilDraw
		snapshot.Players = []Player{s.players.Current(), s.players.Opponent()}
		return snapshot, nil
	case Won:
		snapshot := boardSnapshot(StateWon, s.board)
		winner := s.winner
		snapshot.Winner = &winner
		return snapshot, nil
	case Drawn:
		return boardSnapshot(StateDrawn, s.board), nil
	case Resigned:
		snapshot := boardSnapshot(StateResigned, s.board)
		resigner, opponent := s.resigner, s.opponent
		snapshot.Resigner = &resigner
		snapshot.Opponent = &opponent
		return snapshot, nil
	case Aborted:
		snapshot := boardSnapshot(StateAborted, s.board)
		aborter := s.aborter
		snapshot.Aborter = &aborter
		if s.opponent != nil {
			opponent := *s.opponent
			snapshot.Opponent = &opponent
		}
		return snapshot, nil
	}
	return StateSnapshot{}, fmt.Errorf("%w: unknown state %T", ErrCorruptSnapshot, state)
}

func boardSnapshot(kind StateKind, board Board) StateSnapshot {
	size := board.Size()
	rows := make([][]Stone, size.Height)
	for y := range rows {
		rows[y] = make([]Stone, size.Width)
		for x := range rows[y] {
			rows[y][x] = board.StoneAt(Point{X: x, Y: y})
		}
	}

	snapshot := StateSnapshot{
		Kind:   kind,
		Width:  size.Width,
		Height: size.Height,
		Board:  rows,
	}
	if last := board.LastUsedField(); !last.IsEmpty() {
		snapshot.LastUsedField = &last
	}
	return snapshot
}

func snapshotRule(rule WinningRule) (RuleSnapshot, error) {
	switch r := rule.(type) {
	case VerticalWinningRule:
		return RuleSnapshot{Type: ruleVertical, NumberOfRequiredMatches: r.NumberOfRequiredMatches()}, nil
	case HorizontalWinningRule:
		return RuleSnapshot{Type: ruleHorizontal, NumberOfRequiredMatches: r.NumberOfRequiredMatches()}, nil
	case DiagonalWinningRule:
		return RuleSnapshot{Type: ruleDiagonal, NumberOfRequiredMatches: r.NumberOfRequiredMatches()}, nil
	case MultipleWinningRule:
		snapshot := RuleSnapshot{Type: ruleMultiple}
		for _, inner := range r.rules {
			innerSnapshot, err := snapshotRule(inner)
			if err != nil {
				return RuleSnapshot{}, err
			}
			snapshot.Rules = append(snapshot.Rules, innerSnapshot)
		}
		return snapshot, nil
	}
	return RuleSnapshot{}, fmt.Errorf("%w: winning rule %T cannot be serialized", ErrInvalidWinningRule, rule)
}

// Restore rebuilds a Game from its snapshot. The restored game has no
// pending domain events.
func Restore(snapshot Snapshot) (*Game, error) {
	if _, err := ParseGameID(string(snapshot.GameID)); err != nil {
		return nil, corrupt("game id %q", snapshot.GameID)
	}

	state, err := restoreState(snapshot.State)
	if err != nil {
		return nil, err
	}

	return &Game{id: snapshot.GameID, state: state}, nil
}

func restoreState(s StateSnapshot) (State, error) {
	size, err := NewSize(s.Width, s.Height)
	if err != nil {
		return nil, corrupt("size %dx%d", s.Width, s.Height)
	}

	switch s.Kind {
	case StateOpen:
		rule, err := restoreRule(s.WinningRule)
		if err != nil {
			return nil, err
		}
		if s.Owner == nil || s.Owner.ID == "" {
			return nil, corrupt("open game without owner")
		}
		return Open{
			configuration: Configuration{Size: size, WinningRule: rule},
			player:        *s.Owner,
		}, nil
	case StateRunning:
		rule, err := restoreRule(s.WinningRule)
		if err != nil {
			return nil, err
		}
		board, err := restoreBoard(size, s)
		if err != nil {
			return nil, err
		}
		if len(s.Players) != 2 {
			return nil, corrupt("running game with %d players", len(s.Players))
		}
		players, err := NewPlayers(s.Players[0], s.Players[1])
		if err != nil {
			return nil, corrupt("players: %v", err)
		}
		if s.NumberOfMovesUntilDraw < 1 || s.NumberOfMovesUntilDraw > size.Cells() {
			return nil, corrupt("number of moves until draw %d", s.NumberOfMovesUntilDraw)
		}
		return Running{
			winningRule:            rule,
			numberOfMovesUntilDraw: s.NumberOfMovesUntilDraw,
			board:                  board,
			players:                players,
		}, nil
	}

	board, err := restoreBoard(size, s)
	if err != nil {
		return nil, err
	}

	switch s.Kind {
	case StateWon:
		if s.Winner == nil {
			return nil, corrupt("won game without winner")
		}
		return Won{board: board, winner: *s.Winner}, nil
	case StateDrawn:
		return Drawn{board: board}, nil
	case StateResigned:
		if s.Resigner == nil || s.Opponent == nil {
			return nil, corrupt("resigned game without resigner or opponent")
		}
		return Resigned{board: board, resigner: *s.Resigner, opponent: *s.Opponent}, nil
	case StateAborted:
		if s.Aborter == nil {
			return nil, corrupt("aborted game without aborter")
		}
		aborted := Aborted{board: board, aborter: *s.Aborter}
		if s.Opponent != nil {
			opponent := *s.Opponent
			aborted.opponent = &opponent
		}
		return aborted, nil
	}

	return nil, corrupt("unknown state kind %q", s.Kind)
}

func restoreBoard(size Size, s StateSnapshot) (Board, error) {
	board := NewBoard(size)
	if s.Board == nil {
		if s.LastUsedField != nil {
			return Board{}, corrupt("last used field on an empty board")
		}
		return board, nil
	}

	if len(s.Board) != size.Height {
		return Board{}, corrupt("board has %d rows, expected %d", len(s.Board), size.Height)
	}
	for y, row := range s.Board {
		if len(row) != size.Width {
			return Board{}, corrupt("board row %d has %d columns, expected %d", y, len(row), size.Width)
		}
		for x, stone := range row {
			if stone != None && stone != Red && stone != Yellow {
				return Board{}, corrupt("unknown stone %d", stone)
			}
			board.stones[y*size.Width+x] = stone
		}
	}

	if s.LastUsedField != nil {
		last := *s.LastUsedField
		if last.IsEmpty() || board.StoneAt(last.Point) != last.Stone {
			return Board{}, corrupt("last used field %+v does not match the board", last)
		}
		board.lastUsedField = last
	}

	return board, nil
}

func restoreRule(s *RuleSnapshot) (WinningRule, error) {
	if s == nil {
		return nil, corrupt("missing winning rule")
	}

	var (
		rule WinningRule
		err  error
	)
	switch s.Type {
	case ruleVertical:
		rule, err = NewVerticalWinningRule(s.NumberOfRequiredMatches)
	case ruleHorizontal:
		rule, err = NewHorizontalWinningRule(s.NumberOfRequiredMatches)
	case ruleDiagonal:
		rule, err = NewDiagonalWinningRule(s.NumberOfRequiredMatches)
	case ruleMultiple:
		rules := make([]WinningRule, 0, len(s.Rules))
		for i := range s.Rules {
			inner, innerErr := restoreRule(&s.Rules[i])
			if innerErr != nil {
				return nil, innerErr
			}
			rules = append(rules, inner)
		}
		rule, err = NewMultipleWinningRule(rules...)
	default:
		return nil, corrupt("unknown winning rule %q", s.Type)
	}
	if err != nil {
		return nil, corrupt("winning rule %q: %v", s.Type, err)
	}
	return rule, nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorruptSnapshot}, args...)...)
}
