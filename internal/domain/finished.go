package domain

// finished rejects every operation. Terminal states embed it.
type finished struct{}

func (finished) Join(GameID, string) (Transition, error) {
	return Transition{}, ErrGameFinished
}

func (finished) Move(GameID, string, int) (Transition, error) {
	return Transition{}, ErrGameFinished
}

func (finished) Resign(GameID, string) (Transition, error) {
	return Transition{}, ErrGameFinished
}

func (finished) Abort(GameID, string) (Transition, error) {
	return Transition{}, ErrGameFinished
}

type Won struct {
	finished
	board  Board
	winner Player
}

func (Won) Kind() StateKind { return StateWon }

type Drawn struct {
	finished
	board Board
}

func (Drawn) Kind() StateKind { return StateDrawn }

type Resigned struct {
	finished
	board    Board
	resigner Player
	opponent Player
}

func (Resigned) Kind() StateKind { return StateResigned }

type Aborted struct {
	finished
	board   Board
	aborter Player
	// nil when the game was aborted before anybody joined
	opponent *Player
}

func (Aborted) Kind() StateKind { return StateAborted }
