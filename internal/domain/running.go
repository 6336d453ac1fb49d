package domain

// Running is a game with both players seated.
type Running struct {
	winningRule WinningRule
	// counts down from width*height, reaching zero without a win is a draw
	numberOfMovesUntilDraw int
	board                  Board
	players                Players
}

func (s Running) Kind() StateKind {
	return StateRunning
}

func (s Running) Move(gameID GameID, playerID string, column int) (Transition, error) {
	current := s.players.Current()
	if current.ID != playerID {
		return Transition{}, ErrUnexpectedPlayer
	}

	board, err := s.board.DropStone(current.Stone, column)
	if err != nil {
		return Transition{}, err
	}

	last := board.LastUsedField()
	moved := PlayerMoved{GameID: gameID, Point: last.Point, Stone: last.Stone}

	if s.winningRule.Calculate(board) {
		return newTransition(
			Won{board: board, winner: current},
			moved,
			GameWon{GameID: gameID, Winner: current},
		), nil
	}

	numberOfMovesUntilDraw := s.numberOfMovesUntilDraw - 1
	if numberOfMovesUntilDraw == 0 {
		return newTransition(
			Drawn{board: board},
			moved,
			GameDrawn{GameID: gameID},
		), nil
	}

	return newTransition(Running{
		winningRule:            s.winningRule,
		numberOfMovesUntilDraw: numberOfMovesUntilDraw,
		board:                  board,
		players:                s.players.Switch(),
	}, moved), nil
}

func (s Running) Join(gameID GameID, playerID string) (Transition, error) {
	return Transition{}, ErrGameRunning
}

// Abort is only possible until the second move is done. Either player may
// abort, regardless of whose turn it is.
func (s Running) Abort(gameID GameID, playerID string) (Transition, error) {
	if !s.isAbortable() {
		return Transition{}, ErrGameRunning
	}

	aborter, opponent, err := s.requesterAndOpponent(playerID)
	if err != nil {
		return Transition{}, err
	}

	return newTransition(
		Aborted{board: s.board, aborter: aborter, opponent: &opponent},
		GameAborted{GameID: gameID, Aborter: aborter, Opponent: &opponent},
	), nil
}

// Resign is only possible once the game can no longer be aborted.
func (s Running) Resign(gameID GameID, playerID string) (Transition, error) {
	if s.isAbortable() {
		return Transition{}, ErrGameNotRunning
	}

	resigner, opponent, err := s.requesterAndOpponent(playerID)
	if err != nil {
		return Transition{}, err
	}

	return newTransition(
		Resigned{board: s.board, resigner: resigner, opponent: opponent},
		GameResigned{GameID: gameID, Resigner: resigner, Opponent: opponent},
	), nil
}

func (s Running) movesPlayed() int {
	return s.board.Size().Cells() - s.numberOfMovesUntilDraw
}

func (s Running) isAbortable() bool {
	return s.movesPlayed() < 2
}

func (s Running) requesterAndOpponent(playerID string) (Player, Player, error) {
	requester, err := s.players.Get(playerID)
	if err != nil {
		return Player{}, Player{}, err
	}
	opponent, err := s.players.OpponentOf(playerID)
	if err != nil {
		return Player{}, Player{}, err
	}
	return requester, opponent, nil
}
