package domain

// Open waits for the second player.
type Open struct {
	configuration Configuration
	player        Player
}

func newOpen(configuration Configuration, playerID string) Open {
	return Open{
		configuration: configuration,
		player:        Player{ID: playerID, Stone: Red},
	}
}

func (s Open) Kind() StateKind {
	return StateOpen
}

func (s Open) Join(gameID GameID, playerID string) (Transition, error) {
	if s.player.ID == playerID {
		return Transition{}, ErrPlayerAlreadyJoined
	}

	players, err := NewPlayers(s.player, Player{ID: playerID, Stone: Yellow})
	if err != nil {
		return Transition{}, err
	}

	running := Running{
		winningRule:            s.configuration.WinningRule,
		numberOfMovesUntilDraw: s.configuration.Size.Cells(),
		board:                  NewBoard(s.configuration.Size),
		players:                players,
	}

	return newTransition(running, PlayerJoined{
		GameID:           gameID,
		JoinedPlayerID:   playerID,
		OpponentPlayerID: s.player.ID,
	}), nil
}

func (s Open) Move(gameID GameID, playerID string, column int) (Transition, error) {
	return Transition{}, ErrGameNotRunning
}

func (s Open) Resign(gameID GameID, playerID string) (Transition, error) {
	return Transition{}, ErrGameNotRunning
}

// Abort is reserved to whoever opened the game.
func (s Open) Abort(gameID GameID, playerID string) (Transition, error) {
	if s.player.ID != playerID {
		return Transition{}, ErrPlayerNotOwner
	}

	return newTransition(
		Aborted{board: NewBoard(s.configuration.Size), aborter: s.player},
		GameAborted{GameID: gameID, Aborter: s.player},
	), nil
}
