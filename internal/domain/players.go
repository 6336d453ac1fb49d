package domain

type Player struct {
	ID    string `json:"id"`
	Stone Stone  `json:"stone"`
}

// Players holds both participants; current is the one whose turn it is.
type Players struct {
	current  Player
	opponent Player
}

func NewPlayers(current, opponent Player) (Players, error) {
	if current.ID == "" || opponent.ID == "" || current.ID == opponent.ID {
		return Players{}, ErrInvalidPlayers
	}
	if current.Stone == None || opponent.Stone == None || current.Stone == opponent.Stone {
		return Players{}, ErrInvalidPlayers
	}
	return Players{current: current, opponent: opponent}, nil
}

func (p Players) Current() Player {
	return p.current
}

func (p Players) Opponent() Player {
	return p.opponent
}

// Switch returns new Players with the turn handed over.
func (p Players) Switch() Players {
	return Players{current: p.opponent, opponent: p.current}
}

func (p Players) Get(id string) (Player, error) {
	switch id {
	case p.current.ID:
		return p.current, nil
	case p.opponent.ID:
		return p.opponent, nil
	}
	return Player{}, ErrPlayerNotFound
}

func (p Players) OpponentOf(id string) (Player, error) {
	switch id {
	case p.current.ID:
		return p.opponent, nil
	case p.opponent.ID:
		return p.current, nil
	}
	return Player{}, ErrPlayerNotFound
}
