package domain

import "context"

// Game is the aggregate root. It is changed only through Join, Move, Resign
// and Abort; each applies a Transition and queues its events until the
// repository flushes them.
type Game struct {
	id           GameID
	state        State
	domainEvents []DomainEvent
}

// OpenGame proposes a new game on behalf of playerID.
func OpenGame(id GameID, configuration Configuration, playerID string) (*Game, error) {
	if id == "" {
		return nil, ErrInvalidGameID
	}
	if playerID == "" {
		return nil, ErrInvalidPlayers
	}
	if configuration.WinningRule == nil {
		return nil, ErrInvalidWinningRule
	}
	if _, err := NewSize(configuration.Size.Width, configuration.Size.Height); err != nil {
		return nil, err
	}

	return &Game{
		id:    id,
		state: newOpen(configuration, playerID),
		domainEvents: []DomainEvent{GameOpened{
			GameID:   id,
			Width:    configuration.Size.Width,
			Height:   configuration.Size.Height,
			PlayerID: playerID,
		}},
	}, nil
}

func (g *Game) ID() GameID {
	return g.id
}

func (g *Game) State() State {
	return g.state
}

func (g *Game) Join(playerID string) error {
	return g.apply(g.state.Join(g.id, playerID))
}

func (g *Game) Move(playerID string, column int) error {
	return g.apply(g.state.Move(g.id, playerID, column))
}

func (g *Game) Resign(playerID string) error {
	return g.apply(g.state.Resign(g.id, playerID))
}

func (g *Game) Abort(playerID string) error {
	return g.apply(g.state.Abort(g.id, playerID))
}

// FlushDomainEvents hands out the queued events and forgets them. Calling it
// twice never returns the same event twice.
func (g *Game) FlushDomainEvents() []DomainEvent {
	events := g.domainEvents
	g.domainEvents = nil
	return events
}

// a failed operation leaves the game untouched
func (g *Game) apply(transition Transition, err error) error {
	if err != nil {
		return err
	}
	g.state = transition.State
	g.domainEvents = append(g.domainEvents, transition.DomainEvents...)
	return nil
}

// Games is the collection of all games, backed by a persistent store.
type Games interface {
	Get(ctx context.Context, id GameID) (*Game, error)
	Save(ctx context.Context, game *Game) error
}

// DomainEventPublisher receives events after they have been flushed from an
// aggregate, in the order they were recorded.
type DomainEventPublisher interface {
	Publish(ctx context.Context, events []DomainEvent) error
}
