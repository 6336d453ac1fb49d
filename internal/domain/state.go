package domain

type StateKind string

const (
	StateOpen     StateKind = "open"
	StateRunning  StateKind = "running"
	StateWon      StateKind = "won"
	StateDrawn    StateKind = "drawn"
	StateResigned StateKind = "resigned"
	StateAborted  StateKind = "aborted"
)

// State is one node of the game lifecycle. Every state answers all four
// operations, either with a Transition or with the error explaining why the
// operation is illegal right now.
type State interface {
	Kind() StateKind
	Join(gameID GameID, playerID string) (Transition, error)
	Move(gameID GameID, playerID string, column int) (Transition, error)
	Resign(gameID GameID, playerID string) (Transition, error)
	Abort(gameID GameID, playerID string) (Transition, error)
}

// Transition is the outcome of a legal operation: the next state and the
// events that led there, in order.
type Transition struct {
	State        State
	DomainEvents []DomainEvent
}

func newTransition(state State, events ...DomainEvent) Transition {
	return Transition{State: state, DomainEvents: events}
}
