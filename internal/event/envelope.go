package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iamasit07/connectfour/internal/domain"
)

// Envelope is the wire form shared by every publisher and the websocket feed.
type Envelope struct {
	Name    string          `json:"name"`
	GameID  domain.GameID   `json:"gameId"`
	Payload json.RawMessage `json:"payload"`
}

func NewEnvelope(e domain.DomainEvent) (Envelope, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", e.Name(), err)
	}
	return Envelope{Name: e.Name(), GameID: e.AggregateID(), Payload: payload}, nil
}

// IsTerminal reports whether the named event ends its game. Nothing is
// published for a game after one of these.
func IsTerminal(name string) bool {
	switch name {
	case domain.GameWon{}.Name(), domain.GameDrawn{}.Name(), domain.GameResigned{}.Name(), domain.GameAborted{}.Name():
		return true
	}
	return false
}

// Channel is the pub/sub channel carrying the events of one game.
func Channel(id domain.GameID) string {
	return "game:" + id.String()
}

// Subscription delivers the encoded envelopes of one game until closed.
type Subscription interface {
	Messages() <-chan []byte
	Close() error
}

// Feed opens live subscriptions to the events of a game.
type Feed interface {
	Subscribe(ctx context.Context, id domain.GameID) (Subscription, error)
}
