package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/iamasit07/connectfour/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const gameID = domain.GameID("0190a6c4-7b5e-7c3a-9f1e-3b2d4c5e6f70")

func sampleEvents() []domain.DomainEvent {
	return []domain.DomainEvent{
		domain.PlayerMoved{GameID: gameID, Point: domain.Point{X: 3, Y: 0}, Stone: domain.Red},
		domain.GameWon{GameID: gameID, Winner: domain.Player{ID: "a", Stone: domain.Red}},
	}
}

func TestNewEnvelope(t *testing.T) {
	envelope, err := NewEnvelope(sampleEvents()[0])
	if err != nil {
		t.Fatalf("envelope: %v", err)
	}
	if envelope.Name != "PlayerMoved" || envelope.GameID != gameID {
		t.Fatalf("unexpected envelope %+v", envelope)
	}

	var moved domain.PlayerMoved
	if err := json.Unmarshal(envelope.Payload, &moved); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if moved.Point.X != 3 || moved.Stone != domain.Red {
		t.Fatalf("unexpected payload %+v", moved)
	}

	if got := Channel(gameID); got != "game:"+string(gameID) {
		t.Fatalf("channel = %q", got)
	}
}

func TestIsTerminal(t *testing.T) {
	for name, want := range map[string]bool{
		"GameOpened":   false,
		"PlayerJoined": false,
		"PlayerMoved":  false,
		"GameWon":      true,
		"GameDrawn":    true,
		"GameResigned": true,
		"GameAborted":  true,
		"":             false,
	} {
		if got := IsTerminal(name); got != want {
			t.Errorf("IsTerminal(%q) = %t, want %t", name, got, want)
		}
	}
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewLog(zap.New(core))

	if err := publisher.Publish(context.Background(), sampleEvents()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if name := entries[1].ContextMap()["name"]; name != "GameWon" {
		t.Fatalf("second entry name = %v", name)
	}
}

type failing struct{ err error }

type recorder struct{ events []domain.DomainEvent }

func (r *recorder) Publish(_ context.Context, events []domain.DomainEvent) error {
	r.events = append(r.events, events...)
	return nil
}

func (f failing) Publish(context.Context, []domain.DomainEvent) error { return f.err }

func TestFanoutPublishesToEveryone(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	boom := errors.New("boom")

	err := Fanout{first, failing{boom}, second}.Publish(context.Background(), sampleEvents())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(first.events) != 2 || len(second.events) != 2 {
		t.Fatalf("every publisher must receive the batch")
	}
}
