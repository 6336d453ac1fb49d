package eventtest

import (
	"context"
	"testing"

	"github.com/iamasit07/connectfour/internal/domain"
)

func TestMemoryKeepsOrder(t *testing.T) {
	const id = domain.GameID("0190a6c4-7b5e-7c3a-9f1e-3b2d4c5e6f70")
	memory := &Memory{}
	_ = memory.Publish(context.Background(), []domain.DomainEvent{
		domain.PlayerMoved{GameID: id, Point: domain.Point{X: 3, Y: 0}, Stone: domain.Red},
	})
	_ = memory.Publish(context.Background(), []domain.DomainEvent{
		domain.GameWon{GameID: id, Winner: domain.Player{ID: "a", Stone: domain.Red}},
	})

	got := memory.Events()
	if len(got) != 2 || got[0].Name() != "PlayerMoved" || got[1].Name() != "GameWon" {
		t.Fatalf("unexpected order %v", got)
	}
}
