package domain

import (
	"errors"
	"testing"
)

func TestNewPlayersRejectsInvalidPairs(t *testing.T) {
	cases := []struct {
		name              string
		current, opponent Player
	}{
		{"same id", Player{"a", Red}, Player{"a", Yellow}},
		{"empty id", Player{"", Red}, Player{"b", Yellow}},
		{"same stone", Player{"a", Red}, Player{"b", Red}},
		{"no stone", Player{"a", None}, Player{"b", Yellow}},
	}
	for _, tc := range cases {
		if _, err := NewPlayers(tc.current, tc.opponent); !errors.Is(err, ErrInvalidPlayers) {
			t.Fatalf("%s: expected ErrInvalidPlayers, got %v", tc.name, err)
		}
	}
}

func TestPlayersLookups(t *testing.T) {
	a, b := Player{"a", Red}, Player{"b", Yellow}
	players, err := NewPlayers(a, b)
	if err != nil {
		t.Fatalf("new players: %v", err)
	}

	if players.Current() != a {
		t.Fatalf("expected a to be current")
	}
	if got, _ := players.Get("b"); got != b {
		t.Fatalf("Get(b) = %+v", got)
	}
	if got, _ := players.OpponentOf("a"); got != b {
		t.Fatalf("OpponentOf(a) = %+v", got)
	}
	if got, _ := players.OpponentOf("b"); got != a {
		t.Fatalf("OpponentOf(b) = %+v", got)
	}
	if _, err := players.Get("c"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if _, err := players.OpponentOf("c"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestPlayersSwitch(t *testing.T) {
	players, _ := NewPlayers(Player{"a", Red}, Player{"b", Yellow})
	switched := players.Switch()

	if switched.Current().ID != "b" || switched.Opponent().ID != "a" {
		t.Fatalf("unexpected switched players %+v", switched)
	}
	if players.Current().ID != "a" {
		t.Fatalf("Switch mutated the receiver")
	}
}
