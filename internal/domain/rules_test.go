package domain

import (
	"errors"
	"testing"
)

type drop struct {
	stone  Stone
	column int
}

func dropAll(t *testing.T, board Board, drops []drop) Board {
	t.Helper()
	for i, d := range drops {
		next, err := board.DropStone(d.stone, d.column)
		if err != nil {
			t.Fatalf("drop %d (%v at %d) failed: %v", i, d.stone, d.column, err)
		}
		board = next
	}
	return board
}

func TestWinningRules(t *testing.T) {
	vertical, _ := NewVerticalWinningRule(4)
	horizontal, _ := NewHorizontalWinningRule(4)
	diagonal, _ := NewDiagonalWinningRule(4)
	common, _ := NewCommonWinningRule(4)

	cases := []struct {
		name  string
		rule  WinningRule
		drops []drop
		want  bool
	}{
		{
			name:  "vertical four",
			rule:  vertical,
			drops: []drop{{Red, 0}, {Red, 0}, {Red, 0}, {Red, 0}},
			want:  true,
		},
		{
			name:  "vertical three",
			rule:  vertical,
			drops: []drop{{Red, 0}, {Red, 0}, {Red, 0}},
			want:  false,
		},
		{
			name:  "vertical interrupted",
			rule:  vertical,
			drops: []drop{{Red, 0}, {Yellow, 0}, {Red, 0}, {Red, 0}, {Red, 0}},
			want:  false,
		},
		{
			name:  "horizontal four with last stone in the middle",
			rule:  horizontal,
			drops: []drop{{Red, 0}, {Red, 1}, {Red, 3}, {Red, 2}},
			want:  true,
		},
		{
			name:  "horizontal ignores vertical",
			rule:  horizontal,
			drops: []drop{{Red, 0}, {Red, 0}, {Red, 0}, {Red, 0}},
			want:  false,
		},
		{
			name: "diagonal rising",
			rule: diagonal,
			drops: []drop{
				{Red, 0},
				{Yellow, 1}, {Red, 1},
				{Yellow, 2}, {Yellow, 2}, {Red, 2},
				{Yellow, 3}, {Yellow, 3}, {Yellow, 3}, {Red, 3},
			},
			want: true,
		},
		{
			name: "diagonal falling",
			rule: diagonal,
			drops: []drop{
				{Yellow, 0}, {Yellow, 0}, {Yellow, 0}, {Red, 0},
				{Yellow, 1}, {Yellow, 1}, {Red, 1},
				{Yellow, 2}, {Red, 2},
				{Red, 3},
			},
			want: true,
		},
		{
			name:  "common catches horizontal",
			rule:  common,
			drops: []drop{{Yellow, 3}, {Yellow, 4}, {Yellow, 5}, {Yellow, 6}},
			want:  true,
		},
		{
			name:  "common on empty board",
			rule:  common,
			drops: nil,
			want:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			board := dropAll(t, NewBoard(mustSize(t, 7, 6)), tc.drops)
			if got := tc.rule.Calculate(board); got != tc.want {
				t.Fatalf("Calculate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWinningRuleRequiresTwoMatches(t *testing.T) {
	if _, err := NewVerticalWinningRule(1); !errors.Is(err, ErrInvalidWinningRule) {
		t.Fatalf("expected ErrInvalidWinningRule, got %v", err)
	}
	if _, err := NewCommonWinningRule(0); !errors.Is(err, ErrInvalidWinningRule) {
		t.Fatalf("expected ErrInvalidWinningRule, got %v", err)
	}
	if _, err := NewMultipleWinningRule(); !errors.Is(err, ErrInvalidWinningRule) {
		t.Fatalf("expected ErrInvalidWinningRule, got %v", err)
	}
}

func TestWinningRuleWithConfigurableLength(t *testing.T) {
	rule, err := NewHorizontalWinningRule(3)
	if err != nil {
		t.Fatalf("new rule: %v", err)
	}
	board := dropAll(t, NewBoard(mustSize(t, 4, 4)), []drop{{Red, 1}, {Red, 2}, {Red, 3}})
	if !rule.Calculate(board) {
		t.Fatalf("expected three in a row to win")
	}
}
