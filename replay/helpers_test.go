package replay

import (
	"testing"

	"github.com/pokerlog/handreplay/poker"
)

func cards(t *testing.T, s string) []poker.Card {
	t.Helper()
	parsed, err := poker.ParseCards(s)
	if err != nil {
		t.Fatalf("ParseCards(%q): %v", s, err)
	}
	return parsed
}

// mustCards is cards for fixture builders that run outside a test body.
func mustCards(s string) []poker.Card {
	parsed, err := poker.ParseCards(s)
	if err != nil {
		panic(err)
	}
	return parsed
}

func intp(v int) *int { return &v }

// threeHandedHand is the base fixture: a 1/2 game, three players with 200
// behind, hero on the button. Tests override streets and showdown data.
func threeHandedHand() *Hand {
	return &Hand{
		ID:   "h-test",
		Game: GameInfo{SmallBlind: 1, BigBlind: 2, TableSize: 6},
		Players: []Player{
			{Seat: 1, Name: "alice", Position: "BTN", StartingStack: 200, IsHero: true},
			{Seat: 2, Name: "bob", Position: "SB", StartingStack: 200},
			{Seat: 3, Name: "carol", Position: "BB", StartingStack: 200},
		},
		Streets: []Street{
			{Label: Preflop},
		},
	}
}

// advanceToEnd steps until the hand reports complete, returning the number
// of advances taken. Balance is audited after every step.
func advanceToEnd(t *testing.T, s *State, h *Hand) int {
	t.Helper()
	steps := 0
	for !s.HandComplete() {
		if _, err := s.Advance(h); err != nil {
			t.Fatalf("Advance (step %d): %v", steps, err)
		}
		if err := s.CheckBalance(); err != nil {
			t.Fatalf("balance after step %d: %v", steps, err)
		}
		steps++
		if steps > 1000 {
			t.Fatal("replay did not terminate")
		}
	}
	return steps
}

func mustStart(t *testing.T, h *Hand) *State {
	t.Helper()
	s, err := Start(h)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}
