// Package replay reconstructs finished poker hands from their recorded
// action history. Given the streets, actions and amounts a tracker captured,
// it replays the hand step by step, tracking every stack, bet and the pot,
// and settles the pot at the end, evaluating a showdown when the record does
// not say who won. The engine is pure: no I/O, no clocks, no randomness, so
// replaying the same hand always produces the same states.
package replay

import (
	"fmt"
	"strings"

	"github.com/pokerlog/handreplay/poker"
)

// ActionKind enumerates the recorded action types.
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	Post
	PostSmallBlind
	PostBigBlind
)

// String returns the history notation for the action kind.
func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case Post:
		return "post"
	case PostSmallBlind:
		return "post-small-blind"
	case PostBigBlind:
		return "post-big-blind"
	default:
		return "unknown"
	}
}

// ParseActionKind parses history notation into an ActionKind.
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	case "post":
		return Post, nil
	case "post-small-blind", "small-blind", "sb":
		return PostSmallBlind, nil
	case "post-big-blind", "big-blind", "bb":
		return PostBigBlind, nil
	default:
		return 0, fmt.Errorf("unknown action kind: %q", s)
	}
}

// isCommitting reports whether the action kind moves chips toward the pot.
func (k ActionKind) isCommitting() bool {
	switch k {
	case Call, Bet, Raise, Post, PostSmallBlind, PostBigBlind:
		return true
	default:
		return false
	}
}

// setsBetLevel reports whether the action's amount establishes the street's
// bet level.
func (k ActionKind) setsBetLevel() bool {
	switch k {
	case Bet, Raise, Post, PostSmallBlind, PostBigBlind:
		return true
	default:
		return false
	}
}

// Action is one recorded player decision. For blind posts, bets and raises,
// Amount is the player's total commitment on the street, not the delta put
// in by this action; a raise to 6 after betting 2 carries Amount 6.
type Action struct {
	PlayerName string
	Kind       ActionKind
	Amount     int
}

// StreetLabel identifies a betting round.
type StreetLabel uint8

const (
	Preflop StreetLabel = iota
	Flop
	Turn
	River
)

// String returns the lower-case street name.
func (l StreetLabel) String() string {
	switch l {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// ParseStreetLabel parses a street name.
func ParseStreetLabel(s string) (StreetLabel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preflop", "pre-flop":
		return Preflop, nil
	case "flop":
		return Flop, nil
	case "turn":
		return Turn, nil
	case "river":
		return River, nil
	default:
		return 0, fmt.Errorf("unknown street: %q", s)
	}
}

// Street is one betting round of a recorded hand. Cards holds the community
// cards revealed on entering the street: none preflop, three on the flop,
// one each on the turn and river. A street with no actions is legal; it
// happens whenever everyone is already all-in.
type Street struct {
	Label   StreetLabel
	Cards   []poker.Card
	Actions []Action
}

// HoleCards is a player's recorded hole cards. The zero value means the
// record never captured them, which is the common case for folded villains.
// Whether known cards are face-up at a given point in the replay is tracked
// by the State, not here.
type HoleCards struct {
	cards []poker.Card
	known bool
}

// UnknownCards is the absent record.
func UnknownCards() HoleCards { return HoleCards{} }

// KnownCards wraps recorded hole cards.
func KnownCards(cards ...poker.Card) HoleCards {
	return HoleCards{cards: cards, known: true}
}

// Known reports whether the record captured the cards.
func (hc HoleCards) Known() bool { return hc.known }

// Cards returns the recorded cards, nil when unknown.
func (hc HoleCards) Cards() []poker.Card {
	if !hc.known {
		return nil
	}
	out := make([]poker.Card, len(hc.cards))
	copy(out, hc.cards)
	return out
}

// Set returns the cards as a CardSet, empty when unknown.
func (hc HoleCards) Set() poker.CardSet {
	if !hc.known {
		return 0
	}
	return poker.NewCardSet(hc.cards...)
}

// String renders "Ah Ks", or "??" when unknown.
func (hc HoleCards) String() string {
	if !hc.known {
		return "??"
	}
	return hc.Set().String()
}

// Player is a participant's snapshot at hand start.
type Player struct {
	Seat          int
	Name          string
	Position      string // display tag such as "BTN" or "BB"
	StartingStack int
	HoleCards     HoleCards
	// FinalCards is the better record sometimes captured at showdown,
	// superseding HoleCards when present.
	FinalCards []poker.Card
	IsHero     bool
}

// showdownCards returns the best available hole card record for evaluation.
func (p *Player) showdownCards() []poker.Card {
	if len(p.FinalCards) > 0 {
		return p.FinalCards
	}
	return p.HoleCards.Cards()
}

// GameInfo carries the table-level settings of the recorded hand.
type GameInfo struct {
	SmallBlind int
	BigBlind   int
	TableSize  int
}

// PotDistribution is an explicit winner record captured by the tracker:
// who received chips from the pot and, when known, with what hand.
type PotDistribution struct {
	PlayerName string
	Amount     int
	HandDesc   string
}

// Hand is a complete recorded hand. It is immutable input: the replay never
// modifies it, so one Hand may back any number of States concurrently.
type Hand struct {
	ID      string
	Game    GameInfo
	Players []Player
	Streets []Street

	// Showdown marks hands that went to a card reveal; the replay inserts
	// an explicit reveal step before settling such hands.
	Showdown bool

	// Distributions, when present, records exactly how the pot was paid
	// out and overrides any evaluation.
	Distributions []PotDistribution

	// HeroNet is the hero's recorded net result, the last-resort signal
	// for settling hands with no showdown data. Nil when not recorded.
	HeroNet *int
}

// Hero returns the hero player, or nil when the record has none.
func (h *Hand) Hero() *Player {
	for i := range h.Players {
		if h.Players[i].IsHero {
			return &h.Players[i]
		}
	}
	return nil
}

// Player finds a player by name, or nil.
func (h *Hand) Player(name string) *Player {
	for i := range h.Players {
		if h.Players[i].Name == name {
			return &h.Players[i]
		}
	}
	return nil
}

// StartingTotal is the sum of all starting stacks, the quantity the replay
// conserves at every step.
func (h *Hand) StartingTotal() int {
	total := 0
	for i := range h.Players {
		total += h.Players[i].StartingStack
	}
	return total
}

// Validate checks that the record is structurally replayable. It returns a
// *MalformedHandError describing the first problem found. Amount mismatches
// are not validated here; those surface as warnings during the replay.
func (h *Hand) Validate() error {
	if len(h.Players) == 0 {
		return malformedf("hand has no players")
	}
	if len(h.Streets) == 0 {
		return malformedf("hand has no streets")
	}
	if h.Game.SmallBlind < 0 || h.Game.BigBlind < 0 {
		return malformedf("negative blinds %d/%d", h.Game.SmallBlind, h.Game.BigBlind)
	}

	names := make(map[string]bool, len(h.Players))
	heroes := 0
	var seen poker.CardSet
	for i := range h.Players {
		p := &h.Players[i]
		if p.Name == "" {
			return malformedf("player in seat %d has no name", p.Seat)
		}
		if names[p.Name] {
			return malformedf("duplicate player name %q", p.Name)
		}
		names[p.Name] = true
		if p.StartingStack < 0 {
			return malformedf("player %q has negative starting stack %d", p.Name, p.StartingStack)
		}
		if p.IsHero {
			heroes++
		}

		// FinalCards restate the same physical cards as HoleCards, so
		// only the better record counts toward duplicate detection.
		for _, c := range p.showdownCards() {
			if seen.Has(c) {
				return malformedf("duplicate card %s", c)
			}
			seen.Add(c)
		}
	}
	if heroes > 1 {
		return malformedf("hand has %d heroes", heroes)
	}

	folded := make(map[string]bool, len(h.Players))
	for _, street := range h.Streets {
		for _, c := range street.Cards {
			if seen.Has(c) {
				return malformedf("duplicate card %s", c)
			}
			seen.Add(c)
		}
		for _, action := range street.Actions {
			if !names[action.PlayerName] {
				return malformedf("action by unknown player %q", action.PlayerName)
			}
			if action.Amount < 0 {
				return malformedf("negative amount %d for %q", action.Amount, action.PlayerName)
			}
			if folded[action.PlayerName] {
				return malformedf("action by folded player %q", action.PlayerName)
			}
			if action.Kind == Fold {
				folded[action.PlayerName] = true
			}
		}
	}

	for _, dist := range h.Distributions {
		if !names[dist.PlayerName] {
			return malformedf("distribution to unknown player %q", dist.PlayerName)
		}
		if dist.Amount < 0 {
			return malformedf("negative distribution %d to %q", dist.Amount, dist.PlayerName)
		}
	}

	return nil
}
