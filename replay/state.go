package replay

import (
	"fmt"

	"github.com/pokerlog/handreplay/poker"
)

// Confidence grades how the pot destination was determined.
type Confidence uint8

const (
	// ConfidenceNone means the hand has not been settled yet.
	ConfidenceNone Confidence = iota
	// ConfidenceExact means the outcome came straight from the record: an
	// explicit distribution, or a pot conceded to the last player standing.
	ConfidenceExact
	// ConfidenceEvaluated means the winners were computed by evaluating
	// the revealed cards against the board.
	ConfidenceEvaluated
	// ConfidenceHeuristic means the record had too little data and the
	// outcome was inferred; callers may want to flag or suppress it.
	ConfidenceHeuristic
)

// String returns the confidence grade name.
func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceEvaluated:
		return "evaluated"
	case ConfidenceHeuristic:
		return "heuristic"
	default:
		return "none"
	}
}

// PotShare is one player's cut of the settled pot.
type PotShare struct {
	PlayerName string
	Amount     int
	// HandDesc is the natural-language hand when one is known, e.g.
	// "Two Pair, Aces and Kings". Empty for uncontested pots.
	HandDesc string
}

// State is the mutable replay position within a hand. A State never shares
// memory with another, so independent hands replay concurrently without
// locks; a single State is not safe for concurrent use.
type State struct {
	street int // index into hand.Streets
	action int // index of the next unapplied action on the street

	pot        int
	highestBet int // highest total commitment on the current street

	stacks   map[string]int
	invested map[string]int
	folded   map[string]bool
	revealed map[string]bool

	board    []poker.Card
	boardSet poker.CardSet

	winners    []PotShare
	confidence Confidence

	handComplete     bool
	showdownComplete bool
	showdownPending  bool

	warnings []Warning

	startingTotal int
	// unaccounted tracks chips an explicit distribution paid out above or
	// below the pot, so the conservation audit can still balance.
	unaccounted int
}

// Start validates the hand and returns the replay positioned before the
// first action. The hero's own cards are face-up immediately; everyone
// else's stay hidden until the showdown reveal step.
func Start(hand *Hand) (*State, error) {
	if err := hand.Validate(); err != nil {
		return nil, err
	}
	s := &State{}
	s.init(hand)
	return s, nil
}

// Reset rewinds the state to a fresh Start of the hand, reusing the state.
func (s *State) Reset(hand *Hand) error {
	if err := hand.Validate(); err != nil {
		return err
	}
	s.init(hand)
	return nil
}

// Seek replays n steps from the start and returns the resulting state.
// Seeking past the end of the hand stops at the completed hand; rewinding is
// just a seek to an earlier step.
func Seek(hand *Hand, n int) (*State, error) {
	s, err := Start(hand)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if _, err := s.Advance(hand); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *State) init(hand *Hand) {
	*s = State{
		stacks:        make(map[string]int, len(hand.Players)),
		invested:      make(map[string]int, len(hand.Players)),
		folded:        make(map[string]bool),
		revealed:      make(map[string]bool),
		startingTotal: hand.StartingTotal(),
	}

	for i := range hand.Players {
		p := &hand.Players[i]
		s.stacks[p.Name] = p.StartingStack
		s.invested[p.Name] = 0
		if p.IsHero && p.HoleCards.Known() {
			s.revealed[p.Name] = true
		}
	}

	// Streets normally start revealing cards from the flop, but tolerate
	// records that put cards on the first street.
	s.dealBoard(hand.Streets[0].Cards)
}

func (s *State) dealBoard(cards []poker.Card) {
	for _, c := range cards {
		s.board = append(s.board, c)
		s.boardSet.Add(c)
	}
}

// Pot returns the chips currently in the middle.
func (s *State) Pot() int { return s.pot }

// HighestBet returns the highest total commitment on the current street.
func (s *State) HighestBet() int { return s.highestBet }

// HandComplete reports whether the replay has settled the pot.
func (s *State) HandComplete() bool { return s.handComplete }

// ShowdownComplete reports whether the reveal step has happened.
func (s *State) ShowdownComplete() bool { return s.showdownComplete }

// Winners returns the settled pot shares, nil before completion.
func (s *State) Winners() []PotShare { return s.winners }

// Confidence returns the settlement confidence grade.
func (s *State) Confidence() Confidence { return s.confidence }

// Warnings returns every warning raised so far.
func (s *State) Warnings() []Warning { return s.warnings }

// Stack returns a player's current stack.
func (s *State) Stack(name string) int { return s.stacks[name] }

// Folded reports whether a player has folded.
func (s *State) Folded(name string) bool { return s.folded[name] }

// CardKnowledge is the table's knowledge of a player's hole cards at a
// point in the replay.
type CardKnowledge uint8

const (
	// CardsUnknown means the record never captured the cards.
	CardsUnknown CardKnowledge = iota
	// CardsHidden means cards are on record but face-down at this point.
	CardsHidden
	// CardsRevealed means the cards are face-up.
	CardsRevealed
)

// String returns the knowledge state name.
func (k CardKnowledge) String() string {
	switch k {
	case CardsHidden:
		return "hidden"
	case CardsRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// PlayerCards is one player's hole cards as the table shows them. Card
// values are attached only when face-up, so a consumer cannot render a hand
// the replay has not revealed, and a "revealed" hand always has its cards.
type PlayerCards struct {
	knowledge CardKnowledge
	cards     []poker.Card
}

// Knowledge reports whether the cards are unknown, face-down or face-up.
func (pc PlayerCards) Knowledge() CardKnowledge { return pc.knowledge }

// Revealed reports whether the cards are face-up.
func (pc PlayerCards) Revealed() bool { return pc.knowledge == CardsRevealed }

// Cards returns the face-up cards in recorded order, nil unless revealed.
func (pc PlayerCards) Cards() []poker.Card {
	if pc.knowledge != CardsRevealed {
		return nil
	}
	out := make([]poker.Card, len(pc.cards))
	copy(out, pc.cards)
	return out
}

// PlayerCards reports what the table shows for a player's hole cards at the
// current position: nothing on record, a face-down hand, or the face-up
// cards once revealed.
func (s *State) PlayerCards(hand *Hand, name string) PlayerCards {
	p := hand.Player(name)
	if p == nil {
		return PlayerCards{}
	}
	cards := p.showdownCards()
	if len(cards) == 0 {
		return PlayerCards{knowledge: CardsUnknown}
	}
	if !s.revealed[name] {
		return PlayerCards{knowledge: CardsHidden}
	}
	return PlayerCards{knowledge: CardsRevealed, cards: cards}
}

// NetResults returns each player's chip delta against their starting stack,
// the hand's profit and loss once the replay is complete.
func (s *State) NetResults(hand *Hand) map[string]int {
	nets := make(map[string]int, len(hand.Players))
	for i := range hand.Players {
		p := &hand.Players[i]
		nets[p.Name] = s.stacks[p.Name] - p.StartingStack
	}
	return nets
}

// CheckBalance verifies chip conservation: current stacks plus the pot must
// equal the starting stacks, allowing for chips an explicit distribution
// moved in or out of play (rake, for instance). It reports the first
// imbalance as an error.
func (s *State) CheckBalance() error {
	total := s.pot + s.unaccounted
	for _, stack := range s.stacks {
		total += stack
	}
	if total != s.startingTotal {
		return fmt.Errorf("chips out of balance: have %d, started with %d", total, s.startingTotal)
	}
	return nil
}

// View is a read-only projection of the replay position, shaped for display:
// everything a table renderer needs without touching the state.
type View struct {
	Street      StreetLabel
	StreetIndex int
	ActionIndex int

	Pot   int
	Board []poker.Card

	Stacks map[string]int
	Bets   map[string]int // chips committed on the current street
	Folded map[string]bool
	// HoleCards is each player's hand as the table shows it at this
	// position; face-down and unrecorded hands carry no card values.
	HoleCards map[string]PlayerCards

	Winners    []PotShare
	Confidence Confidence

	HandComplete     bool
	ShowdownComplete bool

	Warnings []Warning
}

// View projects the current position. The returned maps and slices are
// copies; mutating them does not affect the replay.
func (s *State) View(hand *Hand) View {
	v := View{
		StreetIndex:      s.street,
		ActionIndex:      s.action,
		Pot:              s.pot,
		Board:            append([]poker.Card(nil), s.board...),
		Stacks:           make(map[string]int, len(s.stacks)),
		Bets:             make(map[string]int, len(s.invested)),
		Folded:           make(map[string]bool, len(s.folded)),
		HoleCards:        make(map[string]PlayerCards, len(hand.Players)),
		Winners:          append([]PotShare(nil), s.winners...),
		Confidence:       s.confidence,
		HandComplete:     s.handComplete,
		ShowdownComplete: s.showdownComplete,
		Warnings:         append([]Warning(nil), s.warnings...),
	}
	if s.street < len(hand.Streets) {
		v.Street = hand.Streets[s.street].Label
	}
	for name, stack := range s.stacks {
		v.Stacks[name] = stack
	}
	for name, amount := range s.invested {
		v.Bets[name] = amount
	}
	for name := range s.folded {
		v.Folded[name] = true
	}
	for i := range hand.Players {
		name := hand.Players[i].Name
		v.HoleCards[name] = s.PlayerCards(hand, name)
	}
	return v
}
