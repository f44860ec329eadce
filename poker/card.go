package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card represents a single card as a bit position in a uint64.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs], one bit per card.
type Card uint64

// CardSet is a set of cards in the same bit layout. Multiple cards are
// represented by multiple bits set.
type CardSet uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const ranksPerSuit = 13

// NewCard creates a card from rank and suit.
func NewCard(rank, suit uint8) Card {
	offset := suit*ranksPerSuit + rank
	return Card(1) << offset
}

// bitPosition returns which bit this card occupies (0-51), or 255 when empty.
func (c Card) bitPosition() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Rank returns the rank of the card (0-12).
func (c Card) Rank() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos % ranksPerSuit
}

// Suit returns the suit of the card (0-3).
func (c Card) Suit() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos / ranksPerSuit
}

// String returns the short representation (e.g. "As", "Kh").
func (c Card) String() string {
	const ranks = "23456789TJQKA"
	const suits = "cdhs"

	rank := c.Rank()
	suit := c.Suit()
	if rank > 12 || suit > 3 {
		return "??"
	}
	return string(ranks[rank]) + string(suits[suit])
}

// ParseCard parses a string like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}

	var rank uint8
	switch s[0] {
	case '2':
		rank = Two
	case '3':
		rank = Three
	case '4':
		rank = Four
	case '5':
		rank = Five
	case '6':
		rank = Six
	case '7':
		rank = Seven
	case '8':
		rank = Eight
	case '9':
		rank = Nine
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}

	var suit uint8
	switch s[1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a card list. Cards may be separated by spaces or commas
// ("Ah Ks", "Ah,Ks") or run together in pairs ("AhKs").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	var cards []Card
	for _, field := range fields {
		if len(field)%2 != 0 {
			return nil, fmt.Errorf("invalid card list: %q", field)
		}
		for i := 0; i < len(field); i += 2 {
			card, err := ParseCard(field[i : i+2])
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// NewCardSet creates a set from multiple cards.
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs |= CardSet(c)
	}
	return cs
}

// Add adds a card to the set.
func (cs *CardSet) Add(c Card) {
	*cs |= CardSet(c)
}

// Has checks if the set contains a specific card.
func (cs CardSet) Has(c Card) bool {
	return (cs & CardSet(c)) != 0
}

// Count returns the number of cards in the set.
func (cs CardSet) Count() int {
	return bits.OnesCount64(uint64(cs))
}

// Union returns the combination of two sets.
func (cs CardSet) Union(other CardSet) CardSet {
	return cs | other
}

// Cards returns the individual cards in ascending bit order.
func (cs CardSet) Cards() []Card {
	cards := make([]Card, 0, cs.Count())
	rest := uint64(cs)
	for rest != 0 {
		low := rest & -rest
		cards = append(cards, Card(low))
		rest &^= low
	}
	return cards
}

// String renders the set as space-separated cards, e.g. "2c Kh As".
func (cs CardSet) String() string {
	cards := cs.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// SuitMask returns the cards of a specific suit as a 13-bit rank mask.
func (cs CardSet) SuitMask(suit uint8) uint16 {
	offset := suit * ranksPerSuit
	return uint16((cs >> offset) & 0x1FFF)
}

// RankMask returns a bitmask of which ranks are present.
func (cs CardSet) RankMask() uint16 {
	var mask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask |= cs.SuitMask(suit)
	}
	return mask
}
