package poker

import "math/rand"

// Deck is a standard 52-card deck. It exists for tests and simulations that
// need fresh boards; replaying a recorded hand never deals cards.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a shuffled deck. A non-nil rng makes the order deterministic.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	d.Shuffle()
	return d
}

// Shuffle reshuffles the full deck using Fisher-Yates.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards, or nil if fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// DealSet deals n cards as a CardSet.
func (d *Deck) DealSet(n int) CardSet {
	return NewCardSet(d.Deal(n)...)
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
