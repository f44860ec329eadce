package poker

import (
	"fmt"
	"math/bits"
)

// Category enumerates the classes of five-card poker hands, weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// RankedHand is the evaluated strength of the best five-card hand that can
// be made from a set of cards. Tiebreaks holds the ranks that order hands
// within the category, most significant first (full house: trip rank then
// pair rank; two pair: high pair, low pair, kicker; and so on). Suits never
// matter beyond category selection.
type RankedHand struct {
	Category  Category
	Tiebreaks []uint8

	key uint32
}

// Compare returns 1 if r is stronger than other, -1 if weaker, 0 on a tie.
func (r RankedHand) Compare(other RankedHand) int {
	// Lower key = stronger hand.
	if r.key < other.key {
		return 1
	} else if r.key > other.key {
		return -1
	}
	return 0
}

// Evaluate finds the best five-card hand from five to seven cards,
// equivalent to checking every five-card combination.
func Evaluate(cs CardSet) (RankedHand, error) {
	n := cs.Count()
	if n < 5 || n > 7 {
		return RankedHand{}, fmt.Errorf("evaluate: expected 5 to 7 cards, got %d", n)
	}

	var suitMasks [4]uint16
	var rankMask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask := cs.SuitMask(suit)
		suitMasks[suit] = mask
		rankMask |= mask
	}

	return rankFromMasks(suitMasks, rankMask), nil
}

func rankFromMasks(suitMasks [4]uint16, rankMask uint16) RankedHand {
	// Flush and straight flush first. With at most seven cards only one
	// suit can reach five, so the first qualifying suit is the only one.
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high := straightHigh(suitMask); high > 0 {
			return ranked(StraightFlush, high)
		}
		return ranked(Flush, topRanks(suitMask, 5)...)
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]

	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quad := highestRank(quadsMask); quad >= 0 {
		quadRank := uint8(quad)
		kicker := topRanks(rankMask&^rankBit(quadRank), 1)
		return ranked(FourOfAKind, quadRank, kicker[0])
	}

	if trip := highestRank(tripsMask); trip >= 0 {
		tripRank := uint8(trip)
		// A second trip fills in as the pair.
		pairCandidates := pairsMask | (tripsMask &^ rankBit(tripRank))
		if pair := highestRank(pairCandidates); pair >= 0 {
			return ranked(FullHouse, tripRank, uint8(pair))
		}
	}

	if high := straightHigh(rankMask); high > 0 {
		return ranked(Straight, high)
	}

	if trip := highestRank(tripsMask); trip >= 0 {
		tripRank := uint8(trip)
		kickers := topRanks(rankMask&^rankBit(tripRank), 2)
		return ranked(ThreeOfAKind, tripRank, kickers[0], kickers[1])
	}

	if pair1 := highestRank(pairsMask); pair1 >= 0 {
		highPair := uint8(pair1)
		if pair2 := highestRank(pairsMask &^ rankBit(highPair)); pair2 >= 0 {
			// Seven cards can hold three pairs; the third pair's rank
			// competes as a plain kicker.
			lowPair := uint8(pair2)
			kicker := topRanks(rankMask&^(rankBit(highPair)|rankBit(lowPair)), 1)
			return ranked(TwoPair, highPair, lowPair, kicker[0])
		}
		kickers := topRanks(rankMask&^rankBit(highPair), 3)
		return ranked(Pair, highPair, kickers[0], kickers[1], kickers[2])
	}

	return ranked(HighCard, topRanks(rankMask, 5)...)
}

// ranked packs a category and its ordered tiebreak ranks into a RankedHand
// with a comparable key. Lower keys are stronger: the category occupies the
// high bits (inverted so stronger categories sort lower) and each tiebreak
// rank is a nibble counting down from ace.
func ranked(category Category, tiebreaks ...uint8) RankedHand {
	key := uint32(StraightFlush-category) << 20
	shift := 16
	for _, rank := range tiebreaks {
		key |= uint32(Ace+1-rank) << shift
		shift -= 4
	}
	return RankedHand{
		Category:  category,
		Tiebreaks: tiebreaks,
		key:       key,
	}
}

func rankBit(rank uint8) uint16 {
	return 1 << rank
}

// highestRank returns the highest rank present in the bitmask (or -1 when empty).
func highestRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// topRanks returns the n highest ranks present in the mask, descending.
func topRanks(mask uint16, n int) []uint8 {
	ranks := make([]uint8, 0, n)
	for len(ranks) < n && mask != 0 {
		top := uint8(bits.Len16(mask) - 1)
		ranks = append(ranks, top)
		mask &^= rankBit(top)
	}
	return ranks
}

// straightHigh returns the high rank of the best straight in the mask, or 0
// when there is none. The ace plays low only in the wheel, which ranks below
// every other straight, so the consecutive-run check comes first.
func straightHigh(mask uint16) uint8 {
	mask &= 0x1FFF

	// A run of five consecutive ranks survives four shifted intersections.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		low := uint8(bits.Len16(seq) - 1)
		return low + 4
	}

	const wheelMask = 0x100F // A-2-3-4-5
	if mask&wheelMask == wheelMask {
		return Five
	}
	return 0
}
