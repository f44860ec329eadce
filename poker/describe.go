package poker

import "fmt"

var rankNames = [...]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

// RankName returns the spelled-out rank, e.g. "Queen".
func RankName(rank uint8) string {
	if rank > Ace {
		return "Unknown"
	}
	return rankNames[rank]
}

func pluralRank(rank uint8) string {
	if rank == Six {
		return "Sixes"
	}
	return RankName(rank) + "s"
}

// Describe returns the natural-language reading of the hand, e.g.
// "Two Pair, Aces and Kings" or "Straight, Nine high".
func (r RankedHand) Describe() string {
	t := r.Tiebreaks
	switch r.Category {
	case StraightFlush:
		if t[0] == Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", RankName(t[0]))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", pluralRank(t[0]))
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", pluralRank(t[0]), pluralRank(t[1]))
	case Flush:
		return fmt.Sprintf("Flush, %s high", RankName(t[0]))
	case Straight:
		return fmt.Sprintf("Straight, %s high", RankName(t[0]))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", pluralRank(t[0]))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", pluralRank(t[0]), pluralRank(t[1]))
	case Pair:
		return fmt.Sprintf("Pair of %s", pluralRank(t[0]))
	default:
		return fmt.Sprintf("High Card, %s", RankName(t[0]))
	}
}

// String is the bare category name; Describe carries the detail.
func (r RankedHand) String() string {
	return r.Category.String()
}
