package poker

// HoleCategory buckets two hole cards by preflop strength.
type HoleCategory string

const (
	HolePremium HoleCategory = "Premium"
	HoleStrong  HoleCategory = "Strong"
	HoleMedium  HoleCategory = "Medium"
	HoleWeak    HoleCategory = "Weak"
	HoleTrash   HoleCategory = "Trash"
	HoleUnknown HoleCategory = "Unknown"
)

// CategorizeHoleCards buckets a starting hand: Premium (JJ+, AK), Strong
// (TT, AQ, AJ), Medium (77-99, suited broadway), Weak (small pairs, suited
// connectors), Trash otherwise.
func CategorizeHoleCards(a, b Card) HoleCategory {
	if a.Rank() > Ace || b.Rank() > Ace {
		return HoleUnknown
	}

	small, big := rankValue(a.Rank()), rankValue(b.Rank())
	if small > big {
		small, big = big, small
	}
	suited := a.Suit() == b.Suit()
	pair := small == big

	switch {
	case pair && small >= 11: // JJ, QQ, KK, AA
		return HolePremium
	case big == 14 && small == 13: // AK
		return HolePremium
	case pair && small == 10:
		return HoleStrong
	case big == 14 && small >= 11: // AQ, AJ
		return HoleStrong
	case pair && small >= 7: // 77-99
		return HoleMedium
	case suited && small >= 10: // suited broadway
		return HoleMedium
	case pair: // 22-66
		return HoleWeak
	case suited && big-small <= 2: // suited connectors and one-gappers
		return HoleWeak
	default:
		return HoleTrash
	}
}

// rankValue converts the 0-12 rank encoding to the conventional 2-14 scale.
func rankValue(rank uint8) int {
	return int(rank) + 2
}
