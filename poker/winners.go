package poker

import "fmt"

// ShowdownEntry pairs a player with the hole cards they hold at showdown.
type ShowdownEntry struct {
	Name  string
	Cards CardSet
}

// ShowdownResult is one entry's evaluated standing at showdown.
type ShowdownResult struct {
	Name   string
	Hand   RankedHand
	Winner bool
}

// DetermineWinner evaluates every entry's best hand from its hole cards plus
// the board and marks each entry tied for the strongest as a winner. Two or
// more winners means a split pot.
func DetermineWinner(board CardSet, entries []ShowdownEntry) ([]ShowdownResult, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("determine winner: no entries")
	}

	results := make([]ShowdownResult, len(entries))
	best := -1
	for i, entry := range entries {
		hand, err := Evaluate(board.Union(entry.Cards))
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", entry.Name, err)
		}
		results[i] = ShowdownResult{Name: entry.Name, Hand: hand}
		if best < 0 || hand.Compare(results[best].Hand) > 0 {
			best = i
		}
	}

	for i := range results {
		if results[i].Hand.Compare(results[best].Hand) == 0 {
			results[i].Winner = true
		}
	}
	return results, nil
}
