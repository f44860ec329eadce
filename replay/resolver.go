package replay

import "github.com/pokerlog/handreplay/poker"

// distribution is a resolved pot payout before it is applied to the state.
type distribution struct {
	shares     []PotShare
	confidence Confidence
	warnings   []Warning
}

// resolve decides where the pot goes. Strategies run in order of trust:
// the tracker's explicit payout record, evaluation of revealed cards, the
// uncontested pot, and finally a heuristic from the hero's recorded result.
// The chain cannot fail; the heuristic always produces a distribution.
func (s *State) resolve(hand *Hand) []Warning {
	strategies := []func(*Hand) (distribution, bool){
		s.resolveExplicit,
		s.resolveEvaluated,
		s.resolveLastStanding,
		s.resolveHeuristic,
	}

	var dist distribution
	for _, strategy := range strategies {
		if d, ok := strategy(hand); ok {
			dist = d
			break
		}
	}

	for _, share := range dist.shares {
		s.stacks[share.PlayerName] += share.Amount
	}
	s.winners = dist.shares
	s.confidence = dist.confidence
	s.pot = 0

	if len(dist.warnings) > 0 {
		s.warnings = append(s.warnings, dist.warnings...)
	}
	return dist.warnings
}

// resolveExplicit pays out exactly what the tracker recorded. The record is
// trusted over arithmetic: when the recorded payouts do not sum to the pot
// (rake does this legitimately) the difference is noted and taken out of
// play rather than redistributed.
func (s *State) resolveExplicit(hand *Hand) (distribution, bool) {
	if len(hand.Distributions) == 0 {
		return distribution{}, false
	}

	dist := distribution{confidence: ConfidenceExact}
	paid := 0
	for _, rec := range hand.Distributions {
		if rec.Amount <= 0 {
			continue
		}
		paid += rec.Amount
		dist.shares = append(dist.shares, PotShare{
			PlayerName: rec.PlayerName,
			Amount:     rec.Amount,
			HandDesc:   s.describeHand(hand, rec.PlayerName, rec.HandDesc),
		})
	}

	if paid != s.pot {
		dist.warnings = append(dist.warnings, chipWarningf("",
			"recorded payout %d does not match pot %d", paid, s.pot))
		s.unaccounted += s.pot - paid
	}
	return dist, true
}

// resolveEvaluated settles a contested pot by evaluating every surviving
// player with known cards against the board. It stands down when fewer than
// two such players exist or the cards cannot make a hand, leaving the pot to
// the later strategies.
func (s *State) resolveEvaluated(hand *Hand) (distribution, bool) {
	var entries []poker.ShowdownEntry
	for i := range hand.Players {
		p := &hand.Players[i]
		if s.folded[p.Name] {
			continue
		}
		cards := p.showdownCards()
		if len(cards) < 2 {
			continue
		}
		entries = append(entries, poker.ShowdownEntry{
			Name:  p.Name,
			Cards: poker.NewCardSet(cards...),
		})
	}
	if len(entries) < 2 {
		return distribution{}, false
	}

	results, err := poker.DetermineWinner(s.boardSet, entries)
	if err != nil {
		// Not enough board for a five-card hand; fall through.
		return distribution{}, false
	}

	var winners []poker.ShowdownResult
	for _, r := range results {
		if r.Winner {
			winners = append(winners, r)
		}
	}

	return distribution{
		shares:     splitPot(s.pot, winners),
		confidence: ConfidenceEvaluated,
	}, true
}

// resolveLastStanding hands an uncontested pot to the sole surviving player.
func (s *State) resolveLastStanding(hand *Hand) (distribution, bool) {
	var survivor string
	for i := range hand.Players {
		name := hand.Players[i].Name
		if s.folded[name] {
			continue
		}
		if survivor != "" {
			return distribution{}, false
		}
		survivor = name
	}
	if survivor == "" {
		return distribution{}, false
	}

	return distribution{
		shares:     []PotShare{{PlayerName: survivor, Amount: s.pot}},
		confidence: ConfidenceExact,
	}, true
}

// resolveHeuristic is the terminal fallback for contested pots with no
// usable showdown data. The hero's recorded net result, when present, at
// least pins which side of the pot the hero was on; with nothing to go on
// the pot splits across the survivors. Always tagged heuristic so callers
// can treat the outcome as a guess.
func (s *State) resolveHeuristic(hand *Hand) (distribution, bool) {
	var survivors []string
	for i := range hand.Players {
		name := hand.Players[i].Name
		if !s.folded[name] {
			survivors = append(survivors, name)
		}
	}
	if len(survivors) == 0 {
		// Nothing sane to do with a record where everyone folded; the
		// chips leave play and the audit stays balanced.
		s.unaccounted += s.pot
		return distribution{
			confidence: ConfidenceHeuristic,
			warnings: []Warning{chipWarningf("",
				"no surviving player to award %d chips", s.pot)},
		}, true
	}

	hero := hand.Hero()
	if hero != nil && hand.HeroNet != nil && !s.folded[hero.Name] {
		switch {
		case *hand.HeroNet > 0:
			return distribution{
				shares:     []PotShare{{PlayerName: hero.Name, Amount: s.pot}},
				confidence: ConfidenceHeuristic,
			}, true
		case *hand.HeroNet < 0:
			villains := make([]string, 0, len(survivors))
			for _, name := range survivors {
				if name != hero.Name {
					villains = append(villains, name)
				}
			}
			if len(villains) > 0 {
				return distribution{
					shares:     splitEvenly(s.pot, villains),
					confidence: ConfidenceHeuristic,
				}, true
			}
		}
	}

	return distribution{
		shares:     splitEvenly(s.pot, survivors),
		confidence: ConfidenceHeuristic,
	}, true
}

// splitPot divides the pot evenly among evaluated winners, attaching each
// winner's hand text. Integer division leaves at most len-1 odd chips; they
// go to the first winner in seat order so reruns always agree.
func splitPot(pot int, winners []poker.ShowdownResult) []PotShare {
	if len(winners) == 0 {
		return nil
	}
	share := pot / len(winners)
	remainder := pot % len(winners)

	shares := make([]PotShare, len(winners))
	for i, w := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}
		shares[i] = PotShare{
			PlayerName: w.Name,
			Amount:     amount,
			HandDesc:   w.Hand.Describe(),
		}
	}
	return shares
}

// splitEvenly is splitPot without hand descriptions, for heuristic splits.
func splitEvenly(pot int, names []string) []PotShare {
	if len(names) == 0 {
		return nil
	}
	share := pot / len(names)
	remainder := pot % len(names)

	shares := make([]PotShare, len(names))
	for i, name := range names {
		amount := share
		if i == 0 {
			amount += remainder
		}
		shares[i] = PotShare{PlayerName: name, Amount: amount}
	}
	return shares
}

// describeHand picks the best hand text for an explicit payout: the
// recorded description when the tracker captured one, otherwise a fresh
// evaluation of the player's known cards against the board.
func (s *State) describeHand(hand *Hand, playerName, recorded string) string {
	if recorded != "" {
		return recorded
	}
	p := hand.Player(playerName)
	if p == nil {
		return ""
	}
	cards := p.showdownCards()
	if len(cards) < 2 {
		return ""
	}
	evaluated, err := poker.Evaluate(s.boardSet.Union(poker.NewCardSet(cards...)))
	if err != nil {
		return ""
	}
	return evaluated.Describe()
}
