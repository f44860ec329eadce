package replay

// applyAction executes one recorded action's stack and pot arithmetic.
// Recorded amounts for bets, raises and posts are total street commitments,
// so the chips actually moved are the difference against what the player
// already has in. Deltas that cannot be covered are clamped to the stack and
// reported, never rejected: a replay must always reach the end of the hand.
func (s *State) applyAction(action Action) []Warning {
	name := action.PlayerName

	switch action.Kind {
	case Fold:
		s.folded[name] = true
		// The street display no longer shows folded chips in front of
		// the player; the pot already holds them.
		s.invested[name] = 0
		return nil
	case Check:
		return nil
	}

	invested := s.invested[name]
	var delta int
	switch action.Kind {
	case PostSmallBlind, PostBigBlind, Post:
		delta = action.Amount
	case Bet, Raise:
		delta = action.Amount - invested
	case Call:
		delta = s.highestBet - invested
	}
	if delta < 0 {
		// Calling with nothing owed, or a raise below the chips already
		// in, moves nothing.
		delta = 0
	}

	var warnings []Warning
	if stack := s.stacks[name]; delta > stack {
		warnings = append(warnings, chipWarningf(name,
			"%s for %d needs %d chips with only %d behind; clamped",
			action.Kind, action.Amount, delta, stack))
		delta = stack
	}

	s.stacks[name] -= delta
	s.pot += delta
	s.invested[name] = invested + delta

	if action.Kind.setsBetLevel() && action.Amount > s.highestBet {
		s.highestBet = action.Amount
	}

	if len(warnings) > 0 {
		s.warnings = append(s.warnings, warnings...)
	}
	return warnings
}
