package replay

import "fmt"

// StepKind classifies what a single Advance did.
type StepKind uint8

const (
	// ActionApplied means one recorded action was executed.
	ActionApplied StepKind = iota
	// StreetAdvanced means the replay moved to the next street and dealt
	// its community cards; street bets were swept into fresh state.
	StreetAdvanced
	// AwaitingShowdownReveal means the betting is finished and the next
	// step will turn the known hole cards face-up. The pause exists so a
	// viewer can present the reveal as its own moment.
	AwaitingShowdownReveal
	// HandComplete means the pot is settled. Further advances are no-ops
	// that report HandComplete again.
	HandComplete
)

// String returns the step kind name.
func (k StepKind) String() string {
	switch k {
	case ActionApplied:
		return "action-applied"
	case StreetAdvanced:
		return "street-advanced"
	case AwaitingShowdownReveal:
		return "awaiting-showdown-reveal"
	case HandComplete:
		return "hand-complete"
	default:
		return "unknown"
	}
}

// StepResult reports one replay step.
type StepResult struct {
	Kind StepKind
	// Action is the recorded action a step applied, set for ActionApplied
	// and for the AwaitingShowdownReveal step that applied the hand's
	// final action.
	Action *Action
	// Street is the street the replay is on after the step.
	Street StreetLabel
	// Warnings raised by this step, if any.
	Warnings []Warning
}

// Advance executes exactly one replay step against the hand the state was
// started from and reports what happened. Steps are, in order of precedence:
// apply the next action on the current street, move to the next street, run
// the showdown reveal, settle the hand. Advancing a settled hand stays
// settled.
func (s *State) Advance(hand *Hand) (StepResult, error) {
	if s.street >= len(hand.Streets) {
		return StepResult{}, fmt.Errorf("state does not match hand: street %d of %d", s.street, len(hand.Streets))
	}
	label := hand.Streets[s.street].Label

	if s.handComplete {
		return StepResult{Kind: HandComplete, Street: label}, nil
	}

	if s.showdownPending {
		s.revealShowdown(hand)
		warnings := s.settle(hand)
		return StepResult{Kind: HandComplete, Street: label, Warnings: warnings}, nil
	}

	street := &hand.Streets[s.street]
	if s.action < len(street.Actions) {
		action := street.Actions[s.action]
		warnings := s.applyAction(action)
		s.action++

		kind := ActionApplied
		if s.street == len(hand.Streets)-1 && s.action == len(street.Actions) && hand.Showdown {
			// The hand's last recorded action; pause before the reveal.
			s.showdownPending = true
			kind = AwaitingShowdownReveal
		}
		return StepResult{Kind: kind, Action: &action, Street: label, Warnings: warnings}, nil
	}

	if s.street < len(hand.Streets)-1 {
		s.street++
		s.action = 0
		s.highestBet = 0
		for name := range s.invested {
			s.invested[name] = 0
		}
		s.dealBoard(hand.Streets[s.street].Cards)
		return StepResult{Kind: StreetAdvanced, Street: hand.Streets[s.street].Label}, nil
	}

	// Streets and actions are exhausted. All-in runouts land here with
	// the showdown still to show.
	if hand.Showdown {
		s.showdownPending = true
		return StepResult{Kind: AwaitingShowdownReveal, Street: label}, nil
	}

	warnings := s.settle(hand)
	return StepResult{Kind: HandComplete, Street: label, Warnings: warnings}, nil
}

// revealShowdown turns every surviving player's known cards face-up.
func (s *State) revealShowdown(hand *Hand) {
	for i := range hand.Players {
		p := &hand.Players[i]
		if s.folded[p.Name] {
			continue
		}
		if len(p.showdownCards()) > 0 {
			s.revealed[p.Name] = true
		}
	}
	s.showdownComplete = true
}

// settle runs the showdown resolution and marks the hand complete.
func (s *State) settle(hand *Hand) []Warning {
	warnings := s.resolve(hand)
	s.handComplete = true
	return warnings
}
