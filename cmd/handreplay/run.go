package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pokerlog/handreplay/internal/scenario"
	"github.com/pokerlog/handreplay/poker"
	"github.com/pokerlog/handreplay/replay"
)

// RunCmd replays fixture hands one step at a time, printing the table state
// the way a hand viewer would present it.
type RunCmd struct {
	File    string `arg:"" help:"Path to an .hcl hand fixture"`
	Hand    string `help:"Replay only the hand with this ID"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func (c *RunCmd) Run() error {
	logger := newLogger(c.Verbose)

	hands, err := scenario.Load(c.File)
	if err != nil {
		return err
	}
	if c.Hand != "" {
		hands = filterByID(hands, c.Hand)
		if len(hands) == 0 {
			return fmt.Errorf("no hand %q in %s", c.Hand, c.File)
		}
	}

	for i, hand := range hands {
		if i > 0 {
			fmt.Println()
		}
		if err := replayHand(os.Stdout, logger, hand); err != nil {
			return fmt.Errorf("hand %q: %w", hand.ID, err)
		}
	}
	return nil
}

func filterByID(hands []*replay.Hand, id string) []*replay.Hand {
	var out []*replay.Hand
	for _, hand := range hands {
		if hand.ID == id {
			out = append(out, hand)
		}
	}
	return out
}

func replayHand(w io.Writer, logger *log.Logger, hand *replay.Hand) error {
	s, err := replay.Start(hand)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "hand %s: %d players, blinds %d/%d\n",
		hand.ID, len(hand.Players), hand.Game.SmallBlind, hand.Game.BigBlind)
	for i := range hand.Players {
		p := &hand.Players[i]
		tag := ""
		if p.IsHero {
			tag = " (hero)"
		}
		fmt.Fprintf(w, "  %s%s: %d chips, %s\n",
			p.Name, tag, p.StartingStack, playerCardsString(s.PlayerCards(hand, p.Name)))
	}

	for !s.HandComplete() {
		step, err := s.Advance(hand)
		if err != nil {
			return err
		}
		v := s.View(hand)
		logger.Debug("step", "kind", step.Kind, "street", step.Street, "pot", v.Pot)

		switch step.Kind {
		case replay.ActionApplied:
			fmt.Fprintf(w, "  %s (pot %d)\n", describeAction(step.Action), v.Pot)
		case replay.StreetAdvanced:
			fmt.Fprintf(w, "--- %s [%s] (pot %d)\n", step.Street, cardsString(v.Board), v.Pot)
		case replay.AwaitingShowdownReveal:
			if step.Action != nil {
				fmt.Fprintf(w, "  %s (pot %d)\n", describeAction(step.Action), v.Pot)
			}
			fmt.Fprintln(w, "--- showdown")
		case replay.HandComplete:
			printSettlement(w, hand, v)
		}
		for _, warning := range step.Warnings {
			fmt.Fprintf(w, "  ! %s\n", warning)
		}
	}
	return nil
}

func printSettlement(w io.Writer, hand *replay.Hand, v replay.View) {
	if v.ShowdownComplete {
		for i := range hand.Players {
			name := hand.Players[i].Name
			if v.Folded[name] {
				continue
			}
			if pc := v.HoleCards[name]; pc.Revealed() {
				fmt.Fprintf(w, "  %s shows %s\n", name, cardsString(pc.Cards()))
			}
		}
	}
	for _, share := range v.Winners {
		if share.HandDesc != "" {
			fmt.Fprintf(w, "  %s wins %d with %s\n", share.PlayerName, share.Amount, share.HandDesc)
		} else {
			fmt.Fprintf(w, "  %s wins %d\n", share.PlayerName, share.Amount)
		}
	}
	fmt.Fprintf(w, "settled (%s):", v.Confidence)
	for i := range hand.Players {
		p := &hand.Players[i]
		fmt.Fprintf(w, " %s %+d", p.Name, v.Stacks[p.Name]-p.StartingStack)
	}
	fmt.Fprintln(w)
}

func describeAction(a *replay.Action) string {
	switch a.Kind {
	case replay.Fold:
		return a.PlayerName + " folds"
	case replay.Check:
		return a.PlayerName + " checks"
	case replay.Call:
		if a.Amount == 0 {
			return a.PlayerName + " calls"
		}
		return fmt.Sprintf("%s calls to %d", a.PlayerName, a.Amount)
	case replay.Bet:
		return fmt.Sprintf("%s bets %d", a.PlayerName, a.Amount)
	case replay.Raise:
		return fmt.Sprintf("%s raises to %d", a.PlayerName, a.Amount)
	case replay.PostSmallBlind:
		return fmt.Sprintf("%s posts small blind %d", a.PlayerName, a.Amount)
	case replay.PostBigBlind:
		return fmt.Sprintf("%s posts big blind %d", a.PlayerName, a.Amount)
	default:
		return fmt.Sprintf("%s posts %d", a.PlayerName, a.Amount)
	}
}

func cardsString(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func playerCardsString(pc replay.PlayerCards) string {
	switch pc.Knowledge() {
	case replay.CardsRevealed:
		return cardsString(pc.Cards())
	case replay.CardsHidden:
		return "[face down]"
	default:
		return "??"
	}
}
