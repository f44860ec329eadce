// Package scenario loads recorded hands from HCL fixture files. A fixture
// carries one or more hand blocks, each a complete tracker export: game
// stakes, players, streets with their actions, and whatever outcome data the
// tracker captured. Fixtures drive the CLI and integration tests; they are
// input tooling, not a storage format.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/pokerlog/handreplay/poker"
	"github.com/pokerlog/handreplay/replay"
)

// fixtureFile is the top-level HCL structure.
type fixtureFile struct {
	Hands []handBlock `hcl:"hand,block"`
}

type handBlock struct {
	ID            string              `hcl:"id,label"`
	Game          *gameBlock          `hcl:"game,block"`
	Players       []playerBlock       `hcl:"player,block"`
	Streets       []streetBlock       `hcl:"street,block"`
	Showdown      bool                `hcl:"showdown,optional"`
	HeroNet       *int                `hcl:"hero_net,optional"`
	Distributions []distributionBlock `hcl:"distribution,block"`
}

type gameBlock struct {
	SmallBlind int `hcl:"small_blind"`
	BigBlind   int `hcl:"big_blind"`
	TableSize  int `hcl:"table_size,optional"`
}

type playerBlock struct {
	Name       string `hcl:"name,label"`
	Seat       int    `hcl:"seat"`
	Position   string `hcl:"position,optional"`
	Stack      int    `hcl:"stack"`
	Cards      string `hcl:"cards,optional"`
	FinalCards string `hcl:"final_cards,optional"`
	Hero       bool   `hcl:"hero,optional"`
}

type streetBlock struct {
	Name    string        `hcl:"name,label"`
	Cards   string        `hcl:"cards,optional"`
	Actions []actionBlock `hcl:"action,block"`
}

type actionBlock struct {
	Player string `hcl:"player"`
	Do     string `hcl:"do"`
	Amount int    `hcl:"amount,optional"`
}

type distributionBlock struct {
	Player string `hcl:"player"`
	Amount int    `hcl:"amount"`
	Hand   string `hcl:"hand,optional"`
}

// Load reads hand fixtures from an HCL file.
func Load(path string) ([]*replay.Hand, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(src, path)
}

// LoadDir loads every .hcl fixture in a directory, in name order.
func LoadDir(dir string) ([]*replay.Hand, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".hcl" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .hcl fixtures in %s", dir)
	}
	sort.Strings(paths)

	var hands []*replay.Hand
	for _, path := range paths {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		hands = append(hands, loaded...)
	}
	return hands, nil
}

// Parse decodes hand fixtures from HCL source. The filename is used only for
// diagnostics.
func Parse(src []byte, filename string) ([]*replay.Hand, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fixture fixtureFile
	diags = gohcl.DecodeBody(file.Body, nil, &fixture)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if len(fixture.Hands) == 0 {
		return nil, fmt.Errorf("%s: no hand blocks", filename)
	}

	hands := make([]*replay.Hand, 0, len(fixture.Hands))
	for i := range fixture.Hands {
		hand, err := convertHand(&fixture.Hands[i])
		if err != nil {
			return nil, fmt.Errorf("%s: hand %q: %w", filename, fixture.Hands[i].ID, err)
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func convertHand(block *handBlock) (*replay.Hand, error) {
	hand := &replay.Hand{
		ID:       block.ID,
		Game:     replay.GameInfo{SmallBlind: 1, BigBlind: 2, TableSize: 6},
		Showdown: block.Showdown,
		HeroNet:  block.HeroNet,
	}
	if block.Game != nil {
		hand.Game = replay.GameInfo{
			SmallBlind: block.Game.SmallBlind,
			BigBlind:   block.Game.BigBlind,
			TableSize:  block.Game.TableSize,
		}
		if hand.Game.TableSize == 0 {
			hand.Game.TableSize = len(block.Players)
		}
	}

	for _, p := range block.Players {
		player := replay.Player{
			Seat:          p.Seat,
			Name:          p.Name,
			Position:      p.Position,
			StartingStack: p.Stack,
			IsHero:        p.Hero,
		}
		if p.Cards != "" {
			cards, err := poker.ParseCards(p.Cards)
			if err != nil {
				return nil, fmt.Errorf("player %q cards: %w", p.Name, err)
			}
			player.HoleCards = replay.KnownCards(cards...)
		}
		if p.FinalCards != "" {
			cards, err := poker.ParseCards(p.FinalCards)
			if err != nil {
				return nil, fmt.Errorf("player %q final cards: %w", p.Name, err)
			}
			player.FinalCards = cards
		}
		hand.Players = append(hand.Players, player)
	}

	for _, s := range block.Streets {
		label, err := replay.ParseStreetLabel(s.Name)
		if err != nil {
			return nil, err
		}
		street := replay.Street{Label: label}
		if s.Cards != "" {
			cards, err := poker.ParseCards(s.Cards)
			if err != nil {
				return nil, fmt.Errorf("street %q cards: %w", s.Name, err)
			}
			street.Cards = cards
		}
		for _, a := range s.Actions {
			kind, err := replay.ParseActionKind(a.Do)
			if err != nil {
				return nil, fmt.Errorf("street %q: %w", s.Name, err)
			}
			street.Actions = append(street.Actions, replay.Action{
				PlayerName: a.Player,
				Kind:       kind,
				Amount:     a.Amount,
			})
		}
		hand.Streets = append(hand.Streets, street)
	}

	for _, d := range block.Distributions {
		hand.Distributions = append(hand.Distributions, replay.PotDistribution{
			PlayerName: d.Player,
			Amount:     d.Amount,
			HandDesc:   d.Hand,
		})
	}

	// Catch broken fixtures at load time, with the file in the error.
	if err := hand.Validate(); err != nil {
		return nil, err
	}
	return hand, nil
}
