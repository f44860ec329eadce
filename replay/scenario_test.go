package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayScenarios(t *testing.T) {
	t.Run("tracked hand with explicit payout", func(t *testing.T) {
		testTrackedHandReplay(t)
	})

	t.Run("river showdown chops the pot", func(t *testing.T) {
		testChoppedPotReplay(t)
	})

	t.Run("unrecorded showdown settles from the hero result", func(t *testing.T) {
		testMissingShowdownReplay(t)
	})
}

// step advances once, auditing chip conservation, and returns the result.
func step(t *testing.T, s *State, hand *Hand) StepResult {
	t.Helper()
	res, err := s.Advance(hand)
	require.NoError(t, err)
	require.NoError(t, s.CheckBalance())
	return res
}

// testTrackedHandReplay walks a full tracker export beat by beat: blinds, a
// button raise, a flop with no recorded actions, a river bet, and an
// explicit payout record.
func testTrackedHandReplay(t *testing.T) {
	t.Helper()
	net := 17
	hand := &Hand{
		ID:   "export-20240811-1042",
		Game: GameInfo{SmallBlind: 1, BigBlind: 2, TableSize: 6},
		Players: []Player{
			{Seat: 1, Name: "alice", Position: "BTN", StartingStack: 200, IsHero: true,
				HoleCards: KnownCards(mustCards("As Ad")...)},
			{Seat: 2, Name: "bob", Position: "SB", StartingStack: 200},
			{Seat: 3, Name: "carol", Position: "BB", StartingStack: 200,
				HoleCards: KnownCards(mustCards("Ks Kd")...)},
		},
		Streets: []Street{
			{Label: Preflop, Actions: []Action{
				{PlayerName: "bob", Kind: PostSmallBlind, Amount: 1},
				{PlayerName: "carol", Kind: PostBigBlind, Amount: 2},
				{PlayerName: "alice", Kind: Raise, Amount: 6},
				{PlayerName: "bob", Kind: Fold},
				{PlayerName: "carol", Kind: Call},
			}},
			{Label: Flop, Cards: mustCards("2c 7d Jh")},
			{Label: Turn, Cards: mustCards("3s"), Actions: []Action{
				{PlayerName: "carol", Kind: Check},
				{PlayerName: "alice", Kind: Check},
			}},
			{Label: River, Cards: mustCards("9c"), Actions: []Action{
				{PlayerName: "carol", Kind: Bet, Amount: 10},
				{PlayerName: "alice", Kind: Call},
			}},
		},
		Showdown:      true,
		Distributions: []PotDistribution{{PlayerName: "alice", Amount: 33}},
		HeroNet:       &net,
	}

	s, err := Start(hand)
	require.NoError(t, err)

	// Blinds go in.
	step(t, s, hand)
	step(t, s, hand)
	assert.Equal(t, 3, s.Pot())
	assert.Equal(t, 2, s.HighestBet())
	assert.Equal(t, 199, s.Stack("bob"))
	assert.Equal(t, 198, s.Stack("carol"))

	// Button raises to 6, small blind folds, big blind calls.
	step(t, s, hand)
	assert.Equal(t, 9, s.Pot())
	assert.Equal(t, 6, s.HighestBet())
	step(t, s, hand)
	assert.True(t, s.Folded("bob"))
	step(t, s, hand)
	assert.Equal(t, 13, s.Pot())
	assert.Equal(t, 194, s.Stack("alice"))
	assert.Equal(t, 194, s.Stack("carol"))

	// Flop: the bets sweep in and the board comes out.
	res := step(t, s, hand)
	require.Equal(t, StreetAdvanced, res.Kind)
	require.Equal(t, Flop, res.Street)
	assert.Equal(t, 0, s.HighestBet())
	assert.Equal(t, 13, s.Pot())
	view := s.View(hand)
	assert.Len(t, view.Board, 3)
	assert.Equal(t, 0, view.Bets["carol"])

	// No flop actions on record; the replay falls straight through.
	res = step(t, s, hand)
	require.Equal(t, StreetAdvanced, res.Kind)
	require.Equal(t, Turn, res.Street)

	// Turn checks through.
	step(t, s, hand)
	step(t, s, hand)
	assert.Equal(t, 13, s.Pot())

	// River: bet 10, call 10.
	res = step(t, s, hand)
	require.Equal(t, StreetAdvanced, res.Kind)
	require.Equal(t, River, res.Street)
	step(t, s, hand)
	assert.Equal(t, 23, s.Pot())

	res = step(t, s, hand)
	require.Equal(t, AwaitingShowdownReveal, res.Kind)
	require.NotNil(t, res.Action)
	assert.Equal(t, Call, res.Action.Kind)
	assert.Equal(t, 33, s.Pot())
	assert.False(t, s.ShowdownComplete())

	// The reveal and the payout.
	res = step(t, s, hand)
	require.Equal(t, HandComplete, res.Kind)
	require.True(t, s.HandComplete())
	assert.True(t, s.ShowdownComplete())

	view = s.View(hand)
	assert.True(t, view.HoleCards["alice"].Revealed())
	assert.True(t, view.HoleCards["carol"].Revealed())
	assert.Equal(t, CardsUnknown, view.HoleCards["bob"].Knowledge())

	require.Len(t, s.Winners(), 1)
	win := s.Winners()[0]
	assert.Equal(t, "alice", win.PlayerName)
	assert.Equal(t, 33, win.Amount)
	assert.Equal(t, "Pair of Aces", win.HandDesc)
	assert.Equal(t, ConfidenceExact, s.Confidence())

	assert.Equal(t, 217, s.Stack("alice"))
	assert.Equal(t, 199, s.Stack("bob"))
	assert.Equal(t, 184, s.Stack("carol"))

	nets := s.NetResults(hand)
	assert.Equal(t, map[string]int{"alice": 17, "bob": -1, "carol": -16}, nets)
	// The computed hero net agrees with the tracker's own record.
	assert.Equal(t, *hand.HeroNet, nets["alice"])
	assert.Empty(t, s.Warnings())
}

// testChoppedPotReplay runs a showdown where both players hold the same two
// pair and the odd chip goes to the earlier seat.
func testChoppedPotReplay(t *testing.T) {
	t.Helper()
	hand := &Hand{
		ID:   "export-20240811-1107",
		Game: GameInfo{SmallBlind: 1, BigBlind: 2, TableSize: 6},
		Players: []Player{
			{Seat: 1, Name: "alice", Position: "BTN", StartingStack: 200, IsHero: true,
				HoleCards: KnownCards(mustCards("Ah Qd")...)},
			{Seat: 2, Name: "bob", Position: "SB", StartingStack: 200},
			{Seat: 3, Name: "carol", Position: "BB", StartingStack: 200,
				HoleCards: KnownCards(mustCards("Ad Qh")...)},
		},
		Streets: []Street{
			{Label: Preflop, Actions: []Action{
				{PlayerName: "bob", Kind: PostSmallBlind, Amount: 1},
				{PlayerName: "carol", Kind: PostBigBlind, Amount: 2},
				{PlayerName: "alice", Kind: Raise, Amount: 6},
				{PlayerName: "bob", Kind: Fold},
				{PlayerName: "carol", Kind: Call},
			}},
			{Label: Flop, Cards: mustCards("Kc Qs 4h"), Actions: []Action{
				{PlayerName: "carol", Kind: Check},
				{PlayerName: "alice", Kind: Check},
			}},
			{Label: Turn, Cards: mustCards("8d"), Actions: []Action{
				{PlayerName: "carol", Kind: Check},
				{PlayerName: "alice", Kind: Check},
			}},
			{Label: River, Cards: mustCards("Ac"), Actions: []Action{
				{PlayerName: "carol", Kind: Bet, Amount: 10},
				{PlayerName: "alice", Kind: Call},
			}},
		},
		Showdown: true,
	}

	s, err := Start(hand)
	require.NoError(t, err)
	advanceToEnd(t, s, hand)

	require.Equal(t, ConfidenceEvaluated, s.Confidence())
	winners := s.Winners()
	require.Len(t, winners, 2)

	assert.Equal(t, "alice", winners[0].PlayerName)
	assert.Equal(t, 17, winners[0].Amount)
	assert.Equal(t, "carol", winners[1].PlayerName)
	assert.Equal(t, 16, winners[1].Amount)
	for _, w := range winners {
		assert.Equal(t, "Two Pair, Aces and Queens", w.HandDesc)
	}

	assert.Equal(t, 201, s.Stack("alice"))
	assert.Equal(t, 199, s.Stack("bob"))
	assert.Equal(t, 200, s.Stack("carol"))
	require.NoError(t, s.CheckBalance())
}

// testMissingShowdownReplay replays a record that stops after the river call
// with no reveal. The hero's recorded loss pins the pot on the villain.
func testMissingShowdownReplay(t *testing.T) {
	t.Helper()
	net := -16
	hand := &Hand{
		ID:   "export-20240811-1130",
		Game: GameInfo{SmallBlind: 1, BigBlind: 2, TableSize: 6},
		Players: []Player{
			{Seat: 1, Name: "alice", Position: "BTN", StartingStack: 200, IsHero: true,
				HoleCards: KnownCards(mustCards("Th Ts")...)},
			{Seat: 2, Name: "bob", Position: "SB", StartingStack: 200},
			{Seat: 3, Name: "carol", Position: "BB", StartingStack: 200},
		},
		Streets: []Street{
			{Label: Preflop, Actions: []Action{
				{PlayerName: "bob", Kind: PostSmallBlind, Amount: 1},
				{PlayerName: "carol", Kind: PostBigBlind, Amount: 2},
				{PlayerName: "alice", Kind: Raise, Amount: 6},
				{PlayerName: "bob", Kind: Fold},
				{PlayerName: "carol", Kind: Call},
			}},
			{Label: Flop, Cards: mustCards("Kd 8c 3h"), Actions: []Action{
				{PlayerName: "carol", Kind: Check},
				{PlayerName: "alice", Kind: Check},
			}},
			{Label: Turn, Cards: mustCards("6s"), Actions: []Action{
				{PlayerName: "carol", Kind: Check},
				{PlayerName: "alice", Kind: Check},
			}},
			{Label: River, Cards: mustCards("Jd"), Actions: []Action{
				{PlayerName: "carol", Kind: Bet, Amount: 10},
				{PlayerName: "alice", Kind: Call},
			}},
		},
		HeroNet: &net,
	}

	s, err := Start(hand)
	require.NoError(t, err)
	advanceToEnd(t, s, hand)

	// Only the hero's cards were recorded, so nothing can be evaluated.
	require.Equal(t, ConfidenceHeuristic, s.Confidence())
	winners := s.Winners()
	require.Len(t, winners, 1)
	assert.Equal(t, "carol", winners[0].PlayerName)
	assert.Equal(t, 33, winners[0].Amount)

	assert.Equal(t, 184, s.Stack("alice"))
	assert.Equal(t, 217, s.Stack("carol"))
	nets := s.NetResults(hand)
	assert.Equal(t, *hand.HeroNet, nets["alice"])
	require.NoError(t, s.CheckBalance())
}
