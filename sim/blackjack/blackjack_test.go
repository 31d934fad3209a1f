package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-edge/sim/cards"
)

func TestBuildStrategiesGridSize(t *testing.T) {
	got := BuildStrategies([]int{12, 13, 14, 15, 16}, 17, 5)
	require.Len(t, got, 3125)
	for i, s := range got {
		assert.Equal(t, i, s.ID)
		require.Len(t, s.Stands, 6)
		assert.Equal(t, 17, s.Stands[5])
	}
	// last seat varies fastest, dealer pinned
	assert.Equal(t, []int{12, 12, 12, 12, 12, 17}, got[0].Stands)
	assert.Equal(t, []int{12, 12, 12, 12, 13, 17}, got[1].Stands)
	assert.Equal(t, []int{16, 16, 16, 16, 16, 17}, got[3124].Stands)
}

func TestBuildStrategiesStableIDs(t *testing.T) {
	a := BuildStrategies([]int{12, 13}, 17, 2)
	b := BuildStrategies([]int{12, 13}, 17, 2)
	require.Equal(t, a, b)
}

func card(f cards.Face) cards.Card { return cards.Card{Face: f, Suit: cards.Spades} }

func TestParseHandRoundRobin(t *testing.T) {
	// 2 players + dealer, 9 draws: first 3 are up cards, next 3 hole
	// cards, last 3 the shared reserve.
	drawn := []cards.Card{
		card(cards.Face("2")), card(cards.Face("3")), card(cards.Face("4")),
		card(cards.Face("5")), card(cards.Face("6")), card(cards.Face("7")),
		card(cards.Face("8")), card(cards.Face("9")), card(cards.Face("10")),
	}
	h, err := ParseHand(0, drawn, 2)
	require.NoError(t, err)
	assert.Equal(t, []cards.Card{card(cards.Face("2")), card(cards.Face("5"))}, h.Initial[0])
	assert.Equal(t, []cards.Card{card(cards.Face("3")), card(cards.Face("6"))}, h.Initial[1])
	assert.Equal(t, []cards.Card{card(cards.Face("4")), card(cards.Face("7"))}, h.Initial[2])
	assert.Equal(t, drawn[6:], h.Reserve)
	assert.Equal(t, []int{7, 9, 11}, h.Start)
}

func TestParseHandInsufficientCards(t *testing.T) {
	_, err := ParseHand(3, []cards.Card{card(cards.Ace)}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient cards")
}

func TestSimulateStandsAtThreshold(t *testing.T) {
	// Player 1 starts at 15 with a stand of 12: no hits, the reserve is
	// untouched for the dealer.
	drawn := []cards.Card{
		card(cards.Face("7")), card(cards.Face("5")),
		card(cards.Face("8")), card(cards.Face("2")),
		card(cards.King), card(cards.Face("9")),
	}
	h, err := ParseHand(0, drawn, 1)
	require.NoError(t, err)
	require.Equal(t, []int{15, 7}, h.Start)

	totals := h.Simulate(Strategy{ID: 0, Stands: []int{12, 17}})
	assert.Equal(t, 15, totals[0])
	// dealer at 7 hits the King and stops at 17; the 9 stays in reserve
	assert.Equal(t, 17, totals[1])
}

func TestSimulateSharedReserveOrder(t *testing.T) {
	// Both players start below their stand; player 1 consumes the front
	// of the reserve before player 2 gets a card.
	drawn := []cards.Card{
		card(cards.Face("2")), card(cards.Face("3")), card(cards.King),
		card(cards.Face("2")), card(cards.Face("3")), card(cards.Face("9")),
		card(cards.Face("10")), card(cards.Face("10")), card(cards.Face("2")),
	}
	h, err := ParseHand(0, drawn, 2)
	require.NoError(t, err)
	require.Equal(t, []int{4, 6, 19}, h.Start)

	totals := h.Simulate(Strategy{ID: 0, Stands: []int{13, 13, 17}})
	assert.Equal(t, 14, totals[0]) // 4 + 10
	assert.Equal(t, 16, totals[1]) // 6 + 10
	assert.Equal(t, 19, totals[2]) // dealer already standing
}

func TestSimulateReserveExhausted(t *testing.T) {
	drawn := []cards.Card{
		card(cards.Face("2")), card(cards.Face("3")),
		card(cards.Face("2")), card(cards.Face("3")),
		card(cards.Face("2")),
	}
	// 4 initial cards + 1 reserve card for 1 player + dealer
	h, err := ParseHand(0, drawn[:4], 1)
	require.NoError(t, err)
	h.Reserve = drawn[4:]

	totals := h.Simulate(Strategy{ID: 0, Stands: []int{21, 21}})
	assert.Equal(t, 6, totals[0]) // 4 + the only reserve card
	assert.Equal(t, 6, totals[1]) // dealer stuck below threshold, no cards left
}

func TestScoreTiesLose(t *testing.T) {
	assert.Equal(t, []int{1}, Score([]int{20, 22})) // dealer busts
	assert.Equal(t, []int{1}, Score([]int{21, 20}))
	assert.Equal(t, []int{0}, Score([]int{20, 20})) // push counts as a loss
	assert.Equal(t, []int{0}, Score([]int{22, 23})) // both bust, player still loses
	assert.Equal(t, []int{0, 1}, Score([]int{17, 19, 18}))
}

func TestAggregatorEndToEnd(t *testing.T) {
	cfg := Config{
		Players:      2,
		Decks:        1,
		Hands:        3,
		DrawsPerSeat: 4,
		PlayerStands: []int{12, 16},
		DealerStand:  17,
		MasterSeed:   42,
		Workers:      1,
	}
	require.NoError(t, cfg.Validate())

	strategies := BuildStrategies(cfg.PlayerStands, cfg.DealerStand, cfg.Players)
	require.Len(t, strategies, 4)

	agg := NewAggregator(strategies, cfg.Players)
	for id := 0; id < cfg.Hands; id++ {
		drawn := cards.DealHand(cfg.Decks, cfg.TotalDraws(), int64(100+id))
		h, err := ParseHand(id, drawn, cfg.Players)
		require.NoError(t, err)
		agg.AddHand(h)
		for _, s := range strategies {
			agg.Record(h, s, Score(h.Simulate(s)))
		}
	}

	require.Equal(t, 3, agg.Hands())
	scores := agg.StrategyScores()
	require.Len(t, scores, 4)
	for i, sc := range scores {
		assert.GreaterOrEqual(t, sc.AvgWon, 0.0)
		assert.LessOrEqual(t, sc.AvgWon, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, sc.AvgWon, scores[i-1].AvgWon)
		}
	}

	// marginals over a seat's two thresholds average to the seat's
	// overall rate across the grid
	marg := agg.ThresholdMarginals()
	require.Len(t, marg, 4)
	var seat0 float64
	for _, m := range marg {
		assert.GreaterOrEqual(t, m.AvgWon, 0.0)
		assert.LessOrEqual(t, m.AvgWon, 1.0)
		if m.Seat == PlayerSeat(0) {
			seat0 += m.AvgWon
		}
	}
	var grid0 float64
	for _, sc := range scores {
		grid0 += sc.SeatRates[0]
	}
	assert.InDelta(t, grid0/4, seat0/2, 1e-12)

	for _, rec := range agg.Recommendations() {
		assert.LessOrEqual(t, rec.StartValue, 21)
		assert.GreaterOrEqual(t, rec.SeatRate, 0.0)
		assert.LessOrEqual(t, rec.SeatRate, 1.0)
		require.Len(t, rec.Strategy.Stands, 3)
	}
}

func TestAggregatorMerge(t *testing.T) {
	strategies := BuildStrategies([]int{12, 16}, 17, 2)

	whole := NewAggregator(strategies, 2)
	left := NewAggregator(strategies, 2)
	right := NewAggregator(strategies, 2)

	for id := 0; id < 4; id++ {
		drawn := cards.DealHand(1, 12, int64(7*id+1))
		h, err := ParseHand(id, drawn, 2)
		require.NoError(t, err)

		part := left
		if id >= 2 {
			part = right
		}
		whole.AddHand(h)
		part.AddHand(h)
		for _, s := range strategies {
			w := Score(h.Simulate(s))
			whole.Record(h, s, w)
			part.Record(h, s, w)
		}
	}

	left.Merge(right)
	assert.Equal(t, whole.Hands(), left.Hands())
	assert.Equal(t, whole.StrategyScores(), left.StrategyScores())
	assert.Equal(t, whole.Recommendations(), left.Recommendations())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := DefaultConfig()
	bad.Players = 0
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.PlayerStands = nil
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.DealerStand = 0
	assert.Error(t, bad.Validate())
}
