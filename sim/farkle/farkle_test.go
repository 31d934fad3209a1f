package farkle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSingles(t *testing.T) {
	pts, left := Value([]int{5, 2, 3})
	assert.Equal(t, 50, pts)
	assert.Equal(t, 2, left)

	pts, left = Value([]int{1, 2, 3})
	assert.Equal(t, 100, pts)
	assert.Equal(t, 2, left)
}

func TestValuePrefersBiggestTrick(t *testing.T) {
	// triple 2s beat the single 5 also present in the roll
	pts, left := Value([]int{2, 2, 2, 5, 6})
	assert.Equal(t, 200, pts)
	assert.Equal(t, 2, left)

	// six 1s is the top trick
	pts, left = Value([]int{1, 1, 1, 1, 1, 1})
	assert.Equal(t, 4000, pts)
	assert.Equal(t, 0, left)

	pts, left = Value([]int{1, 1, 1, 1, 1})
	assert.Equal(t, 3000, pts)
	assert.Equal(t, 0, left)
}

func TestValueStraight(t *testing.T) {
	pts, left := Value([]int{3, 1, 6, 4, 2, 5})
	assert.Equal(t, 1000, pts)
	assert.Equal(t, 0, left)
}

func TestValueFarkle(t *testing.T) {
	pts, left := Value([]int{2, 3, 4})
	assert.Equal(t, 0, pts)
	assert.Equal(t, 3, left)
}

func TestTripleValues(t *testing.T) {
	cases := map[int]int{1: 1000, 2: 200, 3: 300, 4: 400, 5: 500, 6: 600}
	for face, want := range cases {
		pts, left := Value([]int{face, face, face})
		assert.Equal(t, want, pts, "triple %d", face)
		assert.Equal(t, 0, left)
	}
	// quads double and quints triple the base
	pts, _ := Value([]int{4, 4, 4, 4})
	assert.Equal(t, 800, pts)
	pts, _ = Value([]int{6, 6, 6, 6, 6})
	assert.Equal(t, 1800, pts)
}

func TestPlayBanksOrBusts(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	score := Play(200, Rule{MinPoints: 300, MinDice: 3}, r)
	require.Len(t, score, 200)

	total := 0
	for i, rs := range score {
		assert.Equal(t, i+1, rs.Round)
		// a round either busted to zero or banked at least the target...
		// unless the dice ran below MinDice first, so only the bust side
		// is a hard floor
		assert.GreaterOrEqual(t, rs.Points, 0)
		total += rs.Points
		assert.Equal(t, total, rs.Total)
	}
}

func TestSearchRulesRankedAndComplete(t *testing.T) {
	minPoints := []int{100, 200, 300, 400, 500, 600}
	minDice := []int{1, 2, 3}
	got := SearchRules(500, minPoints, minDice, 42)
	require.Len(t, got, 18)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}

	again := SearchRules(500, minPoints, minDice, 42)
	assert.Equal(t, got, again)
}
