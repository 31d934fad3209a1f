package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollBoundsAndShape(t *testing.T) {
	rolls := Roll(200, 2, 6, 21)
	require.Len(t, rolls, 200)
	for _, row := range rolls {
		require.Len(t, row, 2)
		for _, d := range row {
			assert.GreaterOrEqual(t, d, 1)
			assert.LessOrEqual(t, d, 6)
		}
	}
}

func TestRollDeterministic(t *testing.T) {
	assert.Equal(t, Roll(50, 3, 6, 7), Roll(50, 3, 6, 7))
	assert.NotEqual(t, Roll(50, 3, 6, 7), Roll(50, 3, 6, 8))
}

func TestTotals(t *testing.T) {
	assert.Equal(t, []int{7, 12, 2}, Totals([][]int{{3, 4}, {6, 6}, {1, 1}}))
}

func TestHistograms(t *testing.T) {
	rolls := [][]int{{3, 4}, {4, 3}, {6, 6}}
	assert.Equal(t, map[int]int{7: 2, 12: 1}, TotalHistogram(rolls))
	assert.Equal(t, map[string]int{"3-4": 2, "6-6": 1}, ComboHistogram(rolls))
}

func TestComboKeyOrderInsensitive(t *testing.T) {
	assert.Equal(t, ComboKey([]int{5, 2, 2}), ComboKey([]int{2, 5, 2}))
	assert.Equal(t, "2-2-5", ComboKey([]int{5, 2, 2}))
}

func TestFormatHistogramSorted(t *testing.T) {
	got := FormatHistogram(map[int]int{12: 1, 2: 3, 7: 6})
	assert.Equal(t, []string{"2 3", "7 6", "12 1"}, got)
}
