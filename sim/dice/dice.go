// Package dice simulates seeded dice rolls and summarizes their
// distribution.
package dice

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// Roll rolls the given number of dice the given number of times. Every
// die is uniform over 1..sides.
func Roll(rolls, dice, sides int, seed int64) [][]int {
	r := rand.New(rand.NewSource(seed))
	out := make([][]int, rolls)
	for i := range out {
		row := make([]int, dice)
		for j := range row {
			row[j] = r.Intn(sides) + 1
		}
		out[i] = row
	}
	return out
}

// Totals sums each roll.
func Totals(rolls [][]int) []int {
	out := make([]int, len(rolls))
	for i, row := range rolls {
		t := 0
		for _, d := range row {
			t += d
		}
		out[i] = t
	}
	return out
}

// TotalHistogram counts rolls by their summed total.
func TotalHistogram(rolls [][]int) map[int]int {
	hist := map[int]int{}
	for _, t := range Totals(rolls) {
		hist[t]++
	}
	return hist
}

// ComboKey names a roll by its sorted faces, so ordering within a roll
// does not split the count.
func ComboKey(roll []int) string {
	s := append([]int(nil), roll...)
	sort.Ints(s)
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "-")
}

// ComboHistogram counts rolls by unordered combination.
func ComboHistogram(rolls [][]int) map[string]int {
	hist := map[string]int{}
	for _, row := range rolls {
		hist[ComboKey(row)]++
	}
	return hist
}

// FormatHistogram renders a histogram's keys in sorted order, one
// "key count" line each.
func FormatHistogram[K int | string](hist map[K]int) []string {
	keys := make([]K, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprintf("%v %d", k, hist[k])
	}
	return out
}
