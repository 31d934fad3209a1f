// Package farkle plays a push-your-luck dice game and searches a small
// grid of stopping rules for the best one.
package farkle

import (
	"math/rand"
	"sort"
)

// trick is one scoring combination: the dice it consumes and its value.
type trick struct {
	dice  []int
	value int
}

// tricks is ordered so a scan keeps the highest-valued match. A single
// 5 or 1 scores, as do triples and longer runs of a face and the full
// 1-6 straight.
var tricks = func() []trick {
	out := []trick{
		{[]int{5}, 50},
		{[]int{1}, 100},
		{[]int{1, 2, 3, 4, 5, 6}, 1000},
	}
	for face := 1; face <= 6; face++ {
		base := face * 100
		if face == 1 {
			base = 1000
		}
		for n := 3; n <= 6; n++ {
			dice := make([]int, n)
			for i := range dice {
				dice[i] = face
			}
			out = append(out, trick{dice, base * (n - 2)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].value > out[j].value })
	return out
}()

// contains reports whether the trick's dice all appear in the roll,
// with multiplicity.
func contains(need, roll []int) bool {
	counts := [7]int{}
	for _, d := range roll {
		counts[d]++
	}
	for _, d := range need {
		counts[d]--
		if counts[d] < 0 {
			return false
		}
	}
	return true
}

// Value scores a roll by its single best trick and reports how many
// dice the trick leaves unused. A roll with no trick scores zero.
func Value(roll []int) (points, left int) {
	for _, t := range tricks {
		if contains(t.dice, roll) {
			return t.value, len(roll) - len(t.dice)
		}
	}
	return 0, len(roll)
}

// Rule is a stopping rule: bank once the round reaches MinPoints, and
// stop early once fewer than MinDice remain.
type Rule struct {
	MinPoints int
	MinDice   int
}

// RoundScore is one round's banked points and the running total.
type RoundScore struct {
	Round  int
	Points int
	Total  int
}

// Play runs whole rounds under a rule. A scoreless roll forfeits the
// round's points. Using every die refreshes the hand to six.
func Play(rounds int, rule Rule, r *rand.Rand) []RoundScore {
	out := make([]RoundScore, 0, rounds)
	total := 0
	for round := 1; round <= rounds; round++ {
		pts, dice := 0, 6
		for {
			roll := make([]int, dice)
			for i := range roll {
				roll[i] = r.Intn(6) + 1
			}
			v, left := Value(roll)
			pts += v
			dice = left
			if dice == 0 {
				dice = 6
			}
			if v == 0 {
				pts = 0
				break
			}
			if pts >= rule.MinPoints || dice < rule.MinDice {
				break
			}
		}
		total += pts
		out = append(out, RoundScore{Round: round, Points: pts, Total: total})
	}
	return out
}

// RuleScore is a rule's final total after a full game.
type RuleScore struct {
	Rule  Rule
	Score int
}

// SearchRules plays one game per rule in the MinPoints x MinDice grid
// and ranks the rules by final total, best first. Each rule gets its
// own seeded stream so the ranking is reproducible.
func SearchRules(rounds int, minPoints, minDice []int, seed int64) []RuleScore {
	out := make([]RuleScore, 0, len(minPoints)*len(minDice))
	for i, mp := range minPoints {
		for j, md := range minDice {
			r := rand.New(rand.NewSource(seed + int64(i*len(minDice)+j)))
			score := Play(rounds, Rule{MinPoints: mp, MinDice: md}, r)
			out = append(out, RuleScore{Rule: Rule{MinPoints: mp, MinDice: md}, Score: score[len(score)-1].Total})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
