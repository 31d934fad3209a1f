// Package roulette simulates an American double-zero wheel and tallies
// the usual table bets.
package roulette

import (
	"math/rand"
	"strconv"
)

// Pocket is one of the 38 wheel positions. Number is 0 for both green
// pockets; Label tells "0" and "00" apart.
type Pocket struct {
	Label  string
	Number int
}

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func (p Pocket) Green() bool { return p.Label == "0" || p.Label == "00" }
func (p Pocket) Red() bool   { return redNumbers[p.Number] }
func (p Pocket) Black() bool { return !p.Green() && !p.Red() }

func (p Pocket) Even() bool { return !p.Green() && p.Number%2 == 0 }
func (p Pocket) Odd() bool  { return p.Number%2 == 1 }

func (p Pocket) FirstTwelve() bool  { return p.Number >= 1 && p.Number <= 12 }
func (p Pocket) SecondTwelve() bool { return p.Number >= 13 && p.Number <= 24 }
func (p Pocket) ThirdTwelve() bool  { return p.Number >= 25 && p.Number <= 36 }

func (p Pocket) FirstEighteen() bool  { return p.Number >= 1 && p.Number <= 18 }
func (p Pocket) SecondEighteen() bool { return p.Number >= 19 && p.Number <= 36 }

func (p Pocket) ColumnOne() bool   { return !p.Green() && p.Number%3 == 1 }
func (p Pocket) ColumnTwo() bool   { return !p.Green() && p.Number%3 == 2 }
func (p Pocket) ColumnThree() bool { return !p.Green() && p.Number%3 == 0 }

// Wheel lists all 38 pockets, 00 first then 0 through 36.
func Wheel() []Pocket {
	out := make([]Pocket, 0, 38)
	out = append(out, Pocket{Label: "00"})
	for n := 0; n <= 36; n++ {
		out = append(out, Pocket{Label: strconv.Itoa(n), Number: n})
	}
	return out
}

// Spin samples pockets with replacement.
func Spin(spins int, seed int64) []Pocket {
	r := rand.New(rand.NewSource(seed))
	wheel := Wheel()
	out := make([]Pocket, spins)
	for i := range out {
		out[i] = wheel[r.Intn(len(wheel))]
	}
	return out
}

// Bet is a named table bet with its membership test.
type Bet struct {
	Name    string
	Matches func(Pocket) bool
}

// Bets lists the tracked table bets in report order.
func Bets() []Bet {
	return []Bet{
		{"First_12", Pocket.FirstTwelve},
		{"Second_12", Pocket.SecondTwelve},
		{"Third_12", Pocket.ThirdTwelve},
		{"First_18", Pocket.FirstEighteen},
		{"Second_18", Pocket.SecondEighteen},
		{"Even", Pocket.Even},
		{"Odd", Pocket.Odd},
		{"Green", Pocket.Green},
		{"Red", Pocket.Red},
		{"Black", Pocket.Black},
		{"Column_1", Pocket.ColumnOne},
		{"Column_2", Pocket.ColumnTwo},
		{"Column_3", Pocket.ColumnThree},
	}
}

// BetCount is one bet's hit count over a series of spins.
type BetCount struct {
	Name string
	Hits int
	Rate float64
}

// Tally counts how often each bet hit over the spins.
func Tally(spins []Pocket) []BetCount {
	bets := Bets()
	out := make([]BetCount, len(bets))
	for i, b := range bets {
		hits := 0
		for _, p := range spins {
			if b.Matches(p) {
				hits++
			}
		}
		rate := 0.0
		if len(spins) > 0 {
			rate = float64(hits) / float64(len(spins))
		}
		out[i] = BetCount{Name: b.Name, Hits: hits, Rate: rate}
	}
	return out
}
