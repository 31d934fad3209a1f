package blackjack

import "sort"

const maxStart = 21

// Aggregator accumulates win flags across (hand, strategy) evaluations.
// Workers each own a private Aggregator and Merge them afterwards, so no
// locking is needed.
type Aggregator struct {
	players    int
	strategies []Strategy
	hands      int

	seatWins   [][]int     // [strategy][player seat] summed win flags over hands
	condWins   [][][]int   // [strategy][player seat][starting total] summed win flags
	startCount [][]int     // [player seat][starting total] hands seen, strategy-independent
}

func NewAggregator(strategies []Strategy, players int) *Aggregator {
	a := &Aggregator{
		players:    players,
		strategies: strategies,
		seatWins:   make([][]int, len(strategies)),
		condWins:   make([][][]int, len(strategies)),
		startCount: make([][]int, players),
	}
	for i := range strategies {
		a.seatWins[i] = make([]int, players)
		a.condWins[i] = make([][]int, players)
		for m := 0; m < players; m++ {
			a.condWins[i][m] = make([]int, maxStart+1)
		}
	}
	for m := 0; m < players; m++ {
		a.startCount[m] = make([]int, maxStart+1)
	}
	return a
}

// AddHand registers a dealt hand once, before its strategy evaluations.
func (a *Aggregator) AddHand(h DealtHand) {
	a.hands++
	for m := 0; m < a.players; m++ {
		if v := h.Start[m]; v <= maxStart {
			a.startCount[m][v]++
		}
	}
}

// Record adds one strategy evaluation of a hand.
func (a *Aggregator) Record(h DealtHand, s Strategy, wins []int) {
	for m, w := range wins {
		a.seatWins[s.ID][m] += w
		if v := h.Start[m]; v <= maxStart {
			a.condWins[s.ID][m][v] += w
		}
	}
}

// Merge folds another aggregator built over the same strategy grid into a.
func (a *Aggregator) Merge(b *Aggregator) {
	a.hands += b.hands
	for i := range a.seatWins {
		for m := 0; m < a.players; m++ {
			a.seatWins[i][m] += b.seatWins[i][m]
			for v := 0; v <= maxStart; v++ {
				a.condWins[i][m][v] += b.condWins[i][m][v]
			}
		}
	}
	for m := 0; m < a.players; m++ {
		for v := 0; v <= maxStart; v++ {
			a.startCount[m][v] += b.startCount[m][v]
		}
	}
}

func (a *Aggregator) Hands() int { return a.hands }

// StrategyScore is one strategy's mean win rates over every hand played.
type StrategyScore struct {
	ID        int
	Stands    []int
	SeatRates []float64 // per player seat
	AvgWon    float64   // table average across player seats
}

// StrategyScores ranks every strategy by table-average win rate, best
// first; equal rates keep grid order.
func (a *Aggregator) StrategyScores() []StrategyScore {
	out := make([]StrategyScore, len(a.strategies))
	for i, s := range a.strategies {
		sc := StrategyScore{ID: s.ID, Stands: s.Stands, SeatRates: make([]float64, a.players)}
		sum := 0
		for m := 0; m < a.players; m++ {
			sc.SeatRates[m] = rate(a.seatWins[i][m], a.hands)
			sum += a.seatWins[i][m]
		}
		sc.AvgWon = rate(sum, a.hands*a.players)
		out[i] = sc
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgWon > out[j].AvgWon })
	return out
}

// ThresholdRate is a seat's mean win rate over every hand and every
// strategy that assigned the seat one particular stand threshold.
type ThresholdRate struct {
	Seat   Seat
	Stand  int
	AvgWon float64
}

// ThresholdMarginals groups win flags by each seat's own threshold,
// marginalizing over the other seats' thresholds and over hands.
func (a *Aggregator) ThresholdMarginals() []ThresholdRate {
	var out []ThresholdRate
	for m := 0; m < a.players; m++ {
		sums := map[int]int{}
		counts := map[int]int{}
		for i, s := range a.strategies {
			sums[s.Stands[m]] += a.seatWins[i][m]
			counts[s.Stands[m]] += a.hands
		}
		stands := make([]int, 0, len(sums))
		for t := range sums {
			stands = append(stands, t)
		}
		sort.Ints(stands)
		for _, t := range stands {
			out = append(out, ThresholdRate{Seat: PlayerSeat(m), Stand: t, AvgWon: rate(sums[t], counts[t])})
		}
	}
	return out
}

// Recommendation names the strategy that maximizes one seat's win rate
// conditioned on that seat's 2-card starting total.
type Recommendation struct {
	Seat       Seat
	StartValue int
	Stand      int     // the seat's threshold under the chosen strategy
	SeatRate   float64 // the seat's conditional win rate at this start
	Strategy   StrategyScore
}

// Recommendations picks, per (player seat, starting total), the strategy
// with the highest conditional win rate for that seat. Ties break toward
// the lower stand threshold for the seat, then the lower strategy ID, so
// the pick is deterministic.
func (a *Aggregator) Recommendations() []Recommendation {
	var out []Recommendation
	for m := 0; m < a.players; m++ {
		for v := 0; v <= maxStart; v++ {
			n := a.startCount[m][v]
			if n == 0 {
				continue
			}
			best, bestRate := -1, -1.0
			for i, s := range a.strategies {
				r := rate(a.condWins[i][m][v], n)
				switch {
				case r > bestRate:
					best, bestRate = i, r
				case r == bestRate && s.Stands[m] < a.strategies[best].Stands[m]:
					best = i
				}
			}
			s := a.strategies[best]
			sc := StrategyScore{ID: s.ID, Stands: s.Stands, SeatRates: make([]float64, a.players)}
			sum := 0
			for p := 0; p < a.players; p++ {
				sc.SeatRates[p] = rate(a.seatWins[best][p], a.hands)
				sum += a.seatWins[best][p]
			}
			sc.AvgWon = rate(sum, a.hands*a.players)
			out = append(out, Recommendation{
				Seat:       PlayerSeat(m),
				StartValue: v,
				Stand:      s.Stands[m],
				SeatRate:   bestRate,
				Strategy:   sc,
			})
		}
	}
	return out
}

func rate(wins, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(wins) / float64(n)
}
