package blackjack

import "fmt"

// Seat identifies a table position: Player_1..Player_N in dealing order,
// then the dealer.
type Seat string

const Dealer Seat = "Dealer"

func PlayerSeat(i int) Seat { return Seat(fmt.Sprintf("Player_%d", i+1)) }

// Seats returns all seats in dealing order, dealer last.
func Seats(players int) []Seat {
	out := make([]Seat, players+1)
	for i := 0; i < players; i++ {
		out[i] = PlayerSeat(i)
	}
	out[players] = Dealer
	return out
}

// Strategy assigns one stand threshold per seat in dealing order, dealer
// last. ID is the strategy's position in the enumerated grid and is stable
// for a given stand set.
type Strategy struct {
	ID     int
	Stands []int
}

// BuildStrategies enumerates the full Cartesian product of player stand
// thresholds, with the dealer's fixed threshold as the last coordinate.
// Symmetric permutations are distinct on purpose: seats are aggregated
// individually later, so they are not interchangeable.
func BuildStrategies(playerStands []int, dealerStand, players int) []Strategy {
	n := 1
	for i := 0; i < players; i++ {
		n *= len(playerStands)
	}
	out := make([]Strategy, 0, n)
	idx := make([]int, players)
	for id := 0; id < n; id++ {
		stands := make([]int, players+1)
		for j := 0; j < players; j++ {
			stands[j] = playerStands[idx[j]]
		}
		stands[players] = dealerStand
		out = append(out, Strategy{ID: id, Stands: stands})

		// odometer increment, last seat varies fastest
		for j := players - 1; j >= 0; j-- {
			idx[j]++
			if idx[j] < len(playerStands) {
				break
			}
			idx[j] = 0
		}
	}
	return out
}
