package blackjack

import (
	"fmt"

	"house-edge/sim/cards"
)

// DealtHand is one hand's card sequence parsed into per-seat initial deals
// and the undealt reserve. It is parsed once per hand and shared read-only
// across every strategy evaluation; Simulate never mutates it.
type DealtHand struct {
	ID      int
	Initial [][]cards.Card // two cards per seat, dealing order, dealer last
	Reserve []cards.Card   // remaining draw sequence, consumed front to back
	Start   []int          // cached 2-card starting totals per seat
}

// ParseHand splits a draw sequence into seats the way a live table deals:
// round-robin, one card to each seat, then a second card to each seat. The
// rest of the sequence becomes the hit reserve.
func ParseHand(id int, drawn []cards.Card, players int) (DealtHand, error) {
	seats := players + 1
	if len(drawn) < 2*seats {
		return DealtHand{}, fmt.Errorf("insufficient cards: hand %d drew %d, need %d for the initial deal", id, len(drawn), 2*seats)
	}
	h := DealtHand{
		ID:      id,
		Initial: make([][]cards.Card, seats),
		Reserve: drawn[2*seats:],
		Start:   make([]int, seats),
	}
	for j := 0; j < seats; j++ {
		h.Initial[j] = []cards.Card{drawn[j], drawn[seats+j]}
		h.Start[j] = cards.HandValue(h.Initial[j])
	}
	return h, nil
}

// Simulate replays the hand under one strategy and returns each seat's
// final total, dealer last. Seats act strictly in dealing order: a seat
// draws from the front of the shared reserve until its total reaches its
// stand threshold, it busts past it, or the reserve runs dry. Each call
// works on its own copies, so simulations of the same hand are independent.
func (h DealtHand) Simulate(s Strategy) []int {
	totals := make([]int, len(h.Initial))
	next := 0
	for j := range h.Initial {
		hand := make([]cards.Card, len(h.Initial[j]), len(h.Initial[j])+4)
		copy(hand, h.Initial[j])
		total := h.Start[j]
		for total < s.Stands[j] && next < len(h.Reserve) {
			hand = append(hand, h.Reserve[next])
			next++
			total = cards.HandValue(hand)
		}
		totals[j] = total
	}
	return totals
}

// Score converts final totals into per-player win flags, dealer excluded.
// A player wins when the dealer busts while the player does not, or when
// the player outscores the dealer without busting. Ties are losses; there
// is no push.
func Score(totals []int) []int {
	dealer := totals[len(totals)-1]
	wins := make([]int, len(totals)-1)
	for m, p := range totals[:len(totals)-1] {
		if p <= 21 && (dealer > 21 || p > dealer) {
			wins[m] = 1
		}
	}
	return wins
}
