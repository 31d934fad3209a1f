// Package draws samples cards from a shuffled shoe and summarizes what
// came out, including poker classification of 5-card draws.
package draws

import (
	"fmt"
	"strconv"

	"github.com/paulhankin/poker"

	"house-edge/sim/cards"
)

// Draw pulls the requested number of cards from a freshly shuffled
// shoe.
func Draw(decks, draws int, seed int64) []cards.Card {
	return cards.DealHand(decks, draws, seed)
}

// FaceCounts counts drawn cards by face.
func FaceCounts(drawn []cards.Card) map[cards.Face]int {
	out := map[cards.Face]int{}
	for _, c := range drawn {
		out[c.Face]++
	}
	return out
}

// SuitCounts counts drawn cards by suit.
func SuitCounts(drawn []cards.Card) map[cards.Suit]int {
	out := map[cards.Suit]int{}
	for _, c := range drawn {
		out[c.Suit]++
	}
	return out
}

func toPoker(c cards.Card) (poker.Card, error) {
	var s poker.Suit
	switch c.Suit {
	case cards.Clubs:
		s = poker.Club
	case cards.Diamonds:
		s = poker.Diamond
	case cards.Hearts:
		s = poker.Heart
	case cards.Spades:
		s = poker.Spade
	default:
		return 0, fmt.Errorf("unknown suit %q", c.Suit)
	}
	var r poker.Rank
	switch c.Face {
	case cards.Ace:
		r = poker.Rank(1)
	case cards.Jack:
		r = poker.Rank(11)
	case cards.Queen:
		r = poker.Rank(12)
	case cards.King:
		r = poker.Rank(13)
	default:
		n, err := strconv.Atoi(string(c.Face))
		if err != nil || n < 2 || n > 10 {
			return 0, fmt.Errorf("unknown face %q", c.Face)
		}
		r = poker.Rank(n)
	}
	pc, err := poker.MakeCard(s, r)
	if err != nil {
		return 0, fmt.Errorf("convert %s: %w", c, err)
	}
	return pc, nil
}

// Classification is the poker reading of a 5-card draw. Higher Score is
// a stronger hand.
type Classification struct {
	Label string
	Score int16
}

// Classify evaluates exactly five drawn cards as a poker hand.
func Classify(drawn []cards.Card) (Classification, error) {
	if len(drawn) != 5 {
		return Classification{}, fmt.Errorf("classify needs 5 cards, got %d", len(drawn))
	}
	var a5 [5]poker.Card
	pcs := make([]poker.Card, 5)
	for i, c := range drawn {
		pc, err := toPoker(c)
		if err != nil {
			return Classification{}, err
		}
		a5[i] = pc
		pcs[i] = pc
	}
	label, err := poker.Describe(pcs)
	if err != nil {
		return Classification{}, fmt.Errorf("describe: %w", err)
	}
	return Classification{Label: label, Score: poker.Eval5(&a5)}, nil
}

// ClassifyRuns draws repeated 5-card hands and counts the hand labels
// seen. Per-run seeds step from the base seed so runs stay
// reproducible.
func ClassifyRuns(decks, runs int, seed int64) (map[string]int, error) {
	out := map[string]int{}
	for i := 0; i < runs; i++ {
		drawn := Draw(decks, 5, seed+int64(i))
		cl, err := Classify(drawn)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		out[cl.Label]++
	}
	return out, nil
}
