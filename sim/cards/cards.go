package cards

import (
	"fmt"
	"math/rand"
)

type Suit string

const (
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
	Spades   Suit = "Spades"
	Clubs    Suit = "Clubs"
)

type Face string

const (
	Jack  Face = "Jack"
	Queen Face = "Queen"
	King  Face = "King"
	Ace   Face = "Ace"
)

type Card struct {
	Face Face
	Suit Suit
}

func (c Card) String() string { return fmt.Sprintf("%s_%s", c.Face, c.Suit) }

// Suits in dealing order. Order only matters for deterministic deck builds.
func Suits() []Suit { return []Suit{Hearts, Diamonds, Spades, Clubs} }

func Faces() []Face {
	out := make([]Face, 0, 13)
	for v := 2; v <= 10; v++ {
		out = append(out, Face(fmt.Sprintf("%d", v)))
	}
	return append(out, Jack, Queen, King, Ace)
}

// Deck builds count concatenated standard 52-card decks, unshuffled.
func Deck(count int) []Card {
	deck := make([]Card, 0, 52*count)
	for i := 0; i < count; i++ {
		for _, f := range Faces() {
			for _, s := range Suits() {
				deck = append(deck, Card{Face: f, Suit: s})
			}
		}
	}
	return deck
}

// DealHand builds decks copies of a standard deck, shuffles them with the
// given seed, and draws min(draws, deck size) cards without replacement.
// The returned order is the draw order; callers assign cards to seats by
// position. Identical seeds produce identical sequences.
func DealHand(decks, draws int, seed int64) []Card {
	r := rand.New(rand.NewSource(seed))
	deck := Deck(decks)
	for i := len(deck) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	if draws > len(deck) {
		draws = len(deck)
	}
	out := make([]Card, draws)
	for i, idx := range r.Perm(len(deck))[:draws] {
		out[i] = deck[idx]
	}
	return out
}
