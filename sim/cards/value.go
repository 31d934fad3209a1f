package cards

// BaseValue is the undemoted blackjack point value of a face: pip cards
// score their pips, court cards 10, and an ace 11.
func BaseValue(f Face) int {
	switch f {
	case Jack, Queen, King:
		return 10
	case Ace:
		return 11
	default:
		n := 0
		for _, ch := range f {
			n = n*10 + int(ch-'0')
		}
		return n
	}
}

// HandValue totals a hand. Aces start at 11; if the total breaks 21 and the
// hand holds any aces, every ace is demoted to 1 in one step before the
// total is recomputed. All aces drop together, not one at a time, so a pair
// of aces values 2 rather than 12.
func HandValue(hand []Card) int {
	total, aces := 0, 0
	for _, c := range hand {
		total += BaseValue(c.Face)
		if c.Face == Ace {
			aces++
		}
	}
	if total > 21 && aces > 0 {
		total -= 10 * aces
	}
	return total
}
