package blackjack

import "fmt"

// Config carries every parameter of a strategy-search run. There is no
// global state: the master seed threads through explicitly so identical
// configs replay identical card sequences.
type Config struct {
	Players      int   // player seats, dealer excluded
	Decks        int   // decks shuffled together per hand
	Hands        int   // dealt hands to replay against every strategy
	DrawsPerSeat int   // cards drawn per seat incl. the dealer
	PlayerStands []int // candidate stand thresholds per player seat
	DealerStand  int   // fixed dealer stand threshold
	MasterSeed   int64
	Workers      int // parallel hand evaluators; <=0 means NumCPU
}

func DefaultConfig() Config {
	return Config{
		Players:      5,
		Decks:        7,
		Hands:        1000,
		DrawsPerSeat: 7,
		PlayerStands: []int{12, 13, 14, 15, 16},
		DealerStand:  17,
		MasterSeed:   42,
	}
}

func (c Config) Validate() error {
	if c.Players <= 0 {
		return fmt.Errorf("invalid configuration: players must be positive, got %d", c.Players)
	}
	if c.Decks <= 0 {
		return fmt.Errorf("invalid configuration: decks must be positive, got %d", c.Decks)
	}
	if c.Hands <= 0 {
		return fmt.Errorf("invalid configuration: hands must be positive, got %d", c.Hands)
	}
	if c.DrawsPerSeat < 2 {
		return fmt.Errorf("invalid configuration: need at least 2 draws per seat, got %d", c.DrawsPerSeat)
	}
	if len(c.PlayerStands) == 0 {
		return fmt.Errorf("invalid configuration: player stand set is empty")
	}
	for _, s := range c.PlayerStands {
		if s <= 0 {
			return fmt.Errorf("invalid configuration: stand threshold %d", s)
		}
	}
	if c.DealerStand <= 0 {
		return fmt.Errorf("invalid configuration: dealer stand threshold %d", c.DealerStand)
	}
	return nil
}

// TotalDraws is the card count drawn per hand: every seat including the
// dealer gets DrawsPerSeat cards' worth of deal plus hit reserve.
func (c Config) TotalDraws() int { return (c.Players + 1) * c.DrawsPerSeat }
