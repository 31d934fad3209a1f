package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"house-edge/sim/blackjack"
	"house-edge/sim/cards"
	"house-edge/sim/store"
)

func blackjackConfigFromEnv() blackjack.Config {
	cfg := blackjack.DefaultConfig()
	cfg.Players = atoiDef(os.Getenv("PLAYERS"), cfg.Players)
	cfg.Decks = atoiDef(os.Getenv("DECKS"), cfg.Decks)
	cfg.Hands = atoiDef(os.Getenv("HANDS"), cfg.Hands)
	cfg.DrawsPerSeat = atoiDef(os.Getenv("DRAWS_PER_SEAT"), cfg.DrawsPerSeat)
	cfg.PlayerStands = intsDef(os.Getenv("PLAYER_STANDS"), cfg.PlayerStands)
	cfg.DealerStand = atoiDef(os.Getenv("DEALER_STAND"), cfg.DealerStand)
	cfg.MasterSeed = masterSeedFromEnv()
	cfg.Workers = atoiDef(os.Getenv("WORKERS"), cfg.Workers)
	return cfg
}

// handSeeds derives one seed per hand from the master seed, sampled
// without replacement from 1..hands*100 so no two hands share a deck
// order.
func handSeeds(masterSeed int64, hands int) []int64 {
	r := rand.New(rand.NewSource(masterSeed))
	perm := r.Perm(hands * 100)[:hands]
	out := make([]int64, hands)
	for i, p := range perm {
		out[i] = int64(p + 1)
	}
	return out
}

func runBlackjack(ctx context.Context, db *store.DB) error {
	cfg := blackjackConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	strategies := blackjack.BuildStrategies(cfg.PlayerStands, cfg.DealerStand, cfg.Players)
	seeds := handSeeds(cfg.MasterSeed, cfg.Hands)

	if shoe := 52 * cfg.Decks; cfg.TotalDraws() > shoe {
		log.WithFields(logrus.Fields{"draws": cfg.TotalDraws(), "shoe": shoe}).
			Warn("draw request exceeds shoe, hands will be truncated")
	}

	log.WithFields(logrus.Fields{
		"players":    cfg.Players,
		"decks":      cfg.Decks,
		"hands":      cfg.Hands,
		"strategies": len(strategies),
		"seed":       cfg.MasterSeed,
		"workers":    cfg.Workers,
	}).Info("starting blackjack run")

	agg, err := evaluateHands(ctx, cfg, strategies, seeds)
	if err != nil {
		return err
	}

	scores := agg.StrategyScores()
	tableTrials := agg.Hands() * cfg.Players
	top := scores
	if len(top) > 10 {
		top = top[:10]
	}
	for rank, sc := range top {
		low, hi := WilsonCI95(int(sc.AvgWon*float64(tableTrials)+0.5), tableTrials)
		log.WithFields(logrus.Fields{
			"rank":     rank + 1,
			"strategy": sc.ID,
			"stands":   sc.Stands,
			"avg_won":  fmt.Sprintf("%.4f", sc.AvgWon),
			"ci95":     fmt.Sprintf("[%.4f, %.4f]", low, hi),
		}).Info("strategy")
	}
	if len(scores) > 0 {
		best := strategies[scores[0].ID]
		fracs := handWinFractions(cfg, best, seeds)
		bLow, bHi := BootstrapCI95(fracs, 2000)
		log.WithFields(logrus.Fields{
			"strategy":  best.ID,
			"mean":      fmt.Sprintf("%.4f", Mean(fracs)),
			"boot_ci95": fmt.Sprintf("[%.4f, %.4f]", bLow, bHi),
		}).Info("best strategy per-hand bootstrap")
	}
	for _, m := range agg.ThresholdMarginals() {
		log.WithFields(logrus.Fields{
			"seat": m.Seat, "stand": m.Stand,
			"avg_won": fmt.Sprintf("%.4f", m.AvgWon),
		}).Debug("threshold marginal")
	}

	recs := agg.Recommendations()
	runID := uuid.New()

	outDir := getenv("OUT_DIR", ".")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(outDir, "blackjack_"+runID.String()+".csv")
	if err := writeBlackjackCSV(outPath, cfg, recs); err != nil {
		return err
	}
	log.WithField("path", outPath).Info("wrote recommendation table")

	if db != nil {
		if err := persistBlackjackRun(ctx, db, runID, cfg, scores, recs); err != nil {
			log.WithError(err).Warn("DB persist failed")
		} else {
			log.WithField("run_id", runID).Info("persisted run")
		}
	}
	return nil
}

// handWinFractions replays one strategy over every hand and returns the
// per-hand table win fraction, the resampling unit for bootstrap
// intervals. Its mean equals the strategy's table-average win rate.
func handWinFractions(cfg blackjack.Config, s blackjack.Strategy, seeds []int64) []float64 {
	out := make([]float64, 0, len(seeds))
	for id, seed := range seeds {
		drawn := cards.DealHand(cfg.Decks, cfg.TotalDraws(), seed)
		h, err := blackjack.ParseHand(id, drawn, cfg.Players)
		if err != nil {
			continue
		}
		sum := 0
		for _, w := range blackjack.Score(h.Simulate(s)) {
			sum += w
		}
		out = append(out, float64(sum)/float64(cfg.Players))
	}
	return out
}

// evaluateHands fans the hands out over a worker pool. Each worker owns
// a private aggregator; they are merged once the pool drains.
func evaluateHands(ctx context.Context, cfg blackjack.Config, strategies []blackjack.Strategy, seeds []int64) (*blackjack.Aggregator, error) {
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > cfg.Hands {
		workers = cfg.Hands
	}

	jobs := make(chan int)
	parts := make([]*blackjack.Aggregator, workers)
	errs := make([]error, workers)
	var done atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			part := blackjack.NewAggregator(strategies, cfg.Players)
			parts[w] = part
			for id := range jobs {
				if errs[w] != nil {
					continue // drain so the feeder never blocks
				}
				drawn := cards.DealHand(cfg.Decks, cfg.TotalDraws(), seeds[id])
				h, err := blackjack.ParseHand(id, drawn, cfg.Players)
				if err != nil {
					errs[w] = err
					continue
				}
				part.AddHand(h)
				for _, s := range strategies {
					part.Record(h, s, blackjack.Score(h.Simulate(s)))
				}
				if n := done.Add(1); n%100 == 0 || int(n) == cfg.Hands {
					log.Infof("%d strategies on hand %d of %d evaluated", len(strategies), n, cfg.Hands)
				}
			}
		}(w)
	}

	feed := func() error {
		defer close(jobs)
		for id := 0; id < cfg.Hands; id++ {
			select {
			case jobs <- id:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}
	feedErr := feed()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if feedErr != nil {
		return nil, feedErr
	}

	agg := parts[0]
	for _, part := range parts[1:] {
		agg.Merge(part)
	}
	return agg, nil
}

// One row per (player seat, 2-card starting value): the stand grid that
// maximizes that seat's conditional win rate, with the full table's win
// rates under it.
func writeBlackjackCSV(path string, cfg blackjack.Config, recs []blackjack.Recommendation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Player", "Player_hand"}
	for i := 0; i < cfg.Players; i++ {
		header = append(header, "Won_"+string(blackjack.PlayerSeat(i)))
	}
	header = append(header, "Avg_won")
	for i := 0; i < cfg.Players; i++ {
		header = append(header, "Stand_"+string(blackjack.PlayerSeat(i)))
	}
	header = append(header, "Stand_"+string(blackjack.Dealer))
	if err := w.Write(header); err != nil {
		return err
	}

	for _, rec := range recs {
		row := []string{string(rec.Seat), strconv.Itoa(rec.StartValue)}
		for _, r := range rec.Strategy.SeatRates {
			row = append(row, strconv.FormatFloat(r, 'f', 4, 64))
		}
		row = append(row, strconv.FormatFloat(rec.Strategy.AvgWon, 'f', 4, 64))
		for _, st := range rec.Strategy.Stands {
			row = append(row, strconv.Itoa(st))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func persistBlackjackRun(ctx context.Context, db *store.DB, runID uuid.UUID, cfg blackjack.Config, scores []blackjack.StrategyScore, recs []blackjack.Recommendation) error {
	params := map[string]any{
		"players":        cfg.Players,
		"decks":          cfg.Decks,
		"hands":          cfg.Hands,
		"draws_per_seat": cfg.DrawsPerSeat,
		"player_stands":  cfg.PlayerStands,
		"dealer_stand":   cfg.DealerStand,
		"workers":        cfg.Workers,
	}
	if err := db.CreateRun(ctx, runID, "blackjack", cfg.MasterSeed, params); err != nil {
		return err
	}
	if err := db.InsertStrategyScores(ctx, runID, scores); err != nil {
		return err
	}
	if err := db.InsertRecommendations(ctx, runID, recs); err != nil {
		return err
	}
	return db.CompleteRun(ctx, runID)
}
