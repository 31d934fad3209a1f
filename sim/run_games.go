package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"house-edge/sim/cards"
	"house-edge/sim/dice"
	"house-edge/sim/draws"
	"house-edge/sim/farkle"
	"house-edge/sim/roulette"
)

func runDice() {
	rolls := atoiDef(os.Getenv("ROLLS"), 300000)
	count := atoiDef(os.Getenv("DICE"), 2)
	sides := atoiDef(os.Getenv("SIDES"), 6)
	seed := i64Def(os.Getenv("SEED"), 21)

	log.WithFields(logrus.Fields{"rolls": rolls, "dice": count, "sides": sides, "seed": seed}).
		Info("rolling dice")

	rolled := dice.Roll(rolls, count, sides, seed)
	for _, line := range dice.FormatHistogram(dice.TotalHistogram(rolled)) {
		log.WithField("total", line).Info("total frequency")
	}
	for _, line := range dice.FormatHistogram(dice.ComboHistogram(rolled)) {
		log.WithField("combo", line).Info("combo frequency")
	}
}

func runRoulette() {
	spins := atoiDef(os.Getenv("SPINS"), 100000)
	seed := i64Def(os.Getenv("SEED"), 14)

	log.WithFields(logrus.Fields{"spins": spins, "seed": seed}).Info("spinning roulette")

	for _, bc := range roulette.Tally(roulette.Spin(spins, seed)) {
		log.WithFields(logrus.Fields{
			"bet":  bc.Name,
			"hits": bc.Hits,
			"rate": fmt.Sprintf("%.4f", bc.Rate),
		}).Info("bet frequency")
	}
}

type freqRow struct {
	Label string
	Count int
}

// faceFrequencies tabulates a drawn batch by face in deck order,
// skipping faces that never came out.
func faceFrequencies(drawn []cards.Card) []freqRow {
	counts := draws.FaceCounts(drawn)
	out := make([]freqRow, 0, len(counts))
	for _, f := range cards.Faces() {
		if n := counts[f]; n > 0 {
			out = append(out, freqRow{Label: string(f), Count: n})
		}
	}
	return out
}

func suitFrequencies(drawn []cards.Card) []freqRow {
	counts := draws.SuitCounts(drawn)
	out := make([]freqRow, 0, len(counts))
	for _, s := range cards.Suits() {
		if n := counts[s]; n > 0 {
			out = append(out, freqRow{Label: string(s), Count: n})
		}
	}
	return out
}

func runDraws() error {
	decks := atoiDef(os.Getenv("DECKS"), 1)
	drawCount := atoiDef(os.Getenv("DRAWS"), 18)
	runs := atoiDef(os.Getenv("RUNS"), 10000)
	seed := i64Def(os.Getenv("SEED"), 7)

	log.WithFields(logrus.Fields{"decks": decks, "draws": drawCount, "runs": runs, "seed": seed}).
		Info("drawing cards")

	drawn := draws.Draw(decks, drawCount, seed)
	for _, row := range faceFrequencies(drawn) {
		log.WithFields(logrus.Fields{"face": row.Label, "count": row.Count}).Info("face frequency")
	}
	for _, row := range suitFrequencies(drawn) {
		log.WithFields(logrus.Fields{"suit": row.Label, "count": row.Count}).Info("suit frequency")
	}

	hist, err := draws.ClassifyRuns(decks, runs, seed)
	if err != nil {
		return err
	}
	labels := make([]string, 0, len(hist))
	for label := range hist {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return hist[labels[i]] > hist[labels[j]] })
	for _, label := range labels {
		log.WithFields(logrus.Fields{
			"hand":  label,
			"count": hist[label],
			"rate":  fmt.Sprintf("%.4f", float64(hist[label])/float64(runs)),
		}).Info("hand frequency")
	}
	return nil
}

func runFarkle() {
	rounds := atoiDef(os.Getenv("ROUNDS"), 500)
	seed := i64Def(os.Getenv("SEED"), 42)
	minPoints := intsDef(os.Getenv("MIN_POINTS"), []int{100, 200, 300, 400, 500, 600})
	minDice := intsDef(os.Getenv("MIN_DICE"), []int{1, 2, 3})

	log.WithFields(logrus.Fields{"rounds": rounds, "seed": seed}).Info("searching stopping rules")

	for rank, rs := range farkle.SearchRules(rounds, minPoints, minDice, seed) {
		log.WithFields(logrus.Fields{
			"rank":       rank + 1,
			"min_points": rs.Rule.MinPoints,
			"min_dice":   rs.Rule.MinDice,
			"score":      rs.Score,
		}).Info("rule")
	}
}
