package store

import (
	"context"
	"embed"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"house-edge/sim/blackjack"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

/* -----------------------------
   Minimal write helpers
------------------------------*/

// Create a run row and return its id.
func (db *DB) CreateRun(ctx context.Context, id uuid.UUID, game string, masterSeed int64, params any) error {
	_, err := db.Exec(ctx, `
        INSERT INTO runs(id, game, master_seed, params)
        VALUES ($1,$2,$3,$4)
    `, id, game, masterSeed, params)
	return err
}

func (db *DB) CompleteRun(ctx context.Context, id uuid.UUID) error {
	_, err := db.Exec(ctx, `UPDATE runs SET ended_at = now() WHERE id = $1`, id)
	return err
}

// Insert the ranked strategy scores for a run in one batch.
func (db *DB) InsertStrategyScores(ctx context.Context, runID uuid.UUID, scores []blackjack.StrategyScore) error {
	batch := &pgx.Batch{}
	for rank, sc := range scores {
		batch.Queue(`
            INSERT INTO strategy_scores(run_id, rank, strategy_id, stands, seat_rates, avg_won)
            VALUES ($1,$2,$3,$4,$5,$6)
        `, runID, rank+1, sc.ID, sc.Stands, sc.SeatRates, sc.AvgWon)
	}
	return db.SendBatch(ctx, batch).Close()
}

// Insert the per-seat starting-value recommendations for a run.
func (db *DB) InsertRecommendations(ctx context.Context, runID uuid.UUID, recs []blackjack.Recommendation) error {
	batch := &pgx.Batch{}
	for _, rec := range recs {
		batch.Queue(`
            INSERT INTO recommendations(run_id, seat, start_value, stand, seat_rate, strategy_id, avg_won)
            VALUES ($1,$2,$3,$4,$5,$6,$7)
        `, runID, string(rec.Seat), rec.StartValue, rec.Stand, rec.SeatRate, rec.Strategy.ID, rec.Strategy.AvgWon)
	}
	return db.SendBatch(ctx, batch).Close()
}

type Run struct {
	ID         uuid.UUID       `json:"id"`
	Game       string          `json:"game"`
	MasterSeed int64           `json:"master_seed"`
	Params     json.RawMessage `json:"params"`
	StartedAt  time.Time       `json:"started_at"`
	EndedAt    *time.Time      `json:"ended_at"`
}

func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.Query(ctx, `
        SELECT id, game, master_seed, params, started_at, ended_at
          FROM runs
         ORDER BY started_at DESC
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Game, &r.MasterSeed, &r.Params, &r.StartedAt, &r.EndedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (db *DB) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	var r Run
	err := db.QueryRow(ctx, `
        SELECT id, game, master_seed, params, started_at, ended_at
          FROM runs WHERE id = $1
    `, id).Scan(&r.ID, &r.Game, &r.MasterSeed, &r.Params, &r.StartedAt, &r.EndedAt)
	return r, err
}

func (db *DB) LastRun(ctx context.Context) (Run, error) {
	var r Run
	err := db.QueryRow(ctx, `
        SELECT id, game, master_seed, params, started_at, ended_at
          FROM runs
         ORDER BY started_at DESC
         LIMIT 1
    `).Scan(&r.ID, &r.Game, &r.MasterSeed, &r.Params, &r.StartedAt, &r.EndedAt)
	return r, err
}

type ScoreRow struct {
	Rank       int       `json:"rank"`
	StrategyID int       `json:"strategy_id"`
	Stands     []int     `json:"stands"`
	SeatRates  []float64 `json:"seat_rates"`
	AvgWon     float64   `json:"avg_won"`
}

// TopScores returns a run's best strategies in rank order.
func (db *DB) TopScores(ctx context.Context, runID uuid.UUID, limit int) ([]ScoreRow, error) {
	rows, err := db.Query(ctx, `
        SELECT rank, strategy_id, stands, seat_rates, avg_won
          FROM strategy_scores
         WHERE run_id = $1
         ORDER BY rank
         LIMIT $2
    `, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ScoreRow
	for rows.Next() {
		var s ScoreRow
		if err := rows.Scan(&s.Rank, &s.StrategyID, &s.Stands, &s.SeatRates, &s.AvgWon); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type RecommendationRow struct {
	Seat       string  `json:"seat"`
	StartValue int     `json:"start_value"`
	Stand      int     `json:"stand"`
	SeatRate   float64 `json:"seat_rate"`
	StrategyID int     `json:"strategy_id"`
	AvgWon     float64 `json:"avg_won"`
}

func (db *DB) Recommendations(ctx context.Context, runID uuid.UUID) ([]RecommendationRow, error) {
	rows, err := db.Query(ctx, `
        SELECT seat, start_value, stand, seat_rate, strategy_id, avg_won
          FROM recommendations
         WHERE run_id = $1
         ORDER BY seat, start_value
    `, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RecommendationRow
	for rows.Next() {
		var r RecommendationRow
		if err := rows.Scan(&r.Seat, &r.StartValue, &r.Stand, &r.SeatRate, &r.StrategyID, &r.AvgWon); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
