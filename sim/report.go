package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"house-edge/sim/store"
)

func Router(db *store.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Health
	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	// Recent runs
	r.Get("/api/runs", func(w http.ResponseWriter, req *http.Request) {
		runs, err := db.ListRuns(req.Context(), 200)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"rows": runs})
	})

	// Latest run bundle: run row + top strategies + recommendations
	r.Get("/api/last-run", func(w http.ResponseWriter, req *http.Request) {
		run, err := db.LastRun(req.Context())
		if err != nil {
			http.Error(w, "no runs yet", http.StatusNotFound)
			return
		}
		writeRunBundle(w, req, db, run)
	})

	// Same bundle for a specific run id
	r.Get("/api/run/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := uuid.Parse(chi.URLParam(req, "id"))
		if err != nil {
			http.Error(w, "bad run id", 400)
			return
		}
		run, err := db.GetRun(req.Context(), id)
		if err != nil {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		writeRunBundle(w, req, db, run)
	})

	return r
}

func writeRunBundle(w http.ResponseWriter, req *http.Request, db *store.DB, run store.Run) {
	ctx := req.Context()

	scores, err := db.TopScores(ctx, run.ID, 25)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	recs, err := db.Recommendations(ctx, run.ID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	writeJSON(w, map[string]any{
		"run":             run,
		"top_strategies":  scores,
		"recommendations": recs,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
