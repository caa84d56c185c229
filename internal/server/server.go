// Package server wires the bolt handlers onto a router.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"boltgen/internal/calc/batch"
	"boltgen/internal/calc/bolt"
	"boltgen/internal/calc/importer"
	"boltgen/internal/calc/inp"
	"boltgen/internal/calc/presets"
	"boltgen/internal/calc/preview"
	"boltgen/internal/calc/report"
	"boltgen/internal/calc/solid"
	"boltgen/internal/config"
	"boltgen/internal/middleware"
	"boltgen/internal/web"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

const (
	limiterSweep   = time.Minute
	limiterMaxIdle = 10 * time.Minute
)

// HandleList registers every route on router. The rate limiter forgets
// idle clients until ctx is done.
func HandleList(ctx context.Context, router *mux.Router, cfg *config.Config, catalog *presets.Catalog) {
	opts := bolt.Options{Segments: cfg.Segments}

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	go limiter.Sweep(ctx, limiterSweep, limiterMaxIdle)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	boltH := &bolt.Handler{Options: opts}
	inpH := &inp.Handler{Options: opts}
	previewH := &preview.Handler{Options: opts}
	solidH := &solid.Handler{Cells: cfg.SolidCells}
	reportH := &report.Handler{Options: opts}
	batchH := &batch.Handler{Options: opts}
	importerH := &importer.Handler{Options: opts}
	presetsH := &presets.Handler{Catalog: catalog}

	api.HandleFunc("/bolt/presets", presetsH.List).Methods("GET")
	api.HandleFunc("/bolt/mesh", boltH.Calc).Methods("POST")
	api.HandleFunc("/bolt/model", previewH.Scene).Methods("POST")
	api.HandleFunc("/bolt/inp", inpH.Download).Methods("POST")
	api.HandleFunc("/bolt/preview.png", previewH.Image).Methods("POST")
	api.HandleFunc("/bolt/solid", solidH.Calc).Methods("POST")
	api.HandleFunc("/bolt/report", reportH.Generate).Methods("POST")
	api.HandleFunc("/bolt/xlsx", importerH.Export).Methods("POST")
	api.HandleFunc("/bolt/batch", batchH.Calc).Methods("POST")
	api.HandleFunc("/bolt/import", importerH.Import).Methods("POST")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	webH := &web.Handler{Catalog: catalog}
	router.HandleFunc("/", webH.Index).Methods("GET")
}

// New returns the full handler chain: access log, CORS, then the router.
func New(ctx context.Context, cfg *config.Config, catalog *presets.Catalog) http.Handler {
	router := mux.NewRouter()
	HandleList(ctx, router, cfg, catalog)
	return middleware.RequestLog(middleware.CORS(router))
}
