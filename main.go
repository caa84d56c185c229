package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"boltgen/internal/calc/presets"
	"boltgen/internal/config"
	"boltgen/internal/logger"
	"boltgen/internal/server"
	"boltgen/internal/version"
)

var wg sync.WaitGroup

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := logger.Init(cfg.Log); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	catalog, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.PresetsFile).Msg("Failed to load presets")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(ctx, cfg, catalog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().
		Str("addr", cfg.Addr).
		Bool("tls", cfg.TLS()).
		Int("segments", cfg.Segments).
		Int("presets", len(catalog.Presets)).
		Str("version", version.Version).
		Msg("Starting server")

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server error")
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to stop server")
	}
	logger.Info().Msg("Server stopped")

	wg.Wait()
}
