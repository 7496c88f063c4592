package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"poketrade/internal/platform/config"
	"poketrade/internal/platform/kv"
	"poketrade/internal/platform/logger"
	phttp "poketrade/internal/platform/net/http"

	"poketrade/internal/services/api"
)

func main() {
	// .env is a convenience for local runs, absent in real deployments
	_ = godotenv.Load()

	root := config.New()
	cfg := root.Prefix("POKETRADE_")

	l := logger.Get()

	// file-backed kv for the mock collection, meta sidecar, and source flag
	store, err := kv.OpenFile(cfg.MayString("DATA_DIR", "./data"))
	if err != nil {
		l.Panic().Err(err).Msg("kv.OpenFile failed")
	}
	defer func() {
		if err := store.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close kv store")
		}
	}()

	// http server (reads POKETRADE_API_PORT)
	srv := phttp.NewServer(cfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config: cfg,
			KV:     store,
		},
	)

	// shut down cleanly on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("shutdown failed")
		}
		<-done
	case err := <-done:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	}
}
