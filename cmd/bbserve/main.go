// Command bbserve runs the HTTP reference server exposing validate,
// resolve, available-actions and move-targets, plus a spectator event
// stream — wiring internal/httpapi the way the teacher's cmd/server wired
// internal/api, trading godotenv+chi+cors+websocket bring-up in the same
// shape for a stateless rules engine instead of a stateful combat loop.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"gridbowl/internal/config"
	"gridbowl/internal/httpapi"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	cfg := config.Load()
	log.Info().Str("addr", cfg.Server.Addr).Msg("starting gridbowl reference server")

	hub := httpapi.NewHub(log)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Hub:    hub,
		Logger: log,
		RateLimitConfig: &httpapi.RateLimitConfig{
			RequestsPerSecond: cfg.Server.RequestsPerSec,
			Burst:             cfg.Server.Burst,
			CleanupInterval:   5 * time.Minute,
		},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
