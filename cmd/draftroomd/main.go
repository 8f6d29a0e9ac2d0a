package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/draftroom/internal/catalog"
	"github.com/mcdev12/draftroom/internal/clock"
	"github.com/mcdev12/draftroom/internal/config"
	"github.com/mcdev12/draftroom/internal/engine"
	"github.com/mcdev12/draftroom/internal/gateway"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/outbox"
	"github.com/mcdev12/draftroom/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := config.FromEnv()
	session, err := config.LoadSessionConfig(cfg.SessionFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load session config")
	}

	catalogFile, err := os.Open(session.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalog file")
	}
	items, report, err := catalog.ParseCSV(catalogFile)
	catalogFile.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse catalog")
	}
	log.Info().
		Int("accepted", report.Accepted).
		Int("dropped", report.Dropped).
		Int("unranked", report.Unranked).
		Msg("catalog loaded")

	eng, err := engine.New(engine.Config{
		Rounds: session.Rounds,
		Durations: clock.DurationPolicy{
			EarlySeconds: session.Clock.EarlySeconds,
			LateSeconds:  session.Clock.LateSeconds,
		},
		WarningSec: session.Clock.WarningSeconds,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build engine")
	}

	participants := make([]models.Participant, len(session.Participants))
	for i, label := range session.Participants {
		participants[i] = models.Participant{Slot: i, Label: label}
	}

	svcCfg := gateway.ServiceConfig{
		Connection:   gateway.DefaultConnectionConfig(),
		Catalog:      items,
		Participants: participants,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.NATSEnabled {
		jsCfg := outbox.DefaultJetStreamConfig()
		jsCfg.URL = cfg.NATSURL
		publisher, err := outbox.NewJetStreamPublisher(jsCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect JetStream publisher")
		}
		defer publisher.Close()
		svcCfg.Publisher = publisher
	}

	if cfg.PostgresEnabled {
		pg, err := store.Open(ctx, cfg.PostgresDSN, cfg.SnapshotKeep)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open snapshot store")
		}
		defer pg.Close()
		svcCfg.Store = pg

		// Resume an interrupted session if one was persisted.
		if snapshot, err := pg.LoadLatest(ctx); err == nil {
			if err := eng.RestoreSnapshot(snapshot); err != nil {
				log.Warn().Err(err).Msg("stored snapshot rejected, starting fresh")
			} else {
				log.Info().Int("pointer", snapshot.Pointer).Msg("session restored from snapshot")
			}
		} else if !errors.Is(err, store.ErrNoSnapshot) {
			log.Warn().Err(err).Msg("failed to load stored snapshot")
		}
	}

	svc := gateway.NewService(eng, svcCfg)

	go svc.ConnectionManager().Start(ctx)
	go gateway.NewTicker(clockwork.NewRealClock(), svc.Tick).Run(ctx)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: svc.Routes(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("draftroom server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}
