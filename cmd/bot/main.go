package main

import (
	"context"
	"fmt"
	"net/http"

	"clanwatch/internal/bot"
	"clanwatch/internal/config"
	"clanwatch/internal/constants"
	fxmodules "clanwatch/internal/fx"
	"clanwatch/internal/logger"
	"clanwatch/internal/server"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(run),
	).Run()
}

func run(
	lc fx.Lifecycle,
	telegram *bot.Telegram,
	ops *server.OpsServer,
	cfg *config.Config,
	log zerolog.Logger,
) {
	log = logger.SetLevel(log, cfg.LogLevel)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.OpsPort),
		Handler: ops.Handler(),
	}

	pollCtx, cancelPoll := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("ops server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("ops server failed")
				}
			}()
			go func() {
				log.Info().Msg("bot starting (polling)")
				telegram.Run(pollCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("shutting down")
			cancelPoll()
			telegram.Stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("ops server shutdown failed")
				return err
			}
			log.Info().Msg("stopped gracefully")
			return nil
		},
	})
}
