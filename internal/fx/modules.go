package fx

import (
	"clanwatch/internal/api"
	"clanwatch/internal/bot"
	"clanwatch/internal/config"
	"clanwatch/internal/logger"
	"clanwatch/internal/report"
	"clanwatch/internal/server"
	"clanwatch/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideTelegram(cfg *config.Config, router *bot.Router, svc *service.ReportService, log zerolog.Logger) (*bot.Telegram, error) {
	return bot.NewTelegram(cfg, router, svc, log)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	// api client + fresh fetcher
	fx.Provide(api.NewRoyaleClient),
	fx.Provide(api.NewFreshFetcher),
	// rendering + svc
	fx.Provide(report.NewRenderer),
	fx.Provide(service.NewReportService),
	// command surface
	fx.Provide(bot.NewRouter),
	fx.Provide(ProvideTelegram),
	// ops endpoint
	fx.Provide(server.NewOpsServer),
)
