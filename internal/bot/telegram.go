package bot

import (
	"context"
	"strings"

	"clanwatch/internal/config"
	"clanwatch/internal/report"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Messenger delivers one finished HTML block to a chat. The core never talks
// to Telegram directly.
type Messenger interface {
	Send(chatID int64, html string) error
}

// Telegram runs the polling loop and bridges updates into the Router.
type Telegram struct {
	api    *tgbotapi.BotAPI
	router *Router
	svc    startupSource
	cfg    *config.Config
	logger zerolog.Logger
	done   chan struct{}
}

type startupSource interface {
	Startup() string
}

func NewTelegram(cfg *config.Config, router *Router, svc startupSource, logger zerolog.Logger) (*Telegram, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		api:    botAPI,
		router: router,
		svc:    svc,
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

func (t *Telegram) Send(chatID int64, html string) error {
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := t.api.Send(msg)
	return err
}

// Run blocks on the update channel until Stop is called.
func (t *Telegram) Run(ctx context.Context) {
	t.registerCommands()
	t.sendStartupMessage()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.api.GetUpdatesChan(u)

	t.logger.Info().Str("bot", t.api.Self.UserName).Msg("polling for updates")
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.done:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			go t.handleCommand(ctx, update.Message)
		}
	}
}

func (t *Telegram) Stop() {
	close(t.done)
	t.api.StopReceivingUpdates()
}

func (t *Telegram) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	args := splitArgs(msg.CommandArguments())
	blocks := t.router.Dispatch(ctx, msg.Command(), args)
	for _, block := range blocks {
		if err := t.Send(msg.Chat.ID, block); err != nil {
			t.logger.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("failed to send message")
			return
		}
	}
}

func (t *Telegram) registerCommands() {
	group := make([]tgbotapi.BotCommand, 0, len(report.GroupCommands))
	for _, c := range report.GroupCommands {
		group = append(group, tgbotapi.BotCommand{Command: c.Command, Description: c.Description})
	}
	private := make([]tgbotapi.BotCommand, 0, len(report.PrivateCommands))
	for _, c := range report.PrivateCommands {
		private = append(private, tgbotapi.BotCommand{Command: c.Command, Description: c.Description})
	}

	if _, err := t.api.Request(tgbotapi.NewSetMyCommandsWithScope(tgbotapi.NewBotCommandScopeAllGroupChats(), group...)); err != nil {
		t.logger.Warn().Err(err).Msg("could not register group commands")
	}
	if _, err := t.api.Request(tgbotapi.NewSetMyCommandsWithScope(tgbotapi.NewBotCommandScopeAllPrivateChats(), private...)); err != nil {
		t.logger.Warn().Err(err).Msg("could not register private commands")
	}
}

func (t *Telegram) sendStartupMessage() {
	if t.cfg.StartupChatID == 0 {
		return
	}
	if err := t.Send(t.cfg.StartupChatID, t.svc.Startup()); err != nil {
		t.logger.Warn().Err(err).Int64("chat_id", t.cfg.StartupChatID).Msg("could not send startup message")
	}
}

func splitArgs(s string) []string {
	return strings.Fields(s)
}
