// Package bot maps chat commands to report flows and owns the boundary that
// keeps internal errors out of the chat: causes are logged with an
// invocation ID, users only ever see a short German failure line.
package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"clanwatch/internal/api"
	"clanwatch/internal/clanwar"
	"clanwatch/internal/constants"
	"clanwatch/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HandlerFunc produces the text blocks of one command. An empty result means
// everything was already delivered through a side channel.
type HandlerFunc func(ctx context.Context, args []string) ([]string, error)

type Router struct {
	handlers map[string]HandlerFunc
	logger   zerolog.Logger
}

func NewRouter(svc *service.ReportService, logger zerolog.Logger) *Router {
	r := &Router{handlers: make(map[string]HandlerFunc), logger: logger}

	single := func(fn func(ctx context.Context, args []string) (string, error)) HandlerFunc {
		return func(ctx context.Context, args []string) ([]string, error) {
			text, err := fn(ctx, args)
			if err != nil {
				return nil, err
			}
			return []string{text}, nil
		}
	}
	static := func(text string) HandlerFunc {
		return func(context.Context, []string) ([]string, error) {
			return []string{text}, nil
		}
	}

	r.handlers["status"] = static("✅ Bot läuft und hört zu!")
	r.handlers["start"] = static("✅ Bot läuft und hört zu!")
	r.handlers["version"] = static(svc.Version())
	help := static(svc.Help())
	r.handlers["hilfe"] = help
	r.handlers["help"] = help
	r.handlers["commands"] = help

	r.handlers["claninfo"] = single(func(ctx context.Context, _ []string) (string, error) {
		return svc.ClanInfo(ctx)
	})

	activity := single(func(ctx context.Context, _ []string) (string, error) {
		return svc.Activity(ctx)
	})
	r.handlers["aktivitaet"] = activity
	r.handlers["online"] = activity

	r.handlers["offeneangriffe"] = single(func(ctx context.Context, args []string) (string, error) {
		return svc.OpenAttacks(ctx, wantsEscalation(args))
	})

	r.handlers["krieginfo"] = single(func(ctx context.Context, args []string) (string, error) {
		mode := "auto"
		if len(args) > 0 {
			switch strings.ToLower(args[0]) {
			case "heute", "gesamt":
				mode = strings.ToLower(args[0])
			}
		}
		return svc.Scoreboard(ctx, mode)
	})
	r.handlers["krieginfoheute"] = single(func(ctx context.Context, _ []string) (string, error) {
		return svc.Scoreboard(ctx, "heute")
	})
	r.handlers["krieginfogesamt"] = single(func(ctx context.Context, _ []string) (string, error) {
		return svc.Scoreboard(ctx, "gesamt")
	})

	r.handlers["spenden"] = single(func(ctx context.Context, args []string) (string, error) {
		return svc.Donations(ctx, donationsLimit(args))
	})

	r.handlers["krieghistorie"] = func(ctx context.Context, args []string) ([]string, error) {
		return svc.WarHistory(ctx, strings.TrimSpace(strings.Join(args, " ")))
	}

	r.handlers["inaktiv"] = single(func(ctx context.Context, args []string) (string, error) {
		criterion := clanwar.ParseCriterion(strings.ToLower(strings.Join(args, " ")))
		return svc.Inactive(ctx, criterion, constants.InactiveReportLimit)
	})

	r.handlers["details"] = single(func(ctx context.Context, args []string) (string, error) {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return "Bitte Spielername oder Tag angeben: <code>/details Name</code>", nil
		}
		return svc.PlayerDetails(ctx, query)
	})

	r.handlers["spion"] = func(ctx context.Context, _ []string) ([]string, error) {
		return svc.Spy(ctx)
	}

	return r
}

// Dispatch runs a command and always returns something sendable; unknown
// commands yield nothing.
func (r *Router) Dispatch(ctx context.Context, command string, args []string) []string {
	handler, ok := r.handlers[strings.ToLower(command)]
	if !ok {
		return nil
	}

	id := uuid.New().String()
	log := r.logger.With().Str("invocation_id", id).Str("command", command).Logger()
	start := time.Now()
	log.Info().Strs("args", args).Msg("command started")

	blocks, err := handler(log.WithContext(ctx), args)
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		return []string{"❌ " + userMessage(err)}
	}

	log.Info().Int("blocks", len(blocks)).Dur("duration", time.Since(start)).Msg("command completed")
	return blocks
}

// userMessage translates the upstream error taxonomy into the one line a chat
// user gets to see. The cause never leaks verbatim.
func userMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUpstreamTimeout):
		return "Die Clash Royale API antwortet nicht rechtzeitig."
	case errors.Is(err, api.ErrClanNotFound):
		return "Der angegebene Clan wurde nicht gefunden."
	case errors.Is(err, api.ErrInvalidCredentials):
		return "Clash Royale API Token ist ungültig oder abgelaufen."
	case errors.Is(err, api.ErrRateLimited):
		return "Zu viele API-Anfragen. Bitte versuchen Sie es später erneut."
	default:
		return "Ein unerwarteter Fehler ist aufgetreten."
	}
}

func wantsEscalation(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch strings.ToLower(args[0]) {
	case "force", "refresh", "neu":
		return true
	}
	return false
}

// donationsLimit parses the /spenden argument: "alle" lifts the cap, a number
// caps the list, anything else keeps the default.
func donationsLimit(args []string) int {
	if len(args) == 0 {
		return constants.DefaultDonationsLimit
	}
	arg := strings.ToLower(strings.TrimSpace(args[0]))
	if arg == "all" || arg == "alle" {
		return 0
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 {
			n = 1
		}
		return n
	}
	return constants.DefaultDonationsLimit
}
