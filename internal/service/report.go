package service

import (
	"context"
	"fmt"

	"clanwatch/internal/api"
	"clanwatch/internal/clanwar"
	"clanwatch/internal/config"
	"clanwatch/internal/constants"
	"clanwatch/internal/domain"
	"clanwatch/internal/report"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ReportService drives one bounded sequence of upstream reads per command and
// hands the payloads to the pure analysis and rendering layers. No state is
// shared between requests; concurrent commands only share the HTTP client.
type ReportService struct {
	royale *api.RoyaleClient
	fresh  *api.FreshFetcher
	render *report.Renderer
	cfg    *config.Config
	logger zerolog.Logger
}

func NewReportService(royale *api.RoyaleClient, fresh *api.FreshFetcher, render *report.Renderer, cfg *config.Config, logger zerolog.Logger) *ReportService {
	return &ReportService{royale: royale, fresh: fresh, render: render, cfg: cfg, logger: logger}
}

func (s *ReportService) ClanInfo(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	clan, err := s.royale.Clan(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch clan profile")
		return "", fmt.Errorf("failed to fetch clan profile: %w", err)
	}
	return s.render.ClanInfo(clan, s.cfg.ClanTag), nil
}

func (s *ReportService) Activity(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	members, err := s.royale.Members(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch members")
		return "", fmt.Errorf("failed to fetch members: %w", err)
	}
	return s.render.ActivityList(members), nil
}

// Donations renders the donation leaderboard. limit 0 means the full roster.
func (s *ReportService) Donations(ctx context.Context, limit int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	members, err := s.royale.Members(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch members")
		return "", fmt.Errorf("failed to fetch members: %w", err)
	}
	return s.render.DonationLeaderboard(members, limit, true), nil
}

// OpenAttacks renders today's remaining decks. escalate raises the staleness
// retry budget from the configured default to three attempts.
func (s *ReportService) OpenAttacks(ctx context.Context, escalate bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	attempts := s.cfg.FreshAttempts
	if escalate && attempts < constants.MaxFreshAttempts {
		attempts = constants.MaxFreshAttempts
	}

	rr, err := s.fresh.Fetch(ctx, attempts)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch river race")
		return "", fmt.Errorf("failed to fetch river race: %w", err)
	}
	return s.render.OpenDecksOverview(rr, s.cfg.ClanTag), nil
}

func (s *ReportService) Scoreboard(ctx context.Context, mode string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	rr, err := s.fresh.Fetch(ctx, s.cfg.FreshAttempts)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch river race")
		return "", fmt.Errorf("failed to fetch river race: %w", err)
	}
	return s.render.RiverScoreboard(rr, s.cfg.ClanTag, mode), nil
}

// WarHistory returns the aggregate summary, or per-player blocks when a query
// is given. Multiple hits get a leading warning block.
func (s *ReportService) WarHistory(ctx context.Context, query string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	rlog, err := s.royale.RiverRaceLog(ctx, constants.DefaultWarHistoryLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch river race log")
		return nil, fmt.Errorf("failed to fetch river race log: %w", err)
	}

	acc := clanwar.AggregateWarHistory(rlog, s.cfg.ClanTag)
	if query == "" {
		return []string{s.render.WarHistorySummary(acc)}, nil
	}

	blocks := s.render.WarHistoryPlayer(acc, query)
	if len(blocks) > 1 {
		warning := fmt.Sprintf("⚠️ Es wurden %d Spieler mit dem Namen '%s' gefunden:", len(blocks), query)
		blocks = append([]string{warning}, blocks...)
	}
	return blocks, nil
}

// Inactive ranks the roster by the inactivity heuristic under the given
// criterion.
func (s *ReportService) Inactive(ctx context.Context, criterion domain.SortCriterion, limit int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	members, err := s.royale.Members(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch members")
		return "", fmt.Errorf("failed to fetch members: %w", err)
	}
	rr, err := s.fresh.Fetch(ctx, s.cfg.FreshAttempts)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch river race")
		return "", fmt.Errorf("failed to fetch river race: %w", err)
	}
	rlog, err := s.royale.RiverRaceLog(ctx, constants.DefaultWarHistoryLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch river race log")
		return "", fmt.Errorf("failed to fetch river race log: %w", err)
	}

	history := clanwar.AggregateWarHistory(rlog, s.cfg.ClanTag)
	scores := clanwar.ScorePlayers(members, rr, history, criterion, s.render.Now())
	return s.render.InactivePlayers(scores, criterion, limit), nil
}

func (s *ReportService) PlayerDetails(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	members, err := s.royale.Members(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch members")
		return "", fmt.Errorf("failed to fetch members: %w", err)
	}
	rr, err := s.fresh.Fetch(ctx, s.cfg.FreshAttempts)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch river race")
		return "", fmt.Errorf("failed to fetch river race: %w", err)
	}
	rlog, err := s.royale.RiverRaceLog(ctx, constants.DefaultWarHistoryLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch river race log")
		return "", fmt.Errorf("failed to fetch river race log: %w", err)
	}

	acc := clanwar.AggregateWarHistory(rlog, s.cfg.ClanTag)
	return s.render.PlayerDetails(query, members, rr, acc), nil
}

// Spy scouts the most active opponent clan. The roster and history
// sub-fetches are best-effort: each failure degrades one block instead of
// aborting the report.
func (s *ReportService) Spy(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	rr, err := s.fresh.Fetch(ctx, s.cfg.FreshAttempts)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch river race")
		return nil, fmt.Errorf("failed to fetch river race: %w", err)
	}

	target := clanwar.PickOpponent(rr, s.cfg.ClanTag)
	if target == nil {
		return []string{"Es wurden keine Gegner im aktuellen River Race gefunden."}, nil
	}
	cand := &target.Candidate

	var (
		roster  *api.Clan
		enemies *api.RiverRaceLog
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		c, err := s.royale.ClanByTag(ctx, cand.Tag)
		if err != nil {
			s.logger.Warn().Err(err).Str("tag", cand.Tag).Msg("could not load opponent clan profile")
			return nil
		}
		roster = c
		return nil
	})
	g.Go(func() error {
		l, err := s.royale.RiverRaceLogOf(ctx, cand.Tag, constants.OpponentWarHistoryLimit)
		if err != nil {
			s.logger.Warn().Err(err).Str("tag", cand.Tag).Msg("could not load opponent river race log")
			return nil
		}
		enemies = l
		return nil
	})
	_ = g.Wait()

	if roster != nil && len(roster.MemberList) > 0 {
		cand.TotalMembers = len(roster.MemberList)
	}

	blocks := []string{s.render.SpySummary(cand)}

	if enemies == nil {
		blocks = append(blocks, "⚠️ Historische Daten konnten nicht geladen werden.")
	} else {
		weeks := clanwar.AnalyzeOpponentHistory(cand.Tag, enemies)
		s.logger.Info().Str("tag", cand.Tag).Int("weeks", len(weeks)).Msg("opponent history analyzed")
		if len(weeks) == 0 {
			blocks = append(blocks, fmt.Sprintf("⚠️ Keine historischen Daten für Gegnerclan %s (#%s) gefunden.", cand.Name, cand.Tag))
		} else {
			blocks = append(blocks, s.render.SpyHistory(cand, weeks))
		}
	}

	blocks = append(blocks, s.render.SpyDetails(target))
	return blocks, nil
}

func (s *ReportService) Version() string { return s.render.Version(s.cfg.Version) }
func (s *ReportService) Startup() string { return s.render.Startup(s.cfg.Version) }
func (s *ReportService) Help() string    { return s.render.Help() }
