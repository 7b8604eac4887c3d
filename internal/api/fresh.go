package api

import (
	"context"
	"time"

	"clanwatch/internal/config"
	"clanwatch/internal/constants"

	"github.com/rs/zerolog"
)

// RiverRaceSource is the one gateway call the fetcher retries on.
type RiverRaceSource interface {
	CurrentRiverRace(ctx context.Context, cacheBust bool) (*CurrentRiverRace, error)
}

// FreshFetcher re-reads the live war status when the answer smells like a
// cached pre-reset snapshot. It retries only on suspected staleness, never on
// error, and returns the last fetch either way.
type FreshFetcher struct {
	source RiverRaceSource
	loc    *time.Location
	logger zerolog.Logger

	// overridable for tests
	now func() time.Time
}

func NewFreshFetcher(client *RoyaleClient, cfg *config.Config, logger zerolog.Logger) *FreshFetcher {
	return &FreshFetcher{
		source: client,
		loc:    cfg.Timezone,
		logger: logger,
		now:    time.Now,
	}
}

// Fetch reads the current river race with up to `attempts` tries (bounded by
// MaxFreshAttempts, minimum 1).
func (f *FreshFetcher) Fetch(ctx context.Context, attempts int) (*CurrentRiverRace, error) {
	if attempts > constants.MaxFreshAttempts {
		attempts = constants.MaxFreshAttempts
	}

	rr, err := f.source.CurrentRiverRace(ctx, true)
	if err != nil {
		return nil, err
	}
	if attempts <= 1 {
		return rr, nil
	}

	if f.looksStale(rr) {
		f.logger.Debug().Msg("river race response looks stale, refetching")
		rr, err = f.source.CurrentRiverRace(ctx, true)
		if err != nil {
			return nil, err
		}
		if attempts >= 3 && f.looksStale(rr) {
			f.logger.Debug().Msg("river race response still stale, third fetch")
			rr, err = f.source.CurrentRiverRace(ctx, true)
			if err != nil {
				return nil, err
			}
		}
	}

	return rr, nil
}

func (f *FreshFetcher) looksStale(rr *CurrentRiverRace) bool {
	return looksStaleAt(rr, f.now().In(f.loc).Hour())
}

// looksStaleAt flags a response where 70%+ of the own clan shows zero attacks
// today although the local evening has started. After 17:00 that pattern is
// far more likely a stale cache than a collectively idle clan.
func looksStaleAt(rr *CurrentRiverRace, localHour int) bool {
	participants := rr.Clan.Participants
	if len(participants) == 0 {
		return false
	}

	untouched := 0
	for _, p := range participants {
		used := p.DecksUsedToday
		if used < 0 {
			used = 0
		}
		remaining := constants.MaxDecksPerDay - used
		if remaining < 0 {
			remaining = 0
		}
		if remaining == constants.MaxDecksPerDay {
			untouched++
		}
	}

	fraction := float64(untouched) / float64(len(participants))
	return fraction >= constants.StaleUntouchedFraction && localHour >= constants.StaleEarliestLocalHour
}
