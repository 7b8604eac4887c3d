package api

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	rr    *CurrentRiverRace
}

func (c *countingSource) CurrentRiverRace(ctx context.Context, cacheBust bool) (*CurrentRiverRace, error) {
	c.calls++
	return c.rr, nil
}

// raceWithUntouched builds a payload where `untouched` of `total` own-clan
// participants have made zero attacks today.
func raceWithUntouched(untouched, total int) *CurrentRiverRace {
	rr := &CurrentRiverRace{}
	for i := 0; i < total; i++ {
		p := RaceParticipant{Name: "p", DecksUsedToday: 2}
		if i < untouched {
			p.DecksUsedToday = 0
		}
		rr.Clan.Participants = append(rr.Clan.Participants, p)
	}
	return rr
}

func fetcherAtHour(src RiverRaceSource, hour int) *FreshFetcher {
	return &FreshFetcher{
		source: src,
		loc:    time.UTC,
		logger: zerolog.Nop(),
		now: func() time.Time {
			return time.Date(2024, 5, 1, hour, 30, 0, 0, time.UTC)
		},
	}
}

func TestLooksStaleAt(t *testing.T) {
	stale := raceWithUntouched(8, 10)

	assert.True(t, looksStaleAt(stale, 18))
	assert.False(t, looksStaleAt(stale, 10))

	barelyActive := raceWithUntouched(1, 20) // 5% untouched
	assert.False(t, looksStaleAt(barelyActive, 18))
	assert.False(t, looksStaleAt(barelyActive, 10))

	assert.False(t, looksStaleAt(&CurrentRiverRace{}, 23))
}

func TestLooksStaleAtBoundary(t *testing.T) {
	exactly70 := raceWithUntouched(7, 10)
	assert.True(t, looksStaleAt(exactly70, 17))
	assert.False(t, looksStaleAt(exactly70, 16))
}

func TestFetchRetriesOnStaleness(t *testing.T) {
	src := &countingSource{rr: raceWithUntouched(7, 10)}
	f := fetcherAtHour(src, 19)

	rr, err := f.Fetch(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, rr)
	assert.Equal(t, 2, src.calls)
}

func TestFetchThirdAttemptWhenStillStale(t *testing.T) {
	src := &countingSource{rr: raceWithUntouched(7, 10)}
	f := fetcherAtHour(src, 19)

	_, err := f.Fetch(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls)
}

func TestFetchSingleAttempt(t *testing.T) {
	src := &countingSource{rr: raceWithUntouched(7, 10)}
	f := fetcherAtHour(src, 19)

	_, err := f.Fetch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestFetchNoRetryWhenFresh(t *testing.T) {
	src := &countingSource{rr: raceWithUntouched(1, 10)}
	f := fetcherAtHour(src, 19)

	_, err := f.Fetch(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestFetchAttemptsCapped(t *testing.T) {
	src := &countingSource{rr: raceWithUntouched(10, 10)}
	f := fetcherAtHour(src, 19)

	_, err := f.Fetch(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls)
}
