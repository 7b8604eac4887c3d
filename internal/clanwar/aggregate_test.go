package clanwar

import (
	"testing"
	"time"

	"clanwatch/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logWithThreePeriods() *api.RiverRaceLog {
	participant := func(tag, name string, fame, decks, boats int) api.RaceParticipant {
		return api.RaceParticipant{Tag: tag, Name: name, Fame: fame, DecksUsed: decks, BoatAttacks: boats}
	}
	standing := func(clanTag string, ps ...api.RaceParticipant) api.RiverRaceStanding {
		return api.RiverRaceStanding{Clan: api.RaceClan{Tag: clanTag, Participants: ps}}
	}

	return &api.RiverRaceLog{Items: []api.RiverRaceLogEntry{
		{
			SeasonID: 99, SectionIndex: 2, CreatedDate: "20240301T100000.000Z",
			Standings: []api.RiverRaceStanding{
				standing("#ABC", participant("#P1", "Anna", 100, 8, 1)),
				standing("#ENEMY", participant("#P1", "Impostor", 9999, 16, 9)),
			},
		},
		{
			// own clan missing entirely
			SeasonID: 99, SectionIndex: 1, CreatedDate: "20240201T100000.000Z",
			Standings: []api.RiverRaceStanding{
				standing("#ENEMY", participant("#P1", "Impostor", 5000, 10, 2)),
			},
		},
		{
			SeasonID: 98, SectionIndex: 4, CreatedDate: "20240101T100000.000Z",
			Standings: []api.RiverRaceStanding{
				standing("#abc", participant("p1", "Anna", 50, 4, 0), participant("", "Ghost", 30, 2, 1)),
			},
		},
	}}
}

func TestAggregateWarHistory(t *testing.T) {
	acc := AggregateWarHistory(logWithThreePeriods(), "#abc")

	anna := acc["P1"]
	require.NotNil(t, anna)
	assert.Equal(t, 150, anna.Fame)
	assert.Equal(t, 2, anna.Wars)
	assert.Equal(t, 12, anna.DecksUsed)
	assert.Equal(t, 1, anna.BoatAttacks)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), anna.FirstSeen)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), anna.LastSeen)

	// the enemy clan's numbers must not leak in
	assert.NotEqual(t, 9999, anna.Fame)
	assert.Len(t, acc, 2)
}

func TestAggregateWarHistoryNameFallbackKey(t *testing.T) {
	acc := AggregateWarHistory(logWithThreePeriods(), "ABC")

	ghost := acc["NON-Ghost"]
	require.NotNil(t, ghost)
	assert.Equal(t, 30, ghost.Fame)
	assert.Equal(t, 1, ghost.Wars)
}

func TestAggregateWarHistoryIdempotent(t *testing.T) {
	rlog := logWithThreePeriods()
	first := AggregateWarHistory(rlog, "#ABC")
	second := AggregateWarHistory(rlog, "#ABC")
	assert.Equal(t, first, second)
}

func TestAggregateWarHistoryEmpty(t *testing.T) {
	assert.Empty(t, AggregateWarHistory(nil, "#ABC"))
	assert.Empty(t, AggregateWarHistory(&api.RiverRaceLog{}, "#ABC"))
}
