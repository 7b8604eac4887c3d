package clanwar

import (
	"testing"
	"time"

	"clanwatch/internal/api"
	"clanwatch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scoreNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func membersOf(ms ...api.Member) *api.MemberList {
	return &api.MemberList{Items: ms}
}

func TestScorePlayersComponents(t *testing.T) {
	members := membersOf(api.Member{
		Tag: "#P1", Name: "Anna", Trophies: 6000, ClanRank: 3, Donations: 200,
		LastSeen: scoreNow.Add(-48 * time.Hour).Format("20060102T150405.000Z"),
	})
	rr := &api.CurrentRiverRace{Clan: api.RaceClan{Participants: []api.RaceParticipant{
		{Tag: "#P1", Fame: 400, DecksUsed: 3},
	}}}
	history := map[string]*domain.PlayerAggregate{
		"P1": {Fame: 3000, DecksUsed: 18, BoatAttacks: 2, Wars: 10},
	}

	scores := ScorePlayers(members, rr, history, domain.ByTotal, scoreNow)
	require.Len(t, scores, 1)
	s := scores[0]

	assert.InDelta(t, 800, s.DonationScore, 0.001) // 1000 - 200

	// expected attacks = min(2*20/10, 8) = 4; (4-3)*100 = 100
	assert.InDelta(t, 100, s.WarAttackScore, 0.001)

	// expected fame = min(3000/10, 2000) = 300; 300 - 400 = -100
	assert.InDelta(t, -100, s.WarPointsScore, 0.001)

	// 3*10 + (10000-6000)/10 = 430
	assert.InDelta(t, 430, s.TrophyScore, 0.001)

	assert.InDelta(t, 2.0, s.DaysOffline, 0.01)

	want := 0.35*100 + 0.30*(-100) + 0.20*800 + 5*2.0 + 0.05*430
	assert.InDelta(t, want, s.TotalScore, 0.1)
}

func TestScorePlayersDefaultsWithoutHistory(t *testing.T) {
	members := membersOf(api.Member{Tag: "#NEW", Name: "Neu", Trophies: 4000, ClanRank: 10})
	rr := &api.CurrentRiverRace{}

	scores := ScorePlayers(members, rr, nil, domain.ByTotal, scoreNow)
	require.Len(t, scores, 1)
	s := scores[0]

	// no participant entry: fully inactive this period against flat baselines
	assert.InDelta(t, 800, s.WarAttackScore, 0.001) // (2*4 - 0) * 100
	assert.InDelta(t, 800, s.WarPointsScore, 0.001) // default expectation
	assert.Zero(t, s.DaysOffline)                   // never seen
}

func TestScorePlayersOrderingAndStability(t *testing.T) {
	members := membersOf(
		api.Member{Tag: "#A", Name: "Eifrig", Donations: 900},
		api.Member{Tag: "#B", Name: "Faul", Donations: 0},
		api.Member{Tag: "#C", Name: "AuchFaul", Donations: 0},
	)
	rr := &api.CurrentRiverRace{}

	scores := ScorePlayers(members, rr, nil, domain.ByDonations, scoreNow)
	require.Len(t, scores, 3)

	assert.Equal(t, "Faul", scores[0].Name) // tie with AuchFaul, input order kept
	assert.Equal(t, "AuchFaul", scores[1].Name)
	assert.Equal(t, "Eifrig", scores[2].Name)
}

func TestScorePlayersTrophyCeiling(t *testing.T) {
	members := membersOf(api.Member{Tag: "#T", Name: "Top", Trophies: 15000, ClanRank: 1})
	scores := ScorePlayers(members, &api.CurrentRiverRace{}, nil, domain.ByTrophyRoad, scoreNow)
	require.Len(t, scores, 1)
	assert.InDelta(t, 10, scores[0].TrophyScore, 0.001) // rank component only
}

func TestParseCriterion(t *testing.T) {
	assert.Equal(t, domain.ByDonations, ParseCriterion("spenden"))
	assert.Equal(t, domain.ByWarAttacks, ParseCriterion("kriegsangriffe"))
	assert.Equal(t, domain.ByWarPoints, ParseCriterion("kriegspunkte"))
	assert.Equal(t, domain.ByTrophyRoad, ParseCriterion("trophäenpfad"))
	assert.Equal(t, domain.ByTotal, ParseCriterion("gesamt"))
	assert.Equal(t, domain.ByTotal, ParseCriterion(""))
	assert.Equal(t, domain.ByTotal, ParseCriterion("unsinn"))
}
