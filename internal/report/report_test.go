package report

import (
	"strings"
	"testing"
	"time"

	"clanwatch/internal/api"
	"clanwatch/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var renderNow = time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

func testRenderer() *Renderer {
	return &Renderer{loc: time.UTC, now: func() time.Time { return renderNow }}
}

func TestTruncate(t *testing.T) {
	short := "hallo"
	assert.Equal(t, short, truncate(short))

	long := strings.Repeat("ü", constants.MaxMessageLength+50)
	got := truncate(long)
	assert.Equal(t, constants.MaxMessageLength, len([]rune(got)))
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", constants.ProgressBarWidth), bar(0))
	assert.Equal(t, strings.Repeat("█", constants.ProgressBarWidth), bar(1))
	assert.Equal(t, strings.Repeat("█", constants.ProgressBarWidth), bar(1.5))

	half := bar(0.5)
	assert.Equal(t, constants.ProgressBarWidth, len([]rune(half)))
	assert.Equal(t, 9, strings.Count(half, "█"))
}

func TestGroup(t *testing.T) {
	assert.Equal(t, "0", group(0))
	assert.Equal(t, "999", group(999))
	assert.Equal(t, "1.000", group(1000))
	assert.Equal(t, "12.345", group(12345))
	assert.Equal(t, "1.234.567", group(1234567))
	assert.Equal(t, "-12.345", group(-12345))
}

func TestAgoStr(t *testing.T) {
	assert.Equal(t, "unbekannt", agoStr(time.Time{}, renderNow))
	assert.Equal(t, "vor 1 Min", agoStr(renderNow.Add(-30*time.Second), renderNow))
	assert.Equal(t, "vor 5 Min", agoStr(renderNow.Add(-5*time.Minute), renderNow))
	assert.Equal(t, "vor 3 Std", agoStr(renderNow.Add(-3*time.Hour), renderNow))
	assert.Equal(t, "vor 4 T", agoStr(renderNow.Add(-4*24*time.Hour), renderNow))
	assert.Equal(t, "vor 3 W", agoStr(renderNow.Add(-22*24*time.Hour), renderNow))
	assert.Equal(t, "am 10.05.2023", agoStr(renderNow.AddDate(-1, 0, 0), renderNow))
}

func TestDonationLeaderboardOrdering(t *testing.T) {
	members := &api.MemberList{Items: []api.Member{
		{Name: "zoe", Donations: 50},
		{Name: "Anna", Donations: 50},
		{Name: "Ben", Donations: 300, DonationsReceived: 40},
	}}

	out := testRenderer().DonationLeaderboard(members, 0, true)

	iBen := strings.Index(out, "Ben")
	iAnna := strings.Index(out, "Anna")
	iZoe := strings.Index(out, "zoe")
	require.True(t, iBen >= 0 && iAnna >= 0 && iZoe >= 0)
	assert.Less(t, iBen, iAnna)
	assert.Less(t, iAnna, iZoe) // tie at 50 broken case-insensitively by name

	assert.Contains(t, out, "Σ gespendet: 400")
	assert.Contains(t, out, "Σ erhalten: 40")
	assert.Contains(t, out, "erhalten: 40")
}

func TestDonationLeaderboardLimit(t *testing.T) {
	members := &api.MemberList{Items: []api.Member{
		{Name: "A", Donations: 3},
		{Name: "B", Donations: 2},
		{Name: "C", Donations: 1},
	}}

	out := testRenderer().DonationLeaderboard(members, 2, false)
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "B")
	assert.NotContains(t, out, " 3. ")
	// footer still sums everyone
	assert.Contains(t, out, "Σ gespendet: 6")
	assert.NotContains(t, out, "erhalten")
}

func TestActivityListNeverSeenFirst(t *testing.T) {
	members := &api.MemberList{Items: []api.Member{
		{Name: "Frisch", Role: "member", LastSeen: renderNow.Add(-time.Hour).Format("20060102T150405.000Z")},
		{Name: "Phantom", Role: "member", LastSeen: "not-a-date"},
		{Name: "Alt", Role: "elder", LastSeen: renderNow.Add(-72 * time.Hour).Format("20060102T150405.000Z")},
	}}

	out := testRenderer().ActivityList(members)
	iPhantom := strings.Index(out, "Phantom")
	iAlt := strings.Index(out, "Alt")
	iFrisch := strings.Index(out, "Frisch")
	assert.Less(t, iPhantom, iAlt)
	assert.Less(t, iAlt, iFrisch)
	assert.Contains(t, out, "unbekannt")
}

func TestOpenDecksOverviewOrdering(t *testing.T) {
	rr := &api.CurrentRiverRace{
		Clan: api.RaceClan{Tag: "#US", Name: "Wir", Participants: []api.RaceParticipant{
			{Name: "Fertig", DecksUsedToday: 4},
			{Name: "Halb", DecksUsedToday: 2},
			{Name: "Nix", DecksUsedToday: 0},
		}},
		Clans: []api.RaceClan{
			{Tag: "#US"},
			{Tag: "#FOE", Name: "Feind", Participants: []api.RaceParticipant{{DecksUsedToday: 1}}},
		},
	}

	out := testRenderer().OpenDecksOverview(rr, "US")

	iNix := strings.Index(out, "Nix")
	iHalb := strings.Index(out, "Halb")
	iFertig := strings.Index(out, "Fertig")
	assert.Less(t, iNix, iHalb) // 4 open before 2 open
	assert.Less(t, iHalb, iFertig)
	assert.Contains(t, out, "Fertig — 0 offen (4/4) ✅")

	assert.Contains(t, out, "Feind — noch 3/4 offen")
	assert.Contains(t, out, "Σ offen heute: 6")
	assert.Contains(t, out, "Datenstand")
}

func TestRiverScoreboardModes(t *testing.T) {
	rr := &api.CurrentRiverRace{
		Clan: api.RaceClan{Tag: "#US", Name: "Wir", Fame: 1000, PeriodPoints: 100},
		Clans: []api.RaceClan{
			{Tag: "#US", Name: "Wir", Fame: 1000, PeriodPoints: 100},
			{Tag: "#FOE", Name: "Feind", Fame: 500, PeriodPoints: 300},
		},
	}
	r := testRenderer()

	today := r.RiverScoreboard(rr, "US", "auto")
	assert.Contains(t, today, "(heute)")
	assert.Less(t, strings.Index(today, "Feind"), strings.Index(today, "Wir ")) // 300 > 100
	assert.Contains(t, today, "⭐")
	assert.Contains(t, today, "Δ zu uns: +200")

	total := r.RiverScoreboard(rr, "US", "gesamt")
	assert.Contains(t, total, "(gesamt)")
	assert.Less(t, strings.Index(total, "Wir "), strings.Index(total, "Feind"))
	assert.Contains(t, total, "Δ zu uns: −500")
	assert.Contains(t, total, "Δ zu uns: ±0")
}

func TestRiverScoreboardEmpty(t *testing.T) {
	out := testRenderer().RiverScoreboard(&api.CurrentRiverRace{}, "US", "auto")
	assert.Equal(t, "Keine River-Race-Daten verfügbar.", out)
}
