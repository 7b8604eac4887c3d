package report

import (
	"strings"
	"testing"
	"time"

	"clanwatch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyFixture() map[string]*domain.PlayerAggregate {
	return map[string]*domain.PlayerAggregate{
		"AAA": {Name: "Anna", Fame: 900, RepairPoints: 100, DecksUsed: 20, Wars: 4,
			FirstSeen: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			LastSeen:  time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		"BBB": {Name: "ben", Fame: 1000, DecksUsed: 25, Wars: 5},
		"CCC": {Name: "Carla", Fame: 1000, DecksUsed: 25, Wars: 5},
		"DDD": {Name: "Dora", Fame: 200, Wars: 1},
	}
}

func TestSortedHistory(t *testing.T) {
	rows := sortedHistory(historyFixture())
	require.Len(t, rows, 4)

	// Anna, ben and Carla all total 1000 points; Anna loses the attack
	// tie-break (20 < 25), ben beats Carla on name case-insensitively.
	assert.Equal(t, "ben", rows[0].agg.Name)
	assert.Equal(t, "Carla", rows[1].agg.Name)
	assert.Equal(t, "Anna", rows[2].agg.Name)
	assert.Equal(t, "Dora", rows[3].agg.Name)
}

func TestWarHistorySummary(t *testing.T) {
	out := testRenderer().WarHistorySummary(historyFixture())
	assert.Contains(t, out, "Kriegshistorie – Übersicht")
	assert.Contains(t, out, "Anna (#AAA)")
	assert.Contains(t, out, "seit 01.01.2024")

	assert.Equal(t, "Keine Kriegshistorie verfügbar.", testRenderer().WarHistorySummary(nil))
}

func TestWarHistoryPlayerExactBeatsSubstring(t *testing.T) {
	acc := map[string]*domain.PlayerAggregate{
		"AAA": {Name: "Max", Fame: 100, Wars: 1},
		"BBB": {Name: "Maximilian", Fame: 200, Wars: 2},
	}

	blocks := testRenderer().WarHistoryPlayer(acc, "max")
	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0], "Kriegshistorie – Max")
	assert.NotContains(t, blocks[0], "Maximilian")
}

func TestWarHistoryPlayerSubstringMultiHit(t *testing.T) {
	acc := map[string]*domain.PlayerAggregate{
		"AAA": {Name: "Maximilian", Fame: 200, Wars: 2},
		"BBB": {Name: "Maxime", Fame: 100, Wars: 1},
	}

	blocks := testRenderer().WarHistoryPlayer(acc, "maxi")
	require.Len(t, blocks, 2)
	// blocks follow the summary order: higher points first
	assert.Contains(t, blocks[0], "Maximilian")
	assert.Contains(t, blocks[1], "Maxime")
}

func TestWarHistoryPlayerTagMatch(t *testing.T) {
	acc := map[string]*domain.PlayerAggregate{
		"Q9R8": {Name: "Anna", Fame: 100, Wars: 1},
	}

	blocks := testRenderer().WarHistoryPlayer(acc, "#q9r8")
	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0], "Tag: #Q9R8")
}

func TestWarHistoryPlayerMissSuggests(t *testing.T) {
	blocks := testRenderer().WarHistoryPlayer(historyFixture(), "niemand")
	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0], "Kein Treffer für \"niemand\"")
	assert.Contains(t, blocks[0], "Anna")

	empty := testRenderer().WarHistoryPlayer(nil, "wer")
	require.Len(t, empty, 1)
	assert.Equal(t, "Keine Kriegshistorie verfügbar.", empty[0])
}

func TestSuggestionsSortedAndCapped(t *testing.T) {
	acc := make(map[string]*domain.PlayerAggregate)
	for _, n := range []string{"Zeta", "Alpha", "Beta"} {
		acc[strings.ToUpper(n)] = &domain.PlayerAggregate{Name: n}
	}
	assert.Equal(t, "Alpha, Beta, Zeta", suggestions(acc))
}
