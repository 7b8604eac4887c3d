package report

import (
	"fmt"
	"strings"

	"clanwatch/internal/domain"
)

var criterionLabels = map[domain.SortCriterion]string{
	domain.ByTotal:      "Gesamtwertung",
	domain.ByDonations:  "Spenden",
	domain.ByWarAttacks: "Kriegsangriffe",
	domain.ByWarPoints:  "Kriegspunkte",
	domain.ByTrophyRoad: "Trophäenpfad",
}

// InactivePlayers renders the most-inactive ranking. scores must already be
// sorted most-inactive-first; limit 0 means no limit.
func (r *Renderer) InactivePlayers(scores []domain.PlayerActivityScore, criterion domain.SortCriterion, limit int) string {
	if len(scores) == 0 {
		return "Keine Mitgliederdaten verfügbar."
	}
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}

	lines := []string{fmt.Sprintf("💤 <b>Inaktivste Spieler</b> (Kriterium: %s)\n", criterionLabels[criterion])}
	for i, s := range scores {
		lines = append(lines, fmt.Sprintf(
			"%2d. %s (%s) — Score: <b>%.0f</b>",
			i+1, s.Name, s.Role, s.ComponentScore(criterion)))
		lines = append(lines, fmt.Sprintf(
			"    Krieg: %d Punkte, %d Decks | Spenden: %d | Offline: %.1f T | 🏆 %d (Rang %d)",
			s.CurrentFame, s.CurrentDecks, s.Donations, s.DaysOffline, s.Trophies, s.ClanRank))
	}

	lines = append(lines, "\nJe höher der Score, desto inaktiver.")
	return truncate(strings.Join(lines, "\n"))
}
