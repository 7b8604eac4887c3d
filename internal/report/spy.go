package report

import (
	"fmt"
	"sort"
	"strings"

	"clanwatch/internal/clanwar"
	"clanwatch/internal/constants"
	"clanwatch/internal/domain"
)

// SpySummary is the first block of the scouting flow.
func (r *Renderer) SpySummary(c *domain.OpponentCandidate) string {
	activityRate := 0.0
	if c.Participants > 0 {
		activityRate = float64(c.ActivePlayers) / float64(c.Participants)
	}

	lines := []string{
		"<b>Gegner-Spionage: Aktivster Clan</b>",
		"",
		fmt.Sprintf("<b>%s</b> (#%s)", c.Name, c.Tag),
		fmt.Sprintf("Clan-Mitglieder: <b>%d/%d</b>", c.TotalMembers, constants.MaxClanMembers),
		fmt.Sprintf("River Race: <b>%d</b> Teilnehmer | <b>%d</b> aktiv (%d%%)",
			c.Participants, c.ActivePlayers, int(activityRate*100)),
		fmt.Sprintf("Aktivitaetsrate: <code>%s</code>", bar(activityRate)),
		"",
		"<b>Aktuelle Leistung:</b>",
		fmt.Sprintf("Gesamtpunkte: <b>%s</b>", group(c.Fame)),
		fmt.Sprintf("Heute: <b>%s</b> Punkte", group(c.PeriodPoints)),
	}
	return truncate(strings.Join(lines, "\n"))
}

// SpyHistory is the second block: the opponent's last war weeks as a fixed
// width table plus averages.
func (r *Renderer) SpyHistory(c *domain.OpponentCandidate, weeks []domain.OpponentWarWeek) string {
	lines := []string{
		fmt.Sprintf("<b>🕵️ Historische Analyse: %s</b>", c.Name),
		fmt.Sprintf("<code>#%s</code>", c.Tag),
		"",
		fmt.Sprintf("<b>📊 Leistung der letzten %d Wochen:</b>", len(weeks)),
		"",
	}
	if len(weeks) == 0 {
		lines = append(lines, "⚠️ Keine historischen Daten verfügbar.")
		return truncate(strings.Join(lines, "\n"))
	}

	lines = append(lines,
		"<code>Woche | Platz | Trophäen | Punkte  | Quote | Decks</code>",
		"<code>------|-------|----------|---------|-------|------</code>")

	display := weeks
	if len(display) > constants.OpponentHistoryTable {
		display = display[:constants.OpponentHistoryTable]
	}
	for i, w := range display {
		trophy := fmt.Sprintf("%d", w.TrophyChange)
		if w.TrophyChange > 0 {
			trophy = "+" + trophy
		}
		fame := group(w.Fame)
		if len(fame) > 6 {
			fame = fmt.Sprintf("%dk", w.Fame/1000)
		}
		week := fmt.Sprintf("S%d.%d", w.SeasonID, w.SectionIndex)
		if w.SeasonID == 0 {
			week = fmt.Sprintf("W-%d", i+1)
		}
		lines = append(lines, fmt.Sprintf(
			"<code>%5s | %5d | %8s | %7s | %4d%% | %5.1f</code>",
			week, w.Rank, trophy, fame, int(w.ParticipationRate*100), w.DecksPerActive))
	}

	if len(weeks) > len(display) {
		lines = append(lines, "", fmt.Sprintf("<i>... und %d weitere Wochen</i>", len(weeks)-len(display)))
	}

	var sumRank, sumFame, sumRate, sumDecks float64
	for _, w := range weeks {
		sumRank += float64(w.Rank)
		sumFame += float64(w.Fame)
		sumRate += w.ParticipationRate
		sumDecks += w.DecksPerActive
	}
	n := float64(len(weeks))
	lines = append(lines,
		"",
		"<b>📈 Durchschnittswerte:</b>",
		fmt.Sprintf("• Platzierung: <b>%.1f</b>", sumRank/n),
		fmt.Sprintf("• Punkte/Woche: <b>%s</b>", group(int(sumFame/n+0.5))),
		fmt.Sprintf("• Teilnahmequote: <b>%d%%</b>", int(sumRate/n*100)),
		fmt.Sprintf("• Quote: <code>%s</code>", bar(sumRate/n)),
		fmt.Sprintf("• Decks/Aktiver: <b>%.1f</b>", sumDecks/n),
	)

	return truncate(strings.Join(lines, "\n"))
}

// SpyDetails is the third block: top players and deck usage of the scouted
// clan's current roster.
func (r *Renderer) SpyDetails(target *clanwar.ScoutTarget) string {
	c := &target.Candidate
	participants := target.Race.Participants

	top := make([]int, 0, len(participants))
	for i, p := range participants {
		if p.Fame > 0 {
			top = append(top, i)
		}
	}
	sort.SliceStable(top, func(a, b int) bool {
		return participants[top[a]].Fame > participants[top[b]].Fame
	})
	if len(top) > 5 {
		top = top[:5]
	}

	lines := []string{
		fmt.Sprintf("<b>Detailanalyse: %s</b>", c.Name),
		"",
		"<b>Top Spieler (nach Gesamtpunkten):</b>",
	}
	for i, idx := range top {
		p := participants[idx]
		lines = append(lines, fmt.Sprintf("%d. %s - %s Punkte (%dD, %dB)",
			i+1, p.Name, group(p.Fame), p.DecksUsed, p.BoatAttacks))
	}
	if len(top) == 0 {
		lines = append(lines, "- Keine aktiven Spieler gefunden")
	}

	type usage struct {
		name  string
		used  int
		today int
	}
	var usages []usage
	for _, p := range participants {
		if p.DecksUsed > 0 || p.DecksUsedToday > 0 {
			name := p.Name
			if name == "" {
				name = "?"
			}
			usages = append(usages, usage{name: name, used: p.DecksUsed, today: p.DecksUsedToday})
		}
	}
	sort.SliceStable(usages, func(i, j int) bool { return usages[i].used > usages[j].used })
	if len(usages) > 5 {
		usages = usages[:5]
	}

	lines = append(lines, "", "<b>Aktivste Spieler (nach Deck-Nutzung):</b>")
	for i, u := range usages {
		today := ""
		if u.today > 0 {
			today = fmt.Sprintf(" (+%d heute)", u.today)
		}
		lines = append(lines, fmt.Sprintf("%d. %s - %d Decks%s", i+1, u.name, u.used, today))
	}
	if len(usages) == 0 {
		lines = append(lines, "- Keine Deck-Nutzung gefunden")
	}

	totalFame := 0
	totalDecks := 0
	totalBoats := 0
	for _, p := range participants {
		totalFame += p.Fame
		totalDecks += p.DecksUsed
		totalBoats += p.BoatAttacks
	}
	avgFame := 0.0
	if len(participants) > 0 {
		avgFame = float64(totalFame) / float64(len(participants))
	}
	participationPct := 0
	if c.Participants > 0 {
		participationPct = c.ActivePlayers * 100 / c.Participants
	}

	lines = append(lines,
		"",
		"<b>Clan-Statistiken:</b>",
		fmt.Sprintf("- Ø Punkte/Spieler: %.0f", avgFame),
		fmt.Sprintf("- Gesamt Decks: %d", totalDecks),
		fmt.Sprintf("- Gesamt Bootangriffe: %d", totalBoats),
		fmt.Sprintf("- Teilnahmequote: %d/%d (%d%%)", c.ActivePlayers, c.Participants, participationPct),
	)

	return truncate(strings.Join(lines, "\n"))
}
