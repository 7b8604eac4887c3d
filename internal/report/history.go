package report

import (
	"fmt"
	"sort"
	"strings"

	"clanwatch/internal/domain"
)

type historyRow struct {
	tag string
	agg *domain.PlayerAggregate
}

// sortedHistory orders aggregates by (total points desc, total attacks desc,
// name asc).
func sortedHistory(acc map[string]*domain.PlayerAggregate) []historyRow {
	rows := make([]historyRow, 0, len(acc))
	for tag, agg := range acc {
		rows = append(rows, historyRow{tag: tag, agg: agg})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].agg, rows[j].agg
		if a.TotalPoints() != b.TotalPoints() {
			return a.TotalPoints() > b.TotalPoints()
		}
		if a.TotalAttacks() != b.TotalAttacks() {
			return a.TotalAttacks() > b.TotalAttacks()
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return rows
}

// WarHistorySummary renders the per-player aggregate of the whole log.
func (r *Renderer) WarHistorySummary(acc map[string]*domain.PlayerAggregate) string {
	if len(acc) == 0 {
		return "Keine Kriegshistorie verfügbar."
	}

	lines := []string{"📚 <b>Kriegshistorie – Übersicht</b>\n"}
	for i, row := range sortedHistory(acc) {
		e := row.agg
		lines = append(lines, fmt.Sprintf(
			"%2d. %s (#%s) — Angriffe: %d+%d | Punkte: <b>%d</b> (F:%d / R:%d) | Kriege: %d | seit %s",
			i+1, e.Name, row.tag, e.DecksUsed, e.BoatAttacks,
			e.TotalPoints(), e.Fame, e.RepairPoints, e.Wars, r.fmtDate(e.FirstSeen)))
	}

	return truncate(strings.Join(lines, "\n"))
}

// WarHistoryPlayer renders one block per matching player. Matching prefers
// exact name hits, then substring hits, then tag hits; a miss returns a
// single suggestion block.
func (r *Renderer) WarHistoryPlayer(acc map[string]*domain.PlayerAggregate, query string) []string {
	if len(acc) == 0 {
		return []string{"Keine Kriegshistorie verfügbar."}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	qTag := strings.ToUpper(strings.ReplaceAll(q, "#", ""))

	var exact, part, tagMatch []historyRow
	for _, row := range sortedHistory(acc) {
		name := strings.ToLower(row.agg.Name)
		switch {
		case name == q:
			exact = append(exact, row)
		case strings.Contains(name, q):
			part = append(part, row)
		case row.tag == qTag:
			tagMatch = append(tagMatch, row)
		}
	}

	cand := exact
	if len(cand) == 0 {
		cand = part
	}
	if len(cand) == 0 {
		cand = tagMatch
	}
	if len(cand) == 0 {
		return []string{fmt.Sprintf("Kein Treffer für \"%s\". Vorschläge: %s", query, suggestions(acc))}
	}

	blocks := make([]string, 0, len(cand))
	for _, row := range cand {
		e := row.agg
		last := "unbekannt"
		if !e.LastSeen.IsZero() {
			last = r.fmtDate(e.LastSeen)
		}
		lines := []string{
			fmt.Sprintf("📖 <b>Kriegshistorie – %s</b>", e.Name),
			fmt.Sprintf("Tag: #%s", row.tag),
			fmt.Sprintf("Seit: %s  |  Letzte Teilnahme: %s", r.fmtDate(e.FirstSeen), last),
			fmt.Sprintf("Teilgenommene Kriege: %d", e.Wars),
			fmt.Sprintf("Punkte gesamt: <b>%d</b> (Fame: %d, Repair: %d)", e.TotalPoints(), e.Fame, e.RepairPoints),
			fmt.Sprintf("Angriffe gesamt: Decks %d  |  Boot %d", e.DecksUsed, e.BoatAttacks),
		}
		blocks = append(blocks, truncate(strings.Join(lines, "\n")))
	}
	return blocks
}

func suggestions(acc map[string]*domain.PlayerAggregate) string {
	names := make(map[string]bool)
	for _, e := range acc {
		names[e.Name] = true
	}
	var out []string
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	if len(out) > 10 {
		out = out[:10]
	}
	return strings.Join(out, ", ")
}
