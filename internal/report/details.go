package report

import (
	"fmt"
	"strings"

	"clanwatch/internal/api"
	"clanwatch/internal/domain"
)

// PlayerDetails combines roster, current war and historical data into one
// profile block for a single member, matched by name (case-insensitive,
// substring) or tag.
func (r *Renderer) PlayerDetails(query string, members *api.MemberList, rr *api.CurrentRiverRace, acc map[string]*domain.PlayerAggregate) string {
	q := strings.ToLower(strings.TrimSpace(query))
	qTag := domain.NormalizeTag(query)

	var member *api.Member
	for i := range members.Items {
		m := &members.Items[i]
		name := strings.ToLower(m.Name)
		if name == q || domain.NormalizeTag(m.Tag) == qTag {
			member = m
			break
		}
		if member == nil && strings.Contains(name, q) {
			member = m
		}
	}
	if member == nil {
		return fmt.Sprintf("Spieler \"%s\" nicht im Clan gefunden.", query)
	}

	tag := domain.NormalizeTag(member.Tag)
	now := r.now()

	lines := []string{
		fmt.Sprintf("👤 <b>%s</b> (#%s)", member.Name, tag),
		fmt.Sprintf("Rolle: %s | Clan-Rang: %d", member.Role, member.ClanRank),
		fmt.Sprintf("🏆 Trophäen: <b>%d</b>", member.Trophies),
		fmt.Sprintf("🎁 Spenden: %d | erhalten: %d", member.Donations, member.DonationsReceived),
		fmt.Sprintf("🕒 Zuletzt online: %s", agoStr(domain.ParseGameTime(member.LastSeen), now)),
	}

	if rr != nil {
		for _, p := range rr.Clan.Participants {
			if domain.NormalizeTag(p.Tag) == tag {
				lines = append(lines,
					"",
					"⚔️ <b>Aktueller River Race:</b>",
					fmt.Sprintf("Punkte: <b>%d</b> | Decks: %d (heute %d) | Boot: %d",
						p.Fame, p.DecksUsed, p.DecksUsedToday, p.BoatAttacks))
				break
			}
		}
	}

	if e, ok := acc[tag]; ok {
		lines = append(lines,
			"",
			"📜 <b>Kriegshistorie:</b>",
			fmt.Sprintf("Kriege: %d | Punkte: <b>%d</b> (F:%d / R:%d)", e.Wars, e.TotalPoints(), e.Fame, e.RepairPoints),
			fmt.Sprintf("Angriffe: Decks %d | Boot %d", e.DecksUsed, e.BoatAttacks),
			fmt.Sprintf("Seit: %s | Letzte Teilnahme: %s", r.fmtDate(e.FirstSeen), r.fmtDate(e.LastSeen)))
	}

	return truncate(strings.Join(lines, "\n"))
}
