package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"clanwatch/internal/api"
	"clanwatch/internal/constants"
	"clanwatch/internal/domain"
)

// ClanInfo renders the clan profile card.
func (r *Renderer) ClanInfo(clan *api.Clan, fallbackTag string) string {
	name := clan.Name
	if name == "" {
		name = "Unbekannt"
	}
	tag := clan.Tag
	if tag == "" {
		tag = "#" + fallbackTag
	}
	desc := strings.TrimSpace(clan.Description)
	if d := []rune(desc); len(d) > 400 {
		desc = string(d[:400]) + "…"
	}

	return truncate(fmt.Sprintf(
		"<b>%s</b> (%s)\n"+
			"👥 Mitglieder: <b>%d/%d</b>\n"+
			"🏆 Clan-Trophäen: <b>%d</b>\n"+
			"🔑 Mindest-Trophäen: <b>%d</b>\n—\n%s",
		name, tag, clan.Members, constants.MaxClanMembers, clan.ClanScore, clan.RequiredTrophies, desc,
	))
}

// DonationLeaderboard ranks members by donations descending, ties broken by
// name ascending case-insensitively. limit 0 means no limit.
func (r *Renderer) DonationLeaderboard(members *api.MemberList, limit int, includeReceived bool) string {
	rows := append([]api.Member{}, members.Items...)

	totalDonated := 0
	totalReceived := 0
	for _, m := range rows {
		totalDonated += m.Donations
		totalReceived += m.DonationsReceived
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Donations != rows[j].Donations {
			return rows[i].Donations > rows[j].Donations
		}
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	lines := []string{"🎁 <b>Spenden-Rangliste</b> (diese Woche)\n"}
	for i, m := range rows {
		extra := ""
		if includeReceived {
			extra = fmt.Sprintf(" | erhalten: %d", m.DonationsReceived)
		}
		lines = append(lines, fmt.Sprintf("%2d. %s — gespendet: <b>%d</b>%s", i+1, m.Name, m.Donations, extra))
	}

	footer := fmt.Sprintf("\nΣ gespendet: %d", totalDonated)
	if includeReceived {
		footer += fmt.Sprintf(" | Σ erhalten: %d", totalReceived)
	}
	lines = append(lines, footer)

	return truncate(strings.Join(lines, "\n"))
}

// ActivityList orders members by last-seen ascending, so the longest-offline
// player comes first. Members whose timestamp cannot be parsed sort before
// everyone else.
func (r *Renderer) ActivityList(members *api.MemberList) string {
	type row struct {
		seen time.Time // zero = never seen, sorts first
		name string
		role string
	}
	rows := make([]row, 0, len(members.Items))
	for _, m := range members.Items {
		rows = append(rows, row{seen: domain.ParseGameTime(m.LastSeen), name: m.Name, role: m.Role})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].seen.Before(rows[j].seen)
	})

	now := r.now()
	lines := []string{"📊 Aktivität (oben: am längsten offline, unten: zuletzt online)\n"}
	for i, rw := range rows {
		lines = append(lines, fmt.Sprintf("%2d. %s (%s) — %s", i+1, rw.name, rw.role, agoStr(rw.seen, now)))
	}

	return truncate(strings.Join(lines, "\n"))
}
