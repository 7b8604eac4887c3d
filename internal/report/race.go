package report

import (
	"fmt"
	"sort"
	"strings"

	"clanwatch/internal/api"
	"clanwatch/internal/constants"
	"clanwatch/internal/domain"
)

// ownRaceClan finds the own clan's entry in the race payload. It usually is
// the main "clan" object, but defensively also checks the clans array.
func ownRaceClan(rr *api.CurrentRiverRace, myTag string) api.RaceClan {
	if domain.NormalizeTag(rr.Clan.Tag) == myTag {
		return rr.Clan
	}
	for _, c := range rr.Clans {
		if domain.NormalizeTag(c.Tag) == myTag {
			return c
		}
	}
	return rr.Clan
}

// OpenDecksOverview lists who still has attacks open today. Players with
// remaining attacks sort by (remaining desc, used asc, name asc); finished
// players follow, name ascending.
func (r *Renderer) OpenDecksOverview(rr *api.CurrentRiverRace, myTag string) string {
	myTag = domain.NormalizeTag(myTag)
	my := ownRaceClan(rr, myTag)

	myName := my.Name
	if myName == "" {
		myName = "Unser Clan"
	}

	type row struct {
		remaining int
		used      int
		name      string
	}
	rows := make([]row, 0, len(my.Participants))
	totalRemaining := 0
	for _, p := range my.Participants {
		remaining := constants.MaxDecksPerDay - p.DecksUsedToday
		if remaining < 0 {
			remaining = 0
		}
		totalRemaining += remaining
		rows = append(rows, row{remaining: remaining, used: p.DecksUsedToday, name: p.Name})
	}

	var open, done []row
	for _, rw := range rows {
		if rw.remaining > 0 {
			open = append(open, rw)
		} else {
			done = append(done, rw)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		if open[i].remaining != open[j].remaining {
			return open[i].remaining > open[j].remaining
		}
		if open[i].used != open[j].used {
			return open[i].used < open[j].used
		}
		return strings.ToLower(open[i].name) < strings.ToLower(open[j].name)
	})
	sort.SliceStable(done, func(i, j int) bool {
		return strings.ToLower(done[i].name) < strings.ToLower(done[j].name)
	})

	lines := []string{fmt.Sprintf("📋 %s – Offene Angriffe (heute)\n", myName)}
	for i, rw := range append(open, done...) {
		check := ""
		if rw.remaining == 0 && rw.used >= constants.MaxDecksPerDay {
			check = " ✅"
		}
		lines = append(lines, fmt.Sprintf("%2d. %s — %d offen (%d/%d)%s",
			i+1, rw.name, rw.remaining, rw.used, constants.MaxDecksPerDay, check))
	}

	var oppLines []string
	for _, c := range rr.Clans {
		tag := domain.NormalizeTag(c.Tag)
		if tag == "" || tag == myTag {
			continue
		}
		totalSlots := len(c.Participants) * constants.MaxDecksPerDay
		openSum := 0
		for _, p := range c.Participants {
			rem := constants.MaxDecksPerDay - p.DecksUsedToday
			if rem < 0 {
				rem = 0
			}
			openSum += rem
		}
		name := c.Name
		if name == "" {
			name = "?"
		}
		oppLines = append(oppLines, fmt.Sprintf("• %s — noch %d/%d offen", name, openSum, totalSlots))
	}
	if len(oppLines) > 0 {
		lines = append(lines, "\n🆚 Gegner (heute, kompakt)")
		lines = append(lines, oppLines...)
	}

	lines = append(lines, fmt.Sprintf("\nΣ offen heute: %d", totalRemaining))
	lines = append(lines, fmt.Sprintf("🕒 Datenstand: %s", r.now().In(r.loc).Format("15:04:05 MST")))

	return truncate(strings.Join(lines, "\n"))
}

// RiverScoreboard ranks all clans of the race. Mode "heute" uses today's
// period points, "gesamt" total fame; "auto" picks period points as soon as
// any clan has some.
func (r *Renderer) RiverScoreboard(rr *api.CurrentRiverRace, myTag, mode string) string {
	myTag = domain.NormalizeTag(myTag)

	type entry struct {
		tag    string
		name   string
		fame   int
		period int
	}
	var list []entry
	seen := make(map[string]bool)
	add := func(c api.RaceClan) {
		tag := domain.NormalizeTag(c.Tag)
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		name := c.Name
		if name == "" {
			name = "Unbekannt"
		}
		list = append(list, entry{tag: tag, name: name, fame: c.Fame, period: c.PeriodPoints})
	}
	add(rr.Clan)
	for _, c := range rr.Clans {
		add(c)
	}
	if len(list) == 0 {
		return "Keine River-Race-Daten verfügbar."
	}

	anyPeriod := false
	for _, e := range list {
		if e.period > 0 {
			anyPeriod = true
			break
		}
	}
	usePeriod := mode == "heute" || (mode != "gesamt" && anyPeriod)

	metric := func(e entry) int {
		if usePeriod {
			return e.period
		}
		return e.fame
	}

	my := list[0]
	for _, e := range list {
		if e.tag == myTag {
			my = e
			break
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		if metric(list[i]) != metric(list[j]) {
			return metric(list[i]) > metric(list[j])
		}
		return strings.ToLower(list[i].name) < strings.ToLower(list[j].name)
	})

	header := "🏁 <b>River-Race Punkte (gesamt)</b>\n"
	if usePeriod {
		header = "🏁 <b>River-Race Punkte (heute)</b>\n"
	}
	lines := []string{header}
	myVal := metric(my)
	for i, e := range list {
		val := metric(e)
		delta := val - myVal
		sign := "±"
		if delta > 0 {
			sign = "+"
		} else if delta < 0 {
			sign = "−"
			delta = -delta
		}
		star := ""
		if e.tag == my.tag {
			star = " ⭐"
		}
		lines = append(lines, fmt.Sprintf(
			"%2d. %s (#%s) — Punkte: <b>%d</b> | Heute: %d | Gesamt: %d | Δ zu uns: %s%d%s",
			i+1, e.name, e.tag, val, e.period, e.fame, sign, delta, star))
	}

	return truncate(strings.Join(lines, "\n"))
}
