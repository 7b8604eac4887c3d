package clanwar

import (
	"sort"

	"clanwatch/internal/api"
	"clanwatch/internal/constants"
	"clanwatch/internal/domain"
)

// ScoutTarget pairs the scored candidate with its raw war-roster entry, which
// the detail report still needs for per-player breakdowns.
type ScoutTarget struct {
	Candidate domain.OpponentCandidate
	Race      api.RaceClan
}

// PickOpponent scores every opposing clan of the current river race and
// returns the most active one, or nil when there are no opponents at all.
//
// When every candidate scores exactly zero the clan with the most
// participants wins: a larger sample beats a tied-zero score.
func PickOpponent(rr *api.CurrentRiverRace, ownTag string) *ScoutTarget {
	if rr == nil {
		return nil
	}
	myTag := domain.NormalizeTag(ownTag)

	all := rr.Clans
	if own := rr.Clan; domain.NormalizeTag(own.Tag) != myTag && own.Tag != "" {
		all = append(append([]api.RaceClan{}, all...), own)
	}

	var targets []ScoutTarget
	for _, c := range all {
		tag := domain.NormalizeTag(c.Tag)
		if tag == "" || tag == myTag {
			continue
		}

		active := 0
		totalDecks := 0
		totalToday := 0
		for _, p := range c.Participants {
			if p.Fame > 0 {
				active++
			}
			totalDecks += p.DecksUsed
			totalToday += p.DecksUsedToday
		}

		cand := domain.OpponentCandidate{
			Tag:             tag,
			Name:            c.Name,
			Fame:            c.Fame,
			PeriodPoints:    c.PeriodPoints,
			Participants:    len(c.Participants),
			ActivePlayers:   active,
			TotalDecksUsed:  totalDecks,
			TotalDecksToday: totalToday,
			ActivityScore: 0.4*float64(c.Fame) +
				0.4*float64(c.PeriodPoints) +
				50*float64(active) +
				10*float64(totalDecks),
		}
		cand.TotalMembers = cand.Participants

		targets = append(targets, ScoutTarget{Candidate: cand, Race: c})
	}

	if len(targets) == 0 {
		return nil
	}

	best := &targets[0]
	for i := range targets {
		if targets[i].Candidate.ActivityScore > best.Candidate.ActivityScore {
			best = &targets[i]
		}
	}

	if best.Candidate.ActivityScore == 0 {
		for i := range targets {
			if targets[i].Candidate.Participants > best.Candidate.Participants {
				best = &targets[i]
			}
		}
	}

	return best
}

// AnalyzeOpponentHistory extracts every period of the river race log where
// the given clan appears, newest first by the parsed period timestamp
// (entries without a parseable date sort last), capped at
// OpponentHistoryMaxWeeks.
func AnalyzeOpponentHistory(opponentTag string, rlog *api.RiverRaceLog) []domain.OpponentWarWeek {
	if rlog == nil {
		return nil
	}
	tag := domain.NormalizeTag(opponentTag)

	var weeks []domain.OpponentWarWeek
	for _, entry := range rlog.Items {
		for _, standing := range entry.Standings {
			if domain.NormalizeTag(standing.Clan.Tag) != tag {
				continue
			}

			participants := standing.Clan.Participants
			active := 0
			totalDecks := 0
			for _, p := range participants {
				if p.DecksUsed > 0 {
					active++
				}
				totalDecks += p.DecksUsed
			}

			week := domain.OpponentWarWeek{
				SeasonID:           entry.SeasonID,
				SectionIndex:       entry.SectionIndex,
				Created:            domain.ParseGameTime(entry.CreatedDate),
				Rank:               standing.Rank,
				TrophyChange:       standing.TrophyChange,
				Fame:               standing.Clan.Fame,
				TotalParticipants:  len(participants),
				ActiveParticipants: active,
				TotalDecksUsed:     totalDecks,
			}
			if week.TotalParticipants > 0 {
				week.ParticipationRate = float64(active) / float64(week.TotalParticipants)
			}
			if active > 0 {
				week.DecksPerActive = float64(totalDecks) / float64(active)
			}

			weeks = append(weeks, week)
			break
		}
	}

	sort.SliceStable(weeks, func(i, j int) bool {
		a, b := weeks[i].Created, weeks[j].Created
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.After(b)
	})

	if len(weeks) > constants.OpponentHistoryMaxWeeks {
		weeks = weeks[:constants.OpponentHistoryMaxWeeks]
	}
	return weeks
}
