// Package clanwar holds the pure analysis over fetched river race payloads:
// historical aggregation, inactivity scoring and opponent scouting. Nothing
// here does I/O; every function is deterministic over its input.
package clanwar

import (
	"clanwatch/internal/api"
	"clanwatch/internal/domain"
)

// AggregateWarHistory folds the river race log into one accumulator per own
// player. Periods where the own clan has no standing are skipped; players
// without a tag fall back to the collision-prone NON-<name> key.
func AggregateWarHistory(rlog *api.RiverRaceLog, ownTag string) map[string]*domain.PlayerAggregate {
	myTag := domain.NormalizeTag(ownTag)
	acc := make(map[string]*domain.PlayerAggregate)

	if rlog == nil {
		return acc
	}

	for _, entry := range rlog.Items {
		at := domain.FirstGameTime(entry.CreatedDate, entry.EndTime, entry.FinishedTime, entry.UpdatedTime)

		for _, standing := range entry.Standings {
			if domain.NormalizeTag(standing.Clan.Tag) != myTag {
				continue
			}

			for _, p := range standing.Clan.Participants {
				key := domain.NormalizeTag(p.Tag)
				if key == "" {
					key = domain.FallbackKey(p.Name)
				}

				e, ok := acc[key]
				if !ok {
					e = &domain.PlayerAggregate{Name: p.Name, FirstSeen: at, LastSeen: at}
					acc[key] = e
				}

				// last value wins
				if p.Name != "" {
					e.Name = p.Name
				}
				e.Fame += p.Fame
				e.RepairPoints += p.RepairPoints
				e.DecksUsed += p.DecksUsed
				e.BoatAttacks += p.BoatAttacks
				e.Wars++

				if !at.IsZero() {
					if e.FirstSeen.IsZero() || at.Before(e.FirstSeen) {
						e.FirstSeen = at
					}
					if e.LastSeen.IsZero() || at.After(e.LastSeen) {
						e.LastSeen = at
					}
				}
			}
		}
	}

	return acc
}
