package clanwar

import (
	"sort"
	"time"

	"clanwatch/internal/api"
	"clanwatch/internal/constants"
	"clanwatch/internal/domain"
)

// ScorePlayers ranks every clan member from most to least inactive under the
// given criterion. The composite weighs current war performance against a
// historical expectation, donation behavior, trophy standing and elapsed
// offline time.
//
// Members absent from the current war roster score as fully inactive this
// period; members without history fall back to flat baselines so fresh
// recruits are not punished against an expectation they never had a chance to
// build.
func ScorePlayers(
	members *api.MemberList,
	rr *api.CurrentRiverRace,
	history map[string]*domain.PlayerAggregate,
	criterion domain.SortCriterion,
	now time.Time,
) []domain.PlayerActivityScore {
	if members == nil {
		return nil
	}

	current := make(map[string]api.RaceParticipant)
	if rr != nil {
		for _, p := range rr.Clan.Participants {
			current[domain.NormalizeTag(p.Tag)] = p
		}
	}

	scores := make([]domain.PlayerActivityScore, 0, len(members.Items))
	for _, m := range members.Items {
		tag := domain.NormalizeTag(m.Tag)
		part := current[tag]
		hist := history[tag]

		s := domain.PlayerActivityScore{
			Tag:          tag,
			Name:         m.Name,
			Role:         m.Role,
			Trophies:     m.Trophies,
			ClanRank:     m.ClanRank,
			CurrentFame:  part.Fame,
			CurrentDecks: part.DecksUsed,
			Donations:    m.Donations,
		}

		s.DonationScore = 1000 - float64(m.Donations)

		expectedAttacks := float64(2 * constants.MaxDecksPerDay)
		if hist != nil && hist.Wars > 0 {
			avg := 2 * float64(hist.TotalAttacks()) / float64(hist.Wars)
			if avg < expectedAttacks {
				expectedAttacks = avg
			}
		}
		s.WarAttackScore = (expectedAttacks - float64(part.DecksUsed)) * 100

		expectedFame := float64(constants.ExpectedFameDefault)
		if hist != nil && hist.Wars > 0 {
			avg := float64(hist.Fame) / float64(hist.Wars)
			if avg > constants.ExpectedFameCap {
				avg = constants.ExpectedFameCap
			}
			expectedFame = avg
		}
		s.WarPointsScore = expectedFame - float64(part.Fame)

		trophies := m.Trophies
		if trophies > constants.TrophyCeiling {
			trophies = constants.TrophyCeiling
		}
		s.TrophyScore = float64(m.ClanRank*10) + float64(constants.TrophyCeiling-trophies)/10

		if seen := domain.ParseGameTime(m.LastSeen); !seen.IsZero() {
			if d := now.Sub(seen); d > 0 {
				s.DaysOffline = d.Hours() / 24
			}
		}

		s.TotalScore = constants.WeightWarAttacks*s.WarAttackScore +
			constants.WeightWarPoints*s.WarPointsScore +
			constants.WeightDonations*s.DonationScore +
			constants.WeightDaysIdle*s.DaysOffline +
			constants.WeightTrophies*s.TrophyScore

		scores = append(scores, s)
	}

	// stable: ties keep the upstream member-list order
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].ComponentScore(criterion) > scores[j].ComponentScore(criterion)
	})

	return scores
}

// ParseCriterion maps a command argument to a criterion, defaulting to the
// composite score.
func ParseCriterion(arg string) domain.SortCriterion {
	switch domain.SortCriterion(arg) {
	case domain.ByDonations, domain.ByWarAttacks, domain.ByWarPoints, domain.ByTrophyRoad:
		return domain.SortCriterion(arg)
	default:
		return domain.ByTotal
	}
}
