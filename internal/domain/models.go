package domain

import "time"

// PlayerAggregate accumulates one player's numbers across the river race log.
// Keyed by normalized tag (or FallbackKey); mutated during the fold, read-only
// afterwards.
type PlayerAggregate struct {
	Name         string
	Fame         int
	RepairPoints int
	DecksUsed    int
	BoatAttacks  int
	Wars         int
	FirstSeen    time.Time
	LastSeen     time.Time
}

// TotalPoints is fame plus repair points, the metric war reports rank by.
func (a *PlayerAggregate) TotalPoints() int { return a.Fame + a.RepairPoints }

// TotalAttacks is deck plus boat attacks.
func (a *PlayerAggregate) TotalAttacks() int { return a.DecksUsed + a.BoatAttacks }

// SortCriterion selects which score component ranks the inactivity report.
type SortCriterion string

const (
	ByTotal      SortCriterion = "gesamt"
	ByDonations  SortCriterion = "spenden"
	ByWarAttacks SortCriterion = "kriegsangriffe"
	ByWarPoints  SortCriterion = "kriegspunkte"
	ByTrophyRoad SortCriterion = "trophäenpfad"
)

// PlayerActivityScore is the per-member result of the inactivity heuristic,
// computed fresh per report. Higher component values mean more inactive.
type PlayerActivityScore struct {
	Tag      string
	Name     string
	Role     string
	Trophies int
	ClanRank int

	CurrentFame  int
	CurrentDecks int
	Donations    int
	DaysOffline  float64

	DonationScore  float64
	WarAttackScore float64
	WarPointsScore float64
	TrophyScore    float64
	TotalScore     float64
}

// ComponentScore returns the score the given criterion sorts by.
func (p *PlayerActivityScore) ComponentScore(c SortCriterion) float64 {
	switch c {
	case ByDonations:
		return p.DonationScore
	case ByWarAttacks:
		return p.WarAttackScore
	case ByWarPoints:
		return p.WarPointsScore
	case ByTrophyRoad:
		return p.TrophyScore
	default:
		return p.TotalScore
	}
}

// OpponentCandidate is one enemy clan of the current river race scored for
// scouting.
type OpponentCandidate struct {
	Tag             string
	Name            string
	Fame            int
	PeriodPoints    int
	Participants    int
	ActivePlayers   int
	TotalDecksUsed  int
	TotalDecksToday int
	ActivityScore   float64

	// TotalMembers comes from a best-effort roster fetch and falls back to
	// the war-roster participant count.
	TotalMembers int
}

// OpponentWarWeek is one historical river race period of the scouted clan.
type OpponentWarWeek struct {
	SeasonID           int
	SectionIndex       int
	Created            time.Time
	Rank               int
	TrophyChange       int
	Fame               int
	TotalParticipants  int
	ActiveParticipants int
	ParticipationRate  float64
	TotalDecksUsed     int
	DecksPerActive     float64
}
