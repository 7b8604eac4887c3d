package constants

import "time"

const (
	ExternalAPITimeout = 15 * time.Second
	RequestTimeout     = 60 * time.Second
	ShutdownTimeout    = 5 * time.Second
)

// River race game rules.
const (
	MaxDecksPerDay = 4
	MaxClanMembers = 50
)

// Fresh-fetch staleness heuristic, see internal/api/fresh.go.
const (
	DefaultFreshAttempts   = 2
	MaxFreshAttempts       = 3
	StaleUntouchedFraction = 0.70
	StaleEarliestLocalHour = 17
)

const (
	DefaultDonationsLimit   = 10
	DefaultWarHistoryLimit  = 50
	OpponentWarHistoryLimit = 80
	OpponentHistoryMaxWeeks = 20
	OpponentHistoryTable    = 15
	InactiveReportLimit     = 10
	ProgressBarWidth        = 18
)

// Telegram hard-caps a message at 4096 characters; every rendered block is
// cut to this as the very last step.
const MaxMessageLength = 4096

// Inactivity score weights and baselines, see internal/clanwar/inactivity.go.
const (
	WeightWarAttacks = 0.35
	WeightWarPoints  = 0.30
	WeightDonations  = 0.20
	WeightDaysIdle   = 5.0
	WeightTrophies   = 0.05

	ExpectedFameCap     = 2000
	ExpectedFameDefault = 800
	TrophyCeiling       = 10000
)
