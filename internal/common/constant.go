// Package common contains shared constants and sentinel errors used across
// the client components.
package common

// GuestEntryLimit caps how many journal entries may be authored before the
// user has to create an account. The limit is enforced by the journal
// service, not by the ledger itself.
const GuestEntryLimit = 3

// MoodScoreMin and MoodScoreMax bound the discrete mood scale.
const (
	MoodScoreMin = 1
	MoodScoreMax = 5
)

// LocalDateLayout is the calendar-day stamp recorded on locally authored
// entries (the device's local day, not UTC).
const LocalDateLayout = "2006-01-02"
