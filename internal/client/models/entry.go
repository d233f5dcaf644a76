package models

import "time"

// GuestEntry is a journal entry authored before the user has an account.
// It is owned by the local ledger until migration confirms the server accepted
// it, at which point the local copy is purged.
type GuestEntry struct {
	ID        string
	MoodEmoji string
	MoodScore int
	Content   string
	CardColor string
	Tags      []string
	CreatedAt time.Time
	LocalDate string
}

// Entry is a server-owned journal entry as returned by the read endpoints.
type Entry struct {
	ID        string    `json:"id"`
	MoodEmoji string    `json:"mood_emoji"`
	MoodScore int       `json:"mood_score"`
	Content   string    `json:"content"`
	CardColor string    `json:"card_color"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// MigrationOutcome summarizes one migration run. It is computed per run and
// never persisted.
type MigrationOutcome struct {
	MigratedIDs []string
	FailedCount int
}

// Streak is the consecutive-days counter shown on the dashboard.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// HistoryPage is one page of the journal history feed.
type HistoryPage struct {
	Page    int     `json:"page"`
	Entries []Entry `json:"entries"`
	HasMore bool    `json:"has_more"`
}

// Insights aggregates mood statistics over a period.
type Insights struct {
	Period      string         `json:"period"`
	AverageMood float64        `json:"average_mood"`
	MoodCounts  map[string]int `json:"mood_counts"`
	TopTags     []string       `json:"top_tags"`
}
