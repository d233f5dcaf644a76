package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/services"
	"github.com/ahmetk3436/Daiyly-sub000/internal/common"
)

func (a *App) promptEntry() (services.EntryInput, error) {
	mood, err := getSimpleText(a.reader, "Mood emoji", os.Stdout)
	if err != nil {
		return services.EntryInput{}, err
	}

	scoreText, err := getSimpleText(a.reader, "Mood score (1-5)", os.Stdout)
	if err != nil {
		return services.EntryInput{}, err
	}
	score, err := strconv.Atoi(scoreText)
	if err != nil {
		return services.EntryInput{}, fmt.Errorf("mood score must be a number: %w", err)
	}

	content, err := GetMultiline(a.reader, "How was your day?", os.Stdout)
	if err != nil {
		return services.EntryInput{}, err
	}

	return services.EntryInput{MoodEmoji: mood, MoodScore: score, Content: content}, nil
}

// Save authors a new entry: into the guest ledger before sign-in, to the
// account afterwards.
func (a *App) Save(ctx context.Context) error {
	input, err := a.promptEntry()
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if a.isLoggedIn() {
		if _, err := a.journal.Save(ctx, input); err != nil {
			fmt.Println("Could not save entry:", err.Error())
			return err
		}
		fmt.Println("Saved")
		return nil
	}

	if _, err := a.journal.SaveGuest(ctx, input); err != nil {
		if errors.Is(err, common.ErrGuestLimitReached) {
			fmt.Println("Guest limit reached. Register or log in to keep journaling.")
		} else {
			fmt.Println("Could not save entry:", err.Error())
		}
		return err
	}

	remaining, err := a.journal.RemainingGuestSaves(ctx)
	if err == nil {
		fmt.Printf("Saved. %d guest entries left on this device.\n", remaining)
	} else {
		fmt.Println("Saved")
	}
	return nil
}

// List shows the guest entries stored on this device.
func (a *App) List(ctx context.Context) error {
	entries, err := a.journal.GuestEntries(ctx)
	if err != nil {
		fmt.Println("Could not list entries:", err.Error())
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No guest entries yet")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s %d  %s  %s\n", e.ID, e.MoodEmoji, e.MoodScore, e.LocalDate, e.Content)
	}
	return nil
}

// Edit rewrites a guest entry in place.
func (a *App) Edit(ctx context.Context, id string) error {
	input, err := a.promptEntry()
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	if err := a.journal.UpdateGuest(ctx, id, input); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("No such entry:", id)
		} else {
			fmt.Println("Could not update entry:", err.Error())
		}
		return err
	}
	fmt.Println("Updated")
	return nil
}

// Delete removes a guest entry. The guest save cap is not refunded.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.journal.DeleteGuest(ctx, id); err != nil {
		fmt.Println("Could not delete entry:", err.Error())
		return err
	}
	fmt.Println("Deleted")
	return nil
}

func staleTag(stale bool) string {
	if stale {
		return " (cached)"
	}
	return ""
}

// Dashboard shows the recent entries and the streak, from cache when offline.
func (a *App) Dashboard(ctx context.Context) error {
	entries, stale, err := a.reads.Recent(ctx)
	if err != nil {
		fmt.Println("Could not load dashboard:", err.Error())
		return err
	}
	fmt.Printf("Recent entries%s:\n", staleTag(stale))
	printEntries(entries)

	streak, stale, err := a.reads.Streak(ctx)
	if err != nil {
		fmt.Println("Could not load streak:", err.Error())
		return err
	}
	fmt.Printf("Streak%s: %d days (longest %d)\n", staleTag(stale), streak.Current, streak.Longest)
	return nil
}

// History shows one page of past entries.
func (a *App) History(ctx context.Context, page int) error {
	result, stale, err := a.reads.History(ctx, page)
	if err != nil {
		fmt.Println("Could not load history:", err.Error())
		return err
	}
	fmt.Printf("History, page %d%s:\n", result.Page, staleTag(stale))
	printEntries(result.Entries)
	if result.HasMore {
		fmt.Printf("More entries on page %d\n", result.Page+1)
	}
	return nil
}

// Insights shows the mood summary.
func (a *App) Insights(ctx context.Context) error {
	insights, stale, err := a.reads.Insights(ctx)
	if err != nil {
		fmt.Println("Could not load insights:", err.Error())
		return err
	}
	fmt.Printf("Insights (%s)%s:\n", insights.Period, staleTag(stale))
	fmt.Printf("  average mood: %.1f\n", insights.AverageMood)
	for mood, count := range insights.MoodCounts {
		fmt.Printf("  %s × %d\n", mood, count)
	}
	if len(insights.TopTags) > 0 {
		fmt.Println("  top tags:", insights.TopTags)
	}
	return nil
}

// Search looks for entries matching the query, scanning cached entries when
// the server is unreachable.
func (a *App) Search(ctx context.Context, query string) error {
	entries, stale, err := a.reads.Search(ctx, query)
	if err != nil {
		fmt.Println("Search failed:", err.Error())
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No matches")
		return nil
	}
	fmt.Printf("Matches%s:\n", staleTag(stale))
	printEntries(entries)
	return nil
}

func printEntries(entries []models.Entry) {
	if len(entries) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, e := range entries {
		fmt.Printf("  %s  %s %d  %s\n", e.CreatedAt.Format("2006-01-02"), e.MoodEmoji, e.MoodScore, e.Content)
	}
}
