package insights

import (
	"fmt"
	"strings"

	"github.com/Krosebrook/lifesync-sub000/internal/ai"
	"github.com/Krosebrook/lifesync-sub000/internal/analytics"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/journal"
)

// Per-handler prompt budgets, in characters of journal content per entry.
// Premium reports get the most raw material; quick suggestions the least.
const (
	moodReportBudget     = 300
	coachingBudget       = 200
	premiumBudget        = 400
	journalSuggestBudget = 150
	weeklySummaryBudget  = 100
)

func entriesBlock(entries []journal.JournalEntry, budget int) string {
	var sb strings.Builder
	for _, e := range entries {
		mood := "unrated"
		if e.Mood != nil {
			mood = fmt.Sprintf("%d/5", *e.Mood)
		}
		fmt.Fprintf(&sb, "[%s] mood %s: %s\n",
			e.EntryDate.Format(analytics.DayFormat), mood, ai.Snippet(e.Content, budget))
	}
	if sb.Len() == 0 {
		return "No journal entries in this period.\n"
	}
	return sb.String()
}

func moodReportPrompt(period string, avgMood float64, buckets []analytics.WeekBucket, topTags []analytics.TagCount, entries []journal.JournalEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a mood report for the past %s.\n\n", period)
	fmt.Fprintf(&sb, "Average mood: %.1f/5\n", avgMood)
	if len(buckets) > 0 {
		sb.WriteString("Weekly averages (oldest first):\n")
		for _, b := range buckets {
			fmt.Fprintf(&sb, "- %d weeks ago: %.1f/5 over %d entries\n", b.WeeksAgo, b.AvgMood, b.Entries)
		}
	}
	if len(topTags) > 0 {
		sb.WriteString("Most frequent journal themes:\n")
		for _, tc := range topTags {
			fmt.Fprintf(&sb, "- %s (%d)\n", tc.Tag, tc.Count)
		}
	}
	sb.WriteString("\nRecent journal entries:\n")
	sb.WriteString(entriesBlock(entries, moodReportBudget))
	return sb.String()
}

type coachingMetrics struct {
	CompletionRate int
	MaxStreak      int
	GoalVelocity   float64
	MeanMood       float64
	MoodImpact     float64
	ActiveHabits   int
	ActiveGoals    int
}

func coachingPrompt(m coachingMetrics, topTags []analytics.TagCount, entries []journal.JournalEntry) string {
	var sb strings.Builder
	sb.WriteString("Coach this user based on their last 30 days:\n\n")
	fmt.Fprintf(&sb, "Habit completion rate: %d%%\n", m.CompletionRate)
	fmt.Fprintf(&sb, "Longest current streak: %d days\n", m.MaxStreak)
	fmt.Fprintf(&sb, "Active habits: %d, active goals: %d\n", m.ActiveHabits, m.ActiveGoals)
	fmt.Fprintf(&sb, "Goal velocity: %.2f goals/month\n", m.GoalVelocity)
	fmt.Fprintf(&sb, "Average mood: %.1f/5\n", m.MeanMood)
	fmt.Fprintf(&sb, "Mindfulness mood impact: %+.2f\n", m.MoodImpact)
	if len(topTags) > 0 {
		sb.WriteString("Journal themes: ")
		names := make([]string, 0, len(topTags))
		for _, tc := range topTags {
			names = append(names, tc.Tag)
		}
		sb.WriteString(strings.Join(names, ", "))
		sb.WriteString("\n")
	}
	sb.WriteString("\nRecent journal entries:\n")
	sb.WriteString(entriesBlock(entries, coachingBudget))
	return sb.String()
}

func premiumPrompt(period string, exactRate float64, m coachingMetrics, buckets []analytics.WeekBucket, entries []journal.JournalEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Produce an in-depth coaching report covering the past %s.\n\n", period)
	fmt.Fprintf(&sb, "Habit completion rate: %.2f%%\n", exactRate)
	fmt.Fprintf(&sb, "Longest current streak: %d days\n", m.MaxStreak)
	fmt.Fprintf(&sb, "Goal velocity: %.2f goals/month\n", m.GoalVelocity)
	fmt.Fprintf(&sb, "Average mood: %.1f/5\n", m.MeanMood)
	fmt.Fprintf(&sb, "Mindfulness mood impact: %+.2f\n", m.MoodImpact)
	if len(buckets) > 0 {
		sb.WriteString("Mood trend by week (oldest first):\n")
		for _, b := range buckets {
			fmt.Fprintf(&sb, "- %d weeks ago: %.1f/5\n", b.WeeksAgo, b.AvgMood)
		}
	}
	sb.WriteString("\nJournal entries:\n")
	sb.WriteString(entriesBlock(entries, premiumBudget))
	return sb.String()
}

func weeklySummaryPrompt(summary *WeeklySummary, entries []journal.JournalEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summarize this user's week (%s to %s):\n\n",
		summary.WeekStart.Format(analytics.DayFormat), summary.WeekEnd.Format(analytics.DayFormat))
	fmt.Fprintf(&sb, "Habit completion: %d%%\n", summary.HabitCompletion)
	fmt.Fprintf(&sb, "Average mood: %.1f/5\n", summary.AvgMood)
	fmt.Fprintf(&sb, "Journal entries: %d\n", summary.JournalEntries)
	fmt.Fprintf(&sb, "Mindfulness sessions: %d\n", summary.Sessions)
	fmt.Fprintf(&sb, "Goals completed: %d\n", summary.GoalsCompleted)
	sb.WriteString("\nJournal highlights:\n")
	sb.WriteString(entriesBlock(entries, weeklySummaryBudget))
	return sb.String()
}

func goalSuggestionsPrompt(data *userData) string {
	var sb strings.Builder
	sb.WriteString("Suggest 3 new personal goals for this user.\n\nCurrent goals:\n")
	if len(data.Goals) == 0 {
		sb.WriteString("(none yet)\n")
	}
	for _, g := range data.Goals {
		fmt.Fprintf(&sb, "- %s [%s, %d%%]\n", g.Title, g.Status, g.Progress)
	}
	sb.WriteString("\nActive habits:\n")
	if len(data.Habits) == 0 {
		sb.WriteString("(none yet)\n")
	}
	for _, h := range data.Habits {
		fmt.Fprintf(&sb, "- %s (%s)\n", h.Name, h.Category)
	}
	return sb.String()
}

func habitSuggestionsPrompt(data *userData) string {
	var sb strings.Builder
	sb.WriteString("Suggest 3 new daily habits for this user. Avoid duplicating existing habits.\n\nExisting habits:\n")
	if len(data.Habits) == 0 {
		sb.WriteString("(none yet)\n")
	}
	for _, h := range data.Habits {
		fmt.Fprintf(&sb, "- %s (%s), streak %d\n", h.Name, h.Category, h.CurrentStreak)
	}
	sb.WriteString("\nGoals they are working toward:\n")
	if len(data.Goals) == 0 {
		sb.WriteString("(none yet)\n")
	}
	for _, g := range data.Goals {
		fmt.Fprintf(&sb, "- %s [%s]\n", g.Title, g.Status)
	}
	return sb.String()
}

func journalSuggestionsPrompt(entries []journal.JournalEntry) string {
	var sb strings.Builder
	sb.WriteString("Based on these journal entries, suggest 3 goals that address what the writer is struggling with or hoping for:\n\n")
	sb.WriteString(entriesBlock(entries, journalSuggestBudget))
	return sb.String()
}
