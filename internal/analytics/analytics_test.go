package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionRate(t *testing.T) {
	t.Run("zero habits yields zero", func(t *testing.T) {
		assert.Equal(t, 0, CompletionRate(0, 15, 7))
	})

	t.Run("zero window yields zero", func(t *testing.T) {
		assert.Equal(t, 0, CompletionRate(3, 15, 0))
	})

	t.Run("rounds to nearest integer", func(t *testing.T) {
		// 15 of 21 slots = 71.43 -> 71
		assert.Equal(t, 71, CompletionRate(3, 15, 7))
	})

	t.Run("clamped to 100", func(t *testing.T) {
		assert.Equal(t, 100, CompletionRate(1, 10, 7))
	})

	t.Run("bounded for any non-negative input", func(t *testing.T) {
		for _, tc := range []struct{ habits, logs, days int }{
			{0, 0, 0}, {1, 0, 30}, {5, 200, 7}, {3, 3, 1},
		} {
			rate := CompletionRate(tc.habits, tc.logs, tc.days)
			assert.GreaterOrEqual(t, rate, 0)
			assert.LessOrEqual(t, rate, 100)
		}
	})

	t.Run("exact variant keeps the fraction", func(t *testing.T) {
		assert.InDelta(t, 71.428, CompletionRateExact(3, 15, 7), 0.001)
	})
}

func TestMeanMood(t *testing.T) {
	t.Run("empty set defaults to scale midpoint", func(t *testing.T) {
		assert.Equal(t, 3.0, MeanMood(nil))
		assert.Equal(t, 3.0, MeanMood([]int{}))
	})

	t.Run("arithmetic mean", func(t *testing.T) {
		assert.InDelta(t, 3.5, MeanMood([]int{3, 4}), 0.0001)
		assert.InDelta(t, 4.0, MeanMood([]int{4}), 0.0001)
	})
}

func TestStreakFromLogs(t *testing.T) {
	today := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int) string { return DayKey(today.AddDate(0, 0, -offset)) }

	t.Run("counts consecutive full days and stops at first gap", func(t *testing.T) {
		logs := map[string]int{
			day(0): 2,
			day(1): 2,
			day(2): 2,
			// day(3) incomplete
			day(4): 2,
		}
		assert.Equal(t, 3, StreakFromLogs(logs, 2, today))
	})

	t.Run("incomplete today does not break the streak", func(t *testing.T) {
		logs := map[string]int{
			day(1): 2,
			day(2): 2,
		}
		assert.Equal(t, 2, StreakFromLogs(logs, 2, today))
	})

	t.Run("incomplete yesterday ends the scan", func(t *testing.T) {
		logs := map[string]int{
			day(0): 2,
			day(1): 1,
			day(2): 2,
		}
		assert.Equal(t, 1, StreakFromLogs(logs, 2, today))
	})

	t.Run("no active habits yields zero", func(t *testing.T) {
		assert.Equal(t, 0, StreakFromLogs(map[string]int{day(0): 1}, 0, today))
	})
}

func TestBadgeProgress(t *testing.T) {
	t.Run("clamped at 100", func(t *testing.T) {
		assert.Equal(t, 100.0, BadgeProgress(15, 10))
	})

	t.Run("partial progress", func(t *testing.T) {
		assert.InDelta(t, 50.0, BadgeProgress(5, 10), 0.0001)
	})

	t.Run("earned boundary is inclusive and uncapped", func(t *testing.T) {
		assert.True(t, BadgeEarned(30, 30))
		assert.False(t, BadgeEarned(29, 30))
		assert.True(t, BadgeEarned(31, 30))
	})
}

func TestTopTags(t *testing.T) {
	lists := [][]string{
		{"gratitude", "work"},
		{"work", "family"},
		{"work", "gratitude", "sleep"},
	}

	top := TopTags(lists, 2)
	require.Len(t, top, 2)
	assert.Equal(t, TagCount{Tag: "work", Count: 3}, top[0])
	assert.Equal(t, TagCount{Tag: "gratitude", Count: 2}, top[1])

	assert.Empty(t, TopTags(nil, 5))
}

func TestMoodByWeek(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	points := []MoodPoint{
		{Date: now.AddDate(0, 0, -1), Mood: 4},
		{Date: now.AddDate(0, 0, -2), Mood: 2},
		{Date: now.AddDate(0, 0, -9), Mood: 5},
	}

	buckets := MoodByWeek(points, now)
	require.Len(t, buckets, 2)

	// Oldest bucket first, current week last.
	assert.Equal(t, 1, buckets[0].WeeksAgo)
	assert.InDelta(t, 5.0, buckets[0].AvgMood, 0.0001)
	assert.Equal(t, 0, buckets[1].WeeksAgo)
	assert.InDelta(t, 3.0, buckets[1].AvgMood, 0.0001)
	assert.Equal(t, 2, buckets[1].Entries)

	assert.Empty(t, MoodByWeek(nil, now))
}

func TestGoalVelocity(t *testing.T) {
	assert.Equal(t, 0.0, GoalVelocity(5, 0))
	assert.InDelta(t, 2.0, GoalVelocity(2, 30), 0.0001)
	assert.InDelta(t, 1.0, GoalVelocity(3, 90), 0.0001)
}

func TestMoodImpact(t *testing.T) {
	assert.Equal(t, 0.0, MoodImpact(nil))
	assert.InDelta(t, 1.5, MoodImpact([]int{1, 2}), 0.0001)
	assert.InDelta(t, -1.0, MoodImpact([]int{-1}), 0.0001)
}
