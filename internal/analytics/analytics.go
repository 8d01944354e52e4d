// Package analytics holds the pure aggregation math shared by the insight
// and gamification handlers. Every function returns a defined default for
// empty input: no NaN, no division by zero, no panics.
package analytics

import (
	"math"
	"sort"
	"time"
)

const DayFormat = "2006-01-02"

// DayKey collapses a timestamp to its calendar-day bucket.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// CompletionRate computes the percentage of habit-day slots completed over a
// window, rounded to the nearest integer. Zero habits or a zero-length
// window yields 0.
func CompletionRate(activeHabits, completedLogs, windowDays int) int {
	return int(math.Round(CompletionRateExact(activeHabits, completedLogs, windowDays)))
}

// CompletionRateExact is the unrounded variant used by premium reports.
func CompletionRateExact(activeHabits, completedLogs, windowDays int) float64 {
	slots := activeHabits * windowDays
	if slots <= 0 {
		return 0
	}
	rate := float64(completedLogs) / float64(slots) * 100
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// MeanMood averages the given mood values on the 1-5 scale. An empty set
// returns exactly 3, the scale midpoint; downstream prompt text embeds the
// value directly and relies on this default.
func MeanMood(moods []int) float64 {
	if len(moods) == 0 {
		return 3
	}
	sum := 0
	for _, m := range moods {
		sum += m
	}
	return float64(sum) / float64(len(moods))
}

// StreakFromLogs scans backward from today counting consecutive days where
// the completed-log count covers every active habit. Today is exempt from
// breaking the streak so a day still in progress does not zero it out.
func StreakFromLogs(completedByDay map[string]int, activeHabits int, today time.Time) int {
	if activeHabits <= 0 {
		return 0
	}

	streak := 0
	for offset := 0; ; offset++ {
		day := DayKey(today.AddDate(0, 0, -offset))
		if completedByDay[day] >= activeHabits {
			streak++
			continue
		}
		if offset == 0 {
			continue
		}
		break
	}
	return streak
}

// BadgeProgress returns the capped completion percentage toward a threshold.
func BadgeProgress(current, threshold int) float64 {
	if threshold <= 0 {
		return 100
	}
	progress := float64(current) / float64(threshold) * 100
	if progress > 100 {
		return 100
	}
	if progress < 0 {
		return 0
	}
	return progress
}

// BadgeEarned uses the uncapped comparison, not the capped percentage, so a
// value exactly at the threshold still earns the badge.
func BadgeEarned(current, threshold int) bool {
	return current >= threshold
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TopTags flattens tag lists into a frequency count and returns the top K,
// most frequent first. Ties break alphabetically for stable output.
func TopTags(tagLists [][]string, k int) []TagCount {
	counts := make(map[string]int)
	for _, tags := range tagLists {
		for _, tag := range tags {
			if tag != "" {
				counts[tag]++
			}
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, TagCount{Tag: tag, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})

	if k > 0 && len(result) > k {
		result = result[:k]
	}
	return result
}

type MoodPoint struct {
	Date time.Time
	Mood int
}

type WeekBucket struct {
	WeeksAgo int     `json:"weeks_ago"`
	AvgMood  float64 `json:"avg_mood"`
	Entries  int     `json:"entries"`
}

// MoodByWeek buckets mood points by whole-week offset from now (offset 0 is
// the current week) and averages each bucket. Buckets are ordered oldest
// first, ending with offset 0.
func MoodByWeek(points []MoodPoint, now time.Time) []WeekBucket {
	sums := make(map[int]int)
	counts := make(map[int]int)
	for _, p := range points {
		days := int(now.Sub(p.Date).Hours() / 24)
		if days < 0 {
			days = 0
		}
		offset := days / 7
		sums[offset] += p.Mood
		counts[offset]++
	}

	buckets := make([]WeekBucket, 0, len(sums))
	for offset, sum := range sums {
		buckets = append(buckets, WeekBucket{
			WeeksAgo: offset,
			AvgMood:  float64(sum) / float64(counts[offset]),
			Entries:  counts[offset],
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].WeeksAgo > buckets[j].WeeksAgo
	})
	return buckets
}

// GoalVelocity reports goals completed per 30-day month over a window,
// unrounded; rounding happens at display time only.
func GoalVelocity(completedInWindow, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}
	return float64(completedInWindow) / (float64(windowDays) / 30)
}

// MoodImpact averages the mood_after minus mood_before deltas of mindfulness
// practices; no practices means 0.
func MoodImpact(deltas []int) float64 {
	if len(deltas) == 0 {
		return 0
	}
	sum := 0
	for _, d := range deltas {
		sum += d
	}
	return float64(sum) / float64(len(deltas))
}
