package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/ai"
	"github.com/Krosebrook/lifesync-sub000/internal/analytics"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/goals"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoData        = errors.New("not enough data yet, keep logging and try again soon")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidDate   = errors.New("date must be formatted YYYY-MM-DD")
)

type generator interface {
	Generate(ctx context.Context, prompt string, schema ai.Schema, out any) error
}

type InsightService struct {
	db      *gorm.DB
	fetcher *dataFetcher
	ai      generator
}

func NewInsightService(db *gorm.DB, client *ai.Client) *InsightService {
	return &InsightService{db: db, fetcher: &dataFetcher{db: db}, ai: client}
}

func periodDays(period string, allowed map[string]int, fallback string) (int, string, error) {
	if period == "" {
		period = fallback
	}
	days, ok := allowed[period]
	if !ok {
		return 0, "", ErrInvalidPeriod
	}
	return days, period, nil
}

// MoodReportResult pairs the AI narrative with the metrics that fed it.
type MoodReportResult struct {
	Report     MoodReport             `json:"report"`
	AvgMood    float64                `json:"avg_mood"`
	MoodByWeek []analytics.WeekBucket `json:"mood_by_week"`
	TopThemes  []analytics.TagCount   `json:"top_themes"`
	Entries    int                    `json:"entries"`
	Period     string                 `json:"period"`
}

func (s *InsightService) GenerateMoodReport(ctx context.Context, userID uuid.UUID, period string) (*MoodReportResult, error) {
	days, period, err := periodDays(period, map[string]int{"week": 7, "month": 30}, "week")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	data, err := s.fetcher.fetch(ctx, userID, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, err
	}
	if len(data.Entries) == 0 {
		return nil, ErrNoData
	}

	var points []analytics.MoodPoint
	for _, e := range data.Entries {
		if e.Mood != nil {
			points = append(points, analytics.MoodPoint{Date: e.EntryDate, Mood: *e.Mood})
		}
	}

	result := MoodReportResult{
		AvgMood:    analytics.MeanMood(data.moods()),
		MoodByWeek: analytics.MoodByWeek(points, now),
		TopThemes:  analytics.TopTags(data.tagLists(), 5),
		Entries:    len(data.Entries),
		Period:     period,
	}

	prompt := moodReportPrompt(period, result.AvgMood, result.MoodByWeek, result.TopThemes, data.Entries)
	if err := s.ai.Generate(ctx, prompt, moodReportSchema, &result.Report); err != nil {
		return nil, err
	}
	return &result, nil
}

// CoachingResult pairs the coaching narrative with the cross-domain metrics.
type CoachingResult struct {
	Coaching CoachingReport  `json:"coaching"`
	Metrics  coachingMetrics `json:"-"`

	CompletionRate int     `json:"completion_rate"`
	MaxStreak      int     `json:"max_streak"`
	GoalVelocity   float64 `json:"goal_velocity"`
	MeanMood       float64 `json:"mean_mood"`
	MoodImpact     float64 `json:"mood_impact"`
}

func (s *InsightService) GeneratePersonalizedCoaching(ctx context.Context, userID uuid.UUID) (*CoachingResult, error) {
	now := time.Now().UTC()
	data, err := s.fetcher.fetch(ctx, userID, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}
	if len(data.Habits) == 0 && len(data.Entries) == 0 && len(data.Goals) == 0 {
		return nil, ErrNoData
	}

	activeGoals := 0
	for _, g := range data.Goals {
		if g.Status == goals.StatusActive {
			activeGoals++
		}
	}

	metrics := coachingMetrics{
		CompletionRate: analytics.CompletionRate(len(data.Habits), len(data.Logs), 30),
		MaxStreak:      data.maxStreak(),
		GoalVelocity:   analytics.GoalVelocity(data.goalsCompletedSince(now.AddDate(0, 0, -30)), 30),
		MeanMood:       analytics.MeanMood(data.moods()),
		MoodImpact:     analytics.MoodImpact(data.moodDeltas()),
		ActiveHabits:   len(data.Habits),
		ActiveGoals:    activeGoals,
	}

	result := CoachingResult{
		Metrics:        metrics,
		CompletionRate: metrics.CompletionRate,
		MaxStreak:      metrics.MaxStreak,
		GoalVelocity:   metrics.GoalVelocity,
		MeanMood:       metrics.MeanMood,
		MoodImpact:     metrics.MoodImpact,
	}

	prompt := coachingPrompt(metrics, analytics.TopTags(data.tagLists(), 4), data.Entries)
	if err := s.ai.Generate(ctx, prompt, coachingSchema, &result.Coaching); err != nil {
		return nil, err
	}
	return &result, nil
}

// PremiumResult carries the long-form report plus exact (unrounded) metrics.
type PremiumResult struct {
	Report         PremiumReport `json:"report"`
	CompletionRate float64       `json:"completion_rate"`
	Period         string        `json:"period"`
}

func (s *InsightService) GeneratePremiumReport(ctx context.Context, userID uuid.UUID, period string) (*PremiumResult, error) {
	days, period, err := periodDays(period, map[string]int{"month": 30, "quarter": 90, "year": 365}, "month")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	data, err := s.fetcher.fetch(ctx, userID, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, err
	}
	if len(data.Habits) == 0 && len(data.Entries) == 0 && len(data.Goals) == 0 {
		return nil, ErrNoData
	}

	exactRate := analytics.CompletionRateExact(len(data.Habits), len(data.Logs), days)
	metrics := coachingMetrics{
		MaxStreak:    data.maxStreak(),
		GoalVelocity: analytics.GoalVelocity(data.goalsCompletedSince(now.AddDate(0, 0, -days)), days),
		MeanMood:     analytics.MeanMood(data.moods()),
		MoodImpact:   analytics.MoodImpact(data.moodDeltas()),
	}

	var points []analytics.MoodPoint
	for _, e := range data.Entries {
		if e.Mood != nil {
			points = append(points, analytics.MoodPoint{Date: e.EntryDate, Mood: *e.Mood})
		}
	}

	result := PremiumResult{CompletionRate: exactRate, Period: period}
	prompt := premiumPrompt(period, exactRate, metrics, analytics.MoodByWeek(points, now), data.Entries)
	if err := s.ai.Generate(ctx, prompt, premiumReportSchema, &result.Report); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateWeeklySummary computes the week's metrics, asks for a narrative,
// and upserts the row keyed (user, week_start) so regeneration replaces.
func (s *InsightService) GenerateWeeklySummary(ctx context.Context, userID uuid.UUID, req WeeklySummaryRequest) (*WeeklySummary, error) {
	weekStart, err := time.Parse(analytics.DayFormat, req.WeekStart)
	if err != nil {
		return nil, ErrInvalidDate
	}
	weekEnd := weekStart.AddDate(0, 0, 6)
	if req.WeekEnd != "" {
		weekEnd, err = time.Parse(analytics.DayFormat, req.WeekEnd)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	data, err := s.fetcher.fetch(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	summary := WeeklySummary{
		ID:              uuid.New(),
		UserID:          userID,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		HabitCompletion: analytics.CompletionRate(len(data.Habits), len(data.Logs), 7),
		AvgMood:         analytics.MeanMood(data.moods()),
		JournalEntries:  len(data.Entries),
		Sessions:        len(data.Practices),
		GoalsCompleted:  data.goalsCompletedSince(weekStart),
	}

	var narrative WeeklyNarrative
	prompt := weeklySummaryPrompt(&summary, data.Entries)
	if err := s.ai.Generate(ctx, prompt, weeklyNarrativeSchema, &narrative); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(narrative)
	if err != nil {
		return nil, fmt.Errorf("failed to encode narrative: %w", err)
	}
	summary.Narrative = raw

	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"week_end":         summary.WeekEnd,
			"habit_completion": summary.HabitCompletion,
			"avg_mood":         summary.AvgMood,
			"journal_entries":  summary.JournalEntries,
			"sessions":         summary.Sessions,
			"goals_completed":  summary.GoalsCompleted,
			"narrative":        summary.Narrative,
			"updated_at":       time.Now().UTC(),
		}),
	}).Create(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to store weekly summary: %w", err)
	}

	var stored WeeklySummary
	err = s.db.Where("user_id = ? AND week_start = ?", userID, weekStart).First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *InsightService) ListWeeklySummaries(userID uuid.UUID, limit int) ([]WeeklySummary, error) {
	if limit <= 0 || limit > 52 {
		limit = 12
	}
	var summaries []WeeklySummary
	err := s.db.Where("user_id = ?", userID).
		Order("week_start DESC").
		Limit(limit).
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *InsightService) SuggestGoals(ctx context.Context, userID uuid.UUID) ([]GoalSuggestion, error) {
	now := time.Now().UTC()
	data, err := s.fetcher.fetch(ctx, userID, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}

	var reply goalSuggestionsReply
	if err := s.ai.Generate(ctx, goalSuggestionsPrompt(data), goalSuggestionsSchema, &reply); err != nil {
		return nil, err
	}
	if reply.Suggestions == nil {
		reply.Suggestions = []GoalSuggestion{}
	}
	return reply.Suggestions, nil
}

func (s *InsightService) SuggestHabits(ctx context.Context, userID uuid.UUID) ([]HabitSuggestion, error) {
	now := time.Now().UTC()
	data, err := s.fetcher.fetch(ctx, userID, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}

	var reply habitSuggestionsReply
	if err := s.ai.Generate(ctx, habitSuggestionsPrompt(data), habitSuggestionsSchema, &reply); err != nil {
		return nil, err
	}
	if reply.Suggestions == nil {
		reply.Suggestions = []HabitSuggestion{}
	}
	return reply.Suggestions, nil
}

// SuggestFromJournal proposes goals grounded in what the user actually wrote.
func (s *InsightService) SuggestFromJournal(ctx context.Context, userID uuid.UUID) ([]GoalSuggestion, error) {
	now := time.Now().UTC()
	data, err := s.fetcher.fetch(ctx, userID, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}
	if len(data.Entries) == 0 {
		return nil, ErrNoData
	}
	entries := data.Entries
	if len(entries) > 10 {
		entries = entries[:10]
	}

	var reply goalSuggestionsReply
	if err := s.ai.Generate(ctx, journalSuggestionsPrompt(entries), goalSuggestionsSchema, &reply); err != nil {
		return nil, err
	}
	if reply.Suggestions == nil {
		reply.Suggestions = []GoalSuggestion{}
	}
	return reply.Suggestions, nil
}
