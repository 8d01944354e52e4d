package insights

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WeeklySummary is a persisted AI digest of one user week, upserted by
// (user, week_start) so regeneration replaces rather than duplicates.
type WeeklySummary struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_week" json:"user_id"`
	WeekStart       time.Time      `gorm:"not null;uniqueIndex:idx_user_week" json:"week_start"`
	WeekEnd         time.Time      `gorm:"not null" json:"week_end"`
	HabitCompletion int            `json:"habit_completion"`
	AvgMood         float64        `json:"avg_mood"`
	JournalEntries  int            `json:"journal_entries"`
	Sessions        int            `json:"sessions"`
	GoalsCompleted  int            `json:"goals_completed"`
	Narrative       datatypes.JSON `json:"narrative"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// --- request DTOs ---

type MoodReportRequest struct {
	Period string `json:"period"`
}

type PremiumReportRequest struct {
	Period string `json:"period"`
}

type WeeklySummaryRequest struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
}

// --- LLM reply shapes ---

type MoodReport struct {
	OverallMoodTrend   string   `json:"overall_mood_trend"`
	MoodDescription    string   `json:"mood_description"`
	PositiveHighlights []string `json:"positive_highlights"`
	AreasOfConcern     []string `json:"areas_of_concern"`
	Recommendations    []string `json:"recommendations"`
	GratitudeMoments   []string `json:"gratitude_moments"`
	EnergyLevel        string   `json:"energy_level"`
}

type CoachingReport struct {
	StatusAssessment    string   `json:"status_assessment"`
	Strengths           []string `json:"strengths"`
	GrowthOpportunities []string `json:"growth_opportunities"`
	ActionPlan          []string `json:"action_plan"`
	Motivation          string   `json:"motivation"`
	ImmediateAction     string   `json:"immediate_action"`
}

type PremiumReport struct {
	ExecutiveSummary   string   `json:"executive_summary"`
	ProgressAnalysis   string   `json:"progress_analysis"`
	BehavioralInsights []string `json:"behavioral_insights"`
	StrategicPlan      []string `json:"strategic_plan"`
	RiskFactors        []string `json:"risk_factors"`
	ProjectedOutcomes  string   `json:"projected_outcomes"`
	PersonalizedAdvice string   `json:"personalized_advice"`
	RecommendedContent []string `json:"recommended_content"`
}

type WeeklyNarrative struct {
	Headline     string   `json:"headline"`
	Wins         []string `json:"wins"`
	Challenges   []string `json:"challenges"`
	NextWeekTips []string `json:"next_week_tips"`
}

type GoalSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Reason      string `json:"reason"`
}

type HabitSuggestion struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

type goalSuggestionsReply struct {
	Suggestions []GoalSuggestion `json:"suggestions"`
}

type habitSuggestionsReply struct {
	Suggestions []HabitSuggestion `json:"suggestions"`
}
