package journal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JournalEntry struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	EntryDate time.Time                   `gorm:"not null;index" json:"entry_date"`
	Content   string                      `gorm:"type:text;not null" json:"content"`
	Mood      *int                        `json:"mood"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	Gratitude datatypes.JSONSlice[string] `json:"gratitude"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
	DeletedAt gorm.DeletedAt              `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateEntryRequest struct {
	Date      string   `json:"date"`
	Content   string   `json:"content"`
	Mood      *int     `json:"mood"`
	Tags      []string `json:"tags"`
	Gratitude []string `json:"gratitude"`
}

type UpdateEntryRequest struct {
	Content   *string   `json:"content"`
	Mood      *int      `json:"mood"`
	Tags      *[]string `json:"tags"`
	Gratitude *[]string `json:"gratitude"`
}

type AnalyzeEntriesRequest struct {
	Limit int `json:"limit"`
}

type AnalyzeSentimentRequest struct {
	EntryID string `json:"entry_id,omitempty"`
	Content string `json:"content"`
}

// EntriesAnalysis is the schema-constrained LLM reply for the multi-entry
// analysis handler. Optional fields omitted by the model fall back to empty
// slices.
type EntriesAnalysis struct {
	KeyThemes         []string `json:"key_themes"`
	SentimentAnalysis string   `json:"sentiment_analysis"`
	RecurringTopics   []string `json:"recurring_topics"`
	GrowthAreas       []string `json:"growth_areas"`
	PositivePatterns  []string `json:"positive_patterns"`
	AreasOfConcern    []string `json:"areas_of_concern"`
}

// EntriesAnalysisResult pairs the LLM analysis with what was actually fed in.
type EntriesAnalysisResult struct {
	EntriesAnalysis
	EntriesAnalyzed int    `json:"entries_analyzed"`
	DateRange       string `json:"date_range"`
}

type SentimentAnalysis struct {
	MoodScore         int      `json:"mood_score"`
	PrimaryEmotion    string   `json:"primary_emotion"`
	SecondaryEmotions []string `json:"secondary_emotions"`
	SentimentSummary  string   `json:"sentiment_summary"`
	Themes            []string `json:"themes"`
}
