package mindfulness

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Practice is one completed or planned mindfulness session by a user.
type Practice struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PracticeDate time.Time      `gorm:"not null;index" json:"practice_date"`
	Type         string         `gorm:"not null" json:"type"`
	Technique    string         `json:"technique"`
	Duration     int            `gorm:"not null" json:"duration"`
	MoodBefore   *int           `json:"mood_before"`
	MoodAfter    *int           `json:"mood_after"`
	Notes        string         `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Meditation is a guided-meditation library item, seeded by an admin route
// and shared across all users.
type Meditation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;uniqueIndex" json:"title"`
	Category    string    `gorm:"not null;index" json:"category"`
	Duration    int       `gorm:"not null" json:"duration"`
	Description string    `gorm:"type:text" json:"description"`
	AudioURL    string    `json:"audio_url"`
	IsPremium   bool      `gorm:"default:false" json:"is_premium"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// --- DTOs ---

type CreatePracticeRequest struct {
	Date       string `json:"date"`
	Type       string `json:"type"`
	Technique  string `json:"technique"`
	Duration   int    `json:"duration"`
	MoodBefore *int   `json:"mood_before"`
	MoodAfter  *int   `json:"mood_after"`
	Notes      string `json:"notes"`
}

type UpdatePracticeRequest struct {
	Type       *string `json:"type"`
	Technique  *string `json:"technique"`
	Duration   *int    `json:"duration"`
	MoodBefore *int    `json:"mood_before"`
	MoodAfter  *int    `json:"mood_after"`
	Notes      *string `json:"notes"`
}

type PracticeStats struct {
	TotalSessions int     `json:"total_sessions"`
	TotalMinutes  int     `json:"total_minutes"`
	MoodImpact    float64 `json:"mood_impact"`
	Sessions30d   int     `json:"sessions_30d"`
}

// PracticeSuggestion is one AI-proposed session.
type PracticeSuggestion struct {
	Type      string `json:"type"`
	Technique string `json:"technique"`
	Duration  int    `json:"duration"`
	Reason    string `json:"reason"`
}

type suggestionsReply struct {
	Suggestions []PracticeSuggestion `json:"suggestions"`
}
