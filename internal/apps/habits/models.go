package habits

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Habit carries a version column; streak updates are optimistic and a stale
// write is rejected rather than silently clobbering a concurrent toggle.
type Habit struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string         `gorm:"size:200;not null" json:"name"`
	Category      string         `gorm:"size:50" json:"category"`
	Active        bool           `gorm:"default:true;index" json:"active"`
	CurrentStreak int            `gorm:"default:0" json:"current_streak"`
	LongestStreak int            `gorm:"default:0" json:"longest_streak"`
	Version       int            `gorm:"default:0" json:"version"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// HabitLog holds at most one row per (habit, day); completion toggles upsert
// into the same row so duplicate logs can never double-count.
type HabitLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	HabitID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_habit_logs_habit_date" json:"habit_id"`
	LogDate   time.Time `gorm:"not null;uniqueIndex:idx_habit_logs_habit_date;index" json:"log_date"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- DTOs ---

type CreateHabitRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type UpdateHabitRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Active   *bool   `json:"active"`
	Version  int     `json:"version"`
}

type LogCompletionRequest struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type HabitStats struct {
	ActiveHabits     int `json:"active_habits"`
	CompletionRate7  int `json:"completion_rate_7d"`
	CompletionRate30 int `json:"completion_rate_30d"`
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
}
