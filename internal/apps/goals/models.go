package goals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)

type Goal struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	ValueArea   string         `gorm:"size:100" json:"value_area"`
	Status      string         `gorm:"size:20;default:'active';index" json:"status"`
	Progress    int            `gorm:"default:0" json:"progress"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateGoalRequest struct {
	Title     string `json:"title"`
	ValueArea string `json:"value_area"`
}

type UpdateGoalRequest struct {
	Title     *string `json:"title"`
	ValueArea *string `json:"value_area"`
	Status    *string `json:"status"`
	Progress  *int    `json:"progress"`
}

type GoalStats struct {
	Active       int     `json:"active"`
	Completed    int     `json:"completed"`
	Paused       int     `json:"paused"`
	Velocity30d  float64 `json:"velocity_30d"`
	Velocity90d  float64 `json:"velocity_90d"`
	AvgProgress  int     `json:"avg_progress"`
}
