package gamification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Badge criteria types. Each names the user statistic the badge threshold is
// compared against.
const (
	CriteriaStreak              = "streak"
	CriteriaGoalsCompleted      = "goals_completed"
	CriteriaJournalEntries      = "journal_entries"
	CriteriaMindfulnessSessions = "mindfulness_sessions"
	CriteriaEncouragementsSent  = "encouragements_sent"
)

// BadgeDefinition is a catalog row seeded by an admin route.
type BadgeDefinition struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null;uniqueIndex" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"not null;index" json:"category"`
	CriteriaType string    `gorm:"not null" json:"criteria_type"`
	Threshold    int       `gorm:"not null" json:"threshold"`
	PointsReward int       `gorm:"not null" json:"points_reward"`
	Rarity       string    `gorm:"default:'common'" json:"rarity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserBadgeProgress tracks one user's progress toward one badge. The unique
// pair keeps repeated checks from duplicating rows.
type UserBadgeProgress struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	Progress   float64    `gorm:"not null;default:0" json:"progress"`
	EarnedDate *time.Time `json:"earned_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Profile is the per-user gamification ledger row.
type Profile struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	TotalPoints   int                         `gorm:"not null;default:0" json:"total_points"`
	Level         int                         `gorm:"not null;default:1" json:"level"`
	BadgesEarned  datatypes.JSONSlice[string] `json:"badges_earned"`
	LastLoginDate *time.Time                  `json:"last_login_date"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// Achievement is an unlocked milestone, idempotent by (user, name).
type Achievement struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	Name         string         `gorm:"not null;uniqueIndex:idx_user_achievement" json:"name"`
	Type         string         `gorm:"not null" json:"type"`
	Description  string         `gorm:"type:text" json:"description"`
	UnlockedDate time.Time      `gorm:"not null" json:"unlocked_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// --- DTOs ---

type AwardPointsRequest struct {
	Action string `json:"action"`
	Streak int    `json:"streak,omitempty"`
}

type AwardPointsResult struct {
	PointsEarned int      `json:"pointsEarned"`
	NewTotal     int      `json:"newTotal"`
	Level        int      `json:"level"`
	LeveledUp    bool     `json:"leveledUp"`
	NewBadges    []string `json:"newBadges"`
}

type BadgeStatus struct {
	Badge      BadgeDefinition `json:"badge"`
	Progress   float64         `json:"progress"`
	Earned     bool            `json:"earned"`
	EarnedDate *time.Time      `json:"earned_date"`
}

type BadgeCheckResult struct {
	NewlyEarned []BadgeDefinition `json:"newlyEarned"`
	TotalEarned int               `json:"totalEarned"`
}
