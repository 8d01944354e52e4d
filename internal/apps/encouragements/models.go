package encouragements

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Encouragement is a short supportive message from one user to another.
type Encouragement struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FromUserID uuid.UUID      `gorm:"type:uuid;not null;index" json:"from_user_id"`
	ToUserID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"to_user_id"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	ReadAt     *time.Time     `json:"read_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

type SendEncouragementRequest struct {
	ToUserID string `json:"to_user_id"`
	Message  string `json:"message"`
}
