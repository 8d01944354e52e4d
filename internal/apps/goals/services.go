package goals

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/analytics"
	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidTitle    = errors.New("goal title is required")
	ErrInvalidStatus   = errors.New("status must be active, completed or paused")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) Create(userID uuid.UUID, req CreateGoalRequest) (*Goal, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}

	goal := Goal{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		ValueArea: req.ValueArea,
		Status:    StatusActive,
	}

	if err := s.db.Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &goal, nil
}

func (s *GoalService) List(userID uuid.UUID, status string) ([]Goal, error) {
	query := s.db.Scopes(authz.ForUser(userID)).Order("created_at DESC")
	if status != "" {
		if !validStatus(status) {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}

	var goals []Goal
	if err := query.Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *GoalService) Get(userID, goalID uuid.UUID) (*Goal, error) {
	var goal Goal
	err := s.db.Scopes(authz.ForUser(userID)).First(&goal, "id = ?", goalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *GoalService) Update(userID, goalID uuid.UUID, req UpdateGoalRequest) (*Goal, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidTitle
		}
		goal.Title = strings.TrimSpace(*req.Title)
	}
	if req.ValueArea != nil {
		goal.ValueArea = *req.ValueArea
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return nil, ErrInvalidProgress
		}
		goal.Progress = *req.Progress
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		if *req.Status == StatusCompleted && goal.Status != StatusCompleted {
			now := time.Now().UTC()
			goal.CompletedAt = &now
			goal.Progress = 100
		}
		goal.Status = *req.Status
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(userID, goalID uuid.UUID) error {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return err
	}
	return s.db.Delete(goal).Error
}

// CompletedInWindow counts goals completed in the last windowDays days.
func (s *GoalService) CompletedInWindow(userID uuid.UUID, windowDays int) (int, error) {
	var count int64
	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	err := s.db.Model(&Goal{}).Scopes(authz.ForUser(userID)).
		Where("status = ? AND completed_at >= ?", StatusCompleted, since).
		Count(&count).Error
	return int(count), err
}

func (s *GoalService) Stats(userID uuid.UUID) (*GoalStats, error) {
	goals, err := s.List(userID, "")
	if err != nil {
		return nil, err
	}

	stats := GoalStats{}
	progressSum, activeCount := 0, 0
	for _, g := range goals {
		switch g.Status {
		case StatusActive:
			stats.Active++
			progressSum += g.Progress
			activeCount++
		case StatusCompleted:
			stats.Completed++
		case StatusPaused:
			stats.Paused++
		}
	}
	if activeCount > 0 {
		stats.AvgProgress = progressSum / activeCount
	}

	completed30, err := s.CompletedInWindow(userID, 30)
	if err != nil {
		return nil, err
	}
	completed90, err := s.CompletedInWindow(userID, 90)
	if err != nil {
		return nil, err
	}
	stats.Velocity30d = analytics.GoalVelocity(completed30, 30)
	stats.Velocity90d = analytics.GoalVelocity(completed90, 90)

	return &stats, nil
}

func validStatus(status string) bool {
	return status == StatusActive || status == StatusCompleted || status == StatusPaused
}
