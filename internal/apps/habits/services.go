package habits

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/analytics"
	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrHabitNotFound   = errors.New("habit not found")
	ErrInvalidName     = errors.New("habit name is required")
	ErrInvalidDate     = errors.New("date must be formatted YYYY-MM-DD")
	ErrVersionConflict = errors.New("habit was modified by another request, retry with the latest version")
)

type HabitService struct {
	db *gorm.DB
}

func NewHabitService(db *gorm.DB) *HabitService {
	return &HabitService{db: db}
}

func (s *HabitService) Create(userID uuid.UUID, req CreateHabitRequest) (*Habit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	habit := Habit{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Category: req.Category,
		Active:   true,
	}

	if err := s.db.Create(&habit).Error; err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return &habit, nil
}

func (s *HabitService) List(userID uuid.UUID, activeOnly bool) ([]Habit, error) {
	query := s.db.Scopes(authz.ForUser(userID)).Order("created_at ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var habits []Habit
	if err := query.Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (s *HabitService) Get(userID, habitID uuid.UUID) (*Habit, error) {
	var habit Habit
	err := s.db.Scopes(authz.ForUser(userID)).First(&habit, "id = ?", habitID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// Update applies field changes guarded by the caller-supplied version. A
// stale version means another request won the race; the caller must re-read.
func (s *HabitService) Update(userID, habitID uuid.UUID, req UpdateHabitRequest) (*Habit, error) {
	habit, err := s.Get(userID, habitID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"version": req.Version + 1}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidName
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	result := s.db.Model(&Habit{}).
		Where("id = ? AND user_id = ? AND version = ?", habitID, userID, req.Version).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	return s.Get(userID, habit.ID)
}

func (s *HabitService) Delete(userID, habitID uuid.UUID) error {
	habit, err := s.Get(userID, habitID)
	if err != nil {
		return err
	}
	return s.db.Delete(habit).Error
}

// LogCompletion upserts the (habit, day) log row and refreshes the habit's
// stored streak under the version guard.
func (s *HabitService) LogCompletion(userID, habitID uuid.UUID, req LogCompletionRequest) (*Habit, *HabitLog, error) {
	habit, err := s.Get(userID, habitID)
	if err != nil {
		return nil, nil, err
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse(analytics.DayFormat, req.Date)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		day = parsed
	}

	logRow := HabitLog{
		ID:        uuid.New(),
		UserID:    userID,
		HabitID:   habitID,
		LogDate:   day,
		Completed: req.Completed,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "log_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"completed": req.Completed, "updated_at": time.Now().UTC()}),
	}).Create(&logRow).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record habit log: %w", err)
	}
	// On the conflict path the insert ID never lands; re-read the stored row.
	var stored HabitLog
	err = s.db.Where("habit_id = ? AND log_date = ?", habitID, day).First(&stored).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load habit log: %w", err)
	}

	updated, err := s.refreshStreak(habit)
	if err != nil {
		return nil, nil, err
	}
	return updated, &stored, nil
}

// refreshStreak recomputes this habit's streak from its logs and persists it
// with an optimistic version check.
func (s *HabitService) refreshStreak(habit *Habit) (*Habit, error) {
	var logs []HabitLog
	since := time.Now().UTC().AddDate(0, 0, -366)
	err := s.db.Where("habit_id = ? AND completed = ? AND log_date >= ?", habit.ID, true, since).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	completedByDay := make(map[string]int, len(logs))
	for _, l := range logs {
		completedByDay[analytics.DayKey(l.LogDate)] = 1
	}

	current := analytics.StreakFromLogs(completedByDay, 1, time.Now().UTC())
	longest := habit.LongestStreak
	if current > longest {
		longest = current
	}

	result := s.db.Model(&Habit{}).
		Where("id = ? AND version = ?", habit.ID, habit.Version).
		Updates(map[string]interface{}{
			"current_streak": current,
			"longest_streak": longest,
			"version":        habit.Version + 1,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	return s.Get(habit.UserID, habit.ID)
}

// Stats aggregates completion rates over 7 and 30 day windows plus the
// all-habits streak recomputed by backward scan.
func (s *HabitService) Stats(userID uuid.UUID) (*HabitStats, error) {
	active, err := s.List(userID, true)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var logs []HabitLog
	since := now.AddDate(0, 0, -30)
	err = s.db.Scopes(authz.ForUser(userID)).
		Where("completed = ? AND log_date >= ?", true, since).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	completed7, completed30 := 0, 0
	completedByDay := make(map[string]int)
	cutoff7 := now.AddDate(0, 0, -7)
	for _, l := range logs {
		completed30++
		if !l.LogDate.Before(cutoff7) {
			completed7++
		}
		completedByDay[analytics.DayKey(l.LogDate)]++
	}

	longest := 0
	for _, h := range active {
		if h.LongestStreak > longest {
			longest = h.LongestStreak
		}
	}

	return &HabitStats{
		ActiveHabits:     len(active),
		CompletionRate7:  analytics.CompletionRate(len(active), completed7, 7),
		CompletionRate30: analytics.CompletionRate(len(active), completed30, 30),
		CurrentStreak:    analytics.StreakFromLogs(completedByDay, len(active), now),
		LongestStreak:    longest,
	}, nil
}
