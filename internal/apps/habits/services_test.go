package habits

import (
	"testing"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/analytics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Habit{}, &HabitLog{}))
	return db
}

func TestLogCompletionDedupesByDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	userID := uuid.New()

	habit, err := svc.Create(userID, CreateHabitRequest{Name: "Meditate"})
	require.NoError(t, err)

	today := analytics.DayKey(time.Now().UTC())
	_, _, err = svc.LogCompletion(userID, habit.ID, LogCompletionRequest{Date: today, Completed: true})
	require.NoError(t, err)
	_, _, err = svc.LogCompletion(userID, habit.ID, LogCompletionRequest{Date: today, Completed: true})
	require.NoError(t, err)

	var count int64
	db.Model(&HabitLog{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	stats, err := svc.Stats(userID)
	require.NoError(t, err)
	// 1 completed log over 1 habit x 7 days = 14%
	assert.Equal(t, 14, stats.CompletionRate7)
}

func TestLogCompletionReturnsStoredRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	userID := uuid.New()

	habit, err := svc.Create(userID, CreateHabitRequest{Name: "Stretch"})
	require.NoError(t, err)

	today := analytics.DayKey(time.Now().UTC())
	_, first, err := svc.LogCompletion(userID, habit.ID, LogCompletionRequest{Date: today, Completed: true})
	require.NoError(t, err)
	_, second, err := svc.LogCompletion(userID, habit.ID, LogCompletionRequest{Date: today, Completed: false})
	require.NoError(t, err)

	// The repeat log updates in place, so both responses name the same row.
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.Completed)
}

func TestLogCompletionUpdatesStreak(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	userID := uuid.New()

	habit, err := svc.Create(userID, CreateHabitRequest{Name: "Read"})
	require.NoError(t, err)

	now := time.Now().UTC()
	for offset := 2; offset >= 0; offset-- {
		day := analytics.DayKey(now.AddDate(0, 0, -offset))
		habit, _, err = svc.LogCompletion(userID, habit.ID, LogCompletionRequest{Date: day, Completed: true})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, habit.CurrentStreak)
	assert.Equal(t, 3, habit.LongestStreak)
	assert.GreaterOrEqual(t, habit.LongestStreak, habit.CurrentStreak)
}

func TestUpdateRejectsStaleVersion(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	userID := uuid.New()

	habit, err := svc.Create(userID, CreateHabitRequest{Name: "Journal"})
	require.NoError(t, err)

	name := "Evening journal"
	_, err = svc.Update(userID, habit.ID, UpdateHabitRequest{Name: &name, Version: habit.Version})
	require.NoError(t, err)

	// Same version again is stale now.
	other := "Morning journal"
	_, err = svc.Update(userID, habit.ID, UpdateHabitRequest{Name: &other, Version: habit.Version})
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestHabitsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	owner := uuid.New()
	stranger := uuid.New()

	habit, err := svc.Create(owner, CreateHabitRequest{Name: "Stretch"})
	require.NoError(t, err)

	_, err = svc.Get(stranger, habit.ID)
	assert.ErrorIs(t, err, ErrHabitNotFound)

	listed, err := svc.List(stranger, false)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
