package goals

import (
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&Goal{}))
	return db
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestCompletingGoalStampsCompletionAndProgress(t *testing.T) {
	svc := NewGoalService(newTestDB(t))
	userID := uuid.New()

	goal, err := svc.Create(userID, CreateGoalRequest{Title: "Run a half marathon", ValueArea: "health"})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, goal.Status)
	assert.Nil(t, goal.CompletedAt)

	updated, err := svc.Update(userID, goal.ID, UpdateGoalRequest{Status: strPtr(StatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
	require.NotNil(t, updated.CompletedAt)

	// Completing again keeps the original stamp.
	stamp := *updated.CompletedAt
	again, err := svc.Update(userID, goal.ID, UpdateGoalRequest{Status: strPtr(StatusCompleted)})
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, *again.CompletedAt, time.Second)
}

func TestUpdateValidation(t *testing.T) {
	svc := NewGoalService(newTestDB(t))
	userID := uuid.New()

	goal, err := svc.Create(userID, CreateGoalRequest{Title: "Read 12 books"})
	require.NoError(t, err)

	_, err = svc.Update(userID, goal.ID, UpdateGoalRequest{Status: strPtr("abandoned")})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Update(userID, goal.ID, UpdateGoalRequest{Progress: intPtr(120)})
	assert.ErrorIs(t, err, ErrInvalidProgress)

	_, err = svc.Update(userID, goal.ID, UpdateGoalRequest{Title: strPtr("  ")})
	assert.ErrorIs(t, err, ErrInvalidTitle)
}

func TestStatsCountsAndVelocity(t *testing.T) {
	svc := NewGoalService(newTestDB(t))
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(userID, CreateGoalRequest{Title: "Goal"})
		require.NoError(t, err)
	}
	goals, err := svc.List(userID, "")
	require.NoError(t, err)

	_, err = svc.Update(userID, goals[0].ID, UpdateGoalRequest{Status: strPtr(StatusCompleted)})
	require.NoError(t, err)
	_, err = svc.Update(userID, goals[1].ID, UpdateGoalRequest{Progress: intPtr(40)})
	require.NoError(t, err)

	stats, err := svc.Stats(userID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 20, stats.AvgProgress)
	// One completion in the last 30 days is exactly one goal per month.
	assert.InDelta(t, 1.0, stats.Velocity30d, 0.0001)
}

func TestGoalsScopedToOwner(t *testing.T) {
	svc := NewGoalService(newTestDB(t))
	owner := uuid.New()
	stranger := uuid.New()

	goal, err := svc.Create(owner, CreateGoalRequest{Title: "Learn Spanish"})
	require.NoError(t, err)

	_, err = svc.Get(stranger, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}
