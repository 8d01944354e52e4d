package gamification

import (
	"context"
	"testing"

	"github.com/Krosebrook/lifesync-sub000/internal/apps/encouragements"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/goals"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/habits"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/journal"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/mindfulness"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *GamificationService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&BadgeDefinition{}, &UserBadgeProgress{}, &Profile{}, &Achievement{},
		&habits.Habit{}, &goals.Goal{}, &journal.JournalEntry{},
		&mindfulness.Practice{}, &encouragements.Encouragement{},
	))
	return NewGamificationService(db)
}

func TestAwardPointsUnknownAction(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AwardPoints(context.Background(), uuid.New(), AwardPointsRequest{Action: "made_up"})
	assert.ErrorIs(t, err, ErrInvalidAction)

	// No profile row should have been created.
	var count int64
	svc.db.Model(&Profile{}).Count(&count)
	assert.Zero(t, count)
}

func TestAwardPointsLevelsUp(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	// 250 points via two goal completions and two creates.
	for _, action := range []string{"goal_complete", "goal_complete", "goal_create", "goal_create"} {
		_, err := svc.AwardPoints(context.Background(), userID, AwardPointsRequest{Action: action})
		require.NoError(t, err)
	}

	profile, err := svc.GetProfile(userID)
	require.NoError(t, err)
	assert.Equal(t, 250, profile.TotalPoints)
	assert.Equal(t, 3, profile.Level)
}

func TestDailyLoginAwardedOncePerDay(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	first, err := svc.AwardPoints(context.Background(), userID, AwardPointsRequest{Action: "daily_login"})
	require.NoError(t, err)
	assert.Equal(t, 10, first.PointsEarned)

	second, err := svc.AwardPoints(context.Background(), userID, AwardPointsRequest{Action: "daily_login"})
	require.NoError(t, err)
	assert.Zero(t, second.PointsEarned)
	assert.Equal(t, first.NewTotal, second.NewTotal)
}

func TestCheckBadgeProgressIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	_, err := svc.SeedBadges()
	require.NoError(t, err)

	// 5 journal entries earns "Dear Diary" (threshold 5).
	for i := 0; i < 5; i++ {
		entry := journal.JournalEntry{ID: uuid.New(), UserID: userID, Content: "entry"}
		require.NoError(t, svc.db.Create(&entry).Error)
	}

	first, err := svc.CheckBadgeProgress(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, first.NewlyEarned, 1)
	assert.Equal(t, "Dear Diary", first.NewlyEarned[0].Name)
	assert.Equal(t, 1, first.TotalEarned)

	// Second invocation changes nothing.
	second, err := svc.CheckBadgeProgress(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, second.NewlyEarned)
	assert.Equal(t, 1, second.TotalEarned)

	// Reward points were credited exactly once.
	profile, err := svc.GetProfile(userID)
	require.NoError(t, err)
	assert.Equal(t, 25, profile.TotalPoints)
	assert.Equal(t, []string{"Dear Diary"}, []string(profile.BadgesEarned))

	// One progress row per badge, one achievement.
	var progressCount, achievementCount int64
	svc.db.Model(&UserBadgeProgress{}).Where("user_id = ?", userID).Count(&progressCount)
	svc.db.Model(&Achievement{}).Where("user_id = ?", userID).Count(&achievementCount)
	assert.Equal(t, int64(len(defaultBadges)), progressCount)
	assert.Equal(t, int64(1), achievementCount)
}

func TestBadgeProgressCappedButEarnUncapped(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	_, err := svc.SeedBadges()
	require.NoError(t, err)

	// A 10-day streak: "Week Warrior" (7) earned, "Habit Master" (30) partial.
	habit := habits.Habit{ID: uuid.New(), UserID: userID, Name: "Run", Active: true, CurrentStreak: 10}
	require.NoError(t, svc.db.Create(&habit).Error)

	result, err := svc.CheckBadgeProgress(context.Background(), userID)
	require.NoError(t, err)

	names := make([]string, 0, len(result.NewlyEarned))
	for _, b := range result.NewlyEarned {
		names = append(names, b.Name)
	}
	assert.Contains(t, names, "First Steps")
	assert.Contains(t, names, "Week Warrior")
	assert.NotContains(t, names, "Habit Master")

	statuses, err := svc.ListBadges(userID)
	require.NoError(t, err)
	for _, s := range statuses {
		if s.Badge.Name == "Week Warrior" {
			assert.Equal(t, 100.0, s.Progress)
			assert.True(t, s.Earned)
		}
		if s.Badge.Name == "Habit Master" {
			assert.InDelta(t, 33.33, s.Progress, 0.5)
			assert.False(t, s.Earned)
		}
	}
}

func TestStreakMilestoneAwardsOnlyAtNamedLengths(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	_, err := svc.SeedBadges()
	require.NoError(t, err)

	habit := habits.Habit{ID: uuid.New(), UserID: userID, Name: "Read", Active: true, CurrentStreak: 7}
	require.NoError(t, svc.db.Create(&habit).Error)

	// Streak 5 is not a milestone: points are credited, no badge check runs.
	result, err := svc.AwardPoints(context.Background(), userID, AwardPointsRequest{Action: "streak_milestone", Streak: 5})
	require.NoError(t, err)
	assert.Equal(t, 50, result.PointsEarned)
	assert.Empty(t, result.NewBadges)

	result, err = svc.AwardPoints(context.Background(), userID, AwardPointsRequest{Action: "streak_milestone", Streak: 7})
	require.NoError(t, err)
	assert.Contains(t, result.NewBadges, "Week Warrior")
}
