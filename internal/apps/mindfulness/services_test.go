package mindfulness

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *MindfulnessService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Practice{}, &Meditation{}))
	return NewMindfulnessService(db, nil)
}

func intPtr(v int) *int { return &v }

func TestCreatePracticeValidation(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	_, err := svc.CreatePractice(userID, CreatePracticeRequest{Type: "", Duration: 10})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.CreatePractice(userID, CreatePracticeRequest{Type: "meditation", Duration: 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = svc.CreatePractice(userID, CreatePracticeRequest{Type: "meditation", Duration: 10, MoodAfter: intPtr(7)})
	assert.ErrorIs(t, err, ErrInvalidMood)
}

func TestStatsAveragesMoodDeltas(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	// Two sessions with deltas +2 and +1, one without moods.
	_, err := svc.CreatePractice(userID, CreatePracticeRequest{Type: "meditation", Duration: 10, MoodBefore: intPtr(2), MoodAfter: intPtr(4)})
	require.NoError(t, err)
	_, err = svc.CreatePractice(userID, CreatePracticeRequest{Type: "breathing", Duration: 5, MoodBefore: intPtr(3), MoodAfter: intPtr(4)})
	require.NoError(t, err)
	_, err = svc.CreatePractice(userID, CreatePracticeRequest{Type: "body scan", Duration: 20})
	require.NoError(t, err)

	stats, err := svc.Stats(userID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 35, stats.TotalMinutes)
	assert.InDelta(t, 1.5, stats.MoodImpact, 0.0001)
}

func TestStatsEmptyUser(t *testing.T) {
	svc := newTestService(t)

	stats, err := svc.Stats(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSessions)
	assert.Equal(t, 0.0, stats.MoodImpact)
}

func TestSeedMeditationsIsIdempotent(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.SeedMeditations()
	require.NoError(t, err)
	assert.Equal(t, len(defaultMeditations), created)

	again, err := svc.SeedMeditations()
	require.NoError(t, err)
	assert.Equal(t, 0, again)

	var count int64
	svc.db.Model(&Meditation{}).Count(&count)
	assert.Equal(t, int64(len(defaultMeditations)), count)
}

func TestListMeditationsFiltersPremium(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SeedMeditations()
	require.NoError(t, err)

	free, err := svc.ListMeditations(false, "")
	require.NoError(t, err)
	for _, m := range free {
		assert.False(t, m.IsPremium)
	}

	all, err := svc.ListMeditations(true, "")
	require.NoError(t, err)
	assert.Greater(t, len(all), len(free))

	sleep, err := svc.ListMeditations(true, "sleep")
	require.NoError(t, err)
	for _, m := range sleep {
		assert.Equal(t, "sleep", m.Category)
	}
	assert.NotEmpty(t, sleep)
}
