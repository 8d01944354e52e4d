package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPoints(t *testing.T) {
	assert.Equal(t, 1, LevelForPoints(0))
	assert.Equal(t, 1, LevelForPoints(99))
	assert.Equal(t, 2, LevelForPoints(100))
	assert.Equal(t, 3, LevelForPoints(250))
	assert.Equal(t, 1, LevelForPoints(-10))
}

func TestPointsForAction(t *testing.T) {
	cases := map[string]int{
		"habit_complete":       10,
		"mindfulness_complete": 15,
		"goal_create":          25,
		"goal_complete":        100,
		"journal_entry":        5,
		"daily_login":          10,
		"streak_milestone":     50,
		"challenge_complete":   75,
		"perfect_week":         200,
	}
	for action, want := range cases {
		got, ok := PointsForAction(action)
		assert.True(t, ok, action)
		assert.Equal(t, want, got, action)
	}

	_, ok := PointsForAction("invented_action")
	assert.False(t, ok)
}
