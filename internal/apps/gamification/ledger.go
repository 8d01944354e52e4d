package gamification

// pointsTable is the closed set of scoring actions. Requests naming anything
// else are rejected before any state changes.
var pointsTable = map[string]int{
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

// streakMilestones are the only streak lengths that trigger a milestone
// badge check when a streak_milestone action is awarded.
var streakMilestones = map[int]bool{7: true, 30: true, 100: true}

// LevelForPoints maps a running points total to a level. Every 100 points is
// one level, starting at level 1.
func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return points/100 + 1
}

// PointsForAction returns the award for a known action and false for anything
// outside the table.
func PointsForAction(action string) (int, bool) {
	points, ok := pointsTable[action]
	return points, ok
}
