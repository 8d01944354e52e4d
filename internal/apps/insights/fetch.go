package insights

import (
	"context"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/apps/goals"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/habits"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/journal"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/mindfulness"
	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// userData is everything an insight handler needs about one user in one
// window, loaded in a single fan-out.
type userData struct {
	Habits    []habits.Habit
	Logs      []habits.HabitLog
	Goals     []goals.Goal
	Entries   []journal.JournalEntry
	Practices []mindfulness.Practice
}

type dataFetcher struct {
	db *gorm.DB
}

// fetch loads the five read sets concurrently. The window bounds logs,
// entries, and practices; habits and goals are always loaded whole.
func (f *dataFetcher) fetch(ctx context.Context, userID uuid.UUID, from, to time.Time) (*userData, error) {
	var data userData
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return f.db.WithContext(ctx).Scopes(authz.ForUser(userID)).
			Where("active = ?", true).
			Find(&data.Habits).Error
	})
	g.Go(func() error {
		return f.db.WithContext(ctx).Scopes(authz.ForUser(userID)).
			Where("completed = ? AND log_date >= ? AND log_date <= ?", true, from, to).
			Find(&data.Logs).Error
	})
	g.Go(func() error {
		return f.db.WithContext(ctx).Scopes(authz.ForUser(userID)).
			Find(&data.Goals).Error
	})
	g.Go(func() error {
		return f.db.WithContext(ctx).Scopes(authz.ForUser(userID)).
			Where("entry_date >= ? AND entry_date <= ?", from, to).
			Order("entry_date DESC").
			Find(&data.Entries).Error
	})
	g.Go(func() error {
		return f.db.WithContext(ctx).Scopes(authz.ForUser(userID)).
			Where("practice_date >= ? AND practice_date <= ?", from, to).
			Find(&data.Practices).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (d *userData) moods() []int {
	var moods []int
	for _, e := range d.Entries {
		if e.Mood != nil {
			moods = append(moods, *e.Mood)
		}
	}
	return moods
}

func (d *userData) tagLists() [][]string {
	lists := make([][]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		if len(e.Tags) > 0 {
			lists = append(lists, e.Tags)
		}
	}
	return lists
}

func (d *userData) goalsCompletedSince(cutoff time.Time) int {
	n := 0
	for _, g := range d.Goals {
		if g.Status == goals.StatusCompleted && g.CompletedAt != nil && !g.CompletedAt.Before(cutoff) {
			n++
		}
	}
	return n
}

func (d *userData) maxStreak() int {
	best := 0
	for _, h := range d.Habits {
		if h.CurrentStreak > best {
			best = h.CurrentStreak
		}
	}
	return best
}

func (d *userData) moodDeltas() []int {
	var deltas []int
	for _, p := range d.Practices {
		if p.MoodBefore != nil && p.MoodAfter != nil {
			deltas = append(deltas, *p.MoodAfter-*p.MoodBefore)
		}
	}
	return deltas
}
