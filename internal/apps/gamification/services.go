package gamification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/analytics"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/encouragements"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/goals"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/habits"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/journal"
	"github.com/Krosebrook/lifesync-sub000/internal/apps/mindfulness"
	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidAction = errors.New("Invalid action")

type GamificationService struct {
	db *gorm.DB
}

func NewGamificationService(db *gorm.DB) *GamificationService {
	return &GamificationService{db: db}
}

// GetProfile returns the user's ledger row, creating it on first touch.
func (s *GamificationService) GetProfile(userID uuid.UUID) (*Profile, error) {
	var profile Profile
	err := s.db.Scopes(authz.ForUser(userID)).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = Profile{
			ID:           uuid.New(),
			UserID:       userID,
			Level:        1,
			BadgesEarned: []string{},
		}
		// Concurrent first touches race; the unique user index settles it.
		err = s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&profile).Error
		if err != nil {
			return nil, err
		}
		err = s.db.Scopes(authz.ForUser(userID)).First(&profile).Error
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AwardPoints credits a scoring action and reports the resulting level.
// daily_login is idempotent per calendar day; a repeat earns nothing.
func (s *GamificationService) AwardPoints(ctx context.Context, userID uuid.UUID, req AwardPointsRequest) (*AwardPointsResult, error) {
	points, ok := PointsForAction(req.Action)
	if !ok {
		return nil, ErrInvalidAction
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := AwardPointsResult{NewBadges: []string{}}

	if req.Action == "daily_login" {
		if profile.LastLoginDate != nil && analytics.DayKey(*profile.LastLoginDate) == analytics.DayKey(now) {
			result.NewTotal = profile.TotalPoints
			result.Level = profile.Level
			return &result, nil
		}
		profile.LastLoginDate = &now
	}

	oldLevel := profile.Level
	profile.TotalPoints += points
	profile.Level = LevelForPoints(profile.TotalPoints)

	if err := s.db.Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	result.PointsEarned = points
	result.NewTotal = profile.TotalPoints
	result.Level = profile.Level
	result.LeveledUp = profile.Level > oldLevel

	// Streak milestones only count at the named lengths.
	if req.Action == "streak_milestone" && streakMilestones[req.Streak] {
		check, err := s.CheckBadgeProgress(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, b := range check.NewlyEarned {
			result.NewBadges = append(result.NewBadges, b.Name)
		}
		// The badge check may have added reward points.
		refreshed, err := s.GetProfile(userID)
		if err != nil {
			return nil, err
		}
		result.NewTotal = refreshed.TotalPoints
		result.Level = refreshed.Level
		result.LeveledUp = refreshed.Level > oldLevel
	}

	return &result, nil
}

// criteriaCounts holds the user statistics badge thresholds compare against.
type criteriaCounts struct {
	Streak              int
	GoalsCompleted      int
	JournalEntries      int
	MindfulnessSessions int
	EncouragementsSent  int
}

func (c criteriaCounts) forType(criteriaType string) int {
	switch criteriaType {
	case CriteriaStreak:
		return c.Streak
	case CriteriaGoalsCompleted:
		return c.GoalsCompleted
	case CriteriaJournalEntries:
		return c.JournalEntries
	case CriteriaMindfulnessSessions:
		return c.MindfulnessSessions
	case CriteriaEncouragementsSent:
		return c.EncouragementsSent
	default:
		return 0
	}
}

// gatherCounts fans the five criteria reads out concurrently.
func (s *GamificationService) gatherCounts(ctx context.Context, userID uuid.UUID) (criteriaCounts, error) {
	var counts criteriaCounts
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var userHabits []habits.Habit
		err := s.db.WithContext(ctx).Scopes(authz.ForUser(userID)).
			Where("active = ?", true).Find(&userHabits).Error
		if err != nil {
			return err
		}
		for _, h := range userHabits {
			if h.CurrentStreak > counts.Streak {
				counts.Streak = h.CurrentStreak
			}
		}
		return nil
	})
	g.Go(func() error {
		var n int64
		err := s.db.WithContext(ctx).Model(&goals.Goal{}).
			Scopes(authz.ForUser(userID)).
			Where("status = ?", goals.StatusCompleted).Count(&n).Error
		counts.GoalsCompleted = int(n)
		return err
	})
	g.Go(func() error {
		var n int64
		err := s.db.WithContext(ctx).Model(&journal.JournalEntry{}).
			Scopes(authz.ForUser(userID)).Count(&n).Error
		counts.JournalEntries = int(n)
		return err
	})
	g.Go(func() error {
		var n int64
		err := s.db.WithContext(ctx).Model(&mindfulness.Practice{}).
			Scopes(authz.ForUser(userID)).Count(&n).Error
		counts.MindfulnessSessions = int(n)
		return err
	})
	g.Go(func() error {
		var n int64
		err := s.db.WithContext(ctx).Model(&encouragements.Encouragement{}).
			Where("from_user_id = ?", userID).Count(&n).Error
		counts.EncouragementsSent = int(n)
		return err
	})

	if err := g.Wait(); err != nil {
		return criteriaCounts{}, err
	}
	return counts, nil
}

// CheckBadgeProgress recomputes every badge's progress for the user. Progress
// rows are upserted by (user, badge) so repeated checks are harmless; a badge
// crossing its threshold is awarded exactly once.
func (s *GamificationService) CheckBadgeProgress(ctx context.Context, userID uuid.UUID) (*BadgeCheckResult, error) {
	counts, err := s.gatherCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	var badges []BadgeDefinition
	if err := s.db.Find(&badges).Error; err != nil {
		return nil, err
	}

	var existing []UserBadgeProgress
	if err := s.db.Scopes(authz.ForUser(userID)).Find(&existing).Error; err != nil {
		return nil, err
	}
	earnedBefore := make(map[uuid.UUID]bool, len(existing))
	for _, p := range existing {
		if p.EarnedDate != nil {
			earnedBefore[p.BadgeID] = true
		}
	}

	result := BadgeCheckResult{NewlyEarned: []BadgeDefinition{}}
	now := time.Now().UTC()

	for _, badge := range badges {
		current := counts.forType(badge.CriteriaType)
		progress := analytics.BadgeProgress(current, badge.Threshold)
		earned := analytics.BadgeEarned(current, badge.Threshold)

		row := UserBadgeProgress{
			ID:       uuid.New(),
			UserID:   userID,
			BadgeID:  badge.ID,
			Progress: progress,
		}
		updates := map[string]interface{}{"progress": progress, "updated_at": now}
		if earned {
			row.EarnedDate = &now
			updates["earned_date"] = gorm.Expr("COALESCE(earned_date, ?)", now)
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoUpdates: clause.Assignments(updates),
		}).Create(&row).Error
		if err != nil {
			return nil, fmt.Errorf("failed to record badge progress: %w", err)
		}

		if earned {
			result.TotalEarned++
			if !earnedBefore[badge.ID] {
				if err := s.awardBadge(userID, badge, now); err != nil {
					return nil, err
				}
				result.NewlyEarned = append(result.NewlyEarned, badge)
			}
		}
	}

	return &result, nil
}

// awardBadge credits the reward points, stamps the profile, and records the
// achievement. The achievement insert is a no-op if the name already exists.
func (s *GamificationService) awardBadge(userID uuid.UUID, badge BadgeDefinition, now time.Time) error {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	profile.TotalPoints += badge.PointsReward
	profile.Level = LevelForPoints(profile.TotalPoints)
	for _, name := range profile.BadgesEarned {
		if name == badge.Name {
			return nil
		}
	}
	profile.BadgesEarned = append(profile.BadgesEarned, badge.Name)
	if err := s.db.Save(profile).Error; err != nil {
		return err
	}

	achievement := Achievement{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         badge.Name,
		Type:         "badge",
		Description:  badge.Description,
		UnlockedDate: now,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&achievement).Error
}

// ListBadges joins the catalog with the user's progress rows.
func (s *GamificationService) ListBadges(userID uuid.UUID) ([]BadgeStatus, error) {
	var badges []BadgeDefinition
	if err := s.db.Order("category ASC, threshold ASC").Find(&badges).Error; err != nil {
		return nil, err
	}

	var progress []UserBadgeProgress
	if err := s.db.Scopes(authz.ForUser(userID)).Find(&progress).Error; err != nil {
		return nil, err
	}
	byBadge := make(map[uuid.UUID]UserBadgeProgress, len(progress))
	for _, p := range progress {
		byBadge[p.BadgeID] = p
	}

	statuses := make([]BadgeStatus, 0, len(badges))
	for _, badge := range badges {
		status := BadgeStatus{Badge: badge}
		if p, ok := byBadge[badge.ID]; ok {
			status.Progress = p.Progress
			status.Earned = p.EarnedDate != nil
			status.EarnedDate = p.EarnedDate
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (s *GamificationService) ListAchievements(userID uuid.UUID) ([]Achievement, error) {
	var achievements []Achievement
	err := s.db.Scopes(authz.ForUser(userID)).
		Order("unlocked_date DESC").
		Find(&achievements).Error
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

// SeedBadges inserts the badge catalog; existing names are untouched.
func (s *GamificationService) SeedBadges() (int, error) {
	created := 0
	for _, b := range defaultBadges {
		b.ID = uuid.New()
		result := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&b)
		if result.Error != nil {
			return created, fmt.Errorf("failed to seed badge %q: %w", b.Name, result.Error)
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

var defaultBadges = []BadgeDefinition{
	{Name: "First Steps", Description: "Hold a 3-day habit streak.", Category: "habits", CriteriaType: CriteriaStreak, Threshold: 3, PointsReward: 25, Rarity: "common"},
	{Name: "Week Warrior", Description: "Hold a 7-day habit streak.", Category: "habits", CriteriaType: CriteriaStreak, Threshold: 7, PointsReward: 50, Rarity: "common"},
	{Name: "Habit Master", Description: "Hold a 30-day habit streak.", Category: "habits", CriteriaType: CriteriaStreak, Threshold: 30, PointsReward: 150, Rarity: "rare"},
	{Name: "Centurion", Description: "Hold a 100-day habit streak.", Category: "habits", CriteriaType: CriteriaStreak, Threshold: 100, PointsReward: 500, Rarity: "legendary"},
	{Name: "Goal Getter", Description: "Complete your first goal.", Category: "goals", CriteriaType: CriteriaGoalsCompleted, Threshold: 1, PointsReward: 50, Rarity: "common"},
	{Name: "Achiever", Description: "Complete 10 goals.", Category: "goals", CriteriaType: CriteriaGoalsCompleted, Threshold: 10, PointsReward: 200, Rarity: "rare"},
	{Name: "Dear Diary", Description: "Write 5 journal entries.", Category: "journal", CriteriaType: CriteriaJournalEntries, Threshold: 5, PointsReward: 25, Rarity: "common"},
	{Name: "Chronicler", Description: "Write 50 journal entries.", Category: "journal", CriteriaType: CriteriaJournalEntries, Threshold: 50, PointsReward: 150, Rarity: "rare"},
	{Name: "Inner Peace", Description: "Complete 10 mindfulness sessions.", Category: "mindfulness", CriteriaType: CriteriaMindfulnessSessions, Threshold: 10, PointsReward: 75, Rarity: "common"},
	{Name: "Zen Master", Description: "Complete 100 mindfulness sessions.", Category: "mindfulness", CriteriaType: CriteriaMindfulnessSessions, Threshold: 100, PointsReward: 300, Rarity: "epic"},
	{Name: "Cheerleader", Description: "Send 5 encouragements.", Category: "community", CriteriaType: CriteriaEncouragementsSent, Threshold: 5, PointsReward: 50, Rarity: "common"},
	{Name: "Community Pillar", Description: "Send 25 encouragements.", Category: "community", CriteriaType: CriteriaEncouragementsSent, Threshold: 25, PointsReward: 150, Rarity: "rare"},
}
