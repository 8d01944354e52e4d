package mindfulness

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/ai"
	"github.com/Krosebrook/lifesync-sub000/internal/analytics"
	"github.com/Krosebrook/lifesync-sub000/internal/authz"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPracticeNotFound = errors.New("practice not found")
	ErrInvalidType      = errors.New("practice type is required")
	ErrInvalidDuration  = errors.New("duration must be a positive number of minutes")
	ErrInvalidMood      = errors.New("mood must be between 1 and 5")
	ErrInvalidDate      = errors.New("date must be formatted YYYY-MM-DD")
	ErrNoPractices      = errors.New("no mindfulness practices recorded yet")
)

type generator interface {
	Generate(ctx context.Context, prompt string, schema ai.Schema, out any) error
}

type MindfulnessService struct {
	db *gorm.DB
	ai generator
}

func NewMindfulnessService(db *gorm.DB, client *ai.Client) *MindfulnessService {
	return &MindfulnessService{db: db, ai: client}
}

func validMood(m *int) bool {
	return m == nil || (*m >= 1 && *m <= 5)
}

func (s *MindfulnessService) CreatePractice(userID uuid.UUID, req CreatePracticeRequest) (*Practice, error) {
	if strings.TrimSpace(req.Type) == "" {
		return nil, ErrInvalidType
	}
	if req.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if !validMood(req.MoodBefore) || !validMood(req.MoodAfter) {
		return nil, ErrInvalidMood
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse(analytics.DayFormat, req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		day = parsed
	}

	practice := Practice{
		ID:           uuid.New(),
		UserID:       userID,
		PracticeDate: day,
		Type:         strings.TrimSpace(req.Type),
		Technique:    req.Technique,
		Duration:     req.Duration,
		MoodBefore:   req.MoodBefore,
		MoodAfter:    req.MoodAfter,
		Notes:        req.Notes,
	}
	if err := s.db.Create(&practice).Error; err != nil {
		return nil, fmt.Errorf("failed to create practice: %w", err)
	}
	return &practice, nil
}

func (s *MindfulnessService) ListPractices(userID uuid.UUID, limit int) ([]Practice, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var practices []Practice
	err := s.db.Scopes(authz.ForUser(userID)).
		Order("practice_date DESC, created_at DESC").
		Limit(limit).
		Find(&practices).Error
	if err != nil {
		return nil, err
	}
	return practices, nil
}

func (s *MindfulnessService) GetPractice(userID, practiceID uuid.UUID) (*Practice, error) {
	var practice Practice
	err := s.db.Scopes(authz.ForUser(userID)).First(&practice, "id = ?", practiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPracticeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &practice, nil
}

func (s *MindfulnessService) UpdatePractice(userID, practiceID uuid.UUID, req UpdatePracticeRequest) (*Practice, error) {
	practice, err := s.GetPractice(userID, practiceID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			return nil, ErrInvalidType
		}
		practice.Type = strings.TrimSpace(*req.Type)
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, ErrInvalidDuration
		}
		practice.Duration = *req.Duration
	}
	if !validMood(req.MoodBefore) || !validMood(req.MoodAfter) {
		return nil, ErrInvalidMood
	}
	if req.MoodBefore != nil {
		practice.MoodBefore = req.MoodBefore
	}
	if req.MoodAfter != nil {
		practice.MoodAfter = req.MoodAfter
	}
	if req.Technique != nil {
		practice.Technique = *req.Technique
	}
	if req.Notes != nil {
		practice.Notes = *req.Notes
	}

	if err := s.db.Save(practice).Error; err != nil {
		return nil, err
	}
	return practice, nil
}

func (s *MindfulnessService) DeletePractice(userID, practiceID uuid.UUID) error {
	practice, err := s.GetPractice(userID, practiceID)
	if err != nil {
		return err
	}
	return s.db.Delete(practice).Error
}

// Stats totals the user's sessions and averages the before/after mood delta
// of sessions that recorded both moods.
func (s *MindfulnessService) Stats(userID uuid.UUID) (*PracticeStats, error) {
	var practices []Practice
	err := s.db.Scopes(authz.ForUser(userID)).Find(&practices).Error
	if err != nil {
		return nil, err
	}

	stats := PracticeStats{TotalSessions: len(practices)}
	cutoff := time.Now().UTC().AddDate(0, 0, -30)
	var deltas []int
	for _, p := range practices {
		stats.TotalMinutes += p.Duration
		if !p.PracticeDate.Before(cutoff) {
			stats.Sessions30d++
		}
		if p.MoodBefore != nil && p.MoodAfter != nil {
			deltas = append(deltas, *p.MoodAfter-*p.MoodBefore)
		}
	}
	stats.MoodImpact = analytics.MoodImpact(deltas)
	return &stats, nil
}

func (s *MindfulnessService) ListMeditations(premium bool, category string) ([]Meditation, error) {
	query := s.db.Order("category ASC, duration ASC")
	if !premium {
		query = query.Where("is_premium = ?", false)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var meditations []Meditation
	if err := query.Find(&meditations).Error; err != nil {
		return nil, err
	}
	return meditations, nil
}

// SuggestPractices asks the coach for sessions tailored to the user's recent
// history. Works for brand-new users too; the prompt just says so.
func (s *MindfulnessService) SuggestPractices(ctx context.Context, userID uuid.UUID) ([]PracticeSuggestion, error) {
	practices, err := s.ListPractices(userID, 20)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	if len(practices) == 0 {
		sb.WriteString("The user has not recorded any mindfulness sessions yet.")
	} else {
		fmt.Fprintf(&sb, "The user's last %d mindfulness sessions:\n", len(practices))
		for _, p := range practices {
			fmt.Fprintf(&sb, "- %s: %s (%d min)", p.PracticeDate.Format(analytics.DayFormat), p.Type, p.Duration)
			if p.MoodBefore != nil && p.MoodAfter != nil {
				fmt.Fprintf(&sb, ", mood %d -> %d", *p.MoodBefore, *p.MoodAfter)
			}
			sb.WriteString("\n")
		}
	}

	prompt := fmt.Sprintf(
		"Suggest 3 mindfulness practice sessions for this user. Vary the techniques and keep durations realistic for a daily routine.\n\n%s",
		sb.String(),
	)

	var reply suggestionsReply
	if err := s.ai.Generate(ctx, prompt, suggestionsSchema, &reply); err != nil {
		return nil, err
	}
	if reply.Suggestions == nil {
		reply.Suggestions = []PracticeSuggestion{}
	}
	return reply.Suggestions, nil
}

var suggestionsSchema = ai.Schema{
	Name: "mindfulness_suggestions",
	Properties: map[string]any{
		"suggestions": ai.ArrayProp("suggested practice sessions", map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type":      ai.Prop("string", "practice type, e.g. meditation, breathing, body scan"),
				"technique": ai.Prop("string", "specific technique to use"),
				"duration":  ai.Prop("integer", "session length in minutes"),
				"reason":    ai.Prop("string", "why this session fits the user right now"),
			},
			"required": []string{"type", "duration", "reason"},
		}, 3),
	},
	Required: []string{"suggestions"},
}

// SeedMeditations inserts the built-in guided meditation library. Existing
// titles are left untouched so the route can be called repeatedly.
func (s *MindfulnessService) SeedMeditations() (int, error) {
	created := 0
	for _, m := range defaultMeditations {
		m.ID = uuid.New()
		result := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoNothing: true,
		}).Create(&m)
		if result.Error != nil {
			return created, fmt.Errorf("failed to seed meditation %q: %w", m.Title, result.Error)
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

var defaultMeditations = []Meditation{
	{Title: "Morning Clarity", Category: "focus", Duration: 10, Description: "Start the day with a short attention-anchoring practice.", IsPremium: false},
	{Title: "Box Breathing Basics", Category: "breathing", Duration: 5, Description: "Four-count breathing to settle the nervous system.", IsPremium: false},
	{Title: "Body Scan for Sleep", Category: "sleep", Duration: 20, Description: "Progressive relaxation from head to toe before bed.", IsPremium: false},
	{Title: "Letting Go of the Workday", Category: "stress", Duration: 12, Description: "A transition practice for the end of the working day.", IsPremium: false},
	{Title: "Loving Kindness", Category: "compassion", Duration: 15, Description: "Classic metta practice extending goodwill outward.", IsPremium: false},
	{Title: "Deep Focus Flow", Category: "focus", Duration: 25, Description: "Extended concentration training for deep work.", IsPremium: true},
	{Title: "Anxiety First Aid", Category: "stress", Duration: 8, Description: "Grounding techniques for acute anxious moments.", IsPremium: true},
	{Title: "Sleep Story: Night Train", Category: "sleep", Duration: 30, Description: "A slow narrated journey to drift off to.", IsPremium: true},
}
