package journal

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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEntryNotFound  = errors.New("journal entry not found")
	ErrInvalidContent = errors.New("content is required")
	ErrInvalidMood    = errors.New("mood must be between 1 and 5")
	ErrInvalidDate    = errors.New("date must be formatted YYYY-MM-DD")
	ErrNoEntries      = errors.New("no journal entries to analyze yet")
)

// generator is the slice of the AI client the journal service needs; tests
// swap in a stub.
type generator interface {
	Generate(ctx context.Context, prompt string, schema ai.Schema, out any) error
}

type JournalService struct {
	db *gorm.DB
	ai generator
}

func NewJournalService(db *gorm.DB, client *ai.Client) *JournalService {
	return &JournalService{db: db, ai: client}
}

func (s *JournalService) Create(userID uuid.UUID, req CreateEntryRequest) (*JournalEntry, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrInvalidContent
	}
	if req.Mood != nil && (*req.Mood < 1 || *req.Mood > 5) {
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

	entry := JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		EntryDate: day,
		Content:   content,
		Mood:      req.Mood,
		Tags:      datatypes.NewJSONSlice(emptyIfNil(req.Tags)),
		Gratitude: datatypes.NewJSONSlice(emptyIfNil(req.Gratitude)),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	return &entry, nil
}

func (s *JournalService) List(userID uuid.UUID, limit int) ([]JournalEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var entries []JournalEntry
	err := s.db.Scopes(authz.ForUser(userID)).
		Order("entry_date DESC, created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *JournalService) Get(userID, entryID uuid.UUID) (*JournalEntry, error) {
	var entry JournalEntry
	err := s.db.Scopes(authz.ForUser(userID)).First(&entry, "id = ?", entryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *JournalService) Update(userID, entryID uuid.UUID, req UpdateEntryRequest) (*JournalEntry, error) {
	entry, err := s.Get(userID, entryID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, ErrInvalidContent
		}
		entry.Content = strings.TrimSpace(*req.Content)
	}
	if req.Mood != nil {
		if *req.Mood < 1 || *req.Mood > 5 {
			return nil, ErrInvalidMood
		}
		entry.Mood = req.Mood
	}
	if req.Tags != nil {
		entry.Tags = datatypes.NewJSONSlice(*req.Tags)
	}
	if req.Gratitude != nil {
		entry.Gratitude = datatypes.NewJSONSlice(*req.Gratitude)
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) Delete(userID, entryID uuid.UUID) error {
	entry, err := s.Get(userID, entryID)
	if err != nil {
		return err
	}
	return s.db.Delete(entry).Error
}

const entrySnippetBudget = 500

// AnalyzeEntries feeds the most recent entries through the coach and returns
// the cross-entry themes. Entries are truncated so a long backlog cannot blow
// the prompt.
func (s *JournalService) AnalyzeEntries(ctx context.Context, userID uuid.UUID, limit int) (*EntriesAnalysisResult, error) {
	entries, err := s.List(userID, limit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	var sb strings.Builder
	for _, e := range entries {
		mood := "unrated"
		if e.Mood != nil {
			mood = fmt.Sprintf("%d/5", *e.Mood)
		}
		fmt.Fprintf(&sb, "[%s] mood %s", e.EntryDate.Format(analytics.DayFormat), mood)
		if len(e.Tags) > 0 {
			fmt.Fprintf(&sb, " tags: %s", strings.Join(e.Tags, ", "))
		}
		fmt.Fprintf(&sb, "\n%s\n\n", ai.Snippet(e.Content, entrySnippetBudget))
	}

	prompt := fmt.Sprintf(
		"Analyze these %d journal entries and identify the key themes, recurring topics, overall sentiment, growth areas, positive patterns, and any areas of concern:\n\n%s",
		len(entries), sb.String(),
	)

	var analysis EntriesAnalysis
	if err := s.ai.Generate(ctx, prompt, entriesAnalysisSchema, &analysis); err != nil {
		return nil, err
	}
	fillEmptySlices(&analysis)

	// List returns newest first.
	oldest := entries[len(entries)-1].EntryDate
	newest := entries[0].EntryDate
	return &EntriesAnalysisResult{
		EntriesAnalysis: analysis,
		EntriesAnalyzed: len(entries),
		DateRange:       fmt.Sprintf("%s to %s", oldest.Format(analytics.DayFormat), newest.Format(analytics.DayFormat)),
	}, nil
}

// AnalyzeSentiment scores a single piece of writing. When entryID names an
// existing entry the detected mood and themes are written back onto it.
func (s *JournalService) AnalyzeSentiment(ctx context.Context, userID uuid.UUID, req AnalyzeSentimentRequest) (*SentimentAnalysis, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrInvalidContent
	}

	prompt := fmt.Sprintf(
		"Analyze the emotional sentiment of this journal entry. Score the mood from 1 (very low) to 5 (very good) and name the emotions you detect:\n\n%s",
		ai.Snippet(content, entrySnippetBudget),
	)

	var analysis SentimentAnalysis
	if err := s.ai.Generate(ctx, prompt, sentimentSchema, &analysis); err != nil {
		return nil, err
	}
	if analysis.MoodScore < 1 {
		analysis.MoodScore = 1
	}
	if analysis.MoodScore > 5 {
		analysis.MoodScore = 5
	}
	if analysis.SecondaryEmotions == nil {
		analysis.SecondaryEmotions = []string{}
	}
	if analysis.Themes == nil {
		analysis.Themes = []string{}
	}

	if req.EntryID != "" {
		entryID, err := uuid.Parse(req.EntryID)
		if err != nil {
			return nil, ErrEntryNotFound
		}
		entry, err := s.Get(userID, entryID)
		if err != nil {
			return nil, err
		}
		entry.Mood = &analysis.MoodScore
		if len(analysis.Themes) > 0 {
			entry.Tags = datatypes.NewJSONSlice(analysis.Themes)
		}
		if err := s.db.Save(entry).Error; err != nil {
			return nil, err
		}
	}

	return &analysis, nil
}

var entriesAnalysisSchema = ai.Schema{
	Name: "journal_entries_analysis",
	Properties: map[string]any{
		"key_themes":         ai.ArrayProp("main themes across the entries", ai.Prop("string", "theme"), 5),
		"sentiment_analysis": ai.Prop("string", "overall emotional tone in 2-3 sentences"),
		"recurring_topics":   ai.ArrayProp("topics that appear in multiple entries", ai.Prop("string", "topic"), 5),
		"growth_areas":       ai.ArrayProp("areas where the writer could grow", ai.Prop("string", "growth area"), 3),
		"positive_patterns":  ai.ArrayProp("healthy patterns worth reinforcing", ai.Prop("string", "pattern"), 3),
		"areas_of_concern":   ai.ArrayProp("patterns that may need attention", ai.Prop("string", "concern"), 3),
	},
	Required: []string{"key_themes", "sentiment_analysis"},
}

var sentimentSchema = ai.Schema{
	Name: "journal_sentiment",
	Properties: map[string]any{
		"mood_score":         ai.Prop("integer", "mood from 1 (very low) to 5 (very good)"),
		"primary_emotion":    ai.Prop("string", "the dominant emotion"),
		"secondary_emotions": ai.ArrayProp("other emotions present", ai.Prop("string", "emotion"), 4),
		"sentiment_summary":  ai.Prop("string", "one-paragraph summary of the emotional state"),
		"themes":             ai.ArrayProp("short topical tags for the entry", ai.Prop("string", "tag"), 5),
	},
	Required: []string{"mood_score", "primary_emotion", "sentiment_summary"},
}

func fillEmptySlices(a *EntriesAnalysis) {
	if a.KeyThemes == nil {
		a.KeyThemes = []string{}
	}
	if a.RecurringTopics == nil {
		a.RecurringTopics = []string{}
	}
	if a.GrowthAreas == nil {
		a.GrowthAreas = []string{}
	}
	if a.PositivePatterns == nil {
		a.PositivePatterns = []string{}
	}
	if a.AreasOfConcern == nil {
		a.AreasOfConcern = []string{}
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
