package journal

import (
	"context"
	"strings"
	"testing"

	"github.com/Krosebrook/lifesync-sub000/internal/ai"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubGenerator records the prompt and writes a canned reply into out.
type stubGenerator struct {
	prompt string
	schema ai.Schema
	reply  func(out any)
	err    error
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, schema ai.Schema, out any) error {
	s.prompt = prompt
	s.schema = schema
	if s.err != nil {
		return s.err
	}
	if s.reply != nil {
		s.reply(out)
	}
	return nil
}

func newTestService(t *testing.T, gen *stubGenerator) *JournalService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&JournalEntry{}))
	svc := NewJournalService(db, nil)
	svc.ai = gen
	return svc
}

func TestCreateValidatesMoodRange(t *testing.T) {
	svc := newTestService(t, &stubGenerator{})
	userID := uuid.New()

	bad := 6
	_, err := svc.Create(userID, CreateEntryRequest{Content: "A good day", Mood: &bad})
	assert.ErrorIs(t, err, ErrInvalidMood)

	ok := 4
	entry, err := svc.Create(userID, CreateEntryRequest{Content: "A good day", Mood: &ok})
	require.NoError(t, err)
	assert.Equal(t, 4, *entry.Mood)
	assert.NotNil(t, entry.Tags)
}

func TestAnalyzeEntriesRequiresEntries(t *testing.T) {
	svc := newTestService(t, &stubGenerator{})

	_, err := svc.AnalyzeEntries(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestAnalyzeEntriesTruncatesLongContent(t *testing.T) {
	gen := &stubGenerator{reply: func(out any) {
		a := out.(*EntriesAnalysis)
		a.KeyThemes = []string{"work stress"}
		a.SentimentAnalysis = "Mostly strained."
	}}
	svc := newTestService(t, gen)
	userID := uuid.New()

	long := strings.Repeat("x", 2000)
	_, err := svc.Create(userID, CreateEntryRequest{Content: long})
	require.NoError(t, err)

	analysis, err := svc.AnalyzeEntries(context.Background(), userID, 0)
	require.NoError(t, err)

	assert.NotContains(t, gen.prompt, long)
	assert.Contains(t, gen.prompt, strings.Repeat("x", entrySnippetBudget)+"...")
	assert.Equal(t, []string{"work stress"}, analysis.KeyThemes)
	assert.Equal(t, 1, analysis.EntriesAnalyzed)
	// Optional fields the model omitted come back as empty slices.
	assert.NotNil(t, analysis.RecurringTopics)
	assert.NotNil(t, analysis.AreasOfConcern)
}

func TestAnalyzeSentimentWritesBackToEntry(t *testing.T) {
	gen := &stubGenerator{reply: func(out any) {
		a := out.(*SentimentAnalysis)
		a.MoodScore = 2
		a.PrimaryEmotion = "anxiety"
		a.SentimentSummary = "Worried about deadlines."
		a.Themes = []string{"work", "sleep"}
	}}
	svc := newTestService(t, gen)
	userID := uuid.New()

	entry, err := svc.Create(userID, CreateEntryRequest{Content: "Could not sleep before the launch."})
	require.NoError(t, err)

	analysis, err := svc.AnalyzeSentiment(context.Background(), userID, AnalyzeSentimentRequest{
		EntryID: entry.ID.String(),
		Content: entry.Content,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, analysis.MoodScore)

	updated, err := svc.Get(userID, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Mood)
	assert.Equal(t, 2, *updated.Mood)
	assert.Equal(t, []string{"work", "sleep"}, []string(updated.Tags))
}

func TestAnalyzeSentimentClampsScore(t *testing.T) {
	gen := &stubGenerator{reply: func(out any) {
		a := out.(*SentimentAnalysis)
		a.MoodScore = 9
		a.PrimaryEmotion = "joy"
		a.SentimentSummary = "Over the moon."
	}}
	svc := newTestService(t, gen)

	analysis, err := svc.AnalyzeSentiment(context.Background(), uuid.New(), AnalyzeSentimentRequest{Content: "Best day ever"})
	require.NoError(t, err)
	assert.Equal(t, 5, analysis.MoodScore)
}

func TestAnalyzeSentimentRejectsEmptyContent(t *testing.T) {
	svc := newTestService(t, &stubGenerator{})

	_, err := svc.AnalyzeSentiment(context.Background(), uuid.New(), AnalyzeSentimentRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrInvalidContent)
}
