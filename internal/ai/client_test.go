package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(&config.Config{
		GLMAPIKey: "test-key",
		GLMAPIURL: url,
		GLMModel:  "test-model",
		AITimeout: 5 * time.Second,
	})
}

func chatReply(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func TestGenerateDecodesStructuredReply(t *testing.T) {
	srv := httptest.NewServer(chatReply(t, `{"mood_score": 4, "primary_emotion": "calm"}`))
	defer srv.Close()

	var out struct {
		MoodScore      int    `json:"mood_score"`
		PrimaryEmotion string `json:"primary_emotion"`
		Themes         []string `json:"themes"`
	}
	schema := Schema{Name: "sentiment", Properties: map[string]any{
		"mood_score":      Prop("integer", "mood on a 1-5 scale"),
		"primary_emotion": Prop("string", "dominant emotion"),
	}}

	err := newTestClient(srv.URL).Generate(context.Background(), "analyze this", schema, &out)
	require.NoError(t, err)
	assert.Equal(t, 4, out.MoodScore)
	assert.Equal(t, "calm", out.PrimaryEmotion)
	// Omitted optional field stays at its zero value.
	assert.Nil(t, out.Themes)
}

func TestGenerateStripsCodeFences(t *testing.T) {
	srv := httptest.NewServer(chatReply(t, "```json\n{\"mood_score\": 2}\n```"))
	defer srv.Close()

	var out struct {
		MoodScore int `json:"mood_score"`
	}
	err := newTestClient(srv.URL).Generate(context.Background(), "p", Schema{Name: "s"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, out.MoodScore)
}

func TestGenerateSendsSchemaInSystemMessage(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "{}"}}},
		})
	}))
	defer srv.Close()

	schema := Schema{
		Name:       "mood_report",
		Properties: map[string]any{"overall_mood_trend": EnumProp("trend", "improving", "stable", "declining")},
		Required:   []string{"overall_mood_trend"},
	}
	var out map[string]any
	err := newTestClient(srv.URL).Generate(context.Background(), "weekly data", schema, &out)
	require.NoError(t, err)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "mood_report")
	assert.Contains(t, captured.Messages[0].Content, "overall_mood_trend")
	assert.Equal(t, "weekly data", captured.Messages[1].Content)
}

func TestGenerateErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		c := NewClient(&config.Config{AITimeout: time.Second})
		err := c.Generate(context.Background(), "p", Schema{}, &map[string]any{})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("provider failure propagates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		err := newTestClient(srv.URL).Generate(context.Background(), "p", Schema{}, &map[string]any{})
		assert.ErrorContains(t, err, "status 502")
	})

	t.Run("non-JSON reply propagates", func(t *testing.T) {
		srv := httptest.NewServer(chatReply(t, "sorry, I cannot do that"))
		defer srv.Close()

		err := newTestClient(srv.URL).Generate(context.Background(), "p", Schema{Name: "s"}, &map[string]any{})
		assert.ErrorContains(t, err, "not valid")
	})
}
