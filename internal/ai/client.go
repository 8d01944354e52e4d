package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Krosebrook/lifesync-sub000/internal/config"
)

var ErrNotConfigured = errors.New("no AI provider configured")

// Client invokes an OpenAI-compatible chat-completions endpoint and decodes
// the schema-constrained JSON reply. One provider is chosen at construction
// (GLM, then DeepSeek, then OpenAI); there is no retry and no fallback — a
// failed call surfaces directly to the handler.
type Client struct {
	apiURL string
	apiKey string
	model  string
	http   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	c := &Client{http: &http.Client{Timeout: cfg.AITimeout}}
	switch {
	case cfg.GLMAPIKey != "":
		c.apiURL, c.apiKey, c.model = cfg.GLMAPIURL, cfg.GLMAPIKey, cfg.GLMModel
	case cfg.DeepSeekAPIKey != "":
		c.apiURL, c.apiKey, c.model = cfg.DeepSeekAPIURL, cfg.DeepSeekAPIKey, cfg.DeepSeekModel
	case cfg.OpenAIAPIKey != "":
		c.apiURL, c.apiKey, c.model = cfg.OpenAIAPIURL, cfg.OpenAIAPIKey, cfg.OpenAIModel
	}
	return c
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt with the schema embedded in the system message
// and unmarshals the model's JSON reply into out. Missing optional fields
// are left at their zero values; callers supply empty-slice defaults.
func (c *Client) Generate(ctx context.Context, prompt string, schema Schema, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	system := fmt.Sprintf(
		"You are the LifeSync well-being coach. Respond with a single JSON object only, no markdown and no code fences, conforming exactly to this JSON schema (name: %s): %s",
		schema.Name, schema.renderJSON(),
	)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.7,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("AI provider returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return fmt.Errorf("failed to decode AI response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return errors.New("AI response contained no choices")
	}

	content := stripCodeFences(chat.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("AI response was not valid %s JSON: %w", schema.Name, err)
	}
	return nil
}

// stripCodeFences removes a surrounding ```json ... ``` block when the model
// ignores the no-markdown instruction.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}
	return strings.TrimSpace(content)
}
