// Package llm wraps the Gemini client behind the opaque text-in/text-out
// contract the tool layer expects: one prompt string in, one answer
// string out, no retries and no structured output.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Caller is the boundary the handlers depend on; satisfied by Client and
// trivially fakeable in tests.
type Caller interface {
	Call(ctx context.Context, prompt string) (string, error)
}

// Client answers prompts with a fixed Gemini model.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient initializes the Gemini client from the ambient credentials
// (GEMINI_API_KEY or application default credentials).
func NewClient(ctx context.Context, model string) (*Client, error) {
	c, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

// Call sends one prompt and returns the model's text.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", c.model)
	}
	return text, nil
}

// NormalizeLanguage folds a free-form language code to one of the two
// supported languages: "hi*" → hi, everything else (including empty) → en.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if strings.HasPrefix(lang, "hi") {
		return "hi"
	}
	return "en"
}

// FinanceQAPrompt builds the prompt for a direct personal finance question.
func FinanceQAPrompt(query, language string) string {
	lang := NormalizeLanguage(language)
	return fmt.Sprintf(
		"Answer this personal finance question clearly and simply in %s:\n\n%s\n\nKeep it brief and actionable.",
		lang, query)
}

// NewsSimplifierPrompt builds the prompt that rewrites financial news into
// plain language with jargon explained.
func NewsSimplifierPrompt(newsText, language string) string {
	lang := NormalizeLanguage(language)
	return fmt.Sprintf(
		"Summarize this financial news article in simple %s language, explaining any jargon:\n\n%s\n\nSummary:",
		lang, newsText)
}
