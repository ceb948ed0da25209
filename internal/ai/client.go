// Package ai wraps the large-language-model provider used for document
// summaries, learning recommendations and the SkillBot assistant.
package ai

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/models"
)

// ErrRateLimited is returned when the provider throttles or the quota is exhausted.
var ErrRateLimited = errors.New("ai provider rate limited")

// ErrUnavailable is returned when no provider is configured.
var ErrUnavailable = errors.New("ai provider not configured")

// MaxSummaryInput caps the document text sent for summarization.
const MaxSummaryInput = 12000

// SkillInput describes one of the user's skill records for recommendations.
type SkillInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Proficiency string `json:"proficiency"`
	Description string `json:"description,omitempty"`
}

// ChatOptions tune a single assistant completion.
type ChatOptions struct {
	MaxTokens int
}

// Client is the provider surface the services depend on.
type Client interface {
	Summarize(ctx context.Context, text string) (string, error)
	Recommend(ctx context.Context, skills []SkillInput) ([]models.Recommendation, error)
	Chat(ctx context.Context, system, user string, opts ChatOptions) (string, error)
}

// TruncateForSummary trims text to MaxSummaryInput characters, marking the cut with "...".
func TruncateForSummary(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxSummaryInput {
		return text
	}
	return string(runes[:MaxSummaryInput]) + "..."
}

// IsRateLimitMessage reports whether an error message reads like provider throttling.
func IsRateLimitMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota")
}
