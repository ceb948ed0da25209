package ai

import (
	"context"

	"skillswap/internal/models"
)

// Noop is used when no API key is configured. Every call fails with ErrUnavailable.
type Noop struct{}

func (Noop) Summarize(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (Noop) Recommend(context.Context, []SkillInput) ([]models.Recommendation, error) {
	return nil, ErrUnavailable
}

func (Noop) Chat(context.Context, string, string, ChatOptions) (string, error) {
	return "", ErrUnavailable
}

// New returns an OpenAI-backed client, or Noop when apiKey is empty.
func New(apiKey, model, baseURL string) Client {
	if apiKey == "" {
		return Noop{}
	}
	return NewOpenAIClient(apiKey, model, baseURL)
}
