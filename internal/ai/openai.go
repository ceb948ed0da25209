package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/observability"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4o

const (
	summarySystemPrompt = "You are an expert at summarizing educational content. Create a comprehensive summary that captures the main points, key concepts, and practical takeaways. The summary should be about 150-200 words and written in a clear, educational style."
	summaryUserPrompt   = "Please summarize the following educational document. Focus on the key concepts and learning objectives:\n\n"

	recommendSystemPrompt = "You are an expert educational advisor. Your goal is to recommend learning resources and next steps based on a user's current skills and interests."
	recommendUserPrompt   = "Please analyze these skills and provide recommendations for further learning. Return the response as a JSON object with a \"recommendations\" array of objects with 'skill', 'resource', and 'reason' properties.\n\n"

	summaryFallback = "Failed to generate summary."
)

// OpenAIClient talks to the OpenAI chat completions API or any compatible endpoint.
type OpenAIClient struct {
	api   *openai.Client
	model string
}

// NewOpenAIClient builds a client. baseURL may be empty for the public API.
func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIClient{api: openai.NewClientWithConfig(cfg), model: model}
}

func (c *OpenAIClient) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := c.complete(ctx, "summarize", openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: summaryUserPrompt + TruncateForSummary(text)},
		},
		Temperature: 0.5,
	})
	if err != nil {
		return "", err
	}
	if resp == "" {
		return summaryFallback, nil
	}
	return resp, nil
}

type recommendationEnvelope struct {
	Recommendations []models.Recommendation `json:"recommendations"`
}

func (c *OpenAIClient) Recommend(ctx context.Context, skills []SkillInput) ([]models.Recommendation, error) {
	payload, err := json.Marshal(skills)
	if err != nil {
		return nil, err
	}
	resp, err := c.complete(ctx, "recommend", openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: recommendSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: recommendUserPrompt + string(payload)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.5,
	})
	if err != nil {
		return nil, err
	}

	var env recommendationEnvelope
	if err := json.Unmarshal([]byte(resp), &env); err != nil {
		slog.WarnContext(ctx, "AI recommendations were not valid JSON", slog.String("error", err.Error()))
		return []models.Recommendation{}, nil
	}
	if env.Recommendations == nil {
		return []models.Recommendation{}, nil
	}
	return env.Recommendations, nil
}

func (c *OpenAIClient) Chat(ctx context.Context, system, user string, opts ChatOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	return c.complete(ctx, "chat", req)
}

func (c *OpenAIClient) complete(ctx context.Context, operation string, req openai.ChatCompletionRequest) (string, error) {
	ctx, span := observability.StartAICall(ctx, "openai", operation, req.Model)
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		err = classifyError(err)
		observability.EndSpan(span, err)
		outcome := "error"
		if errors.Is(err, ErrRateLimited) {
			outcome = "rate_limited"
		}
		middleware.AIRequests.WithLabelValues(operation, outcome).Inc()
		return "", err
	}
	middleware.AIRequests.WithLabelValues(operation, "ok").Inc()
	span.SetAttributes(attribute.Int("ai.total_tokens", resp.Usage.TotalTokens))
	observability.EndSpan(span, nil)

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyError maps provider throttling to ErrRateLimited, keeping the original cause.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	if IsRateLimitMessage(err.Error()) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return err
}
