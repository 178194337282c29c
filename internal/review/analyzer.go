package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrAnalyzerUnavailable is returned when no AI credential is configured
var ErrAnalyzerUnavailable = errors.New("AI analysis is not configured")

// Analyzer turns a review prompt into free-text analysis
type Analyzer interface {
	Available() bool
	Analyze(ctx context.Context, prompt string) (string, error)
}

// OpenAIAnalyzer uses the chat completion API
type OpenAIAnalyzer struct {
	client    *openai.Client
	logger    *zap.Logger
	model     string
	maxTokens int
}

// NewOpenAIAnalyzer creates an analyzer for apiKey. An empty model selects GPT-4o.
func NewOpenAIAnalyzer(apiKey, model string, maxTokens int, logger *zap.Logger) *OpenAIAnalyzer {
	return newOpenAIAnalyzer(openai.DefaultConfig(apiKey), model, maxTokens, logger)
}

func newOpenAIAnalyzer(cfg openai.ClientConfig, model string, maxTokens int, logger *zap.Logger) *OpenAIAnalyzer {
	if model == "" {
		model = openai.GPT4o
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIAnalyzer{
		client:    openai.NewClientWithConfig(cfg),
		logger:    logger,
		model:     model,
		maxTokens: maxTokens,
	}
}

func (a *OpenAIAnalyzer) Available() bool { return true }

// Analyze sends prompt and returns the first choice's content
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	a.logger.Debug("review analysis received",
		zap.String("model", a.model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Unavailable is the Analyzer used when no credential is configured
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Analyze(ctx context.Context, prompt string) (string, error) {
	return "", ErrAnalyzerUnavailable
}
