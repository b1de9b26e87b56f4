// Package ai wraps the chat-completion API the game uses as its text
// generator. The rest of the engine only sees the Generator interface and
// the ErrGeneratorUnavailable sentinel; provider errors never leak out.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"westeros-realty/internal/models"
)

// Generator produces narrative text for the game. Implementations may
// block on network I/O; both calls honor context cancellation and map any
// provider failure to models.ErrGeneratorUnavailable.
type Generator interface {
	GenerateStorySegment(ctx context.Context, data StoryPromptData) (string, error)
	GenerateConsequence(ctx context.Context, data ConsequencePromptData) (string, error)
}

// Config holds the settings for the OpenAI-compatible generator.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

type openAIGenerator struct {
	client     *openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	logger     *zap.Logger
}

var _ Generator = (*openAIGenerator)(nil)

// New creates a Generator backed by an OpenAI-compatible chat API.
func New(cfg Config, logger *zap.Logger) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("generator API key is not set")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &openAIGenerator{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		logger:     logger.Named("Generator"),
	}, nil
}

// GenerateStorySegment asks the model for the next story segment plus
// three annotated choices.
func (g *openAIGenerator) GenerateStorySegment(ctx context.Context, data StoryPromptData) (string, error) {
	return g.generate(ctx, "story_segment", BuildStoryPrompt(data))
}

// GenerateConsequence asks the model to narrate the outcome of a choice.
func (g *openAIGenerator) GenerateConsequence(ctx context.Context, data ConsequencePromptData) (string, error) {
	return g.generate(ctx, "consequence", BuildConsequencePrompt(data))
}

func (g *openAIGenerator) generate(ctx context.Context, kind, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: empty prompt", models.ErrGeneratorUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.Debug("Sending generation request",
		zap.String("kind", kind),
		zap.String("model", g.model),
		zap.Int("prompt_tokens_estimate", g.estimateTokens(prompt)),
	)

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.8,
		MaxTokens:   1000,
		TopP:        0.95,
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		start := time.Now()
		resp, err := g.client.CreateChatCompletion(ctx, req)
		duration := time.Since(start)

		if err != nil {
			lastErr = err
			requestsTotal.WithLabelValues(g.model, "error").Inc()
			g.logger.Warn("Generation request failed",
				zap.String("kind", kind),
				zap.Int("attempt", attempt),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			if ctx.Err() != nil {
				break
			}
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			lastErr = errors.New("empty completion")
			requestsTotal.WithLabelValues(g.model, "error_empty_response").Inc()
			g.logger.Warn("Generation returned empty completion",
				zap.String("kind", kind),
				zap.Int("attempt", attempt),
			)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		requestsTotal.WithLabelValues(g.model, "success").Inc()
		requestDuration.WithLabelValues(g.model).Observe(duration.Seconds())
		if resp.Usage.TotalTokens > 0 {
			promptTokens.WithLabelValues(g.model).Observe(float64(resp.Usage.PromptTokens))
			completionTokens.WithLabelValues(g.model).Observe(float64(resp.Usage.CompletionTokens))
		}

		g.logger.Debug("Generation request completed",
			zap.String("kind", kind),
			zap.Duration("duration", duration),
			zap.Int("response_chars", len(resp.Choices[0].Message.Content)),
		)
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("%w: %v", models.ErrGeneratorUnavailable, lastErr)
}

// estimateTokens returns a best-effort prompt token count for logging.
// Zero when no tokenizer is available for the model.
func (g *openAIGenerator) estimateTokens(prompt string) int {
	tke, err := tiktoken.EncodingForModel(g.model)
	if err != nil {
		return 0
	}
	return len(tke.Encode(prompt, nil, nil))
}
