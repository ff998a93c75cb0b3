// Package advisor generates per-persona stock recommendations through a
// configurable completion provider and aggregates them into a board
// consensus with a suggested allocation.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/jlawman/investment-advisory/internal/config"
	"github.com/jlawman/investment-advisory/internal/inference"
	"github.com/jlawman/investment-advisory/internal/metrics"
	"github.com/jlawman/investment-advisory/internal/models"
	"github.com/jlawman/investment-advisory/internal/personas"
	openai "github.com/sashabaranov/go-openai"
)

const perplexityBaseURL = "https://api.perplexity.ai"

// Generator produces investor recommendations for a stock symbol.
type Generator interface {
	// Generate returns one persona's recommendation. It never fails:
	// upstream errors degrade to the persona's mock fixture with IsMock set.
	Generate(ctx context.Context, persona models.Persona, symbol string, research models.MarketResearch) models.InvestorRecommendation

	// GenerateAll produces recommendations for each persona id concurrently,
	// preserving input order. Unknown ids are skipped.
	GenerateAll(ctx context.Context, personaIDs []string, symbol string, research models.MarketResearch) []models.InvestorRecommendation
}

// Client generates recommendations through the configured provider.
type Client struct {
	provider        string
	model           string
	temperature     float32
	timeout         time.Duration
	openaiClient    *openai.Client
	anthropicClient anthropic.Client
	logger          *slog.Logger
	inferenceLogger *inference.Logger
	collector       *metrics.HTTPCollector
}

// NewClient creates a generator from advisor configuration. Both provider
// clients are constructed; the configured provider selects which one is used.
func NewClient(cfg config.AdvisorConfig, logger *slog.Logger, inferenceLogger *inference.Logger, collector *metrics.HTTPCollector) *Client {
	clientConfig := openai.DefaultConfig(cfg.PerplexityAPIKey)
	clientConfig.BaseURL = perplexityBaseURL

	return &Client{
		provider:        cfg.Provider,
		model:           cfg.Model,
		temperature:     cfg.Temperature,
		timeout:         time.Duration(cfg.TimeoutSeconds) * time.Second,
		openaiClient:    openai.NewClientWithConfig(clientConfig),
		anthropicClient: anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey)),
		logger:          logger,
		inferenceLogger: inferenceLogger,
		collector:       collector,
	}
}

// Generate produces one persona's recommendation. Provider failures fall
// back to the persona's deterministic mock fixture, so a single bad
// upstream call never fails the whole board.
func (c *Client) Generate(ctx context.Context, persona models.Persona, symbol string, research models.MarketResearch) models.InvestorRecommendation {
	prompt := buildPersonaPrompt(persona, symbol, research)

	var content string
	var err error

	switch c.provider {
	case "anthropic":
		content, err = c.callAnthropic(ctx, persona.ID, prompt)
	default:
		content, err = c.callOpenAI(ctx, persona.ID, prompt)
	}

	var rec models.InvestorRecommendation
	if err != nil || content == "" {
		c.logger.Warn("recommendation generation failed, using mock fixture",
			"persona", persona.ID,
			"symbol", symbol,
			"provider", c.provider,
			"error", err)
		if c.collector != nil {
			c.collector.RecordMockFallback("persona_recommendation")
		}
		rec = MockRecommendation(persona, symbol)
	} else {
		rec = parseRecommendation(persona, content)
	}

	if c.collector != nil {
		c.collector.RecordRecommendation(persona.ID, string(rec.Position))
	}

	return rec
}

// GenerateAll fans out to one goroutine per persona. Results keep the input
// order, and each persona's failure is isolated by Generate's mock fallback.
func (c *Client) GenerateAll(ctx context.Context, personaIDs []string, symbol string, research models.MarketResearch) []models.InvestorRecommendation {
	resolved := make([]models.Persona, 0, len(personaIDs))
	for _, id := range personaIDs {
		persona, ok := personas.Lookup(id)
		if !ok {
			c.logger.Warn("skipping unknown persona", "persona", id)
			continue
		}
		resolved = append(resolved, persona)
	}

	results := make([]models.InvestorRecommendation, len(resolved))

	var wg sync.WaitGroup
	for i, persona := range resolved {
		wg.Add(1)
		go func(i int, persona models.Persona) {
			defer wg.Done()
			results[i] = c.Generate(ctx, persona, symbol, research)
		}(i, persona)
	}
	wg.Wait()

	return results
}

// callOpenAI makes a single call against the OpenAI-compatible Perplexity
// endpoint and returns the completion text.
func (c *Client) callOpenAI(ctx context.Context, personaID, prompt string) (string, error) {
	apiCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.openaiClient.CreateChatCompletion(apiCtx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: personaSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	latency := time.Since(start)

	if c.inferenceLogger != nil {
		usage := struct {
			PromptTokens     int
			CompletionTokens int
			TotalTokens      int
		}{}
		if err == nil {
			usage.PromptTokens = resp.Usage.PromptTokens
			usage.CompletionTokens = resp.Usage.CompletionTokens
			usage.TotalTokens = resp.Usage.TotalTokens
		}
		c.inferenceLogger.LogPerplexityCall(ctx, c.model, "persona_recommendation", usage, latency, err, map[string]interface{}{
			"persona": personaID,
		})
	}

	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// callAnthropic makes a single Anthropic API call and returns the
// completion text.
func (c *Client) callAnthropic(ctx context.Context, personaID, prompt string) (string, error) {
	apiCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.anthropicClient.Messages.New(apiCtx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   1000,
		Temperature: anthropic.Float(float64(c.temperature)),
		System: []anthropic.TextBlockParam{
			{Text: personaSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	latency := time.Since(start)

	if c.inferenceLogger != nil {
		usage := struct {
			InputTokens  int
			OutputTokens int
		}{}
		if err == nil {
			usage.InputTokens = int(resp.Usage.InputTokens)
			usage.OutputTokens = int(resp.Usage.OutputTokens)
		}
		c.inferenceLogger.LogAnthropicCall(ctx, c.model, "persona_recommendation", usage, latency, err, map[string]interface{}{
			"persona": personaID,
		})
	}

	if err != nil {
		return "", err
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content = block.Text
			break
		}
	}

	if content == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return content, nil
}
