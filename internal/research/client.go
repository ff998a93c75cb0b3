// Package research fetches market data and deep-dive analysis for stock
// symbols through the Perplexity chat completions API, with a deterministic
// mock fallback so recommendation requests always succeed.
package research

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jlawman/investment-advisory/internal/config"
	"github.com/jlawman/investment-advisory/internal/inference"
	"github.com/jlawman/investment-advisory/internal/metrics"
	"github.com/jlawman/investment-advisory/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

const perplexityBaseURL = "https://api.perplexity.ai"

const (
	// Lower temperature for factual market data
	marketDataTemperature = 0.3
	deepDiveTemperature   = 0.2
)

// Researcher produces market research for stock symbols.
type Researcher interface {
	// Fetch returns a market data snapshot for symbol. It never fails:
	// upstream errors degrade to mock data with IsMock set.
	Fetch(ctx context.Context, symbol string) models.MarketResearch

	// Investigate runs a deep research pass (sentiment, competitors,
	// recommendation) for symbol over the given timeframe.
	Investigate(ctx context.Context, symbol string, timeframe models.ResearchTimeframe) (*models.DeepResearch, error)
}

// PerplexityClient queries Perplexity through its OpenAI-compatible API.
type PerplexityClient struct {
	client          *openai.Client
	model           string
	timeout         time.Duration
	logger          *slog.Logger
	inferenceLogger *inference.Logger
	collector       *metrics.HTTPCollector
}

// NewPerplexityClient creates a research client from advisor configuration.
func NewPerplexityClient(cfg config.AdvisorConfig, logger *slog.Logger, inferenceLogger *inference.Logger, collector *metrics.HTTPCollector) *PerplexityClient {
	clientConfig := openai.DefaultConfig(cfg.PerplexityAPIKey)
	clientConfig.BaseURL = perplexityBaseURL

	return &PerplexityClient{
		client:          openai.NewClientWithConfig(clientConfig),
		model:           cfg.Model,
		timeout:         time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:          logger,
		inferenceLogger: inferenceLogger,
		collector:       collector,
	}
}

// Fetch returns a market data snapshot for symbol. Upstream failures, empty
// responses, and unparseable output all degrade to mock data.
func (c *PerplexityClient) Fetch(ctx context.Context, symbol string) models.MarketResearch {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	content, err := c.complete(ctx, "market_research", marketDataSystemPrompt, buildMarketDataPrompt(symbol), marketDataTemperature)
	if err != nil {
		c.logger.Warn("market research call failed, using mock data",
			"symbol", symbol,
			"error", err)
		return c.mockFallback(symbol, "market_research")
	}

	research, ok := parseMarketData(symbol, content)
	if !ok {
		c.logger.Warn("market research response unparseable, using mock data",
			"symbol", symbol,
			"content_length", len(content))
		return c.mockFallback(symbol, "market_research")
	}

	return research
}

// Investigate runs sentiment, competitor, and recommendation analysis
// concurrently. Each section falls back to mock text independently, so a
// single upstream failure never loses the other sections.
func (c *PerplexityClient) Investigate(ctx context.Context, symbol string, timeframe models.ResearchTimeframe) (*models.DeepResearch, error) {
	if !models.ValidTimeframe(timeframe) {
		return nil, fmt.Errorf("invalid research timeframe: %q", timeframe)
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	mock := MockDeepResearch(symbol, timeframe)

	result := &models.DeepResearch{
		Symbol:      symbol,
		Timeframe:   timeframe,
		GeneratedAt: time.Now().UTC(),
	}

	type section struct {
		operation string
		prompt    string
		target    *string
		fallback  string
	}

	sections := []section{
		{"research_sentiment", buildSentimentPrompt(symbol, timeframe), &result.Sentiment, mock.Sentiment},
		{"research_competitors", buildCompetitorPrompt(symbol), &result.Competitors, mock.Competitors},
		{"research_recommendation", buildRecommendationPrompt(symbol, timeframe), &result.Recommendation, mock.Recommendation},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, s := range sections {
		wg.Add(1)
		go func(s section) {
			defer wg.Done()

			content, err := c.complete(ctx, s.operation, deepDiveSystemPrompt, s.prompt, deepDiveTemperature)
			mu.Lock()
			defer mu.Unlock()
			if err != nil || strings.TrimSpace(content) == "" {
				c.logger.Warn("deep research section failed, using mock text",
					"symbol", symbol,
					"operation", s.operation,
					"error", err)
				if c.collector != nil {
					c.collector.RecordMockFallback(s.operation)
				}
				*s.target = s.fallback
				result.IsMock = true
				return
			}
			*s.target = strings.TrimSpace(content)
		}(s)
	}

	wg.Wait()

	return result, nil
}

// complete makes a single chat completion call against Perplexity.
func (c *PerplexityClient) complete(ctx context.Context, operation, systemPrompt, userPrompt string, temperature float32) (string, error) {
	apiCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(apiCtx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
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
		c.inferenceLogger.LogPerplexityCall(ctx, c.model, operation, usage, latency, err, map[string]interface{}{
			"temperature": temperature,
		})
	}

	if err != nil {
		return "", fmt.Errorf("perplexity api call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned from model %s", c.model)
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *PerplexityClient) mockFallback(symbol, operation string) models.MarketResearch {
	if c.collector != nil {
		c.collector.RecordMockFallback(operation)
	}
	return MockMarketResearch(symbol)
}
