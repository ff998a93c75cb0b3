package models

import "time"

// MarketResearch is a snapshot of market data for a symbol. It is produced
// fresh per request and never cached server-side.
type MarketResearch struct {
	Symbol          string `json:"symbol"`
	CurrentPrice    string `json:"currentPrice"`
	MarketCap       string `json:"marketCap"`
	PERatio         string `json:"peRatio"`
	DividendYield   string `json:"dividendYield"`
	YearPerformance string `json:"yearPerformance"`
	AnalystRating   string `json:"analystRating"`
	PriceTarget     string `json:"priceTarget"`
	Sentiment       string `json:"sentiment,omitempty"`
	Competitors     string `json:"competitors,omitempty"`
	IsMock          bool   `json:"isMockData"`
}

// ResearchTimeframe is the horizon for deep research requests.
type ResearchTimeframe string

const (
	Timeframe1Month ResearchTimeframe = "1mo"
	Timeframe6Month ResearchTimeframe = "6mo"
	Timeframe1Year  ResearchTimeframe = "1yr"
)

// ValidTimeframe reports whether tf is one of the accepted research horizons.
func ValidTimeframe(tf ResearchTimeframe) bool {
	switch tf {
	case Timeframe1Month, Timeframe6Month, Timeframe1Year:
		return true
	}
	return false
}

// DeepResearch is the response of the research endpoint: free-text analyses
// produced by the research provider (or its mock fallback).
type DeepResearch struct {
	Symbol         string            `json:"stockSymbol"`
	Timeframe      ResearchTimeframe `json:"timeframe"`
	Sentiment      string            `json:"sentiment"`
	Competitors    string            `json:"competitors"`
	Recommendation string            `json:"recommendation"`
	IsMock         bool              `json:"isMockData"`
	GeneratedAt    time.Time         `json:"timestamp"`
}
