package research

import (
	"context"
	"fmt"
	"time"

	"github.com/jlawman/investment-advisory/internal/models"
)

// MockResearcher serves fixed research data without any API calls. Used when
// no Perplexity credential is configured, and in tests.
type MockResearcher struct{}

// NewMockResearcher creates a researcher that always returns mock data.
func NewMockResearcher() *MockResearcher {
	return &MockResearcher{}
}

// Fetch returns the fixed mock snapshot for symbol.
func (m *MockResearcher) Fetch(ctx context.Context, symbol string) models.MarketResearch {
	return MockMarketResearch(symbol)
}

// Investigate returns fixed mock analysis for symbol.
func (m *MockResearcher) Investigate(ctx context.Context, symbol string, timeframe models.ResearchTimeframe) (*models.DeepResearch, error) {
	if !models.ValidTimeframe(timeframe) {
		return nil, fmt.Errorf("invalid research timeframe: %q", timeframe)
	}
	r := MockDeepResearch(symbol, timeframe)
	r.GeneratedAt = time.Now().UTC()
	return &r, nil
}

// MockMarketResearch returns the deterministic market data snapshot used
// whenever live research is unavailable.
func MockMarketResearch(symbol string) models.MarketResearch {
	return models.MarketResearch{
		Symbol:          symbol,
		CurrentPrice:    "$195.42",
		MarketCap:       "$3.04T",
		PERatio:         "32.5",
		DividendYield:   "0.44%",
		YearPerformance: "+48.2%",
		AnalystRating:   "Buy",
		PriceTarget:     "$220.00",
		IsMock:          true,
	}
}

// MockDeepResearch returns deterministic deep-dive text for symbol.
func MockDeepResearch(symbol string, timeframe models.ResearchTimeframe) models.DeepResearch {
	horizon := timeframeLabel(timeframe)
	return models.DeepResearch{
		Symbol:         symbol,
		Timeframe:      timeframe,
		Sentiment:      fmt.Sprintf("Market sentiment for %s has been broadly positive over the past %s. Analyst coverage skews bullish, news flow has been constructive, and institutional ownership has held steady with modest net buying.", symbol, horizon),
		Competitors:    fmt.Sprintf("%s competes with the other large players in its sector. Its valuation commands a premium to peers, justified by stronger margins and a more durable growth profile, though smaller rivals are closing the gap in select segments.", symbol),
		Recommendation: fmt.Sprintf("Buy. %s combines consistent earnings growth with a defensible market position, and the current price offers a reasonable entry point for a %s horizon.", symbol, horizon),
		IsMock:         true,
	}
}
