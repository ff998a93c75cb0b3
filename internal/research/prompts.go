package research

import (
	"fmt"
	"strings"

	"github.com/jlawman/investment-advisory/internal/models"
)

const marketDataSystemPrompt = `You are a financial data assistant. Report current market data for publicly traded stocks. Respond only with the requested fields, one per line, in the exact "Field: value" format. Do not add commentary.`

const deepDiveSystemPrompt = `You are an equity research analyst. Provide concise, factual analysis grounded in recent market information. Respond in plain prose without headers or bullet lists unless asked.`

func buildMarketDataPrompt(symbol string) string {
	return fmt.Sprintf(`Provide current market data for the stock %s.

Respond with exactly these fields, one per line:
Current Price: <price with $ sign>
Market Cap: <value, e.g. $3.04T or $150.2B>
P/E Ratio: <number>
Dividend Yield: <percentage>
52-Week Performance: <signed percentage, e.g. +48.2%%>
Analyst Rating: <Buy, Hold, or Sell>
Price Target: <price with $ sign>`, symbol)
}

func buildSentimentPrompt(symbol string, timeframe models.ResearchTimeframe) string {
	return fmt.Sprintf("Summarize current market sentiment for %s over the past %s. Cover analyst opinion, news flow, and institutional activity in 3-4 sentences.", symbol, timeframeLabel(timeframe))
}

func buildCompetitorPrompt(symbol string) string {
	return fmt.Sprintf("Identify the main competitors of %s and briefly compare their market position, valuation, and growth outlook in 3-4 sentences.", symbol)
}

func buildRecommendationPrompt(symbol string, timeframe models.ResearchTimeframe) string {
	return fmt.Sprintf("Based on fundamentals and recent performance, give an investment recommendation for %s with a %s horizon. State Buy, Hold, or Sell and justify it in 2-3 sentences.", symbol, timeframeLabel(timeframe))
}

func timeframeLabel(tf models.ResearchTimeframe) string {
	switch tf {
	case models.Timeframe1Month:
		return "1 month"
	case models.Timeframe6Month:
		return "6 months"
	case models.Timeframe1Year:
		return "1 year"
	}
	return string(tf)
}

// parseMarketData extracts "Field: value" lines from a model response. The
// snapshot is only accepted when price and market cap are present; partial
// responses fall through to mock data instead of serving half-empty rows.
func parseMarketData(symbol, content string) (models.MarketResearch, bool) {
	research := models.MarketResearch{
		Symbol:          symbol,
		CurrentPrice:    extractField(content, "Current Price"),
		MarketCap:       extractField(content, "Market Cap"),
		PERatio:         extractField(content, "P/E Ratio"),
		DividendYield:   extractField(content, "Dividend Yield"),
		YearPerformance: extractField(content, "52-Week Performance"),
		AnalystRating:   extractField(content, "Analyst Rating"),
		PriceTarget:     extractField(content, "Price Target"),
	}

	if research.CurrentPrice == "" || research.MarketCap == "" {
		return models.MarketResearch{}, false
	}

	fill := func(s *string) {
		if *s == "" {
			*s = "N/A"
		}
	}
	fill(&research.PERatio)
	fill(&research.DividendYield)
	fill(&research.YearPerformance)
	fill(&research.AnalystRating)
	fill(&research.PriceTarget)

	return research, true
}

// extractField finds the first line starting with "field:" (case-insensitive)
// and returns the trimmed remainder.
func extractField(content, field string) string {
	prefix := strings.ToLower(field) + ":"
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		// Models sometimes bold the field names
		line = strings.Trim(line, "*")
		if len(line) < len(prefix) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), prefix) {
			return strings.TrimSpace(strings.Trim(line[len(prefix):], "* "))
		}
	}
	return ""
}
