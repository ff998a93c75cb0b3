package advisor

import (
	"context"
	"fmt"

	"github.com/jlawman/investment-advisory/internal/models"
	"github.com/jlawman/investment-advisory/internal/personas"
)

// MockGenerator produces deterministic persona recommendations without any
// API calls. Used when no completion credential is configured, and in tests.
type MockGenerator struct{}

// NewMockGenerator creates a generator that always returns mock data.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns the fixed mock recommendation for the persona.
func (m *MockGenerator) Generate(ctx context.Context, persona models.Persona, symbol string, research models.MarketResearch) models.InvestorRecommendation {
	return MockRecommendation(persona, symbol)
}

// GenerateAll returns mock recommendations for each known persona id,
// skipping unknown ids.
func (m *MockGenerator) GenerateAll(ctx context.Context, personaIDs []string, symbol string, research models.MarketResearch) []models.InvestorRecommendation {
	recs := make([]models.InvestorRecommendation, 0, len(personaIDs))
	for _, id := range personaIDs {
		persona, ok := personas.Lookup(id)
		if !ok {
			continue
		}
		recs = append(recs, MockRecommendation(persona, symbol))
	}
	return recs
}

// MockRecommendation returns the deterministic recommendation for a persona,
// with the symbol substituted into the rationale. Personas without a fixture
// fall back to the value-investing one.
func MockRecommendation(persona models.Persona, symbol string) models.InvestorRecommendation {
	rec := models.InvestorRecommendation{
		PersonaID: persona.ID,
		Investor:  persona.Name,
		IsMock:    true,
	}

	switch persona.ID {
	case "wood":
		rec.Position = models.PositionBuy
		rec.Label = "STRONG BUY"
		rec.Confidence = 0.85
		rec.Rationale = fmt.Sprintf("From Cathie Wood's perspective, %s is positioned at the forefront of technological disruption. The company's innovation pipeline and market positioning suggest exponential growth potential over the next decade.", symbol)
		rec.KeyPoints = []string{
			"Leading position in disruptive technology",
			"Exponential growth trajectory expected",
			"Large and expanding total addressable market",
		}
		rec.Risks = []string{
			"High volatility due to growth stock nature",
			"Execution risk on innovative products",
		}
	case "ackman":
		rec.Position = models.PositionBuy
		rec.Label = "BUY WITH ACTIVISM"
		rec.Confidence = 0.70
		rec.Rationale = fmt.Sprintf("Bill Ackman would see %s as an opportunity for activist investing. While the company has strong assets, there's significant potential for operational improvements and strategic repositioning.", symbol)
		rec.KeyPoints = []string{
			"Underperforming assets that could be optimized",
			"Opportunity for margin expansion",
			"Potential for strategic acquisitions or divestitures",
		}
		rec.Risks = []string{
			"Resistance to activist proposals",
			"Implementation challenges",
		}
	case "gross":
		rec.Position = models.PositionHold
		rec.Label = "NEUTRAL"
		rec.Confidence = 0.60
		rec.Rationale = fmt.Sprintf("From Bill Gross's macroeconomic perspective, %s faces headwinds from rising interest rates and economic uncertainty. Consider fixed income alternatives for better risk-adjusted returns.", symbol)
		rec.KeyPoints = []string{
			"Interest rate sensitivity affects valuation",
			"Better opportunities in bond markets",
			"Macroeconomic headwinds present",
		}
		rec.Risks = []string{
			"Equity market volatility",
			"Interest rate risk",
		}
	default:
		// buffett, and any persona without a dedicated fixture
		rec.Position = models.PositionBuy
		rec.Confidence = 0.75
		rec.Rationale = fmt.Sprintf("Based on Warren Buffett's value investing principles, %s appears undervalued relative to its intrinsic value. The company shows strong fundamentals with consistent free cash flow generation and a sustainable competitive advantage (moat).", symbol)
		rec.KeyPoints = []string{
			"Trading below intrinsic value with margin of safety",
			"Strong and predictable cash flows",
			"Excellent management with shareholder-friendly policies",
		}
		rec.Risks = []string{
			"Market volatility in the short term",
			"Potential regulatory changes affecting the industry",
		}
	}

	return rec
}
