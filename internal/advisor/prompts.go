package advisor

import (
	"fmt"
	"strings"

	"github.com/jlawman/investment-advisory/internal/models"
)

const personaSystemPrompt = `You are roleplaying a legendary investor evaluating a stock. Stay strictly in character: apply only that investor's strategy, risk tolerance, and preferred metrics. Respond only in the requested format with no preamble.`

// buildPersonaPrompt renders the analysis request for one persona. The
// response format is rigid so the parser can recover structure even from
// chatty models.
func buildPersonaPrompt(persona models.Persona, symbol string, research models.MarketResearch) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are %s.\n", persona.Name))
	sb.WriteString(fmt.Sprintf("Investment strategy: %s\n", persona.Strategy))
	sb.WriteString(fmt.Sprintf("Risk profile: %s\n", persona.RiskProfile))
	sb.WriteString(fmt.Sprintf("Time horizon: %s\n", persona.TimeHorizon))
	sb.WriteString(fmt.Sprintf("Key metrics you focus on: %s\n\n", strings.Join(persona.KeyMetrics, ", ")))

	sb.WriteString(fmt.Sprintf("Evaluate the stock %s using this market snapshot:\n", symbol))
	sb.WriteString(fmt.Sprintf("- Current price: %s\n", research.CurrentPrice))
	sb.WriteString(fmt.Sprintf("- Market cap: %s\n", research.MarketCap))
	sb.WriteString(fmt.Sprintf("- P/E ratio: %s\n", research.PERatio))
	sb.WriteString(fmt.Sprintf("- Dividend yield: %s\n", research.DividendYield))
	sb.WriteString(fmt.Sprintf("- 52-week performance: %s\n", research.YearPerformance))
	sb.WriteString(fmt.Sprintf("- Analyst rating: %s\n", research.AnalystRating))
	sb.WriteString(fmt.Sprintf("- Price target: %s\n\n", research.PriceTarget))

	sb.WriteString("Respond in exactly this format:\n")
	sb.WriteString("Position: BUY, HOLD, or SELL (you may qualify it, e.g. STRONG BUY)\n")
	sb.WriteString("Confidence: a number between 0.0 and 1.0\n")
	sb.WriteString("Rationale: 2-3 sentences in your own voice explaining the call\n")
	sb.WriteString("Key Points:\n")
	sb.WriteString("- up to 3 bullet points supporting the position\n")
	sb.WriteString("Risks:\n")
	sb.WriteString("- up to 2 bullet points on what could go wrong\n")

	return sb.String()
}
