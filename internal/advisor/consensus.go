package advisor

import (
	"fmt"
	"math"

	"github.com/jlawman/investment-advisory/internal/models"
)

const maxAllocationPercentage = 20

// Aggregate computes the board consensus: majority vote on canonical
// position, mean confidence rounded to two decimals. A tied vote resolves
// to HOLD.
func Aggregate(symbol string, recs []models.InvestorRecommendation) models.Consensus {
	if len(recs) == 0 {
		return models.Consensus{
			Position:   models.PositionHold,
			Confidence: 0,
			Summary:    fmt.Sprintf("No recommendations available for %s.", symbol),
		}
	}

	counts := map[models.Position]int{}
	var confidenceSum float64
	for _, rec := range recs {
		counts[rec.Position]++
		confidenceSum += rec.Confidence
	}

	position := models.PositionHold
	best := 0
	tied := false
	for _, candidate := range []models.Position{models.PositionBuy, models.PositionHold, models.PositionSell} {
		count := counts[candidate]
		if count > best {
			position = candidate
			best = count
			tied = false
		} else if count == best && count > 0 {
			tied = true
		}
	}
	if tied {
		position = models.PositionHold
	}

	confidence := models.Round2(confidenceSum / float64(len(recs)))

	return models.Consensus{
		Position:   position,
		Confidence: confidence,
		Summary: fmt.Sprintf("Based on the combined wisdom of your advisory board, the consensus recommendation for %s is %s with %.0f%% confidence.",
			symbol, position, confidence*100),
	}
}

// SuggestAllocation derives a position-size suggestion from the consensus.
// BUY allocates confidence-scaled up to 20% of the amount, HOLD a token 5%,
// SELL nothing. A non-positive amount yields no suggestion.
func SuggestAllocation(consensus models.Consensus, amount float64) *models.Allocation {
	if amount <= 0 {
		return nil
	}

	var percentage int
	switch consensus.Position {
	case models.PositionBuy:
		percentage = int(math.Round(consensus.Confidence * maxAllocationPercentage))
		if percentage > maxAllocationPercentage {
			percentage = maxAllocationPercentage
		}
	case models.PositionHold:
		percentage = 5
	case models.PositionSell:
		percentage = 0
	}

	return &models.Allocation{
		Amount:     models.Round2(amount * float64(percentage) / 100),
		Percentage: percentage,
		Rationale:  "Allocation based on consensus confidence and risk management principles",
	}
}
