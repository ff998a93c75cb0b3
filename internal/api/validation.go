package api

import (
	"fmt"
	"strings"

	"github.com/jlawman/investment-advisory/internal/models"
	"github.com/jlawman/investment-advisory/internal/personas"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateInvestors checks a persona id list against the registry and the
// board size bounds.
func ValidateInvestors(field string, investors []string) error {
	if len(investors) < models.MinBoardInvestors || len(investors) > models.MaxBoardInvestors {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must contain between %d and %d investors", models.MinBoardInvestors, models.MaxBoardInvestors),
		}
	}
	for _, id := range investors {
		if !personas.Valid(id) {
			return ValidationError{Field: field, Message: "unknown investor id: " + id}
		}
	}
	return nil
}

// ValidateBoardInput validates a board create/update payload.
func ValidateBoardInput(name string, investors []string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	return ValidateInvestors("investors", investors)
}

// ValidateSymbol validates a stock symbol.
func ValidateSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return ValidationError{Field: "stockSymbol", Message: "stock symbol is required"}
	}
	return nil
}

// ValidateHoldingInput validates a holding add payload.
func ValidateHoldingInput(portfolioID, symbol string, quantity, averageCost float64) error {
	if portfolioID == "" {
		return ValidationError{Field: "portfolioId", Message: "portfolio id is required"}
	}
	if err := ValidateSymbol(symbol); err != nil {
		return err
	}
	if quantity <= 0 {
		return ValidationError{Field: "quantity", Message: "quantity must be greater than zero"}
	}
	if averageCost <= 0 {
		return ValidationError{Field: "averageCost", Message: "average cost must be greater than zero"}
	}
	return nil
}

// ValidateTimeframe validates a research timeframe string.
func ValidateTimeframe(tf string) error {
	if !models.ValidTimeframe(models.ResearchTimeframe(tf)) {
		return ValidationError{Field: "timeframe", Message: "timeframe must be one of 1mo, 6mo, 1yr"}
	}
	return nil
}
