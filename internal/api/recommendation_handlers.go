package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jlawman/investment-advisory/internal/advisor"
	"github.com/jlawman/investment-advisory/internal/models"
	"github.com/jlawman/investment-advisory/internal/research"
)

// RecommendationHandler runs the full board recommendation pipeline:
// market research, per-persona generation, consensus, allocation.
type RecommendationHandler struct {
	researcher research.Researcher
	generator  advisor.Generator
	logger     *slog.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(researcher research.Researcher, generator advisor.Generator, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		researcher: researcher,
		generator:  generator,
		logger:     logger,
	}
}

type recommendationRequest struct {
	SelectedInvestors []string `json:"selectedInvestors"`
	StockSymbol       string   `json:"stockSymbol"`
	InvestmentAmount  float64  `json:"investmentAmount"`
}

// GenerateRecommendations handles POST /api/recommendations
func (h *RecommendationHandler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateSymbol(req.StockSymbol); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ValidateInvestors("selectedInvestors", req.SelectedInvestors); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.InvestmentAmount < 0 {
		writeError(w, http.StatusBadRequest, "investmentAmount: must not be negative")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.StockSymbol))
	ctx := r.Context()

	// Research and generation never fail outward: upstream errors are
	// absorbed into mock data upstream of this handler.
	marketResearch := h.researcher.Fetch(ctx, symbol)
	recommendations := h.generator.GenerateAll(ctx, req.SelectedInvestors, symbol, marketResearch)
	consensus := advisor.Aggregate(symbol, recommendations)
	allocation := advisor.SuggestAllocation(consensus, req.InvestmentAmount)

	h.logger.Info("recommendations generated",
		"symbol", symbol,
		"investors", len(recommendations),
		"position", consensus.Position,
		"confidence", consensus.Confidence)

	writeJSON(w, http.StatusOK, models.RecommendationSet{
		Symbol:          symbol,
		MarketResearch:  marketResearch,
		Recommendations: recommendations,
		Consensus:       consensus,
		Allocation:      allocation,
		GeneratedAt:     time.Now().UTC(),
	})
}
