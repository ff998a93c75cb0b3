package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jlawman/investment-advisory/internal/models"
	"github.com/jlawman/investment-advisory/internal/research"
)

// ResearchHandler runs deep research requests against the research provider.
type ResearchHandler struct {
	researcher research.Researcher
	logger     *slog.Logger
}

// NewResearchHandler creates a new ResearchHandler
func NewResearchHandler(researcher research.Researcher, logger *slog.Logger) *ResearchHandler {
	return &ResearchHandler{
		researcher: researcher,
		logger:     logger,
	}
}

type researchRequest struct {
	StockSymbol string `json:"stockSymbol"`
	Timeframe   string `json:"timeframe"`
}

// DeepResearch handles POST /api/research
func (h *ResearchHandler) DeepResearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateSymbol(req.StockSymbol); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ValidateTimeframe(req.Timeframe); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.StockSymbol))

	result, err := h.researcher.Investigate(r.Context(), symbol, models.ResearchTimeframe(req.Timeframe))
	if err != nil {
		h.logger.Error("deep research failed", "symbol", symbol, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to run research")
		return
	}

	h.logger.Info("deep research completed", "symbol", symbol, "timeframe", req.Timeframe, "mock", result.IsMock)
	writeJSON(w, http.StatusOK, result)
}
