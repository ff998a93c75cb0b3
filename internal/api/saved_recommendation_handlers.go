package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jlawman/investment-advisory/internal/auth"
	"github.com/jlawman/investment-advisory/internal/models"
)

const defaultHistoryLimit = 20

// RecommendationRepository is the persistence surface for saved
// recommendations. Inserts are append-only.
type RecommendationRepository interface {
	Create(ctx context.Context, rec models.SavedRecommendation) (*models.SavedRecommendation, error)
	ListByUser(ctx context.Context, userID, boardID string, limit int) ([]models.SavedRecommendationView, error)
}

// SavedRecommendationHandler handles persisting and listing recommendation
// snapshots.
type SavedRecommendationHandler struct {
	recs   RecommendationRepository
	boards BoardRepository
	stocks StockRepository
	logger *slog.Logger
}

// NewSavedRecommendationHandler creates a new SavedRecommendationHandler
func NewSavedRecommendationHandler(recs RecommendationRepository, boards BoardRepository, stocks StockRepository, logger *slog.Logger) *SavedRecommendationHandler {
	return &SavedRecommendationHandler{
		recs:   recs,
		boards: boards,
		stocks: stocks,
		logger: logger,
	}
}

type saveRecommendationRequest struct {
	BoardID                   string                          `json:"boardId"`
	StockSymbol               string                          `json:"stockSymbol"`
	StockName                 string                          `json:"stockName"`
	Consensus                 models.Consensus                `json:"consensus"`
	IndividualRecommendations []models.InvestorRecommendation `json:"individualRecommendations"`
	MarketResearch            models.MarketResearch           `json:"marketResearch"`
}

// HandleSavedRecommendations dispatches /api/portfolios/recommendations by
// method.
func (h *SavedRecommendationHandler) HandleSavedRecommendations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listRecommendations(w, r)
	case http.MethodPost:
		h.saveRecommendation(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// saveRecommendation handles POST /api/portfolios/recommendations
func (h *SavedRecommendationHandler) saveRecommendation(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var req saveRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.BoardID == "" {
		writeError(w, http.StatusBadRequest, "Board ID is required")
		return
	}
	if err := ValidateSymbol(req.StockSymbol); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.IndividualRecommendations) == 0 {
		writeError(w, http.StatusBadRequest, "Individual recommendations are required")
		return
	}

	if _, ok := fetchOwnedBoard(w, r, h.boards, h.logger, req.BoardID); !ok {
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.StockSymbol))
	name := req.StockName
	if name == "" {
		name = symbol
	}

	stock, err := h.stocks.GetOrCreate(r.Context(), symbol, name, parsePrice(req.MarketResearch.CurrentPrice))
	if err != nil {
		h.logger.Error("failed to resolve stock", "symbol", symbol, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to resolve stock")
		return
	}

	saved, err := h.recs.Create(r.Context(), models.SavedRecommendation{
		UserID:                    userID,
		BoardID:                   req.BoardID,
		StockID:                   stock.ID,
		Consensus:                 req.Consensus,
		IndividualRecommendations: req.IndividualRecommendations,
		MarketResearch:            req.MarketResearch,
	})
	if err != nil {
		h.logger.Error("failed to save recommendation", "board_id", req.BoardID, "symbol", symbol, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save recommendation")
		return
	}

	h.logger.Info("recommendation saved", "id", saved.ID, "board_id", req.BoardID, "symbol", symbol)
	writeJSON(w, http.StatusCreated, saved)
}

// listRecommendations handles GET /api/portfolios/recommendations[?boardId=][&limit=]
func (h *SavedRecommendationHandler) listRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	boardID := r.URL.Query().Get("boardId")
	if boardID != "" {
		if _, ok := fetchOwnedBoard(w, r, h.boards, h.logger, boardID); !ok {
			return
		}
	}

	limit := defaultHistoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	views, err := h.recs.ListByUser(r.Context(), userID, boardID, limit)
	if err != nil {
		h.logger.Error("failed to list recommendations", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list recommendations")
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// parsePrice extracts a numeric price from a display string like "$195.42".
// Unparseable input yields zero rather than an error.
func parsePrice(display string) float64 {
	cleaned := strings.TrimSpace(display)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}
