package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jlawman/investment-advisory/internal/database"
	"github.com/jlawman/investment-advisory/internal/models"
)

// HoldingRepository is the persistence surface the holding handlers need.
type HoldingRepository interface {
	Add(ctx context.Context, portfolioID string, stockID int64, quantity, cost float64) (*models.Holding, error)
	Get(ctx context.Context, id string) (*models.Holding, error)
	ListByPortfolio(ctx context.Context, portfolioID string) ([]models.HoldingView, error)
	Delete(ctx context.Context, id string) error
}

// StockRepository resolves symbols to stock rows.
type StockRepository interface {
	GetOrCreate(ctx context.Context, symbol, name string, currentPrice float64) (*models.Stock, error)
}

// HoldingHandler handles HTTP requests for portfolio holdings
type HoldingHandler struct {
	holdings   HoldingRepository
	portfolios PortfolioRepository
	stocks     StockRepository
	logger     *slog.Logger
}

// NewHoldingHandler creates a new HoldingHandler
func NewHoldingHandler(holdings HoldingRepository, portfolios PortfolioRepository, stocks StockRepository, logger *slog.Logger) *HoldingHandler {
	return &HoldingHandler{
		holdings:   holdings,
		portfolios: portfolios,
		stocks:     stocks,
		logger:     logger,
	}
}

type addHoldingRequest struct {
	PortfolioID string  `json:"portfolioId"`
	StockSymbol string  `json:"stockSymbol"`
	StockName   string  `json:"stockName"`
	Quantity    float64 `json:"quantity"`
	AverageCost float64 `json:"averageCost"`
}

type holdingsResponse struct {
	PortfolioID string                  `json:"portfolioId"`
	Holdings    []models.HoldingView    `json:"holdings"`
	Metrics     models.PortfolioMetrics `json:"metrics"`
}

// HandleHoldings dispatches /api/portfolios/holdings by method.
func (h *HoldingHandler) HandleHoldings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listHoldings(w, r)
	case http.MethodPost:
		h.addHolding(w, r)
	case http.MethodDelete:
		h.deleteHolding(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// listHoldings handles GET /api/portfolios/holdings?portfolioId={id}
func (h *HoldingHandler) listHoldings(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.URL.Query().Get("portfolioId")
	if portfolioID == "" {
		writeError(w, http.StatusBadRequest, "Portfolio ID is required")
		return
	}

	if !h.checkPortfolio(w, r, portfolioID) {
		return
	}

	views, err := h.holdings.ListByPortfolio(r.Context(), portfolioID)
	if err != nil {
		h.logger.Error("failed to list holdings", "portfolio_id", portfolioID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list holdings")
		return
	}

	writeJSON(w, http.StatusOK, holdingsResponse{
		PortfolioID: portfolioID,
		Holdings:    views,
		Metrics:     models.ComputeMetrics(views),
	})
}

// addHolding handles POST /api/portfolios/holdings
func (h *HoldingHandler) addHolding(w http.ResponseWriter, r *http.Request) {
	var req addHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateHoldingInput(req.PortfolioID, req.StockSymbol, req.Quantity, req.AverageCost); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.checkPortfolio(w, r, req.PortfolioID) {
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.StockSymbol))
	name := req.StockName
	if name == "" {
		name = symbol
	}

	// The purchase cost seeds the price for symbols we have not seen yet.
	stock, err := h.stocks.GetOrCreate(r.Context(), symbol, name, req.AverageCost)
	if err != nil {
		h.logger.Error("failed to resolve stock", "symbol", symbol, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to resolve stock")
		return
	}

	holding, err := h.holdings.Add(r.Context(), req.PortfolioID, stock.ID, req.Quantity, req.AverageCost)
	if err != nil {
		h.logger.Error("failed to add holding", "portfolio_id", req.PortfolioID, "symbol", symbol, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add holding")
		return
	}

	h.logger.Info("holding added", "id", holding.ID, "portfolio_id", req.PortfolioID, "symbol", symbol, "quantity", holding.Quantity)
	writeJSON(w, http.StatusCreated, holding.Derive(*stock))
}

// deleteHolding handles DELETE /api/portfolios/holdings?id={id}
func (h *HoldingHandler) deleteHolding(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Holding ID is required")
		return
	}

	holding, err := h.holdings.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Holding not found")
			return
		}
		h.logger.Error("failed to get holding", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get holding")
		return
	}

	if !h.checkPortfolio(w, r, holding.PortfolioID) {
		return
	}

	if err := h.holdings.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete holding", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete holding")
		return
	}

	h.logger.Info("holding deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// checkPortfolio verifies the portfolio exists and belongs to the caller,
// not-found first.
func (h *HoldingHandler) checkPortfolio(w http.ResponseWriter, r *http.Request, portfolioID string) bool {
	_, ok := fetchOwnedPortfolio(w, r, h.portfolios, h.logger, portfolioID)
	return ok
}
