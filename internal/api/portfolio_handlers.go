package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jlawman/investment-advisory/internal/auth"
	"github.com/jlawman/investment-advisory/internal/database"
	"github.com/jlawman/investment-advisory/internal/models"
)

// PortfolioRepository is the persistence surface the portfolio handlers need.
type PortfolioRepository interface {
	Create(ctx context.Context, userID, name string) (*models.Portfolio, error)
	Get(ctx context.Context, id string) (*models.Portfolio, error)
	ListByUser(ctx context.Context, userID string) ([]models.Portfolio, error)
	Rename(ctx context.Context, id, name string) (*models.Portfolio, error)
	Delete(ctx context.Context, id string) error
}

// PortfolioHandler handles HTTP requests for portfolio management
type PortfolioHandler struct {
	repo   PortfolioRepository
	logger *slog.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(repo PortfolioRepository, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		repo:   repo,
		logger: logger,
	}
}

type portfolioRequest struct {
	Name string `json:"name"`
}

// HandlePortfolios dispatches /api/portfolios by method.
func (h *PortfolioHandler) HandlePortfolios(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getPortfolios(w, r)
	case http.MethodPost:
		h.createPortfolio(w, r)
	case http.MethodPatch:
		h.renamePortfolio(w, r)
	case http.MethodDelete:
		h.deletePortfolio(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// getPortfolios handles GET /api/portfolios and GET /api/portfolios?id={id}
func (h *PortfolioHandler) getPortfolios(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		portfolios, err := h.repo.ListByUser(r.Context(), userID)
		if err != nil {
			h.logger.Error("failed to list portfolios", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list portfolios")
			return
		}
		writeJSON(w, http.StatusOK, portfolios)
		return
	}

	portfolio, ok := h.ownedPortfolio(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, portfolio)
}

// createPortfolio handles POST /api/portfolios
func (h *PortfolioHandler) createPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	portfolio, err := h.repo.Create(r.Context(), userID, req.Name)
	if err != nil {
		h.logger.Error("failed to create portfolio", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create portfolio")
		return
	}

	h.logger.Info("portfolio created", "id", portfolio.ID, "name", portfolio.Name)
	writeJSON(w, http.StatusCreated, portfolio)
}

// renamePortfolio handles PATCH /api/portfolios?id={id}
func (h *PortfolioHandler) renamePortfolio(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Portfolio ID is required")
		return
	}

	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if _, ok := h.ownedPortfolio(w, r, id); !ok {
		return
	}

	portfolio, err := h.repo.Rename(r.Context(), id, req.Name)
	if err != nil {
		h.logger.Error("failed to rename portfolio", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update portfolio")
		return
	}

	h.logger.Info("portfolio renamed", "id", portfolio.ID, "name", portfolio.Name)
	writeJSON(w, http.StatusOK, portfolio)
}

// deletePortfolio handles DELETE /api/portfolios?id={id}
func (h *PortfolioHandler) deletePortfolio(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Portfolio ID is required")
		return
	}

	if _, ok := h.ownedPortfolio(w, r, id); !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete portfolio", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete portfolio")
		return
	}

	h.logger.Info("portfolio deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ownedPortfolio fetches the portfolio and enforces ownership, not-found
// first.
func (h *PortfolioHandler) ownedPortfolio(w http.ResponseWriter, r *http.Request, id string) (*models.Portfolio, bool) {
	return fetchOwnedPortfolio(w, r, h.repo, h.logger, id)
}

func fetchOwnedPortfolio(w http.ResponseWriter, r *http.Request, repo PortfolioRepository, logger *slog.Logger, id string) (*models.Portfolio, bool) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	portfolio, err := repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Portfolio not found")
			return nil, false
		}
		logger.Error("failed to get portfolio", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get portfolio")
		return nil, false
	}

	if portfolio.UserID != userID {
		writeError(w, http.StatusForbidden, "Portfolio belongs to another user")
		return nil, false
	}

	return portfolio, true
}
