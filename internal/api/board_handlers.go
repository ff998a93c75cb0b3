package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jlawman/investment-advisory/internal/auth"
	"github.com/jlawman/investment-advisory/internal/database"
	"github.com/jlawman/investment-advisory/internal/models"
)

// BoardRepository is the persistence surface the board handlers need.
type BoardRepository interface {
	Create(ctx context.Context, userID, name string, investors []string) (*models.Board, error)
	Get(ctx context.Context, id string) (*models.Board, error)
	ListByUser(ctx context.Context, userID string) ([]models.Board, error)
	Update(ctx context.Context, id, name string, investors []string) (*models.Board, error)
	Delete(ctx context.Context, id string) error
}

// BoardHandler handles HTTP requests for advisory board management
type BoardHandler struct {
	repo   BoardRepository
	logger *slog.Logger
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(repo BoardRepository, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{
		repo:   repo,
		logger: logger,
	}
}

type boardRequest struct {
	Name      string   `json:"name"`
	Investors []string `json:"investors"`
}

// HandleBoards dispatches /api/boards by method.
func (h *BoardHandler) HandleBoards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getBoards(w, r)
	case http.MethodPost:
		h.createBoard(w, r)
	case http.MethodPatch:
		h.updateBoard(w, r)
	case http.MethodDelete:
		h.deleteBoard(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// getBoards handles GET /api/boards and GET /api/boards?id={id}
func (h *BoardHandler) getBoards(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())
	ctx := r.Context()

	id := r.URL.Query().Get("id")
	if id == "" {
		boards, err := h.repo.ListByUser(ctx, userID)
		if err != nil {
			h.logger.Error("failed to list boards", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list boards")
			return
		}
		writeJSON(w, http.StatusOK, boards)
		return
	}

	board, ok := h.ownedBoard(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// createBoard handles POST /api/boards
func (h *BoardHandler) createBoard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var req boardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateBoardInput(req.Name, req.Investors); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	board, err := h.repo.Create(r.Context(), userID, req.Name, req.Investors)
	if err != nil {
		h.logger.Error("failed to create board", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	h.logger.Info("board created", "id", board.ID, "name", board.Name)
	writeJSON(w, http.StatusCreated, board)
}

// updateBoard handles PATCH /api/boards?id={id}
func (h *BoardHandler) updateBoard(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Board ID is required")
		return
	}

	var req boardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateBoardInput(req.Name, req.Investors); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := h.ownedBoard(w, r, id); !ok {
		return
	}

	board, err := h.repo.Update(r.Context(), id, req.Name, req.Investors)
	if err != nil {
		h.logger.Error("failed to update board", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update board")
		return
	}

	h.logger.Info("board updated", "id", board.ID, "name", board.Name)
	writeJSON(w, http.StatusOK, board)
}

// deleteBoard handles DELETE /api/boards?id={id}
func (h *BoardHandler) deleteBoard(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Board ID is required")
		return
	}

	if _, ok := h.ownedBoard(w, r, id); !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete board", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete board")
		return
	}

	h.logger.Info("board deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ownedBoard fetches the board and enforces ownership. Not-found is reported
// before the owner comparison so a missing id never leaks as a 403.
func (h *BoardHandler) ownedBoard(w http.ResponseWriter, r *http.Request, id string) (*models.Board, bool) {
	return fetchOwnedBoard(w, r, h.repo, h.logger, id)
}

func fetchOwnedBoard(w http.ResponseWriter, r *http.Request, repo BoardRepository, logger *slog.Logger, id string) (*models.Board, bool) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	board, err := repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Board not found")
			return nil, false
		}
		logger.Error("failed to get board", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get board")
		return nil, false
	}

	if board.UserID != userID {
		writeError(w, http.StatusForbidden, "Board belongs to another user")
		return nil, false
	}

	return board, true
}
