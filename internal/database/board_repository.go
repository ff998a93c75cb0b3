package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jlawman/investment-advisory/internal/models"
	"github.com/lib/pq"
)

// BoardRepository handles investor board database operations
type BoardRepository struct {
	db *sql.DB
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(db *sql.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create inserts a new board and returns it
func (r *BoardRepository) Create(ctx context.Context, userID, name string, investors []string) (*models.Board, error) {
	board := models.Board{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Investors: investors,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO investor_boards (id, user_id, name, investors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, board.ID, board.UserID, board.Name, pq.Array(board.Investors), board.CreatedAt, board.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &board, nil
}

// Get retrieves a single board by ID
func (r *BoardRepository) Get(ctx context.Context, id string) (*models.Board, error) {
	query := `
		SELECT id, user_id, name, investors, created_at, updated_at
		FROM investor_boards
		WHERE id = $1
	`

	var board models.Board
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&board.ID,
		&board.UserID,
		&board.Name,
		pq.Array(&board.Investors),
		&board.CreatedAt,
		&board.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("board %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	return &board, nil
}

// ListByUser retrieves all boards owned by a user, newest first
func (r *BoardRepository) ListByUser(ctx context.Context, userID string) ([]models.Board, error) {
	query := `
		SELECT id, user_id, name, investors, created_at, updated_at
		FROM investor_boards
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	boards := []models.Board{}
	for rows.Next() {
		var board models.Board
		err := rows.Scan(
			&board.ID,
			&board.UserID,
			&board.Name,
			pq.Array(&board.Investors),
			&board.CreatedAt,
			&board.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}

		boards = append(boards, board)
	}

	return boards, rows.Err()
}

// Update replaces a board's name and investor set
func (r *BoardRepository) Update(ctx context.Context, id, name string, investors []string) (*models.Board, error) {
	query := `
		UPDATE investor_boards
		SET name = $2, investors = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, name, pq.Array(investors), time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("board %s: %w", id, ErrNotFound)
	}

	return r.Get(ctx, id)
}

// Delete removes a board by ID
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM investor_boards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("board %s: %w", id, ErrNotFound)
	}

	return nil
}
