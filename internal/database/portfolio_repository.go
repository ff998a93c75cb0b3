package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jlawman/investment-advisory/internal/models"
)

// PortfolioRepository handles portfolio database operations
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Create inserts a new portfolio and returns it
func (r *PortfolioRepository) Create(ctx context.Context, userID, name string) (*models.Portfolio, error) {
	portfolio := models.Portfolio{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO portfolios (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, portfolio.ID, portfolio.UserID, portfolio.Name, portfolio.CreatedAt, portfolio.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return &portfolio, nil
}

// Get retrieves a single portfolio by ID
func (r *PortfolioRepository) Get(ctx context.Context, id string) (*models.Portfolio, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM portfolios
		WHERE id = $1
	`

	var portfolio models.Portfolio
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&portfolio.ID,
		&portfolio.UserID,
		&portfolio.Name,
		&portfolio.CreatedAt,
		&portfolio.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	return &portfolio, nil
}

// ListByUser retrieves all portfolios owned by a user, newest first
func (r *PortfolioRepository) ListByUser(ctx context.Context, userID string) ([]models.Portfolio, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM portfolios
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	portfolios := []models.Portfolio{}
	for rows.Next() {
		var portfolio models.Portfolio
		err := rows.Scan(
			&portfolio.ID,
			&portfolio.UserID,
			&portfolio.Name,
			&portfolio.CreatedAt,
			&portfolio.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}

		portfolios = append(portfolios, portfolio)
	}

	return portfolios, rows.Err()
}

// Rename updates a portfolio's name
func (r *PortfolioRepository) Rename(ctx context.Context, id, name string) (*models.Portfolio, error) {
	query := `
		UPDATE portfolios
		SET name = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, name, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to rename portfolio: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
	}

	return r.Get(ctx, id)
}

// Delete removes a portfolio and its holdings
func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Holdings go first so the delete also works without the FK cascade
	if _, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE portfolio_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete holdings: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}
