package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jlawman/investment-advisory/internal/models"
)

// HoldingRepository handles holding database operations
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// Add records a purchase. A purchase of a stock already held in the
// portfolio merges into the existing position at weighted-average cost
// instead of creating a second row.
func (r *HoldingRepository) Add(ctx context.Context, portfolioID string, stockID int64, quantity, cost float64) (*models.Holding, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	var existing models.Holding
	err = tx.QueryRowContext(ctx, `
		SELECT id, portfolio_id, stock_id, quantity, average_cost, created_at, updated_at
		FROM holdings
		WHERE portfolio_id = $1 AND stock_id = $2
		FOR UPDATE
	`, portfolioID, stockID).Scan(
		&existing.ID,
		&existing.PortfolioID,
		&existing.StockID,
		&existing.Quantity,
		&existing.AverageCost,
		&existing.CreatedAt,
		&existing.UpdatedAt,
	)

	switch {
	case err == sql.ErrNoRows:
		holding := models.Holding{
			ID:          uuid.New().String(),
			PortfolioID: portfolioID,
			StockID:     stockID,
			Quantity:    quantity,
			AverageCost: models.Round2(cost),
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO holdings (id, portfolio_id, stock_id, quantity, average_cost, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, holding.ID, holding.PortfolioID, holding.StockID, holding.Quantity, holding.AverageCost, holding.CreatedAt, holding.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create holding: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &holding, nil

	case err != nil:
		return nil, fmt.Errorf("failed to look up holding: %w", err)
	}

	newQty, newAvgCost := models.MergeHolding(existing.Quantity, existing.AverageCost, quantity, cost)

	_, err = tx.ExecContext(ctx, `
		UPDATE holdings
		SET quantity = $2, average_cost = $3, updated_at = $4
		WHERE id = $1
	`, existing.ID, newQty, newAvgCost, now)
	if err != nil {
		return nil, fmt.Errorf("failed to merge holding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	existing.Quantity = newQty
	existing.AverageCost = newAvgCost
	existing.UpdatedAt = now
	return &existing, nil
}

// Get retrieves a single holding by ID
func (r *HoldingRepository) Get(ctx context.Context, id string) (*models.Holding, error) {
	query := `
		SELECT id, portfolio_id, stock_id, quantity, average_cost, created_at, updated_at
		FROM holdings
		WHERE id = $1
	`

	var holding models.Holding
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&holding.ID,
		&holding.PortfolioID,
		&holding.StockID,
		&holding.Quantity,
		&holding.AverageCost,
		&holding.CreatedAt,
		&holding.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("holding %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	return &holding, nil
}

// ListByPortfolio retrieves a portfolio's holdings joined with their stocks
func (r *HoldingRepository) ListByPortfolio(ctx context.Context, portfolioID string) ([]models.HoldingView, error) {
	query := `
		SELECT h.id, h.portfolio_id, h.stock_id, h.quantity, h.average_cost, h.created_at, h.updated_at,
		       s.id, s.symbol, s.name, s.current_price, s.market_cap, s.pe_ratio, s.last_updated
		FROM holdings h
		INNER JOIN stocks s ON h.stock_id = s.id
		WHERE h.portfolio_id = $1
		ORDER BY h.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	views := []models.HoldingView{}
	for rows.Next() {
		var holding models.Holding
		var stock models.Stock
		var marketCap sql.NullString
		var peRatio sql.NullFloat64

		err := rows.Scan(
			&holding.ID,
			&holding.PortfolioID,
			&holding.StockID,
			&holding.Quantity,
			&holding.AverageCost,
			&holding.CreatedAt,
			&holding.UpdatedAt,
			&stock.ID,
			&stock.Symbol,
			&stock.Name,
			&stock.CurrentPrice,
			&marketCap,
			&peRatio,
			&stock.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}

		if marketCap.Valid {
			stock.MarketCap = marketCap.String
		}
		if peRatio.Valid {
			stock.PERatio = peRatio.Float64
		}

		views = append(views, holding.Derive(stock))
	}

	return views, rows.Err()
}

// UpdatePosition replaces a holding's quantity and average cost
func (r *HoldingRepository) UpdatePosition(ctx context.Context, id string, quantity, averageCost float64) (*models.Holding, error) {
	query := `
		UPDATE holdings
		SET quantity = $2, average_cost = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, quantity, models.Round2(averageCost), time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("holding %s: %w", id, ErrNotFound)
	}

	return r.Get(ctx, id)
}

// Delete removes a holding by ID
func (r *HoldingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("holding %s: %w", id, ErrNotFound)
	}

	return nil
}
