package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jlawman/investment-advisory/internal/models"
)

// StockRepository handles stock database operations
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

// GetOrCreate returns the stock for symbol, inserting a row with the given
// defaults when none exists. Symbols are normalized to upper case.
func (r *StockRepository) GetOrCreate(ctx context.Context, symbol, name string, currentPrice float64) (*models.Stock, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if name == "" {
		name = symbol
	}

	stock, err := r.GetBySymbol(ctx, symbol)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	query := `
		INSERT INTO stocks (symbol, name, current_price, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (symbol) DO UPDATE SET last_updated = EXCLUDED.last_updated
		RETURNING id, symbol, name, current_price, market_cap, pe_ratio, last_updated
	`

	stock, err = r.scanStock(r.db.QueryRowContext(ctx, query, symbol, name, currentPrice, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to create stock: %w", err)
	}

	return stock, nil
}

// GetBySymbol retrieves a stock by its symbol
func (r *StockRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	query := `
		SELECT id, symbol, name, current_price, market_cap, pe_ratio, last_updated
		FROM stocks
		WHERE symbol = $1
	`

	stock, err := r.scanStock(r.db.QueryRowContext(ctx, query, symbol))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("stock %s: %w", symbol, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}

	return stock, nil
}

// Get retrieves a stock by ID
func (r *StockRepository) Get(ctx context.Context, id int64) (*models.Stock, error) {
	query := `
		SELECT id, symbol, name, current_price, market_cap, pe_ratio, last_updated
		FROM stocks
		WHERE id = $1
	`

	stock, err := r.scanStock(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("stock %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}

	return stock, nil
}

// UpdatePrice sets the latest known price for a stock
func (r *StockRepository) UpdatePrice(ctx context.Context, id int64, price float64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE stocks SET current_price = $2, last_updated = $3 WHERE id = $1`, id, price, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update stock price: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("stock %d: %w", id, ErrNotFound)
	}

	return nil
}

func (r *StockRepository) scanStock(row *sql.Row) (*models.Stock, error) {
	var stock models.Stock
	var marketCap sql.NullString
	var peRatio sql.NullFloat64

	err := row.Scan(
		&stock.ID,
		&stock.Symbol,
		&stock.Name,
		&stock.CurrentPrice,
		&marketCap,
		&peRatio,
		&stock.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if marketCap.Valid {
		stock.MarketCap = marketCap.String
	}
	if peRatio.Valid {
		stock.PERatio = peRatio.Float64
	}

	return &stock, nil
}
