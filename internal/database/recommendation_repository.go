package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jlawman/investment-advisory/internal/models"
	"github.com/lib/pq"
)

// RecommendationRepository persists saved recommendation snapshots. The
// table is append-only: snapshots are created and listed, never updated.
type RecommendationRepository struct {
	db *sql.DB
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(db *sql.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Create stores a recommendation snapshot and returns it
func (r *RecommendationRepository) Create(ctx context.Context, rec models.SavedRecommendation) (*models.SavedRecommendation, error) {
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now()

	consensusJSON, err := json.Marshal(rec.Consensus)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal consensus: %w", err)
	}

	individualJSON, err := json.Marshal(rec.IndividualRecommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal individual recommendations: %w", err)
	}

	researchJSON, err := json.Marshal(rec.MarketResearch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal market research: %w", err)
	}

	query := `
		INSERT INTO recommendations (id, user_id, board_id, stock_id, consensus, individual_recommendations, market_research, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query, rec.ID, rec.UserID, rec.BoardID, rec.StockID, consensusJSON, individualJSON, researchJSON, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendation: %w", err)
	}

	return &rec, nil
}

// ListByUser retrieves a user's saved recommendations joined with their
// board and stock, newest first. An empty boardID lists across all boards.
func (r *RecommendationRepository) ListByUser(ctx context.Context, userID, boardID string, limit int) ([]models.SavedRecommendationView, error) {
	query := `
		SELECT rec.id, rec.user_id, rec.board_id, rec.stock_id, rec.consensus, rec.individual_recommendations, rec.market_research, rec.created_at,
		       b.id, b.user_id, b.name, b.investors, b.created_at, b.updated_at,
		       s.id, s.symbol, s.name, s.current_price, s.market_cap, s.pe_ratio, s.last_updated
		FROM recommendations rec
		LEFT JOIN investor_boards b ON rec.board_id = b.id
		LEFT JOIN stocks s ON rec.stock_id = s.id
		WHERE rec.user_id = $1
	`
	args := []interface{}{userID}

	if boardID != "" {
		query += " AND rec.board_id = $2"
		args = append(args, boardID)
	}

	query += fmt.Sprintf(" ORDER BY rec.created_at DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	views := []models.SavedRecommendationView{}
	for rows.Next() {
		var view models.SavedRecommendationView
		var consensusJSON, individualJSON, researchJSON []byte

		var boardIDCol, boardUserID, boardName sql.NullString
		var boardInvestors []string
		var boardCreatedAt, boardUpdatedAt sql.NullTime

		var stockIDCol sql.NullInt64
		var stockSymbol, stockName, stockMarketCap sql.NullString
		var stockPrice, stockPERatio sql.NullFloat64
		var stockUpdated sql.NullTime

		err := rows.Scan(
			&view.ID,
			&view.UserID,
			&view.BoardID,
			&view.StockID,
			&consensusJSON,
			&individualJSON,
			&researchJSON,
			&view.CreatedAt,
			&boardIDCol,
			&boardUserID,
			&boardName,
			pq.Array(&boardInvestors),
			&boardCreatedAt,
			&boardUpdatedAt,
			&stockIDCol,
			&stockSymbol,
			&stockName,
			&stockPrice,
			&stockMarketCap,
			&stockPERatio,
			&stockUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}

		if err := json.Unmarshal(consensusJSON, &view.Consensus); err != nil {
			return nil, fmt.Errorf("failed to unmarshal consensus: %w", err)
		}
		if err := json.Unmarshal(individualJSON, &view.IndividualRecommendations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal individual recommendations: %w", err)
		}
		if err := json.Unmarshal(researchJSON, &view.MarketResearch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal market research: %w", err)
		}

		// Board and stock rows can be gone when the board was deleted
		if boardIDCol.Valid {
			view.Board = &models.Board{
				ID:        boardIDCol.String,
				UserID:    boardUserID.String,
				Name:      boardName.String,
				Investors: boardInvestors,
				CreatedAt: boardCreatedAt.Time,
				UpdatedAt: boardUpdatedAt.Time,
			}
		}
		if stockIDCol.Valid {
			view.Stock = &models.Stock{
				ID:           stockIDCol.Int64,
				Symbol:       stockSymbol.String,
				Name:         stockName.String,
				CurrentPrice: stockPrice.Float64,
				MarketCap:    stockMarketCap.String,
				PERatio:      stockPERatio.Float64,
				LastUpdated:  stockUpdated.Time,
			}
		}

		views = append(views, view)
	}

	return views, rows.Err()
}
