package models

import "time"

// SavedRecommendation is a persisted snapshot of one full recommendation
// response, linked to a board and a stock. Append-only, never mutated.
type SavedRecommendation struct {
	ID                        string                   `json:"id"`
	UserID                    string                   `json:"userId"`
	BoardID                   string                   `json:"boardId"`
	StockID                   int64                    `json:"stockId"`
	Consensus                 Consensus                `json:"consensus"`
	IndividualRecommendations []InvestorRecommendation `json:"individualRecommendations"`
	MarketResearch            MarketResearch           `json:"marketResearch"`
	CreatedAt                 time.Time                `json:"createdAt"`
}

// SavedRecommendationView joins a saved recommendation with its board and
// stock for history listings.
type SavedRecommendationView struct {
	SavedRecommendation
	Board *Board `json:"board,omitempty"`
	Stock *Stock `json:"stock,omitempty"`
}
