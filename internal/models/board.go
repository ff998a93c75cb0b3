package models

import "time"

// Board is a user-owned named set of 2 to 5 personas.
type Board struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Investors []string  `json:"investors"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	// MinBoardInvestors and MaxBoardInvestors bound the persona set of a board.
	MinBoardInvestors = 2
	MaxBoardInvestors = 5
)
