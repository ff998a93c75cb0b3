package models

import (
	"math"
	"strings"
	"time"
)

// Position is the canonical 3-value recommendation vocabulary used for
// parsing and consensus voting. Richer display labels (STRONG BUY, NEUTRAL,
// BUY WITH ACTIVISM) are presentation-only and carried in
// InvestorRecommendation.Label.
type Position string

const (
	PositionBuy  Position = "BUY"
	PositionHold Position = "HOLD"
	PositionSell Position = "SELL"
)

// CanonicalPosition collapses a free-form position string to the canonical
// vocabulary. Anything containing "BUY" counts as BUY; unrecognized values
// default to HOLD.
func CanonicalPosition(raw string) Position {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(upper, "BUY"):
		return PositionBuy
	case strings.Contains(upper, "SELL"):
		return PositionSell
	default:
		return PositionHold
	}
}

// InvestorRecommendation is one persona's view on a symbol. Immutable after
// creation.
type InvestorRecommendation struct {
	PersonaID  string   `json:"personaId"`
	Investor   string   `json:"investor"`
	Position   Position `json:"position"`
	Label      string   `json:"label,omitempty"`
	Confidence float64  `json:"confidence"`
	Rationale  string   `json:"rationale"`
	KeyPoints  []string `json:"keyPoints"`
	Risks      []string `json:"risks"`
	IsMock     bool     `json:"isMockData"`
}

// Consensus is the majority-vote position and mean confidence over a set of
// individual recommendations.
type Consensus struct {
	Position   Position `json:"position"`
	Confidence float64  `json:"confidence"`
	Summary    string   `json:"summary"`
}

// Allocation is a suggested portfolio allocation derived from the consensus.
type Allocation struct {
	Amount     float64 `json:"amount"`
	Percentage int     `json:"percentage"`
	Rationale  string  `json:"rationale"`
}

// RecommendationSet is the full response for one recommendation request.
type RecommendationSet struct {
	Symbol          string                   `json:"stockSymbol"`
	MarketResearch  MarketResearch           `json:"marketResearch"`
	Recommendations []InvestorRecommendation `json:"individualRecommendations"`
	Consensus       Consensus                `json:"consensus"`
	Allocation      *Allocation              `json:"allocation,omitempty"`
	GeneratedAt     time.Time                `json:"generatedAt"`
}

// Round2 rounds v to two decimal places. Confidence values and derived
// financial figures use this everywhere so persisted and reported numbers
// agree.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
