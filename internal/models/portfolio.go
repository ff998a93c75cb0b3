package models

import "time"

// Stock is a tracked security. CurrentPrice is the latest known price and is
// the only price input to derived holding values.
type Stock struct {
	ID           int64     `json:"id"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	CurrentPrice float64   `json:"currentPrice"`
	MarketCap    string    `json:"marketCap,omitempty"`
	PERatio      float64   `json:"peRatio,omitempty"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// Portfolio is a user-owned collection of holdings.
type Portfolio struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Holding is a position in one stock within a portfolio. Derived figures
// (current value, gain/loss) are recomputed from quantity, cost and price at
// read time rather than stored.
type Holding struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolioId"`
	StockID     int64     `json:"stockId"`
	Quantity    float64   `json:"quantity"`
	AverageCost float64   `json:"averageCost"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HoldingView is a holding joined with its stock plus derived figures.
type HoldingView struct {
	Holding
	Stock           Stock   `json:"stock"`
	CurrentValue    float64 `json:"currentValue"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
}

// Derive computes the read-time view of a holding against a stock price.
func (h Holding) Derive(stock Stock) HoldingView {
	value := Round2(h.Quantity * stock.CurrentPrice)
	cost := h.Quantity * h.AverageCost
	gain := Round2(value - cost)

	var gainPct float64
	if h.AverageCost > 0 {
		gainPct = Round2((stock.CurrentPrice - h.AverageCost) / h.AverageCost * 100)
	}

	return HoldingView{
		Holding:         h,
		Stock:           stock,
		CurrentValue:    value,
		GainLoss:        gain,
		GainLossPercent: gainPct,
	}
}

// PortfolioMetrics are portfolio-level totals derived from holdings.
type PortfolioMetrics struct {
	TotalValue           float64 `json:"totalValue"`
	TotalCost            float64 `json:"totalCost"`
	TotalGainLoss        float64 `json:"totalGainLoss"`
	TotalGainLossPercent float64 `json:"totalGainLossPercent"`
}

// ComputeMetrics aggregates derived holding views into portfolio totals.
func ComputeMetrics(views []HoldingView) PortfolioMetrics {
	var value, cost float64
	for _, v := range views {
		value += v.CurrentValue
		cost += v.Quantity * v.AverageCost
	}

	gain := value - cost
	var gainPct float64
	if cost > 0 {
		gainPct = gain / cost * 100
	}

	return PortfolioMetrics{
		TotalValue:           Round2(value),
		TotalCost:            Round2(cost),
		TotalGainLoss:        Round2(gain),
		TotalGainLossPercent: Round2(gainPct),
	}
}

// MergeHolding folds an additional purchase into an existing position using
// a weighted-average cost: (oldQty*oldCost + addQty*addCost) / (oldQty+addQty).
func MergeHolding(oldQty, oldCost, addQty, addCost float64) (newQty, newAvgCost float64) {
	newQty = oldQty + addQty
	if newQty == 0 {
		return 0, 0
	}
	newAvgCost = Round2((oldQty*oldCost + addQty*addCost) / newQty)
	return newQty, newAvgCost
}
