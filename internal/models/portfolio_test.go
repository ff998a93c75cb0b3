package models

import "testing"

func TestMergeHolding(t *testing.T) {
	tests := []struct {
		name        string
		oldQty      float64
		oldCost     float64
		addQty      float64
		addCost     float64
		wantQty     float64
		wantAvgCost float64
	}{
		{"equal lots", 10, 100, 10, 200, 20, 150},
		{"uneven lots", 10, 100, 5, 130, 15, 110},
		{"fractional shares", 2.5, 100, 2.5, 110, 5, 105},
		{"repeating decimal rounds", 1, 100, 2, 100.10, 3, 100.07},
		{"zero total", 0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, avgCost := MergeHolding(tt.oldQty, tt.oldCost, tt.addQty, tt.addCost)
			if qty != tt.wantQty {
				t.Errorf("quantity = %v, want %v", qty, tt.wantQty)
			}
			if avgCost != tt.wantAvgCost {
				t.Errorf("average cost = %v, want %v", avgCost, tt.wantAvgCost)
			}
		})
	}
}

func TestHoldingDerive(t *testing.T) {
	holding := Holding{Quantity: 10, AverageCost: 100}
	stock := Stock{Symbol: "AAPL", CurrentPrice: 150}

	view := holding.Derive(stock)

	if view.CurrentValue != 1500 {
		t.Errorf("current value = %v, want 1500", view.CurrentValue)
	}
	if view.GainLoss != 500 {
		t.Errorf("gain/loss = %v, want 500", view.GainLoss)
	}
	if view.GainLossPercent != 50 {
		t.Errorf("gain/loss percent = %v, want 50", view.GainLossPercent)
	}
}

func TestHoldingDeriveZeroCost(t *testing.T) {
	holding := Holding{Quantity: 10, AverageCost: 0}
	stock := Stock{CurrentPrice: 150}

	view := holding.Derive(stock)

	if view.GainLossPercent != 0 {
		t.Errorf("zero cost basis should yield zero gain percent, got %v", view.GainLossPercent)
	}
}

func TestComputeMetrics(t *testing.T) {
	views := []HoldingView{
		Holding{Quantity: 10, AverageCost: 100}.Derive(Stock{CurrentPrice: 150}),
		Holding{Quantity: 5, AverageCost: 200}.Derive(Stock{CurrentPrice: 180}),
	}

	metrics := ComputeMetrics(views)

	if metrics.TotalValue != 2400 {
		t.Errorf("total value = %v, want 2400", metrics.TotalValue)
	}
	if metrics.TotalCost != 2000 {
		t.Errorf("total cost = %v, want 2000", metrics.TotalCost)
	}
	if metrics.TotalGainLoss != 400 {
		t.Errorf("total gain/loss = %v, want 400", metrics.TotalGainLoss)
	}
	if metrics.TotalGainLossPercent != 20 {
		t.Errorf("total gain/loss percent = %v, want 20", metrics.TotalGainLossPercent)
	}
}

func TestComputeMetricsEmpty(t *testing.T) {
	metrics := ComputeMetrics(nil)
	if metrics.TotalValue != 0 || metrics.TotalGainLossPercent != 0 {
		t.Errorf("empty portfolio should have zero metrics: %+v", metrics)
	}
}
