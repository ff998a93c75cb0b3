package advisor

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/jlawman/investment-advisory/internal/models"
	"github.com/jlawman/investment-advisory/internal/personas"
)

func TestMockRecommendationFixtures(t *testing.T) {
	tests := []struct {
		personaID      string
		wantPosition   models.Position
		wantLabel      string
		wantConfidence float64
	}{
		{"buffett", models.PositionBuy, "", 0.75},
		{"wood", models.PositionBuy, "STRONG BUY", 0.85},
		{"ackman", models.PositionBuy, "BUY WITH ACTIVISM", 0.70},
		{"gross", models.PositionHold, "NEUTRAL", 0.60},
	}

	for _, tt := range tests {
		t.Run(tt.personaID, func(t *testing.T) {
			persona, ok := personas.Lookup(tt.personaID)
			if !ok {
				t.Fatalf("persona %s missing", tt.personaID)
			}

			rec := MockRecommendation(persona, "NVDA")

			if !rec.IsMock {
				t.Error("mock recommendation must set IsMock")
			}
			if rec.Position != tt.wantPosition {
				t.Errorf("position = %s, want %s", rec.Position, tt.wantPosition)
			}
			if rec.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", rec.Label, tt.wantLabel)
			}
			if rec.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", rec.Confidence, tt.wantConfidence)
			}
			if !strings.Contains(rec.Rationale, "NVDA") {
				t.Errorf("rationale should mention the symbol: %q", rec.Rationale)
			}
			if len(rec.KeyPoints) == 0 || len(rec.KeyPoints) > 3 {
				t.Errorf("unexpected key point count: %d", len(rec.KeyPoints))
			}
			if len(rec.Risks) == 0 || len(rec.Risks) > 2 {
				t.Errorf("unexpected risk count: %d", len(rec.Risks))
			}
		})
	}
}

func TestMockRecommendationDeterministic(t *testing.T) {
	persona, _ := personas.Lookup("wood")

	first := MockRecommendation(persona, "AAPL")
	second := MockRecommendation(persona, "AAPL")

	if !reflect.DeepEqual(first, second) {
		t.Error("mock recommendations should be deterministic")
	}
}

func TestMockGeneratorGenerateAll(t *testing.T) {
	g := NewMockGenerator()
	research := models.MarketResearch{Symbol: "AAPL"}

	recs := g.GenerateAll(context.Background(), []string{"gross", "buffett", "nobody", "wood"}, "AAPL", research)

	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}

	// Input order preserved, unknown ids skipped
	wantOrder := []string{"gross", "buffett", "wood"}
	for i, want := range wantOrder {
		if recs[i].PersonaID != want {
			t.Errorf("recs[%d].PersonaID = %s, want %s", i, recs[i].PersonaID, want)
		}
	}
}
