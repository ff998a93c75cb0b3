package advisor

import (
	"testing"

	"github.com/jlawman/investment-advisory/internal/models"
	"github.com/jlawman/investment-advisory/internal/personas"
)

func testPersona(t *testing.T) models.Persona {
	t.Helper()
	p, ok := personas.Lookup("buffett")
	if !ok {
		t.Fatal("buffett persona missing")
	}
	return p
}

func TestParseRecommendationWellFormed(t *testing.T) {
	content := `Position: BUY
Confidence: 0.82
Rationale: The company trades below intrinsic value. Cash flows are predictable.
Key Points:
- Wide moat
- Strong balance sheet
- Shareholder-friendly management
Risks:
- Regulatory pressure
- Valuation multiple compression`

	rec := parseRecommendation(testPersona(t), content)

	if rec.Position != models.PositionBuy {
		t.Errorf("unexpected position: %s", rec.Position)
	}
	if rec.Label != "" {
		t.Errorf("plain BUY should not produce a label, got %q", rec.Label)
	}
	if rec.Confidence != 0.82 {
		t.Errorf("unexpected confidence: %v", rec.Confidence)
	}
	if rec.Rationale != "The company trades below intrinsic value. Cash flows are predictable." {
		t.Errorf("unexpected rationale: %q", rec.Rationale)
	}
	if len(rec.KeyPoints) != 3 || rec.KeyPoints[0] != "Wide moat" {
		t.Errorf("unexpected key points: %v", rec.KeyPoints)
	}
	if len(rec.Risks) != 2 {
		t.Errorf("unexpected risks: %v", rec.Risks)
	}
	if rec.IsMock {
		t.Error("parsed recommendation should not be flagged as mock")
	}
}

func TestParseRecommendationRichLabel(t *testing.T) {
	content := `Position: STRONG BUY
Confidence: 0.9
Rationale: Exceptional growth runway.`

	rec := parseRecommendation(testPersona(t), content)

	if rec.Position != models.PositionBuy {
		t.Errorf("STRONG BUY should canonicalize to BUY, got %s", rec.Position)
	}
	if rec.Label != "STRONG BUY" {
		t.Errorf("unexpected label: %q", rec.Label)
	}
}

func TestParseRecommendationMalformed(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantPosition   models.Position
		wantConfidence float64
	}{
		{"empty input", "", models.PositionHold, 0.5},
		{"prose only", "I think this stock is interesting but I cannot commit.", models.PositionHold, 0.5},
		{"sell with bad confidence", "Position: SELL\nConfidence: very low", models.PositionSell, 0.5},
		{"percentage confidence", "Position: HOLD\nConfidence: 75%", models.PositionHold, 0.75},
		{"confidence above one", "Position: BUY\nConfidence: 75", models.PositionBuy, 0.75},
		{"confidence out of range", "Position: BUY\nConfidence: 250", models.PositionBuy, 0.5},
		{"negative confidence", "Position: BUY\nConfidence: -0.3", models.PositionBuy, 0},
		{"bolded headers", "**Position:** BUY\n**Confidence:** 0.6", models.PositionBuy, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := parseRecommendation(testPersona(t), tt.content)
			if rec.Position != tt.wantPosition {
				t.Errorf("position = %s, want %s", rec.Position, tt.wantPosition)
			}
			if rec.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", rec.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestParseRecommendationCapsBullets(t *testing.T) {
	content := `Position: BUY
Key Points:
- one
- two
- three
- four
- five
Risks:
- a
- b
- c`

	rec := parseRecommendation(testPersona(t), content)

	if len(rec.KeyPoints) != 3 {
		t.Errorf("key points should cap at 3, got %d", len(rec.KeyPoints))
	}
	if len(rec.Risks) != 2 {
		t.Errorf("risks should cap at 2, got %d", len(rec.Risks))
	}
}

func TestParseRecommendationMultilineRationale(t *testing.T) {
	content := `Position: HOLD
Rationale: First sentence.
Second sentence continues here.
Key Points:
- point`

	rec := parseRecommendation(testPersona(t), content)

	want := "First sentence. Second sentence continues here."
	if rec.Rationale != want {
		t.Errorf("rationale = %q, want %q", rec.Rationale, want)
	}
}
