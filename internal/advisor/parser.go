package advisor

import (
	"strconv"
	"strings"

	"github.com/jlawman/investment-advisory/internal/models"
)

const (
	maxKeyPoints = 3
	maxRisks     = 2

	defaultConfidence = 0.5
)

// parseRecommendation recovers a structured recommendation from a model
// response. Malformed input never fails: missing sections get conservative
// defaults (HOLD, 0.5 confidence, empty lists).
func parseRecommendation(persona models.Persona, content string) models.InvestorRecommendation {
	rawPosition := strings.ToUpper(extractLine(content, "Position"))
	position := models.CanonicalPosition(rawPosition)

	// Richer labels like STRONG BUY are kept for display only
	label := ""
	if rawPosition != "" && rawPosition != string(position) {
		label = rawPosition
	}

	rec := models.InvestorRecommendation{
		PersonaID:  persona.ID,
		Investor:   persona.Name,
		Position:   position,
		Label:      label,
		Confidence: parseConfidence(extractLine(content, "Confidence")),
		Rationale:  extractSection(content, "Rationale"),
		KeyPoints:  extractBullets(content, "Key Points", maxKeyPoints),
		Risks:      extractBullets(content, "Risks", maxRisks),
	}

	return rec
}

// parseConfidence parses a confidence value, accepting both 0-1 fractions
// and percentages. Unparseable input defaults to 0.5; out-of-range values
// are clamped.
func parseConfidence(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if raw == "" {
		return defaultConfidence
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultConfidence
	}

	// "75" or "75%" means 0.75; beyond 100 it is garbage
	if value > 1 {
		if value > 100 {
			return defaultConfidence
		}
		value /= 100
	}

	if value < 0 {
		value = 0
	}

	return models.Round2(value)
}

// sectionHeaders are the markers that terminate a free-text section.
var sectionHeaders = []string{"Position", "Confidence", "Rationale", "Key Points", "Risks"}

// extractLine returns the single-line value after "header:".
func extractLine(content, header string) string {
	prefix := strings.ToLower(header) + ":"
	for _, line := range strings.Split(content, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "*")
		if strings.HasPrefix(strings.ToLower(line), prefix) {
			return strings.TrimSpace(strings.Trim(line[len(prefix):], "* "))
		}
	}
	return ""
}

// extractSection returns the text after "header:" up to the next known
// section header, joined across lines.
func extractSection(content, header string) string {
	prefix := strings.ToLower(header) + ":"
	lines := strings.Split(content, "\n")

	var parts []string
	inSection := false
	for _, line := range lines {
		trimmed := strings.Trim(strings.TrimSpace(line), "*")
		lower := strings.ToLower(trimmed)

		if !inSection {
			if strings.HasPrefix(lower, prefix) {
				inSection = true
				if rest := strings.TrimSpace(strings.Trim(trimmed[len(prefix):], "* ")); rest != "" {
					parts = append(parts, rest)
				}
			}
			continue
		}

		if isSectionHeader(lower) {
			break
		}
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return strings.Join(parts, " ")
}

// extractBullets returns up to max bullet lines following "header:".
func extractBullets(content, header string, max int) []string {
	prefix := strings.ToLower(header) + ":"
	lines := strings.Split(content, "\n")

	bullets := []string{}
	inSection := false
	for _, line := range lines {
		trimmed := strings.Trim(strings.TrimSpace(line), "*")
		lower := strings.ToLower(trimmed)

		if !inSection {
			if strings.HasPrefix(lower, prefix) {
				inSection = true
			}
			continue
		}

		if isSectionHeader(lower) {
			break
		}

		bullet := stripBulletMarker(trimmed)
		if bullet == "" {
			continue
		}
		bullets = append(bullets, bullet)
		if len(bullets) == max {
			break
		}
	}

	return bullets
}

func isSectionHeader(lower string) bool {
	for _, h := range sectionHeaders {
		if strings.HasPrefix(lower, strings.ToLower(h)+":") {
			return true
		}
	}
	return false
}

// stripBulletMarker removes leading list markers ("-", "*", "•", "1.").
func stripBulletMarker(line string) string {
	line = strings.TrimSpace(line)
	for _, marker := range []string{"-", "*", "•"} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker))
		}
	}
	// Numbered list: "1. point"
	if len(line) > 2 && line[0] >= '0' && line[0] <= '9' && (line[1] == '.' || line[1] == ')') {
		return strings.TrimSpace(line[2:])
	}
	return line
}
