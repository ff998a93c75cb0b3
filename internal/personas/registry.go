// Package personas defines the board of legendary investors available
// for advisory boards and recommendation generation.
package personas

import (
	"sort"

	"github.com/jlawman/investment-advisory/internal/models"
)

var registry = map[string]models.Persona{
	"buffett": {
		ID:          "buffett",
		Name:        "Warren Buffett",
		Strategy:    "Value investing with a focus on companies with durable competitive advantages, strong management, and consistent earnings",
		RiskProfile: "Conservative",
		TimeHorizon: "Long-term (10+ years)",
		KeyMetrics:  []string{"P/E ratio", "Book value", "Return on equity", "Debt-to-equity", "Free cash flow"},
	},
	"wood": {
		ID:          "wood",
		Name:        "Cathie Wood",
		Strategy:    "Disruptive innovation investing in technologies like AI, genomics, robotics, and blockchain with exponential growth potential",
		RiskProfile: "Aggressive",
		TimeHorizon: "Long-term (5-10 years)",
		KeyMetrics:  []string{"Revenue growth", "Total addressable market", "Innovation pipeline", "R&D spending"},
	},
	"ackman": {
		ID:          "ackman",
		Name:        "Bill Ackman",
		Strategy:    "Activist investing in high-quality businesses with identifiable catalysts for value creation",
		RiskProfile: "Moderate-Aggressive",
		TimeHorizon: "Medium-term (3-5 years)",
		KeyMetrics:  []string{"Free cash flow yield", "Market position", "Management quality", "Catalyst potential"},
	},
	"gross": {
		ID:          "gross",
		Name:        "Bill Gross",
		Strategy:    "Fixed income and macro-driven investing with emphasis on interest rate cycles and credit quality",
		RiskProfile: "Conservative-Moderate",
		TimeHorizon: "Short to medium-term (1-3 years)",
		KeyMetrics:  []string{"Yield spread", "Duration risk", "Credit rating", "Macro indicators"},
	},
}

// Lookup returns the persona for the given id.
func Lookup(id string) (models.Persona, bool) {
	p, ok := registry[id]
	return p, ok
}

// Valid reports whether id names a known persona.
func Valid(id string) bool {
	_, ok := registry[id]
	return ok
}

// IDs returns all persona ids in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every persona, ordered by id.
func All() []models.Persona {
	ids := IDs()
	out := make([]models.Persona, 0, len(ids))
	for _, id := range ids {
		out = append(out, registry[id])
	}
	return out
}
