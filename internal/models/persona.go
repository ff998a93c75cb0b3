package models

// Persona describes an investment-strategy archetype used to template
// recommendation prompts. Personas are immutable and defined at process start.
type Persona struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Strategy    string   `json:"strategy"`
	RiskProfile string   `json:"riskProfile"`
	TimeHorizon string   `json:"timeHorizon"`
	KeyMetrics  []string `json:"keyMetrics"`
}
