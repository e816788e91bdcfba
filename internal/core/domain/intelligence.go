package domain

import "time"

// IntelligenceStats is the coarse landscape-scope aggregate served to the
// threat-intelligence dashboard. It shares the scoring primitives with
// SecurityPosture but is a distinct output shape computed over a global
// aggregation window.
type IntelligenceStats struct {
	TotalThreats  int `json:"total_threats"`
	ActiveThreats int `json:"active_threats"`
	ThreatActors  int `json:"threat_actors"`
	AttackVectors int `json:"attack_vectors"`
	ZeroDays      int `json:"zero_days"`

	SecurityPostureScore float64 `json:"security_posture_score"` // 0-100
	ComplianceScore      float64 `json:"compliance_score"`       // 0-100
	PredictionAccuracy   float64 `json:"prediction_accuracy"`    // 0-100

	ThreatLevel ThreatLevel `json:"threat_level"`
	ComputedAt  time.Time   `json:"computed_at"`
}

// LandscapeInputs carries the caller-supplied counts that feed the
// landscape statistics alongside the global vulnerability aggregate. Threat
// actor and attack vector counts come from separate store queries.
type LandscapeInputs struct {
	Aggregate     VulnerabilityAggregate `json:"aggregate"`
	ThreatActors  int                    `json:"threat_actors"`
	AttackVectors int                    `json:"attack_vectors"`
}

// Validate rejects malformed landscape inputs.
func (l *LandscapeInputs) Validate() error {
	if err := l.Aggregate.Validate(); err != nil {
		return err
	}
	if l.ThreatActors < 0 || l.AttackVectors < 0 {
		return ErrNegativeCount
	}
	return nil
}
