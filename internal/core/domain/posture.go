package domain

import "time"

// ThreatLevel is the qualitative bucket derived from the numeric risk score
// and raw severity counts.
type ThreatLevel string

const (
	ThreatLevelLow      ThreatLevel = "LOW"
	ThreatLevelMedium   ThreatLevel = "MEDIUM"
	ThreatLevelHigh     ThreatLevel = "HIGH"
	ThreatLevelCritical ThreatLevel = "CRITICAL"
)

// TrendDirection classifies the direction of a posture metric. Naming is
// posture-centric: a rising risk score reads as a declining posture.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// Priority ranks recommendations for remediation planning.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// PostureTrends holds the per-metric trend classification.
//
// These are derived from the current snapshot only, not from a comparison
// against a prior period. True trending would need a time-series store and
// is a deliberate future enhancement.
type PostureTrends struct {
	Risk            TrendDirection `json:"risk"`
	PatchCompliance TrendDirection `json:"patch_compliance"`
	Exposure        TrendDirection `json:"exposure"`
}

// ComplianceStatus flags which compliance frameworks the current posture
// satisfies. Each framework is an independent predicate.
type ComplianceStatus struct {
	GDPR     bool `json:"gdpr"`
	SOX      bool `json:"sox"`
	HIPAA    bool `json:"hipaa"`
	PCI      bool `json:"pci"`
	ISO27001 bool `json:"iso27001"`
	NIST     bool `json:"nist"`
}

// Recommendation is an actionable remediation item. IDs are derived from the
// triggering aggregate, so identical inputs always yield identical IDs.
type Recommendation struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"` // "patch", "configuration", "monitoring"
	Priority    Priority `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	Effort      string   `json:"effort"`
	Timeframe   string   `json:"timeframe"`
	Resources   []string `json:"resources,omitempty"`

	RelatedVulnerabilityIDs []string `json:"related_vulnerability_ids,omitempty"`
}

// SecurityPosture is the full output of a posture assessment. It is a
// computed value, recomputed on every request; persisting it is a pure cache
// write since identical inputs always produce identical output.
type SecurityPosture struct {
	RiskScore             float64          `json:"risk_score"`             // 0-100
	VulnerabilityExposure float64          `json:"vulnerability_exposure"` // 0-100
	PatchCompliance       float64          `json:"patch_compliance"`       // 0-100
	SecurityMaturity      float64          `json:"security_maturity"`      // 0-100
	ThreatLevel           ThreatLevel      `json:"threat_level"`
	ComplianceStatus      ComplianceStatus `json:"compliance_status"`
	Trends                PostureTrends    `json:"trends"`
	Recommendations       []Recommendation `json:"recommendations"`
	ImprovementAreas      []string         `json:"improvement_areas"`
	AssessedAt            time.Time        `json:"assessed_at"`
}

// PostureKey identifies a cached posture snapshot.
type PostureKey struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id,omitempty"`
	ViewScope      string `json:"view_scope,omitempty"` // "user", "org", "global"
	Timeframe      string `json:"timeframe,omitempty"`  // "30d", "90d", ...
	Region         string `json:"region,omitempty"`
	Sector         string `json:"sector,omitempty"`
}
