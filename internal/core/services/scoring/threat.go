package scoring

import "github.com/vulnscope/vulnscope/internal/core/domain"

// ClassifyThreatLevel buckets a per-user posture into a qualitative threat
// level. Rules are evaluated in strict order and the first match wins; the
// thresholds overlap, so checking CRITICAL before HIGH is load-bearing
// (riskScore=85 with zero counts must land on CRITICAL, not HIGH).
func (e *Engine) ClassifyThreatLevel(riskScore float64, criticalCount, highCount int) domain.ThreatLevel {
	switch {
	case riskScore >= 80 || criticalCount >= 5:
		return domain.ThreatLevelCritical
	case riskScore >= 60 || criticalCount >= 2 || highCount >= 10:
		return domain.ThreatLevelHigh
	case riskScore >= 40 || highCount >= 5:
		return domain.ThreatLevelMedium
	default:
		return domain.ThreatLevelLow
	}
}

// ClassifyGlobalThreatLevel buckets the global landscape into a threat
// level. This is a distinct rule set from the per-user classifier: it
// operates on ratios and absolute volume, and uses strict comparisons (>)
// where the per-user rules use >=. The divergence is preserved rather than
// unified because the two classifiers serve different scopes.
func (e *Engine) ClassifyGlobalThreatLevel(totalThreats int, criticalRatio, highRatio float64) domain.ThreatLevel {
	switch {
	case criticalRatio > 0.15 || totalThreats > 1000:
		return domain.ThreatLevelCritical
	case criticalRatio > 0.10 || highRatio > 0.30 || totalThreats > 500:
		return domain.ThreatLevelHigh
	case criticalRatio > 0.05 || highRatio > 0.20 || totalThreats > 200:
		return domain.ThreatLevelMedium
	default:
		return domain.ThreatLevelLow
	}
}
