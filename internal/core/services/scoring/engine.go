// Package scoring implements the security posture scoring engine: a pure,
// stateless transformation from vulnerability and engagement aggregates to
// posture scores, threat levels, compliance flags and recommendations.
//
// Every function here is deterministic and performs no I/O, so the engine is
// safe to call concurrently from any execution context without coordination.
// Inputs are assumed validated at the boundary (domain Validate methods);
// outputs are defensively clamped to [0,100] regardless.
package scoring

import (
	"math"

	"github.com/vulnscope/vulnscope/internal/core/domain"
)

// Weight constants for the risk score. Critical-severity concentration
// dominates, exploit availability and KEV status follow, and raw average
// CVSS applies a final adjustment.
const (
	riskWeightCritical = 40.0
	riskWeightHigh     = 25.0
	riskWeightExploit  = 20.0
	riskWeightKEV      = 10.0
	riskWeightCVSS     = 5.0
)

// Engagement score weights per event kind.
const (
	engagementWeightView     = 0.1
	engagementWeightBookmark = 0.5
	engagementWeightComment  = 1.0
	engagementWeightExport   = 0.3
)

// Engine computes posture scores from validated aggregates.
type Engine struct{}

// NewEngine creates a new scoring engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// RiskScore computes the ratio-weighted risk score in [0,100].
// When the aggregate is empty all ratios short-circuit to zero rather than
// dividing by zero.
func (e *Engine) RiskScore(agg domain.VulnerabilityAggregate) float64 {
	var criticalRatio, highRatio, exploitRatio, kevRatio float64
	if agg.Total > 0 {
		total := float64(agg.Total)
		criticalRatio = float64(agg.Critical) / total
		highRatio = float64(agg.High) / total
		exploitRatio = float64(agg.WithExploits) / total
		kevRatio = float64(agg.KEVCount) / total
	}

	score := criticalRatio*riskWeightCritical +
		highRatio*riskWeightHigh +
		exploitRatio*riskWeightExploit +
		kevRatio*riskWeightKEV +
		agg.AvgCVSS*riskWeightCVSS

	return clamp(score)
}

// ExposureScore computes the absolute exposure score in [0,100].
//
// Unlike RiskScore this is not ratio-normalized: it grows with absolute
// volume. An organization tracking 200 vulnerabilities is inherently more
// exposed than one tracking 5 at the same severity mix, and that asymmetry
// is intentional.
func (e *Engine) ExposureScore(agg domain.VulnerabilityAggregate) float64 {
	score := float64(agg.Total)*0.5 +
		float64(agg.WithExploits)*2 +
		float64(agg.KEVCount)*3 +
		agg.AvgCVSS*riskWeightCVSS

	return clamp(score)
}

// PatchCompliance computes the patched fraction as a 0-100 score. An empty
// aggregate is vacuously fully compliant.
func (e *Engine) PatchCompliance(agg domain.VulnerabilityAggregate) float64 {
	if agg.Total == 0 {
		return 100
	}
	return clamp(float64(agg.WithPatches) / float64(agg.Total) * 100)
}

// EngagementScore weights per-kind engagement counters into a 0-100 score.
// Kinds missing from the aggregate count as zero.
func (e *Engine) EngagementScore(agg domain.EngagementAggregate) float64 {
	score := float64(agg[domain.EngagementView])*engagementWeightView +
		float64(agg[domain.EngagementBookmark])*engagementWeightBookmark +
		float64(agg[domain.EngagementComment])*engagementWeightComment +
		float64(agg[domain.EngagementExport])*engagementWeightExport

	return clamp(score)
}

// SecurityMaturity blends process discipline (patch compliance), platform
// engagement, and inverse exposure into a composite 0-100 score.
func (e *Engine) SecurityMaturity(patchCompliance, engagementScore, exposureScore float64) float64 {
	inverseExposure := math.Max(0, 100-exposureScore)
	return clamp(patchCompliance*0.4 + engagementScore*0.3 + inverseExposure*0.3)
}

// clamp bounds a score to [0,100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
