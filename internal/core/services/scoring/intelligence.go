package scoring

import (
	"time"

	"github.com/vulnscope/vulnscope/internal/core/domain"
)

// LandscapeStats computes the coarse threat-landscape aggregate from the
// global vulnerability aggregate plus caller-supplied actor/vector counts.
// It reuses the posture scoring primitives (patch-compliance weighting,
// critical/high ratio penalties) on a different output shape.
func (e *Engine) LandscapeStats(inputs domain.LandscapeInputs, now time.Time) domain.IntelligenceStats {
	agg := inputs.Aggregate

	var criticalRatio, highRatio, exploitRatio float64
	if agg.Total > 0 {
		total := float64(agg.Total)
		criticalRatio = float64(agg.Critical) / total
		highRatio = float64(agg.High) / total
		exploitRatio = float64(agg.WithExploits) / total
	}

	// Posture score is the inverse of the weighted severity concentration:
	// a landscape that is all critical and fully exploitable scores zero.
	postureScore := clamp(100 - (criticalRatio*50+highRatio*30+exploitRatio*20))

	complianceScore := e.PatchCompliance(agg)

	// Prediction accuracy tracks how much of the landscape behaves
	// predictably: patched and unexploited populations are the predictable
	// part, KEV entries the volatile part.
	var kevRatio float64
	if agg.Total > 0 {
		kevRatio = float64(agg.KEVCount) / float64(agg.Total)
	}
	predictionAccuracy := clamp(70 + complianceScore*0.2 - kevRatio*40)

	return domain.IntelligenceStats{
		TotalThreats:  agg.Total,
		ActiveThreats: agg.Total - agg.WithPatches,
		ThreatActors:  inputs.ThreatActors,
		AttackVectors: inputs.AttackVectors,
		ZeroDays:      agg.KEVCount,

		SecurityPostureScore: postureScore,
		ComplianceScore:      complianceScore,
		PredictionAccuracy:   predictionAccuracy,

		ThreatLevel: e.ClassifyGlobalThreatLevel(agg.Total, criticalRatio, highRatio),
		ComputedAt:  now.UTC(),
	}
}
