package scoring

import "github.com/vulnscope/vulnscope/internal/core/domain"

// Trends classifies the direction of each posture metric from the current
// snapshot values.
//
// Known limitation: these are snapshot heuristics, not comparisons against a
// prior period. A risk score above 60 reads as a declining posture even if
// last month was worse. Replacing this with real deltas needs a time-series
// store and is deferred.
func (e *Engine) Trends(riskScore, patchCompliance, exposureScore float64) domain.PostureTrends {
	return domain.PostureTrends{
		Risk:            riskTrend(riskScore),
		PatchCompliance: patchTrend(patchCompliance),
		Exposure:        exposureTrend(exposureScore),
	}
}

// Higher risk score is worse, so the trend names track the posture, not the
// numeric score.
func riskTrend(riskScore float64) domain.TrendDirection {
	switch {
	case riskScore > 60:
		return domain.TrendDeclining
	case riskScore < 30:
		return domain.TrendImproving
	default:
		return domain.TrendStable
	}
}

func patchTrend(patchCompliance float64) domain.TrendDirection {
	switch {
	case patchCompliance > 80:
		return domain.TrendImproving
	case patchCompliance < 60:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func exposureTrend(exposureScore float64) domain.TrendDirection {
	switch {
	case exposureScore < 40:
		return domain.TrendImproving
	case exposureScore > 70:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}
