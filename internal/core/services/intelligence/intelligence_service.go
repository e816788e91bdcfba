// Package intelligence computes landscape-scope threat statistics over the
// whole vulnerability store, as opposed to the per-user view the posture
// service produces.
package intelligence

import (
	"context"
	"fmt"
	"time"

	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
	"github.com/vulnscope/vulnscope/internal/core/services/scoring"
)

// Service implements ports.IntelligenceService.
type Service struct {
	vulns  ports.VulnerabilityStore
	engine *scoring.Engine
	now    func() time.Time
}

func NewService(vulns ports.VulnerabilityStore) *Service {
	return &Service{
		vulns:  vulns,
		engine: scoring.NewEngine(),
		now:    time.Now,
	}
}

// LandscapeStats derives the global intelligence dashboard figures from a
// whole-store aggregate. Actor and vector counts are estimated from the
// aggregate because the feed does not attribute records to actors.
func (s *Service) LandscapeStats(ctx context.Context) (*domain.IntelligenceStats, error) {
	agg, err := s.vulns.GlobalAggregate(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("global aggregate: %w", err)
	}
	if err := agg.Validate(); err != nil {
		return nil, fmt.Errorf("global aggregate: %w", err)
	}

	inputs := domain.LandscapeInputs{
		Aggregate:     agg,
		ThreatActors:  estimateThreatActors(agg),
		AttackVectors: estimateAttackVectors(agg),
	}

	stats := s.engine.LandscapeStats(inputs, s.now().UTC())
	return &stats, nil
}

// TopExposure ranks packages by exposure over the whole store.
func (s *Service) TopExposure(ctx context.Context, limit int) ([]domain.ExposureEntry, error) {
	entries, err := s.vulns.TopExposure(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("exposure ranking: %w", err)
	}
	return entries, nil
}

// estimateThreatActors derives an actor population estimate from exploit
// activity. One actor per ~3 weaponized vulnerabilities, with KEV entries
// counted individually since each one is confirmed in-the-wild use.
func estimateThreatActors(agg domain.VulnerabilityAggregate) int {
	return agg.WithExploits/3 + agg.KEVCount
}

// estimateAttackVectors derives a vector count from severity spread: each
// populated severity band contributes surface, and exploitable volume adds
// one vector per 50 records.
func estimateAttackVectors(agg domain.VulnerabilityAggregate) int {
	vectors := 0
	for _, n := range []int{agg.Critical, agg.High, agg.Medium, agg.Low} {
		if n > 0 {
			vectors++
		}
	}
	return vectors + agg.WithExploits/50
}

// Ensure interface compliance
var _ ports.IntelligenceService = (*Service)(nil)
