// Package posture orchestrates security posture assessments: it gathers the
// aggregates from the stores, runs the pure scoring engine, and fans the
// result out to the cache and any connected dashboard clients.
package posture

import (
	"context"
	"fmt"
	"time"

	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
	"github.com/vulnscope/vulnscope/internal/core/services/scoring"
	"github.com/vulnscope/vulnscope/internal/telemetry"
)

// exposureRankingLimit caps the package exposure ranking fed into the
// recommendation generator.
const exposureRankingLimit = 10

// Service implements ports.PostureService.
type Service struct {
	vulns       ports.VulnerabilityStore
	engagement  ports.EngagementStore
	watchlist   ports.WatchlistStore
	cache       ports.PostureCache
	broadcaster ports.PostureBroadcaster
	engine      *scoring.Engine

	engagementWindow time.Duration
	now              func() time.Time
}

// NewService creates a posture assessment service. broadcaster may be nil
// when no live dashboard delivery is wired (batch jobs, CLI).
func NewService(
	vulns ports.VulnerabilityStore,
	engagement ports.EngagementStore,
	watchlist ports.WatchlistStore,
	cache ports.PostureCache,
	broadcaster ports.PostureBroadcaster,
) *Service {
	return &Service{
		vulns:            vulns,
		engagement:       engagement,
		watchlist:        watchlist,
		cache:            cache,
		broadcaster:      broadcaster,
		engine:           scoring.NewEngine(),
		engagementWindow: domain.DefaultEngagementWindow,
		now:              time.Now,
	}
}

// Assess computes a fresh posture for the given key, caches it, and pushes
// it to connected clients. The computation itself is pure; everything
// fallible here is store I/O.
func (s *Service) Assess(ctx context.Context, key domain.PostureKey) (*domain.SecurityPosture, error) {
	start := time.Now()

	ids, err := s.watchlist.WatchedIDs(ctx, key.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve watchlist: %w", err)
	}

	since := s.windowStart(key.Timeframe)

	vulnAgg, err := s.vulns.Aggregate(ctx, ids, since)
	if err != nil {
		return nil, fmt.Errorf("vulnerability aggregate: %w", err)
	}
	if err := vulnAgg.Validate(); err != nil {
		return nil, fmt.Errorf("vulnerability aggregate: %w", err)
	}

	patchAgg, err := s.vulns.PatchAggregate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("patch aggregate: %w", err)
	}
	if err := patchAgg.Validate(); err != nil {
		return nil, fmt.Errorf("patch aggregate: %w", err)
	}

	engagementAgg, err := s.engagement.CountByKind(ctx, key.UserID, s.engagementWindow)
	if err != nil {
		return nil, fmt.Errorf("engagement aggregate: %w", err)
	}
	if err := engagementAgg.Validate(); err != nil {
		return nil, fmt.Errorf("engagement aggregate: %w", err)
	}

	ranking, err := s.vulns.TopExposure(ctx, ids, exposureRankingLimit)
	if err != nil {
		return nil, fmt.Errorf("exposure ranking: %w", err)
	}
	for i := range ranking {
		if err := ranking[i].Validate(); err != nil {
			return nil, fmt.Errorf("exposure ranking[%d]: %w", i, err)
		}
	}

	result := s.compute(vulnAgg, patchAgg, engagementAgg, ranking)

	if err := s.cache.Upsert(ctx, key, result); err != nil {
		// The assessment itself succeeded; a cache write failure should
		// not hide the result from the caller.
		telemetry.CacheWriteErrors.Inc()
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastPosture(key, result)
	}

	telemetry.AssessmentsTotal.WithLabelValues(string(result.ThreatLevel)).Inc()
	telemetry.AssessmentDuration.Observe(time.Since(start).Seconds())

	return &result, nil
}

// Cached returns the last cached posture for the key, or nil when none has
// been computed yet.
func (s *Service) Cached(ctx context.Context, key domain.PostureKey) (*domain.SecurityPosture, error) {
	return s.cache.Get(ctx, key)
}

// compute is the pure assembly step. Split out so tests can exercise the
// full derivation without stores.
func (s *Service) compute(
	vulnAgg domain.VulnerabilityAggregate,
	patchAgg domain.PatchAggregate,
	engagementAgg domain.EngagementAggregate,
	ranking []domain.ExposureEntry,
) domain.SecurityPosture {
	e := s.engine

	riskScore := e.RiskScore(vulnAgg)
	exposureScore := e.ExposureScore(vulnAgg)
	patchCompliance := e.PatchCompliance(vulnAgg)
	engagementScore := e.EngagementScore(engagementAgg)
	maturity := e.SecurityMaturity(patchCompliance, engagementScore, exposureScore)

	return domain.SecurityPosture{
		RiskScore:             riskScore,
		VulnerabilityExposure: exposureScore,
		PatchCompliance:       patchCompliance,
		SecurityMaturity:      maturity,
		ThreatLevel:           e.ClassifyThreatLevel(riskScore, vulnAgg.Critical, vulnAgg.High),
		ComplianceStatus:      e.ComplianceStatus(patchCompliance, exposureScore, vulnAgg.Critical, maturity, vulnAgg.WithExploits),
		Trends:                e.Trends(riskScore, patchCompliance, exposureScore),
		Recommendations:       e.Recommendations(vulnAgg, patchAgg, ranking),
		ImprovementAreas:      e.ImprovementAreas(patchCompliance, exposureScore, vulnAgg.WithExploits, vulnAgg.KEVCount, maturity),
		AssessedAt:            s.now().UTC(),
	}
}

// windowStart translates a timeframe label into the aggregate window start.
// Unknown labels mean no window restriction.
func (s *Service) windowStart(timeframe string) time.Time {
	var d time.Duration
	switch timeframe {
	case "7d":
		d = 7 * 24 * time.Hour
	case "30d":
		d = 30 * 24 * time.Hour
	case "90d":
		d = 90 * 24 * time.Hour
	default:
		return time.Time{}
	}
	return s.now().Add(-d)
}

// Ensure interface compliance
var _ ports.PostureService = (*Service)(nil)
