package ports

import (
	"context"
	"time"

	"github.com/vulnscope/vulnscope/internal/core/domain"
)

// VulnerabilityStore defines the interface for vulnerability record
// persistence and the aggregation queries that feed the scoring engine.
type VulnerabilityStore interface {
	// Record CRUD
	Upsert(ctx context.Context, record domain.VulnerabilityRecord) error
	GetByID(ctx context.Context, id string) (*domain.VulnerabilityRecord, error)
	List(ctx context.Context, limit, offset int) ([]domain.VulnerabilityRecord, error)
	UpdateStatus(ctx context.Context, id string, status domain.VulnStatus) error
	TotalCount(ctx context.Context) (int, error)

	// Aggregation queries scoped to a set of vulnerability ids (a user's
	// watched set). An empty id set means the whole store.
	Aggregate(ctx context.Context, ids []string, since time.Time) (domain.VulnerabilityAggregate, error)
	PatchAggregate(ctx context.Context, ids []string) (domain.PatchAggregate, error)
	TopExposure(ctx context.Context, ids []string, limit int) ([]domain.ExposureEntry, error)

	// Landscape-scope aggregation over the whole store.
	GlobalAggregate(ctx context.Context, since time.Time) (domain.VulnerabilityAggregate, error)

	Close() error
}

// EngagementStore defines the interface for engagement event persistence and
// windowed per-kind aggregation.
type EngagementStore interface {
	Append(ctx context.Context, event domain.EngagementEvent) error
	CountByKind(ctx context.Context, userID string, window time.Duration) (domain.EngagementAggregate, error)
}

// PostureCache persists computed posture snapshots for near-real-time
// dashboards. Scoring is deterministic, so writes are last-writer-wins
// upserts rather than check-then-write.
type PostureCache interface {
	Upsert(ctx context.Context, key domain.PostureKey, posture domain.SecurityPosture) error
	Get(ctx context.Context, key domain.PostureKey) (*domain.SecurityPosture, error)
}

// WatchlistStore resolves the set of vulnerability ids a user tracks.
type WatchlistStore interface {
	WatchedIDs(ctx context.Context, userID string) ([]string, error)
	AddToWatchlist(ctx context.Context, userID, vulnerabilityID string) error
	RemoveFromWatchlist(ctx context.Context, userID, vulnerabilityID string) error
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Save(ctx context.Context, user domain.User) error
	Count(ctx context.Context) (int64, error)
}

// AuditRepository defines persistence for the audit trail.
type AuditRepository interface {
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error)
}
