package ports

import (
	"context"

	"github.com/vulnscope/vulnscope/internal/core/domain"
)

// PostureService assesses a user's security posture from stored aggregates.
type PostureService interface {
	Assess(ctx context.Context, key domain.PostureKey) (*domain.SecurityPosture, error)
	Cached(ctx context.Context, key domain.PostureKey) (*domain.SecurityPosture, error)
}

// IntelligenceService computes landscape-scope threat statistics.
type IntelligenceService interface {
	LandscapeStats(ctx context.Context) (*domain.IntelligenceStats, error)
	TopExposure(ctx context.Context, limit int) ([]domain.ExposureEntry, error)
}

// AuthService manages credentials validation and session lifecycle.
type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
	CreateUser(ctx context.Context, user domain.User, password string) error
}

// AuditService records and lists critical system actions.
type AuditService interface {
	Log(ctx context.Context, action domain.AuditAction, target, details string) error
	GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

// PostureBroadcaster pushes fresh posture snapshots to connected dashboard
// clients. Implemented by the websocket hub; injected so services stay free
// of transport concerns.
type PostureBroadcaster interface {
	BroadcastPosture(key domain.PostureKey, posture domain.SecurityPosture)
}

// VulnerabilityNotifier announces newly ingested vulnerability records to
// connected dashboard clients.
type VulnerabilityNotifier interface {
	NotifyNewVulnerability(record domain.VulnerabilityRecord)
}
