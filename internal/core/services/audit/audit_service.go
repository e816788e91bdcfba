package audit

import (
	"context"

	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
)

// AuditUserKey is the context key handlers use to hand the acting user to
// the audit trail. Services cannot import the web middleware (cycle), so the
// key lives here and the middleware re-exports it.
type contextKey string

const AuditUserKey contextKey = "audit_user"

// WithUser returns a context carrying the acting user for audit entries.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, AuditUserKey, user)
}

type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Log records a critical system action. When the context carries no user the
// entry is attributed to "system" (loaders, scheduled jobs).
func (s *AuditService) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	userID := "system"
	username := "system"

	if u, ok := ctx.Value(AuditUserKey).(*domain.User); ok && u != nil {
		userID = u.ID
		username = u.Username
	}

	// Use the domain factory to enforce action validity
	entry, err := domain.NewAuditLog(userID, username, action, target, details, "")
	if err != nil {
		return err
	}

	return s.repo.SaveAuditLog(ctx, *entry)
}

func (s *AuditService) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.repo.ListAuditLogs(ctx, limit)
}

// Ensure interface compliance
var _ ports.AuditService = (*AuditService)(nil)
