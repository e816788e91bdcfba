package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
)

// Ensure interface compliance
var _ ports.EngagementStore = (*SQLiteAdapter)(nil)

// Append records a single engagement event.
func (a *SQLiteAdapter) Append(ctx context.Context, event domain.EngagementEvent) error {
	if !event.Kind.IsValid() {
		return fmt.Errorf("unknown engagement kind %q", event.Kind)
	}

	model := EngagementEventModel{
		UserID:          event.UserID,
		Kind:            string(event.Kind),
		VulnerabilityID: event.VulnerabilityID,
		CreatedAt:       event.Timestamp,
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}

	return a.db.WithContext(ctx).Create(&model).Error
}

// CountByKind returns per-kind event counts for a user within the window.
func (a *SQLiteAdapter) CountByKind(ctx context.Context, userID string, window time.Duration) (domain.EngagementAggregate, error) {
	type kindRow struct {
		Kind  string
		Count int
	}

	var rows []kindRow
	err := a.db.WithContext(ctx).Model(&EngagementEventModel{}).
		Select("kind, COUNT(*) AS count").
		Where("user_id = ? AND created_at >= ?", userID, time.Now().Add(-window)).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	agg := make(domain.EngagementAggregate, len(rows))
	for _, r := range rows {
		agg[domain.EngagementKind(r.Kind)] = r.Count
	}
	return agg, nil
}
