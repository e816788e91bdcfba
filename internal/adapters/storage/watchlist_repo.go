package storage

import (
	"context"
	"time"

	"github.com/vulnscope/vulnscope/internal/core/ports"
	"gorm.io/gorm/clause"
)

// Ensure interface compliance
var _ ports.WatchlistStore = (*SQLiteAdapter)(nil)

// WatchedIDs returns the CVE ids the user tracks.
func (a *SQLiteAdapter) WatchedIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := a.db.WithContext(ctx).Model(&WatchlistModel{}).
		Where("user_id = ?", userID).
		Order("vulnerability_id").
		Pluck("vulnerability_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddToWatchlist tracks a vulnerability for a user. Adding an already
// tracked id is a no-op.
func (a *SQLiteAdapter) AddToWatchlist(ctx context.Context, userID, vulnerabilityID string) error {
	entry := WatchlistModel{
		UserID:          userID,
		VulnerabilityID: vulnerabilityID,
		CreatedAt:       time.Now().UTC(),
	}
	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoNothing: true,
	}).Create(&entry).Error
}

// RemoveFromWatchlist stops tracking a vulnerability for a user.
func (a *SQLiteAdapter) RemoveFromWatchlist(ctx context.Context, userID, vulnerabilityID string) error {
	return a.db.WithContext(ctx).
		Where("user_id = ? AND vulnerability_id = ?", userID, vulnerabilityID).
		Delete(&WatchlistModel{}).Error
}
