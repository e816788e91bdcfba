package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ensure interface compliance
var _ ports.PostureCache = (*PostureCacheRepo)(nil)

// PostureCacheRepo persists computed posture snapshots. It is a facet of the
// SQLite adapter with its own type because its Upsert signature differs from
// the vulnerability store's.
type PostureCacheRepo struct {
	db *gorm.DB
}

// PostureCache returns the snapshot cache facet of the adapter.
func (a *SQLiteAdapter) PostureCache() *PostureCacheRepo {
	return &PostureCacheRepo{db: a.db}
}

// postureScopeColumns are the conflict target for snapshot upserts, matching
// the idx_posture_scope unique index.
var postureScopeColumns = []clause.Column{
	{Name: "user_id"},
	{Name: "organization_id"},
	{Name: "view_scope"},
	{Name: "timeframe"},
	{Name: "region"},
	{Name: "sector"},
}

// Upsert writes a posture snapshot, replacing any previous snapshot for the
// same scope. Last writer wins; scoring is deterministic so concurrent
// writers for the same scope carry the same payload anyway.
func (c *PostureCacheRepo) Upsert(ctx context.Context, key domain.PostureKey, posture domain.SecurityPosture) error {
	payload, err := json.Marshal(posture)
	if err != nil {
		return fmt.Errorf("encode posture: %w", err)
	}

	model := PostureSnapshotModel{
		UserID:         key.UserID,
		OrganizationID: key.OrganizationID,
		ViewScope:      key.ViewScope,
		Timeframe:      key.Timeframe,
		Region:         key.Region,
		Sector:         key.Sector,
		ThreatLevel:    string(posture.ThreatLevel),
		Payload:        string(payload),
		AssessedAt:     posture.AssessedAt,
	}

	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   postureScopeColumns,
		UpdateAll: true,
	}).Create(&model).Error
}

// Get returns the cached snapshot for a scope, or nil when none exists.
func (c *PostureCacheRepo) Get(ctx context.Context, key domain.PostureKey) (*domain.SecurityPosture, error) {
	var model PostureSnapshotModel
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ? AND view_scope = ? AND timeframe = ? AND region = ? AND sector = ?",
			key.UserID, key.OrganizationID, key.ViewScope, key.Timeframe, key.Region, key.Sector).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var posture domain.SecurityPosture
	if err := json.Unmarshal([]byte(model.Payload), &posture); err != nil {
		return nil, fmt.Errorf("decode posture: %w", err)
	}
	return &posture, nil
}
