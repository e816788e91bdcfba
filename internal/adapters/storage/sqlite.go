package storage

import (
	"context"
	"time"

	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// SQLiteAdapter implements the storage ports using GORM and SQLite.
type SQLiteAdapter struct {
	db       *gorm.DB
	notifier ports.VulnerabilityNotifier
}

// SetNotifier wires live dashboard delivery for freshly ingested records.
// May stay nil for batch tooling.
func (a *SQLiteAdapter) SetNotifier(n ports.VulnerabilityNotifier) {
	a.notifier = n
}

// VulnerabilityModel is the GORM model for vulnerability records.
type VulnerabilityModel struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Description string
	Severity    string

	CVSSScore  float64
	CVSSVector string

	HasExploit bool
	HasPatch   bool
	IsKEV      bool

	Package string `gorm:"index"`
	Vendor  string

	Status        string
	PublishedDate time.Time
	PatchedDate   *time.Time

	References string // JSON encoded []string
}

// EngagementEventModel stores user interactions with vulnerability records.
type EngagementEventModel struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          string `gorm:"index"`
	Kind            string
	VulnerabilityID string
	CreatedAt       time.Time `gorm:"index"`
}

// PostureSnapshotModel caches computed posture snapshots keyed by the full
// assessment scope. Payload is the JSON-encoded posture.
type PostureSnapshotModel struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         string `gorm:"uniqueIndex:idx_posture_scope"`
	OrganizationID string `gorm:"uniqueIndex:idx_posture_scope"`
	ViewScope      string `gorm:"uniqueIndex:idx_posture_scope"`
	Timeframe      string `gorm:"uniqueIndex:idx_posture_scope"`
	Region         string `gorm:"uniqueIndex:idx_posture_scope"`
	Sector         string `gorm:"uniqueIndex:idx_posture_scope"`
	ThreatLevel    string
	Payload        string
	AssessedAt     time.Time
}

// WatchlistModel links users to the vulnerability records they track.
type WatchlistModel struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          string `gorm:"uniqueIndex:idx_watch_pair"`
	VulnerabilityID string `gorm:"uniqueIndex:idx_watch_pair"`
	CreatedAt       time.Time
}

// NewSQLiteAdapter initializes the database and migrates schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Trace queries through the global tracer provider
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// Auto Migrate
	if err := db.AutoMigrate(
		&VulnerabilityModel{},
		&EngagementEventModel{},
		&PostureSnapshotModel{},
		&WatchlistModel{},
		&domain.User{},
		&domain.AuditLog{},
	); err != nil {
		return nil, err
	}

	// Create Indices for Performance
	db.Exec("CREATE INDEX IF NOT EXISTS idx_vulns_severity ON vulnerability_models(severity)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_vulns_published ON vulnerability_models(published_date)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_vulns_status ON vulnerability_models(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_engagement_user_time ON engagement_event_models(user_id, created_at)")

	return &SQLiteAdapter{db: db}, nil
}

// Upsert saves or replaces a vulnerability record by CVE id.
func (a *SQLiteAdapter) Upsert(ctx context.Context, record domain.VulnerabilityRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	model := toVulnModel(record)
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return err
	}

	if a.notifier != nil {
		a.notifier.NotifyNewVulnerability(record)
	}
	return nil
}

// GetByID retrieves a record by CVE id.
func (a *SQLiteAdapter) GetByID(ctx context.Context, id string) (*domain.VulnerabilityRecord, error) {
	var model VulnerabilityModel
	if err := a.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, err
	}
	record := toVulnDomain(model)
	return &record, nil
}

// List returns records ordered by publication date, newest first.
func (a *SQLiteAdapter) List(ctx context.Context, limit, offset int) ([]domain.VulnerabilityRecord, error) {
	var models []VulnerabilityModel
	q := a.db.WithContext(ctx).Order("published_date desc").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]domain.VulnerabilityRecord, len(models))
	for i, m := range models {
		records[i] = toVulnDomain(m)
	}
	return records, nil
}

// UpdateStatus transitions a record's remediation state. Moving to patched
// stamps the patch date.
func (a *SQLiteAdapter) UpdateStatus(ctx context.Context, id string, status domain.VulnStatus) error {
	updates := map[string]interface{}{"status": string(status)}
	if status == domain.VulnStatusPatched {
		now := time.Now().UTC()
		updates["patched_date"] = &now
		updates["has_patch"] = true
	}

	res := a.db.WithContext(ctx).Model(&VulnerabilityModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TotalCount returns the number of stored records.
func (a *SQLiteAdapter) TotalCount(ctx context.Context) (int, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&VulnerabilityModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// aggregateRow is the scan target for the severity aggregation query.
type aggregateRow struct {
	Total        int
	Critical     int
	High         int
	Medium       int
	Low          int
	WithExploits int
	WithPatches  int
	KevCount     int
	AvgCvss      float64
	MaxCvss      float64
}

const aggregateSelect = `
COUNT(*) AS total,
COALESCE(SUM(CASE WHEN severity = 'critical' THEN 1 ELSE 0 END), 0) AS critical,
COALESCE(SUM(CASE WHEN severity = 'high' THEN 1 ELSE 0 END), 0) AS high,
COALESCE(SUM(CASE WHEN severity = 'medium' THEN 1 ELSE 0 END), 0) AS medium,
COALESCE(SUM(CASE WHEN severity = 'low' THEN 1 ELSE 0 END), 0) AS low,
COALESCE(SUM(CASE WHEN has_exploit = 1 THEN 1 ELSE 0 END), 0) AS with_exploits,
COALESCE(SUM(CASE WHEN has_patch = 1 THEN 1 ELSE 0 END), 0) AS with_patches,
COALESCE(SUM(CASE WHEN is_kev = 1 THEN 1 ELSE 0 END), 0) AS kev_count,
COALESCE(AVG(cvss_score), 0) AS avg_cvss,
COALESCE(MAX(cvss_score), 0) AS max_cvss`

// Aggregate computes severity counts and CVSS statistics over the given id
// set. An empty set means the whole store; a zero since means no window.
func (a *SQLiteAdapter) Aggregate(ctx context.Context, ids []string, since time.Time) (domain.VulnerabilityAggregate, error) {
	q := a.db.WithContext(ctx).Model(&VulnerabilityModel{}).Select(aggregateSelect)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	if !since.IsZero() {
		q = q.Where("published_date >= ?", since)
	}

	var row aggregateRow
	if err := q.Scan(&row).Error; err != nil {
		return domain.VulnerabilityAggregate{}, err
	}

	return domain.VulnerabilityAggregate{
		Total:        row.Total,
		Critical:     row.Critical,
		High:         row.High,
		Medium:       row.Medium,
		Low:          row.Low,
		WithExploits: row.WithExploits,
		WithPatches:  row.WithPatches,
		KEVCount:     row.KevCount,
		AvgCVSS:      row.AvgCvss,
		MaxCVSS:      row.MaxCvss,
	}, nil
}

type patchRow struct {
	PatchedCount    int
	AvgDays         float64
	AvgDaysCritical float64
	AvgDaysHigh     float64
}

// PatchAggregate computes patch-latency statistics from the record dates.
// julianday math keeps the latency calculation inside SQLite.
func (a *SQLiteAdapter) PatchAggregate(ctx context.Context, ids []string) (domain.PatchAggregate, error) {
	q := a.db.WithContext(ctx).Model(&VulnerabilityModel{}).
		Select(`
COUNT(*) AS patched_count,
COALESCE(AVG(julianday(patched_date) - julianday(published_date)), 0) AS avg_days,
COALESCE(AVG(CASE WHEN severity = 'critical' THEN julianday(patched_date) - julianday(published_date) END), 0) AS avg_days_critical,
COALESCE(AVG(CASE WHEN severity = 'high' THEN julianday(patched_date) - julianday(published_date) END), 0) AS avg_days_high`).
		Where("patched_date IS NOT NULL")
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}

	var row patchRow
	if err := q.Scan(&row).Error; err != nil {
		return domain.PatchAggregate{}, err
	}

	return domain.PatchAggregate{
		PatchedCount:         row.PatchedCount,
		AvgPatchTimeDays:     row.AvgDays,
		AvgPatchTimeCritical: row.AvgDaysCritical,
		AvgPatchTimeHigh:     row.AvgDaysHigh,
	}, nil
}

type exposureRow struct {
	Package      string
	VulnCount    int
	MaxCvss      float64
	ExploitCount int
}

// TopExposure ranks packages by vulnerability concentration. The ordering
// mirrors the exposure heuristic the recommendation generator applies, so
// the hottest package surfaces first.
func (a *SQLiteAdapter) TopExposure(ctx context.Context, ids []string, limit int) ([]domain.ExposureEntry, error) {
	q := a.db.WithContext(ctx).Model(&VulnerabilityModel{}).
		Select(`
package,
COUNT(*) AS vuln_count,
COALESCE(MAX(cvss_score), 0) AS max_cvss,
COALESCE(SUM(CASE WHEN has_exploit = 1 THEN 1 ELSE 0 END), 0) AS exploit_count`).
		Where("package != ''").
		Group("package").
		Order("(COALESCE(MAX(cvss_score), 0) * 10 + COUNT(*) * 2 + COALESCE(SUM(CASE WHEN has_exploit = 1 THEN 1 ELSE 0 END), 0) * 5) DESC, package ASC")
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []exposureRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]domain.ExposureEntry, len(rows))
	for i, r := range rows {
		entries[i] = domain.ExposureEntry{
			Subject:            r.Package,
			VulnerabilityCount: r.VulnCount,
			MaxSeverityScore:   r.MaxCvss,
			ExploitCount:       r.ExploitCount,
		}
	}
	return entries, nil
}

// GlobalAggregate computes the whole-store aggregate for landscape stats.
func (a *SQLiteAdapter) GlobalAggregate(ctx context.Context, since time.Time) (domain.VulnerabilityAggregate, error) {
	return a.Aggregate(ctx, nil, since)
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure interface compliance
var _ ports.VulnerabilityStore = (*SQLiteAdapter)(nil)
