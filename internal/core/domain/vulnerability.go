package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Severity buckets used for vulnerability classification.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// IsValid checks if the severity is a recognized bucket.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// VulnStatus tracks the remediation state of a vulnerability record.
type VulnStatus string

const (
	VulnStatusOpen         VulnStatus = "open"
	VulnStatusInProgress   VulnStatus = "in_progress"
	VulnStatusPatched      VulnStatus = "patched"
	VulnStatusRiskAccepted VulnStatus = "risk_accepted"
)

// Domain errors for aggregate validation.
var (
	ErrNegativeCount    = errors.New("count cannot be negative")
	ErrCVSSOutOfRange   = errors.New("cvss score must be within [0,10]")
	ErrNonFiniteValue   = errors.New("value must be a finite number")
	ErrSeverityOverflow = errors.New("severity bucket counts exceed total")
)

// VulnerabilityRecord represents a tracked vulnerability, typically sourced
// from NVD or a vendor advisory feed.
type VulnerabilityRecord struct {
	ID          string   `json:"cve_id"` // e.g., "CVE-2024-3094"
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Severity    Severity `json:"severity"`

	// CVSS Metrics
	CVSSScore  float64 `json:"cvss_score"`            // 0-10
	CVSSVector string  `json:"cvss_vector,omitempty"` // e.g., "CVSS:3.1/AV:N/AC:L/..."

	// Exploitation State
	HasExploit bool `json:"has_exploit"` // public exploit code available
	HasPatch   bool `json:"has_patch"`   // vendor patch available
	IsKEV      bool `json:"is_kev"`      // on the Known Exploited Vulnerabilities list

	// Affected Software
	Package string `json:"package"` // package/product identifier, e.g., "openssl"
	Vendor  string `json:"vendor,omitempty"`

	Status        VulnStatus `json:"status"`
	PublishedDate time.Time  `json:"published_date"`
	PatchedDate   *time.Time `json:"patched_date,omitempty"`

	References []string `json:"references,omitempty"`
}

// Validate ensures the record is well-formed before it enters the store.
func (v *VulnerabilityRecord) Validate() error {
	if v.ID == "" {
		return errors.New("vulnerability id is required")
	}
	if !v.Severity.IsValid() {
		return fmt.Errorf("unknown severity %q", v.Severity)
	}
	return checkScore("cvss_score", v.CVSSScore)
}

// VulnerabilityAggregate holds per-severity counts and CVSS statistics over a
// scoped set of vulnerability records. It is the primary input to the scoring
// engine; callers derive it from the store, the engine never fetches it.
type VulnerabilityAggregate struct {
	Total        int     `json:"total"`
	Critical     int     `json:"critical"`
	High         int     `json:"high"`
	Medium       int     `json:"medium"`
	Low          int     `json:"low"`
	WithExploits int     `json:"with_exploits"`
	WithPatches  int     `json:"with_patches"`
	KEVCount     int     `json:"kev_count"`
	AvgCVSS      float64 `json:"avg_cvss"` // 0-10
	MaxCVSS      float64 `json:"max_cvss"` // 0-10
}

// Validate rejects malformed aggregates before they reach the scoring engine.
// Negative counts, CVSS outside [0,10] and non-finite values fail fast with
// the offending field named, instead of propagating NaN into scores.
func (a *VulnerabilityAggregate) Validate() error {
	counts := []struct {
		field string
		n     int
	}{
		{"total", a.Total},
		{"critical", a.Critical},
		{"high", a.High},
		{"medium", a.Medium},
		{"low", a.Low},
		{"with_exploits", a.WithExploits},
		{"with_patches", a.WithPatches},
		{"kev_count", a.KEVCount},
	}
	for _, c := range counts {
		if c.n < 0 {
			return fmt.Errorf("%s: %w", c.field, ErrNegativeCount)
		}
	}
	if a.Critical+a.High+a.Medium+a.Low > a.Total {
		return ErrSeverityOverflow
	}
	if err := checkScore("avg_cvss", a.AvgCVSS); err != nil {
		return err
	}
	return checkScore("max_cvss", a.MaxCVSS)
}

// PatchAggregate holds patch-latency statistics over a scoped record set.
// AvgPatchTimeDays is zero when no patched records exist.
type PatchAggregate struct {
	PatchedCount     int     `json:"patched_count"`
	AvgPatchTimeDays float64 `json:"avg_patch_time_days"`

	// Per-severity patch latency for the buckets that drive SLAs.
	AvgPatchTimeCritical float64 `json:"avg_patch_time_critical"`
	AvgPatchTimeHigh     float64 `json:"avg_patch_time_high"`
}

// Validate rejects malformed patch aggregates.
func (p *PatchAggregate) Validate() error {
	if p.PatchedCount < 0 {
		return fmt.Errorf("patched_count: %w", ErrNegativeCount)
	}
	latencies := []struct {
		field string
		v     float64
	}{
		{"avg_patch_time_days", p.AvgPatchTimeDays},
		{"avg_patch_time_critical", p.AvgPatchTimeCritical},
		{"avg_patch_time_high", p.AvgPatchTimeHigh},
	}
	for _, l := range latencies {
		if math.IsNaN(l.v) || math.IsInf(l.v, 0) {
			return fmt.Errorf("%s: %w", l.field, ErrNonFiniteValue)
		}
		if l.v < 0 {
			return fmt.Errorf("%s: %w", l.field, ErrNegativeCount)
		}
	}
	return nil
}

// ExposureEntry is one row of the package exposure ranking: a software
// subject with its vulnerability concentration. The caller's query caps the
// ranking length, not the engine.
type ExposureEntry struct {
	Subject            string  `json:"subject"` // package/product identifier
	VulnerabilityCount int     `json:"vulnerability_count"`
	MaxSeverityScore   float64 `json:"max_severity_score"` // 0-10
	ExploitCount       int     `json:"exploit_count"`
}

// Validate rejects malformed exposure entries.
func (e *ExposureEntry) Validate() error {
	if e.VulnerabilityCount < 0 {
		return fmt.Errorf("vulnerability_count: %w", ErrNegativeCount)
	}
	if e.ExploitCount < 0 {
		return fmt.Errorf("exploit_count: %w", ErrNegativeCount)
	}
	return checkScore("max_severity_score", e.MaxSeverityScore)
}

func checkScore(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", field, ErrNonFiniteValue)
	}
	if v < 0 || v > 10 {
		return fmt.Errorf("%s: %w", field, ErrCVSSOutOfRange)
	}
	return nil
}
