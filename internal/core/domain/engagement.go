package domain

import (
	"fmt"
	"time"
)

// EngagementKind identifies a user interaction with the platform.
type EngagementKind string

const (
	EngagementView     EngagementKind = "view"
	EngagementBookmark EngagementKind = "bookmark"
	EngagementComment  EngagementKind = "comment"
	EngagementExport   EngagementKind = "export"
)

// IsValid checks if the kind is a recognized engagement event type.
func (k EngagementKind) IsValid() bool {
	switch k {
	case EngagementView, EngagementBookmark, EngagementComment, EngagementExport:
		return true
	}
	return false
}

// DefaultEngagementWindow is the trailing window over which engagement
// counters are aggregated.
const DefaultEngagementWindow = 30 * 24 * time.Hour

// EngagementEvent records a single user interaction, appended by the API
// layer and aggregated by the engagement store.
type EngagementEvent struct {
	ID              uint           `json:"id"`
	UserID          string         `json:"user_id"`
	Kind            EngagementKind `json:"kind"`
	VulnerabilityID string         `json:"vulnerability_id,omitempty"`
	Timestamp       time.Time      `json:"timestamp"`
}

// EngagementAggregate maps engagement kinds to event counts over a trailing
// window. Missing kinds count as zero.
type EngagementAggregate map[EngagementKind]int

// Validate rejects negative counters and unknown event kinds.
func (e EngagementAggregate) Validate() error {
	for kind, n := range e {
		if !kind.IsValid() {
			return fmt.Errorf("unknown engagement kind %q", kind)
		}
		if n < 0 {
			return fmt.Errorf("engagement %s: %w", kind, ErrNegativeCount)
		}
	}
	return nil
}
