package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vulnscope/vulnscope/internal/core/domain"
)

func TestConverterRoundTrip(t *testing.T) {
	patched := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	record := domain.VulnerabilityRecord{
		ID:            "CVE-2026-1234",
		Title:         "Use-after-free in renderer",
		Description:   "A crafted page triggers a UAF.",
		Severity:      domain.SeverityHigh,
		CVSSScore:     8.8,
		CVSSVector:    "CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H",
		HasExploit:    true,
		HasPatch:      true,
		IsKEV:         false,
		Package:       "chromium",
		Vendor:        "google",
		Status:        domain.VulnStatusPatched,
		PublishedDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		PatchedDate:   &patched,
		References:    []string{"https://example.com/advisory", "https://example.com/patch"},
	}

	got := toVulnDomain(toVulnModel(record))
	assert.Equal(t, record, got)
}

func TestConverterEmptyReferences(t *testing.T) {
	record := domain.VulnerabilityRecord{
		ID:       "CVE-2026-5678",
		Severity: domain.SeverityLow,
		Status:   domain.VulnStatusOpen,
	}

	model := toVulnModel(record)
	assert.Empty(t, model.References, "no JSON blob for empty list")

	got := toVulnDomain(model)
	assert.Nil(t, got.References)
}
