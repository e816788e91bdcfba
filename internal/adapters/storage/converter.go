package storage

import (
	"encoding/json"

	"github.com/vulnscope/vulnscope/internal/core/domain"
)

// toVulnDomain converts a database model to a domain entity.
func toVulnDomain(m VulnerabilityModel) domain.VulnerabilityRecord {
	var refs []string
	if m.References != "" {
		_ = json.Unmarshal([]byte(m.References), &refs)
	}

	return domain.VulnerabilityRecord{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Severity:      domain.Severity(m.Severity),
		CVSSScore:     m.CVSSScore,
		CVSSVector:    m.CVSSVector,
		HasExploit:    m.HasExploit,
		HasPatch:      m.HasPatch,
		IsKEV:         m.IsKEV,
		Package:       m.Package,
		Vendor:        m.Vendor,
		Status:        domain.VulnStatus(m.Status),
		PublishedDate: m.PublishedDate,
		PatchedDate:   m.PatchedDate,
		References:    refs,
	}
}

// toVulnModel converts a domain entity to a database model.
func toVulnModel(r domain.VulnerabilityRecord) VulnerabilityModel {
	model := VulnerabilityModel{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Severity:      string(r.Severity),
		CVSSScore:     r.CVSSScore,
		CVSSVector:    r.CVSSVector,
		HasExploit:    r.HasExploit,
		HasPatch:      r.HasPatch,
		IsKEV:         r.IsKEV,
		Package:       r.Package,
		Vendor:        r.Vendor,
		Status:        string(r.Status),
		PublishedDate: r.PublishedDate,
		PatchedDate:   r.PatchedDate,
	}

	if len(r.References) > 0 {
		refBytes, _ := json.Marshal(r.References)
		model.References = string(refBytes)
	}

	return model
}
