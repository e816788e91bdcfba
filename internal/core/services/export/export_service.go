package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/vulnscope/vulnscope/internal/core/domain"
)

// ExportJSON writes vulnerability records as a JSON array
func ExportJSON(w io.Writer, records []domain.VulnerabilityRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

// ExportCSV writes vulnerability records as CSV with headers
func ExportCSV(w io.Writer, records []domain.VulnerabilityRecord) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	// Header row
	headers := []string{
		"CVE", "Title", "Severity", "CVSSScore", "CVSSVector",
		"HasExploit", "HasPatch", "IsKEV",
		"Package", "Vendor", "Status",
		"PublishedDate", "PatchedDate",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	// Data rows
	for _, r := range records {
		patched := ""
		if r.PatchedDate != nil {
			patched = r.PatchedDate.Format(time.RFC3339)
		}
		row := []string{
			r.ID,
			r.Title,
			string(r.Severity),
			fmt.Sprintf("%.1f", r.CVSSScore),
			r.CVSSVector,
			fmt.Sprintf("%t", r.HasExploit),
			fmt.Sprintf("%t", r.HasPatch),
			fmt.Sprintf("%t", r.IsKEV),
			r.Package,
			r.Vendor,
			string(r.Status),
			r.PublishedDate.Format(time.RFC3339),
			patched,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

// ExportPostureJSON writes a posture snapshot as indented JSON
func ExportPostureJSON(w io.Writer, posture domain.SecurityPosture) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(posture)
}

// ExportPostureCSV writes the posture scores and compliance flags as a flat
// two-row CSV for spreadsheet import
func ExportPostureCSV(w io.Writer, posture domain.SecurityPosture) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{
		"RiskScore", "VulnerabilityExposure", "PatchCompliance", "SecurityMaturity",
		"ThreatLevel",
		"GDPR", "SOX", "HIPAA", "PCI", "ISO27001", "NIST",
		"AssessedAt",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	c := posture.ComplianceStatus
	row := []string{
		fmt.Sprintf("%.2f", posture.RiskScore),
		fmt.Sprintf("%.2f", posture.VulnerabilityExposure),
		fmt.Sprintf("%.2f", posture.PatchCompliance),
		fmt.Sprintf("%.2f", posture.SecurityMaturity),
		string(posture.ThreatLevel),
		fmt.Sprintf("%t", c.GDPR),
		fmt.Sprintf("%t", c.SOX),
		fmt.Sprintf("%t", c.HIPAA),
		fmt.Sprintf("%t", c.PCI),
		fmt.Sprintf("%t", c.ISO27001),
		fmt.Sprintf("%t", c.NIST),
		posture.AssessedAt.Format(time.RFC3339),
	}
	if err := writer.Write(row); err != nil {
		return err
	}

	return writer.Error()
}
