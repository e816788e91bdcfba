package reporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/vulnscope/vulnscope/internal/core/domain"
)

// PostureReport bundles everything the PDF renderer needs.
type PostureReport struct {
	Title            string
	OrganizationName string
	GeneratedAt      time.Time
	Posture          domain.SecurityPosture
	TopExposure      []domain.ExposureEntry
}

// PDFExporter exports posture reports to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportPostureReport generates a professional PDF from a posture assessment
func (e *PDFExporter) ExportPostureReport(report *PostureReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addThreatBanner(pdf, report)
	e.addScores(pdf, report)
	e.addCompliance(pdf, report)
	e.addTopExposure(pdf, report)
	e.addRecommendations(pdf, report)
	e.addFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// addHeader adds the report header
func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *PostureReport) {
	title := report.Title
	if title == "" {
		title = "Security Posture Report"
	}

	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if report.OrganizationName != "" {
		pdf.SetFont("Arial", "", 14)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 8, report.OrganizationName, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	dateStr := fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 6, dateStr, "", 1, "L", false, 0, "")
	assessedStr := fmt.Sprintf("Assessed: %s", report.Posture.AssessedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 6, assessedStr, "", 1, "L", false, 0, "")

	pdf.Ln(8)
}

// addThreatBanner adds the prominent threat level display
func (e *PDFExporter) addThreatBanner(pdf *gofpdf.Fpdf, report *PostureReport) {
	r, g, b := e.threatColor(report.Posture.ThreatLevel)

	pdf.SetFillColor(r, g, b)
	pdf.Rect(20, pdf.GetY(), 170, 30, "F")

	y := pdf.GetY()

	pdf.SetFont("Arial", "B", 36)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(25, y+5)
	scoreStr := fmt.Sprintf("%.0f/100", report.Posture.RiskScore)
	pdf.CellFormat(80, 20, scoreStr, "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 18)
	pdf.SetXY(110, y+8)
	levelStr := fmt.Sprintf("%s Threat", report.Posture.ThreatLevel)
	pdf.CellFormat(80, 14, levelStr, "", 0, "L", false, 0, "")

	pdf.SetY(y + 35)
	pdf.Ln(5)
}

// threatColor returns RGB color based on threat level
func (e *PDFExporter) threatColor(level domain.ThreatLevel) (r, g, b int) {
	switch level {
	case domain.ThreatLevelCritical:
		return 220, 53, 69 // Red
	case domain.ThreatLevelHigh:
		return 255, 149, 0 // Orange
	case domain.ThreatLevelMedium:
		return 255, 204, 0 // Yellow
	default:
		return 52, 199, 89 // Green
	}
}

// addScores adds the four posture scores
func (e *PDFExporter) addScores(pdf *gofpdf.Fpdf, report *PostureReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Posture Scores", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(60, 60, 60)

	p := report.Posture
	scores := []struct {
		label string
		value float64
	}{
		{"Risk Score", p.RiskScore},
		{"Vulnerability Exposure", p.VulnerabilityExposure},
		{"Patch Compliance", p.PatchCompliance},
		{"Security Maturity", p.SecurityMaturity},
	}

	for _, s := range scores {
		pdf.CellFormat(80, 7, s.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.1f", s.value), "", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
}

// addCompliance adds the compliance framework table
func (e *PDFExporter) addCompliance(pdf *gofpdf.Fpdf, report *PostureReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Compliance Frameworks", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	c := report.Posture.ComplianceStatus
	frameworks := []struct {
		name string
		ok   bool
	}{
		{"GDPR", c.GDPR},
		{"SOX", c.SOX},
		{"HIPAA", c.HIPAA},
		{"PCI DSS", c.PCI},
		{"ISO 27001", c.ISO27001},
		{"NIST CSF", c.NIST},
	}

	pdf.SetFont("Arial", "", 11)
	for _, f := range frameworks {
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(80, 7, f.name, "", 0, "L", false, 0, "")

		status := "Non-Compliant"
		pdf.SetTextColor(220, 53, 69)
		if f.ok {
			status = "Compliant"
			pdf.SetTextColor(52, 199, 89)
		}
		pdf.CellFormat(40, 7, status, "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
}

// addTopExposure adds the package exposure ranking table
func (e *PDFExporter) addTopExposure(pdf *gofpdf.Fpdf, report *PostureReport) {
	if len(report.TopExposure) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Top Exposed Packages", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(0, 51, 102)
	pdf.CellFormat(70, 8, "Package", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Vulnerabilities", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Max CVSS", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Exploits", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(60, 60, 60)
	for _, entry := range report.TopExposure {
		pdf.CellFormat(70, 7, entry.Subject, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", entry.VulnerabilityCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.1f", entry.MaxSeverityScore), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", entry.ExploitCount), "1", 1, "C", false, 0, "")
	}

	pdf.Ln(6)
}

// addRecommendations adds the remediation recommendations
func (e *PDFExporter) addRecommendations(pdf *gofpdf.Fpdf, report *PostureReport) {
	if len(report.Posture.Recommendations) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Recommendations", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for i, rec := range report.Posture.Recommendations {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(60, 60, 60)
		title := fmt.Sprintf("%d. %s [%s]", i+1, rec.Title, rec.Priority)
		pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, rec.Description, "", "L", false)
		pdf.CellFormat(0, 5, fmt.Sprintf("Timeframe: %s", rec.Timeframe), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
}

// addFooter adds the report footer
func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf) {
	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 6, "Generated by VulnScope", "", 1, "C", false, 0, "")
}
