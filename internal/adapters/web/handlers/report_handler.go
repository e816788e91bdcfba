package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vulnscope/vulnscope/internal/adapters/reporting"
	"github.com/vulnscope/vulnscope/internal/adapters/web/middleware"
	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
)

// ReportHandler renders posture reports as PDF downloads.
type ReportHandler struct {
	Posture      ports.PostureService
	Intelligence ports.IntelligenceService
	Audit        ports.AuditService
	PDFExporter  *reporting.PDFExporter
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(posture ports.PostureService, intelligence ports.IntelligenceService, audit ports.AuditService, exporter *reporting.PDFExporter) *ReportHandler {
	return &ReportHandler{
		Posture:      posture,
		Intelligence: intelligence,
		Audit:        audit,
		PDFExporter:  exporter,
	}
}

// HandlePostureReport assembles and streams the posture PDF.
func (h *ReportHandler) HandlePostureReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	key := postureKeyFromRequest(r, user)
	posture, err := h.Posture.Assess(r.Context(), key)
	if err != nil {
		log.Printf("Report assessment failed: %v", err)
		http.Error(w, "Report generation failed", http.StatusInternalServerError)
		return
	}

	ranking, err := h.Intelligence.TopExposure(r.Context(), 10)
	if err != nil {
		log.Printf("Report exposure ranking failed: %v", err)
		ranking = nil // report still renders without the table
	}

	report := &reporting.PostureReport{
		Title:            "Security Posture Report",
		OrganizationName: key.OrganizationID,
		GeneratedAt:      time.Now().UTC(),
		Posture:          *posture,
		TopExposure:      ranking,
	}

	pdfData, err := h.PDFExporter.ExportPostureReport(report)
	if err != nil {
		log.Printf("PDF generation failed: %v", err)
		http.Error(w, "Report generation failed", http.StatusInternalServerError)
		return
	}

	h.Audit.Log(r.Context(), domain.ActionReport, key.UserID, "posture PDF")

	filename := fmt.Sprintf("vulnscope_posture_%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(pdfData)
}
