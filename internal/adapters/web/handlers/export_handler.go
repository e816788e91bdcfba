package handlers

import (
	"log"
	"net/http"

	"github.com/vulnscope/vulnscope/internal/adapters/web/middleware"
	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
	"github.com/vulnscope/vulnscope/internal/core/services/export"
)

// ExportHandler handles data export
type ExportHandler struct {
	Store   ports.VulnerabilityStore
	Posture ports.PostureService
	Audit   ports.AuditService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(store ports.VulnerabilityStore, posture ports.PostureService, audit ports.AuditService) *ExportHandler {
	return &ExportHandler{Store: store, Posture: posture, Audit: audit}
}

// HandleExport exports vulnerability records as JSON or CSV.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	records, err := h.Store.List(r.Context(), 0, 0)
	if err != nil {
		log.Printf("Export fetch failed: %v", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	h.Audit.Log(r.Context(), domain.ActionExport, "vulnerabilities", format)

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=vulnscope_vulnerabilities.csv")
		if err := export.ExportCSV(w, records); err != nil {
			log.Printf("CSV export error: %v", err)
		}
	default:
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=vulnscope_vulnerabilities.json")
		if err := export.ExportJSON(w, records); err != nil {
			log.Printf("JSON export error: %v", err)
		}
	}
}

// HandleExportPosture exports the session user's posture snapshot.
func (h *ExportHandler) HandleExportPosture(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("Posture export failed: %v", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	h.Audit.Log(r.Context(), domain.ActionExport, "posture", format)

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=vulnscope_posture.csv")
		if err := export.ExportPostureCSV(w, *posture); err != nil {
			log.Printf("CSV export error: %v", err)
		}
	default:
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=vulnscope_posture.json")
		if err := export.ExportPostureJSON(w, *posture); err != nil {
			log.Printf("JSON export error: %v", err)
		}
	}
}
