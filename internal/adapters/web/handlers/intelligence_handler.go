package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/vulnscope/vulnscope/internal/core/ports"
)

// IntelligenceHandler serves landscape-scope threat statistics.
type IntelligenceHandler struct {
	Intelligence ports.IntelligenceService
}

// NewIntelligenceHandler creates a new IntelligenceHandler
func NewIntelligenceHandler(intelligence ports.IntelligenceService) *IntelligenceHandler {
	return &IntelligenceHandler{Intelligence: intelligence}
}

// HandleLandscapeStats returns the global intelligence dashboard figures.
func (h *IntelligenceHandler) HandleLandscapeStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.Intelligence.LandscapeStats(r.Context())
	if err != nil {
		log.Printf("Landscape stats failed: %v", err)
		http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stats)
}

// HandleTopExposure returns the package exposure ranking.
func (h *IntelligenceHandler) HandleTopExposure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.Intelligence.TopExposure(r.Context(), limit)
	if err != nil {
		log.Printf("Exposure ranking failed: %v", err)
		http.Error(w, "Failed to compute ranking", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"entries": entries,
	})
}
