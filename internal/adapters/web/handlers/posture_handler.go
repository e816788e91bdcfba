package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vulnscope/vulnscope/internal/adapters/web/middleware"
	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
	"github.com/vulnscope/vulnscope/internal/telemetry"
)

// PostureHandler serves posture assessments for the authenticated user.
type PostureHandler struct {
	Posture ports.PostureService
	Audit   ports.AuditService
}

// NewPostureHandler creates a new PostureHandler
func NewPostureHandler(posture ports.PostureService, audit ports.AuditService) *PostureHandler {
	return &PostureHandler{Posture: posture, Audit: audit}
}

// postureKeyFromRequest builds the assessment scope from the session user
// and the query string.
func postureKeyFromRequest(r *http.Request, user *domain.User) domain.PostureKey {
	q := r.URL.Query()
	key := domain.PostureKey{
		UserID:         user.ID,
		OrganizationID: q.Get("organization"),
		ViewScope:      q.Get("scope"),
		Timeframe:      q.Get("timeframe"),
		Region:         q.Get("region"),
		Sector:         q.Get("sector"),
	}
	if key.ViewScope == "" {
		key.ViewScope = "user"
	}
	if key.Timeframe == "" {
		key.Timeframe = "30d"
	}
	return key
}

// HandleGetPosture returns the user's posture. The cached snapshot is served
// when available; ?refresh=true forces a fresh assessment.
func (h *PostureHandler) HandleGetPosture(w http.ResponseWriter, r *http.Request) {
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

	if r.URL.Query().Get("refresh") != "true" {
		cached, err := h.Posture.Cached(r.Context(), key)
		if err == nil && cached != nil {
			telemetry.CacheHits.Inc()
			writeJSON(w, cached)
			return
		}
		telemetry.CacheMisses.Inc()
	}

	posture, err := h.Posture.Assess(r.Context(), key)
	if err != nil {
		log.Printf("Posture assessment failed: %v", err)
		http.Error(w, "Assessment failed", http.StatusInternalServerError)
		return
	}

	h.Audit.Log(r.Context(), domain.ActionAssessment, key.UserID, key.Timeframe)

	writeJSON(w, posture)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}
