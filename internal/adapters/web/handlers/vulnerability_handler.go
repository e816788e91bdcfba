package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vulnscope/vulnscope/internal/adapters/web/middleware"
	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
)

// VulnerabilityHandler manages vulnerability records, watchlists and
// engagement events.
type VulnerabilityHandler struct {
	Store      ports.VulnerabilityStore
	Watchlist  ports.WatchlistStore
	Engagement ports.EngagementStore
	Audit      ports.AuditService
}

// NewVulnerabilityHandler creates a new VulnerabilityHandler
func NewVulnerabilityHandler(store ports.VulnerabilityStore, watchlist ports.WatchlistStore, engagement ports.EngagementStore, audit ports.AuditService) *VulnerabilityHandler {
	return &VulnerabilityHandler{
		Store:      store,
		Watchlist:  watchlist,
		Engagement: engagement,
		Audit:      audit,
	}
}

// HandleList returns a page of vulnerability records.
func (h *VulnerabilityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}

	records, err := h.Store.List(r.Context(), limit, offset)
	if err != nil {
		log.Printf("List vulnerabilities failed: %v", err)
		http.Error(w, "Failed to list vulnerabilities", http.StatusInternalServerError)
		return
	}

	total, err := h.Store.TotalCount(r.Context())
	if err != nil {
		log.Printf("Count vulnerabilities failed: %v", err)
		http.Error(w, "Failed to list vulnerabilities", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"vulnerabilities": records,
		"total":           total,
	})
}

// HandleGet returns a single record and counts the view as engagement.
func (h *VulnerabilityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	if user := middleware.UserFromContext(r.Context()); user != nil {
		event := domain.EngagementEvent{
			UserID:          user.ID,
			Kind:            domain.EngagementView,
			VulnerabilityID: id,
		}
		if err := h.Engagement.Append(r.Context(), event); err != nil {
			log.Printf("Failed to record view event: %v", err)
		}
	}

	writeJSON(w, record)
}

// HandleUpdateStatus transitions a record's remediation state.
func (h *VulnerabilityHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Status domain.VulnStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	switch req.Status {
	case domain.VulnStatusOpen, domain.VulnStatusInProgress, domain.VulnStatusPatched, domain.VulnStatusRiskAccepted:
	default:
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	if err := h.Store.UpdateStatus(r.Context(), id, req.Status); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	h.Audit.Log(r.Context(), domain.ActionStatusChange, id, string(req.Status))

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"updated"}`))
}

// HandleWatch adds a record to the session user's watchlist.
func (h *VulnerabilityHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if _, err := h.Store.GetByID(r.Context(), id); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	if err := h.Watchlist.AddToWatchlist(r.Context(), user.ID, id); err != nil {
		log.Printf("Watchlist add failed: %v", err)
		http.Error(w, "Failed to update watchlist", http.StatusInternalServerError)
		return
	}

	event := domain.EngagementEvent{
		UserID:          user.ID,
		Kind:            domain.EngagementBookmark,
		VulnerabilityID: id,
	}
	if err := h.Engagement.Append(r.Context(), event); err != nil {
		log.Printf("Failed to record bookmark event: %v", err)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"watching"}`))
}

// HandleUnwatch removes a record from the session user's watchlist.
func (h *VulnerabilityHandler) HandleUnwatch(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.Watchlist.RemoveFromWatchlist(r.Context(), user.ID, id); err != nil {
		log.Printf("Watchlist remove failed: %v", err)
		http.Error(w, "Failed to update watchlist", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"unwatched"}`))
}

// HandleEngagement records an explicit engagement event (comment, export).
func (h *VulnerabilityHandler) HandleEngagement(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Kind            domain.EngagementKind `json:"kind"`
		VulnerabilityID string                `json:"vulnerability_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if !req.Kind.IsValid() {
		http.Error(w, "Unknown engagement kind", http.StatusBadRequest)
		return
	}

	event := domain.EngagementEvent{
		UserID:          user.ID,
		Kind:            req.Kind,
		VulnerabilityID: req.VulnerabilityID,
	}
	if err := h.Engagement.Append(r.Context(), event); err != nil {
		log.Printf("Failed to record engagement event: %v", err)
		http.Error(w, "Failed to record event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"status":"recorded"}`))
}
