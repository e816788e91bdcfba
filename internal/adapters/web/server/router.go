package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vulnscope/vulnscope/internal/adapters/web/middleware"
	"github.com/vulnscope/vulnscope/internal/core/domain"
)

func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	// Rate limiters
	loginLimiter := middleware.NewRateLimiter(5, 1*time.Minute) // 5 login attempts per minute

	// Public API (with rate limiting)
	r.Handle("/api/login", middleware.RateLimitMiddleware(loginLimiter)(http.HandlerFunc(s.AuthHandler.HandleLogin))).Methods(http.MethodPost)
	r.HandleFunc("/api/logout", s.AuthHandler.HandleLogout).Methods(http.MethodPost)

	// Protected API
	auth := middleware.AuthMiddleware(s.AuthService)
	protect := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	// RBAC helpers
	requireAnalyst := middleware.RoleMiddleware(domain.RoleAnalyst)
	protectAnalyst := func(h http.HandlerFunc) http.Handler {
		return auth(requireAnalyst(h))
	}
	requireAdmin := middleware.RoleMiddleware(domain.RoleAdmin)
	protectAdmin := func(h http.HandlerFunc) http.Handler {
		return auth(requireAdmin(h))
	}

	// WebSocket endpoint (protected)
	r.Handle("/ws", protect(s.WSManager.HandleWebSocket))

	// Session
	r.Handle("/api/me", protect(s.AuthHandler.HandleMe)).Methods(http.MethodGet)
	r.Handle("/api/users", protectAdmin(s.AuthHandler.HandleCreateUser)).Methods(http.MethodPost)

	// Posture API
	r.Handle("/api/posture", protect(s.PostureHandler.HandleGetPosture)).Methods(http.MethodGet)

	// Intelligence API
	r.Handle("/api/intelligence/landscape", protect(s.IntelligenceHandler.HandleLandscapeStats)).Methods(http.MethodGet)
	r.Handle("/api/intelligence/exposure", protect(s.IntelligenceHandler.HandleTopExposure)).Methods(http.MethodGet)

	// Vulnerability Management API
	r.Handle("/api/vulnerabilities", protect(s.VulnHandler.HandleList)).Methods(http.MethodGet)
	r.Handle("/api/vulnerabilities/{id}", protect(s.VulnHandler.HandleGet)).Methods(http.MethodGet)
	r.Handle("/api/vulnerabilities/{id}/status", protectAnalyst(s.VulnHandler.HandleUpdateStatus)).Methods(http.MethodPut)
	r.Handle("/api/vulnerabilities/{id}/watch", protect(s.VulnHandler.HandleWatch)).Methods(http.MethodPost)
	r.Handle("/api/vulnerabilities/{id}/watch", protect(s.VulnHandler.HandleUnwatch)).Methods(http.MethodDelete)

	// Engagement events
	r.Handle("/api/engagement", protect(s.VulnHandler.HandleEngagement)).Methods(http.MethodPost)

	// Export API
	r.Handle("/api/export", protect(s.ExportHandler.HandleExport)).Methods(http.MethodGet)
	r.Handle("/api/export/posture", protect(s.ExportHandler.HandleExportPosture)).Methods(http.MethodGet)

	// Reports (Restricted to Analyst/Admin)
	r.Handle("/api/reports/posture", protectAnalyst(s.ReportHandler.HandlePostureReport)).Methods(http.MethodGet)

	// Audit Logs
	r.Handle("/api/audit-logs", protectAdmin(s.AuditHandler.HandleGetLogs)).Methods(http.MethodGet)

	// Metrics endpoint (protected - requires authentication)
	r.Handle("/metrics", protect(func(w http.ResponseWriter, req *http.Request) {
		promhttp.Handler().ServeHTTP(w, req)
	}))

	return r
}
