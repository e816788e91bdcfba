package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/vulnscope/vulnscope/internal/adapters/reporting"
	"github.com/vulnscope/vulnscope/internal/adapters/web"
	"github.com/vulnscope/vulnscope/internal/adapters/web/handlers"
	"github.com/vulnscope/vulnscope/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr         string
	AuthService  ports.AuthService
	AuditService ports.AuditService
	WSManager    *web.WSManager

	AuthHandler         *handlers.AuthHandler
	PostureHandler      *handlers.PostureHandler
	IntelligenceHandler *handlers.IntelligenceHandler
	VulnHandler         *handlers.VulnerabilityHandler
	ExportHandler       *handlers.ExportHandler
	ReportHandler       *handlers.ReportHandler
	AuditHandler        *handlers.AuditHandler

	srv *http.Server
}

// Deps bundles the ports the server wires into its handlers.
type Deps struct {
	Vulns        ports.VulnerabilityStore
	Engagement   ports.EngagementStore
	Watchlist    ports.WatchlistStore
	Posture      ports.PostureService
	Intelligence ports.IntelligenceService
	Auth         ports.AuthService
	Audit        ports.AuditService
	WSManager    *web.WSManager
}

// NewServer creates a new web server.
func NewServer(addr string, deps Deps) *Server {
	pdfExporter := reporting.NewPDFExporter()

	return &Server{
		Addr:         addr,
		AuthService:  deps.Auth,
		AuditService: deps.Audit,
		WSManager:    deps.WSManager,

		AuthHandler:         handlers.NewAuthHandler(deps.Auth, deps.Audit),
		PostureHandler:      handlers.NewPostureHandler(deps.Posture, deps.Audit),
		IntelligenceHandler: handlers.NewIntelligenceHandler(deps.Intelligence),
		VulnHandler:         handlers.NewVulnerabilityHandler(deps.Vulns, deps.Watchlist, deps.Engagement, deps.Audit),
		ExportHandler:       handlers.NewExportHandler(deps.Vulns, deps.Posture, deps.Audit),
		ReportHandler:       handlers.NewReportHandler(deps.Posture, deps.Intelligence, deps.Audit, pdfExporter),
		AuditHandler:        handlers.NewAuditHandler(deps.Audit),
	}
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler := SetupRoutes(s)

	// Instrument with OpenTelemetry
	instrumentedHandler := otelhttp.NewHandler(handler, "vulnscope-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown implementation
	go func() {
		<-ctx.Done()
		log.Println("Web Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web Server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
