package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vulnscope/vulnscope/internal/adapters/seed"
	"github.com/vulnscope/vulnscope/internal/adapters/storage"
	"github.com/vulnscope/vulnscope/internal/adapters/web"
	webserver "github.com/vulnscope/vulnscope/internal/adapters/web/server"
	"github.com/vulnscope/vulnscope/internal/config"
	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/services/audit"
	"github.com/vulnscope/vulnscope/internal/core/services/auth"
	"github.com/vulnscope/vulnscope/internal/core/services/intelligence"
	"github.com/vulnscope/vulnscope/internal/core/services/posture"
	"github.com/vulnscope/vulnscope/internal/mock"
	"github.com/vulnscope/vulnscope/internal/telemetry"
)

// Application holds the core components of the application. It acts as the
// facade for the entire system, orchestrating services and infrastructure.
type Application struct {
	Config *config.Config

	Store               *storage.SQLiteAdapter
	PostureService      *posture.Service
	IntelligenceService *intelligence.Service
	AuthService         *auth.AuthService
	AuditService        *audit.AuditService
	WSManager           *web.WSManager
	WebServer           *webserver.Server
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	// 1. Foundation & Infrastructure
	telemetry.InitMetrics()

	store, err := app.initStorage()
	if err != nil {
		return err
	}
	app.Store = store

	// 2. Domain Services
	app.AuditService = audit.NewAuditService(store)
	app.AuthService = auth.NewAuthService(store.Users())
	app.IntelligenceService = intelligence.NewService(store)

	app.WSManager = web.NewWSManager()
	if app.Config.MaxWSClients > 0 {
		app.WSManager.MaxClients = app.Config.MaxWSClients
	}

	app.PostureService = posture.NewService(store, store, store, store.PostureCache(), app.WSManager)
	store.SetNotifier(app.WSManager)

	if err := app.ensureDefaultAdmin(); err != nil {
		log.Printf("Warning: could not ensure default admin: %v", err)
	}

	// 3. Data Ingest
	if err := app.loadData(); err != nil {
		return err
	}

	// 4. Servers
	app.WebServer = webserver.NewServer(app.Config.Addr, webserver.Deps{
		Vulns:        store,
		Engagement:   store,
		Watchlist:    store,
		Posture:      app.PostureService,
		Intelligence: app.IntelligenceService,
		Auth:         app.AuthService,
		Audit:        app.AuditService,
		WSManager:    app.WSManager,
	})

	return nil
}

func (app *Application) initStorage() (*storage.SQLiteAdapter, error) {
	if dir := filepath.Dir(app.Config.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create DB directory: %w", err)
		}
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init system storage: %w", err)
	}
	return store, nil
}

// ensureDefaultAdmin provisions a bootstrap admin account on a fresh
// database so the deployment is reachable before any users exist.
func (app *Application) ensureDefaultAdmin() error {
	count, err := app.Store.Users().Count(context.Background())
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Provisioning default admin user...")
	admin, err := domain.NewUser("", "admin", domain.RoleAdmin)
	if err != nil {
		return err
	}
	return app.AuthService.CreateUser(context.Background(), *admin, "changeit")
}

func (app *Application) loadData() error {
	ctx := context.Background()

	if len(app.Config.SeedFiles) > 0 {
		loader := seed.NewLoader(app.Store)
		loaded, err := loader.LoadFromMultipleFiles(ctx, app.Config.SeedFiles)
		if err != nil {
			return fmt.Errorf("seed import failed: %w", err)
		}
		slog.Info("Seed import complete", "records", loaded)
	}

	if app.Config.MockMode {
		if err := app.loadMockData(ctx); err != nil {
			return fmt.Errorf("mock data generation failed: %w", err)
		}
		log.Println("Mock Mode Active: serving synthetic vulnerability data")
	}

	return nil
}

// loadMockData fills the store with synthetic records so dashboards have
// something to show in demos.
func (app *Application) loadMockData(ctx context.Context) error {
	gen := mock.NewDataGenerator(time.Now().UnixNano())
	records := gen.GenerateVulnerabilities(app.Config.MockVulns)

	ids := make([]string, 0, len(records))
	for _, r := range records {
		if err := app.Store.Upsert(ctx, r); err != nil {
			return err
		}
		ids = append(ids, r.ID)
	}

	admin, err := app.Store.Users().GetByUsername(ctx, "admin")
	if err != nil {
		return nil // no admin yet, skip engagement synthesis
	}

	watched := ids
	if len(watched) > 25 {
		watched = watched[:25]
	}
	for _, id := range watched {
		if err := app.Store.AddToWatchlist(ctx, admin.ID, id); err != nil {
			return err
		}
	}

	for _, event := range gen.GenerateEngagement(admin.ID, watched, 120) {
		if err := app.Store.Append(ctx, event); err != nil {
			return err
		}
	}

	slog.Info("Mock data generated", "vulnerabilities", len(records), "watched", len(watched))
	return nil
}

// Run starts the application components and manages their execution lifecycle.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting VulnScope components...")

	errChan := make(chan error, 1)
	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	slog.Info("VulnScope Ready. Press Ctrl+C to terminate.")

	select {
	case <-ctx.Done():
		slog.Info("Termination signal received")
	case err := <-errChan:
		return err
	}

	return app.cleanup()
}

func (app *Application) cleanup() error {
	slog.Info("Cleaning up resources...")

	if app.Store != nil {
		return app.Store.Close()
	}
	return nil
}
