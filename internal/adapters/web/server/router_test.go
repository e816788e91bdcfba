package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vulnscope/vulnscope/internal/adapters/web"
	"github.com/vulnscope/vulnscope/internal/core/domain"
)

type stubAuth struct {
	user *domain.User
}

func (s *stubAuth) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if creds.Password != "secret" {
		return "", domain.ErrInvalidPassword
	}
	return "tok-abc", nil
}

func (s *stubAuth) Logout(ctx context.Context, token string) error { return nil }

func (s *stubAuth) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	if token != "tok-abc" {
		return nil, domain.ErrInvalidPassword
	}
	return s.user, nil
}

func (s *stubAuth) CreateUser(ctx context.Context, user domain.User, password string) error {
	return nil
}

type stubAudit struct{}

func (s *stubAudit) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	return nil
}

func (s *stubAudit) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return nil, nil
}

type stubPosture struct{}

func (s *stubPosture) Assess(ctx context.Context, key domain.PostureKey) (*domain.SecurityPosture, error) {
	return &domain.SecurityPosture{ThreatLevel: domain.ThreatLevelLow, AssessedAt: time.Now().UTC()}, nil
}

func (s *stubPosture) Cached(ctx context.Context, key domain.PostureKey) (*domain.SecurityPosture, error) {
	return nil, nil
}

type stubIntelligence struct{}

func (s *stubIntelligence) LandscapeStats(ctx context.Context) (*domain.IntelligenceStats, error) {
	return &domain.IntelligenceStats{}, nil
}

func (s *stubIntelligence) TopExposure(ctx context.Context, limit int) ([]domain.ExposureEntry, error) {
	return nil, nil
}

type stubVulns struct{}

func (s *stubVulns) Upsert(ctx context.Context, record domain.VulnerabilityRecord) error { return nil }
func (s *stubVulns) GetByID(ctx context.Context, id string) (*domain.VulnerabilityRecord, error) {
	return &domain.VulnerabilityRecord{ID: id, Severity: domain.SeverityLow}, nil
}
func (s *stubVulns) List(ctx context.Context, limit, offset int) ([]domain.VulnerabilityRecord, error) {
	return nil, nil
}
func (s *stubVulns) UpdateStatus(ctx context.Context, id string, status domain.VulnStatus) error {
	return nil
}
func (s *stubVulns) TotalCount(ctx context.Context) (int, error) { return 0, nil }
func (s *stubVulns) Aggregate(ctx context.Context, ids []string, since time.Time) (domain.VulnerabilityAggregate, error) {
	return domain.VulnerabilityAggregate{}, nil
}
func (s *stubVulns) PatchAggregate(ctx context.Context, ids []string) (domain.PatchAggregate, error) {
	return domain.PatchAggregate{}, nil
}
func (s *stubVulns) TopExposure(ctx context.Context, ids []string, limit int) ([]domain.ExposureEntry, error) {
	return nil, nil
}
func (s *stubVulns) GlobalAggregate(ctx context.Context, since time.Time) (domain.VulnerabilityAggregate, error) {
	return domain.VulnerabilityAggregate{}, nil
}
func (s *stubVulns) Close() error { return nil }

type stubEngagement struct{}

func (s *stubEngagement) Append(ctx context.Context, event domain.EngagementEvent) error { return nil }
func (s *stubEngagement) CountByKind(ctx context.Context, userID string, window time.Duration) (domain.EngagementAggregate, error) {
	return domain.EngagementAggregate{}, nil
}

type stubWatchlist struct{}

func (s *stubWatchlist) WatchedIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (s *stubWatchlist) AddToWatchlist(ctx context.Context, userID, vulnerabilityID string) error {
	return nil
}
func (s *stubWatchlist) RemoveFromWatchlist(ctx context.Context, userID, vulnerabilityID string) error {
	return nil
}

func newTestServer(role domain.Role) *Server {
	auth := &stubAuth{user: &domain.User{ID: "u1", Username: "alice", Role: role}}
	return NewServer(":0", Deps{
		Vulns:        &stubVulns{},
		Engagement:   &stubEngagement{},
		Watchlist:    &stubWatchlist{},
		Posture:      &stubPosture{},
		Intelligence: &stubIntelligence{},
		Auth:         auth,
		Audit:        &stubAudit{},
		WSManager:    web.NewWSManager(),
	})
}

func TestRouterRejectsUnauthenticated(t *testing.T) {
	router := SetupRoutes(newTestServer(domain.RoleViewer))

	paths := []string{
		"/api/me",
		"/api/posture",
		"/api/vulnerabilities",
		"/api/intelligence/landscape",
		"/api/export",
		"/metrics",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, w.Code)
		}
	}
}

func TestRouterLoginFlow(t *testing.T) {
	router := SetupRoutes(newTestServer(domain.RoleViewer))

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", w.Code)
	}

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("expected session cookie after login")
	}

	// Bearer token works for API clients without cookies.
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"alice"`) {
		t.Errorf("expected session user in response, got %s", w.Body.String())
	}
}

func TestRouterEnforcesRoles(t *testing.T) {
	cases := []struct {
		role   domain.Role
		method string
		path   string
		want   int
	}{
		{domain.RoleViewer, http.MethodGet, "/api/audit-logs", http.StatusForbidden},
		{domain.RoleViewer, http.MethodGet, "/api/reports/posture", http.StatusForbidden},
		{domain.RoleAnalyst, http.MethodGet, "/api/audit-logs", http.StatusForbidden},
		{domain.RoleAnalyst, http.MethodGet, "/api/reports/posture", http.StatusOK},
		{domain.RoleAdmin, http.MethodGet, "/api/audit-logs", http.StatusOK},
	}

	for _, tc := range cases {
		router := SetupRoutes(newTestServer(tc.role))
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer tok-abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s %s as %s: expected %d, got %d", tc.method, tc.path, tc.role, tc.want, w.Code)
		}
	}
}

func TestRouterLoginRateLimit(t *testing.T) {
	router := SetupRoutes(newTestServer(domain.RoleViewer))

	var last int
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
		req.RemoteAddr = "10.0.0.1:4000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after repeated attempts, got %d", last)
	}
}
