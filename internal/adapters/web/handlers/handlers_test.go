package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/vulnscope/vulnscope/internal/adapters/reporting"
	"github.com/vulnscope/vulnscope/internal/adapters/web/middleware"
	"github.com/vulnscope/vulnscope/internal/core/domain"
)

// --- stubs ---

type stubPostureService struct {
	cached      *domain.SecurityPosture
	cachedErr   error
	assessed    *domain.SecurityPosture
	assessErr   error
	lastKey     domain.PostureKey
	assessCalls int
}

func (s *stubPostureService) Assess(ctx context.Context, key domain.PostureKey) (*domain.SecurityPosture, error) {
	s.lastKey = key
	s.assessCalls++
	return s.assessed, s.assessErr
}

func (s *stubPostureService) Cached(ctx context.Context, key domain.PostureKey) (*domain.SecurityPosture, error) {
	s.lastKey = key
	return s.cached, s.cachedErr
}

type stubIntelligenceService struct {
	stats     *domain.IntelligenceStats
	entries   []domain.ExposureEntry
	err       error
	lastLimit int
}

func (s *stubIntelligenceService) LandscapeStats(ctx context.Context) (*domain.IntelligenceStats, error) {
	return s.stats, s.err
}

func (s *stubIntelligenceService) TopExposure(ctx context.Context, limit int) ([]domain.ExposureEntry, error) {
	s.lastLimit = limit
	return s.entries, s.err
}

type stubAuthService struct {
	token       string
	loginErr    error
	user        *domain.User
	validateErr error
	createErr   error
	lastCreds   domain.Credentials
}

func (s *stubAuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	s.lastCreds = creds
	return s.token, s.loginErr
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error { return nil }

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	return s.user, s.validateErr
}

func (s *stubAuthService) CreateUser(ctx context.Context, user domain.User, password string) error {
	return s.createErr
}

type auditEntry struct {
	action  domain.AuditAction
	target  string
	details string
}

type stubAuditService struct {
	entries []auditEntry
	logs    []domain.AuditLog
	logsErr error
}

func (s *stubAuditService) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	s.entries = append(s.entries, auditEntry{action, target, details})
	return nil
}

func (s *stubAuditService) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.logs, s.logsErr
}

type stubVulnStore struct {
	records    map[string]domain.VulnerabilityRecord
	list       []domain.VulnerabilityRecord
	listErr    error
	updateErr  error
	lastStatus domain.VulnStatus
	lastLimit  int
	lastOffset int
}

func (s *stubVulnStore) Upsert(ctx context.Context, record domain.VulnerabilityRecord) error {
	return nil
}

func (s *stubVulnStore) GetByID(ctx context.Context, id string) (*domain.VulnerabilityRecord, error) {
	if rec, ok := s.records[id]; ok {
		return &rec, nil
	}
	return nil, context.Canceled
}

func (s *stubVulnStore) List(ctx context.Context, limit, offset int) ([]domain.VulnerabilityRecord, error) {
	s.lastLimit = limit
	s.lastOffset = offset
	return s.list, s.listErr
}

func (s *stubVulnStore) UpdateStatus(ctx context.Context, id string, status domain.VulnStatus) error {
	if _, ok := s.records[id]; !ok {
		return context.Canceled
	}
	s.lastStatus = status
	return s.updateErr
}

func (s *stubVulnStore) TotalCount(ctx context.Context) (int, error) {
	return len(s.list), nil
}

func (s *stubVulnStore) Aggregate(ctx context.Context, ids []string, since time.Time) (domain.VulnerabilityAggregate, error) {
	return domain.VulnerabilityAggregate{}, nil
}

func (s *stubVulnStore) PatchAggregate(ctx context.Context, ids []string) (domain.PatchAggregate, error) {
	return domain.PatchAggregate{}, nil
}

func (s *stubVulnStore) TopExposure(ctx context.Context, ids []string, limit int) ([]domain.ExposureEntry, error) {
	return nil, nil
}

func (s *stubVulnStore) GlobalAggregate(ctx context.Context, since time.Time) (domain.VulnerabilityAggregate, error) {
	return domain.VulnerabilityAggregate{}, nil
}

func (s *stubVulnStore) Close() error { return nil }

type stubWatchlist struct {
	added   [][2]string
	removed [][2]string
}

func (s *stubWatchlist) WatchedIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func (s *stubWatchlist) AddToWatchlist(ctx context.Context, userID, vulnerabilityID string) error {
	s.added = append(s.added, [2]string{userID, vulnerabilityID})
	return nil
}

func (s *stubWatchlist) RemoveFromWatchlist(ctx context.Context, userID, vulnerabilityID string) error {
	s.removed = append(s.removed, [2]string{userID, vulnerabilityID})
	return nil
}

type stubEngagement struct {
	events []domain.EngagementEvent
	err    error
}

func (s *stubEngagement) Append(ctx context.Context, event domain.EngagementEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *stubEngagement) CountByKind(ctx context.Context, userID string, window time.Duration) (domain.EngagementAggregate, error) {
	return domain.EngagementAggregate{}, nil
}

// --- helpers ---

func testUser() *domain.User {
	return &domain.User{ID: "user-1", Username: "alice", Role: domain.RoleAnalyst}
}

func authenticated(req *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, user)
	return req.WithContext(ctx)
}

func samplePosture() *domain.SecurityPosture {
	return &domain.SecurityPosture{
		RiskScore:             52.75,
		VulnerabilityExposure: 41.2,
		PatchCompliance:       50,
		SecurityMaturity:      48.3,
		ThreatLevel:           domain.ThreatLevelHigh,
		AssessedAt:            time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// --- auth handler ---

func TestHandleLoginSetsCookie(t *testing.T) {
	auth := &stubAuthService{token: "tok-123"}
	audit := &stubAuditService{}
	h := NewAuthHandler(auth, audit)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	w := httptest.NewRecorder()
	h.HandleLogin(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if auth.lastCreds.Username != "alice" {
		t.Errorf("expected credentials to reach the service, got %q", auth.lastCreds.Username)
	}

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session_token cookie")
	}
	if sessionCookie.Value != "tok-123" {
		t.Errorf("expected token in cookie, got %q", sessionCookie.Value)
	}
	if !sessionCookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}

	if len(audit.entries) != 1 || audit.entries[0].action != domain.ActionLogin {
		t.Errorf("expected login audit entry, got %+v", audit.entries)
	}
}

func TestHandleLoginInvalidCredentials(t *testing.T) {
	auth := &stubAuthService{loginErr: context.Canceled}
	h := NewAuthHandler(auth, &stubAuditService{})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	w := httptest.NewRecorder()
	h.HandleLogin(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestHandleMe(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubAuditService{})

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/me", nil), testUser())
	w := httptest.NewRecorder()
	h.HandleMe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["username"] != "alice" {
		t.Errorf("expected username alice, got %v", body["username"])
	}
	if body["role"] != "analyst" {
		t.Errorf("expected role analyst, got %v", body["role"])
	}
}

func TestHandleCreateUserRejectsInvalidRole(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubAuditService{})

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"bob","password":"pw","role":"superuser"}`))
	w := httptest.NewRecorder()
	h.HandleCreateUser(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// --- posture handler ---

func TestHandleGetPostureCacheHit(t *testing.T) {
	posture := &stubPostureService{cached: samplePosture()}
	h := NewPostureHandler(posture, &stubAuditService{})

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/posture", nil), testUser())
	w := httptest.NewRecorder()
	h.HandleGetPosture(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if posture.assessCalls != 0 {
		t.Errorf("cache hit must not trigger an assessment, got %d calls", posture.assessCalls)
	}

	var got domain.SecurityPosture
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RiskScore != 52.75 {
		t.Errorf("expected cached risk score 52.75, got %v", got.RiskScore)
	}
}

func TestHandleGetPostureRefresh(t *testing.T) {
	posture := &stubPostureService{cached: samplePosture(), assessed: samplePosture()}
	audit := &stubAuditService{}
	h := NewPostureHandler(posture, audit)

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/posture?refresh=true&timeframe=90d", nil), testUser())
	w := httptest.NewRecorder()
	h.HandleGetPosture(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if posture.assessCalls != 1 {
		t.Fatalf("expected one assessment, got %d", posture.assessCalls)
	}
	if posture.lastKey.Timeframe != "90d" {
		t.Errorf("expected timeframe 90d, got %q", posture.lastKey.Timeframe)
	}
	if len(audit.entries) != 1 || audit.entries[0].action != domain.ActionAssessment {
		t.Errorf("expected assessment audit entry, got %+v", audit.entries)
	}
}

func TestHandleGetPostureUnauthenticated(t *testing.T) {
	h := NewPostureHandler(&stubPostureService{}, &stubAuditService{})

	req := httptest.NewRequest(http.MethodGet, "/api/posture", nil)
	w := httptest.NewRecorder()
	h.HandleGetPosture(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPostureKeyDefaults(t *testing.T) {
	posture := &stubPostureService{cached: nil, assessed: samplePosture()}
	h := NewPostureHandler(posture, &stubAuditService{})

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/posture", nil), testUser())
	w := httptest.NewRecorder()
	h.HandleGetPosture(w, req)

	key := posture.lastKey
	if key.UserID != "user-1" {
		t.Errorf("expected session user id, got %q", key.UserID)
	}
	if key.ViewScope != "user" {
		t.Errorf("expected default scope user, got %q", key.ViewScope)
	}
	if key.Timeframe != "30d" {
		t.Errorf("expected default timeframe 30d, got %q", key.Timeframe)
	}
}

// --- intelligence handler ---

func TestHandleLandscapeStats(t *testing.T) {
	intel := &stubIntelligenceService{stats: &domain.IntelligenceStats{TotalThreats: 400}}
	h := NewIntelligenceHandler(intel)

	req := httptest.NewRequest(http.MethodGet, "/api/intelligence/landscape", nil)
	w := httptest.NewRecorder()
	h.HandleLandscapeStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got domain.IntelligenceStats
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalThreats != 400 {
		t.Errorf("expected 400 total threats, got %d", got.TotalThreats)
	}
}

func TestHandleTopExposureLimit(t *testing.T) {
	intel := &stubIntelligenceService{entries: []domain.ExposureEntry{{Subject: "openssl"}}}
	h := NewIntelligenceHandler(intel)

	req := httptest.NewRequest(http.MethodGet, "/api/intelligence/exposure?limit=5", nil)
	w := httptest.NewRecorder()
	h.HandleTopExposure(w, req)

	if intel.lastLimit != 5 {
		t.Errorf("expected limit 5, got %d", intel.lastLimit)
	}

	// Out-of-range limits fall back to the default.
	req = httptest.NewRequest(http.MethodGet, "/api/intelligence/exposure?limit=5000", nil)
	h.HandleTopExposure(httptest.NewRecorder(), req)
	if intel.lastLimit != 10 {
		t.Errorf("expected default limit 10, got %d", intel.lastLimit)
	}
}

// --- vulnerability handler ---

func sampleRecord() domain.VulnerabilityRecord {
	return domain.VulnerabilityRecord{
		ID:            "CVE-2026-1111",
		Title:         "Heap overflow in TLS handshake",
		Severity:      domain.SeverityCritical,
		CVSSScore:     9.8,
		Package:       "openssl",
		Status:        domain.VulnStatusOpen,
		PublishedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newVulnHandler() (*VulnerabilityHandler, *stubVulnStore, *stubWatchlist, *stubEngagement, *stubAuditService) {
	store := &stubVulnStore{
		records: map[string]domain.VulnerabilityRecord{"CVE-2026-1111": sampleRecord()},
		list:    []domain.VulnerabilityRecord{sampleRecord()},
	}
	watchlist := &stubWatchlist{}
	engagement := &stubEngagement{}
	audit := &stubAuditService{}
	return NewVulnerabilityHandler(store, watchlist, engagement, audit), store, watchlist, engagement, audit
}

func TestHandleListVulnerabilities(t *testing.T) {
	h, store, _, _, _ := newVulnHandler()

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/vulnerabilities?limit=25&offset=50", nil), testUser())
	w := httptest.NewRecorder()
	h.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if store.lastLimit != 25 || store.lastOffset != 50 {
		t.Errorf("expected limit 25 offset 50, got %d/%d", store.lastLimit, store.lastOffset)
	}

	var body struct {
		Vulnerabilities []domain.VulnerabilityRecord `json:"vulnerabilities"`
		Total           int                          `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || len(body.Vulnerabilities) != 1 {
		t.Errorf("expected one record, got total=%d len=%d", body.Total, len(body.Vulnerabilities))
	}
}

func TestHandleGetRecordsViewEvent(t *testing.T) {
	h, _, _, engagement, _ := newVulnHandler()

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/vulnerabilities/CVE-2026-1111", nil), testUser())
	req = mux.SetURLVars(req, map[string]string{"id": "CVE-2026-1111"})
	w := httptest.NewRecorder()
	h.HandleGet(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(engagement.events) != 1 {
		t.Fatalf("expected one engagement event, got %d", len(engagement.events))
	}
	ev := engagement.events[0]
	if ev.Kind != domain.EngagementView || ev.UserID != "user-1" || ev.VulnerabilityID != "CVE-2026-1111" {
		t.Errorf("unexpected view event %+v", ev)
	}
}

func TestHandleGetNotFound(t *testing.T) {
	h, _, _, _, _ := newVulnHandler()

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/vulnerabilities/CVE-0000-0000", nil), testUser())
	req = mux.SetURLVars(req, map[string]string{"id": "CVE-0000-0000"})
	w := httptest.NewRecorder()
	h.HandleGet(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandleUpdateStatus(t *testing.T) {
	h, store, _, _, audit := newVulnHandler()

	req := authenticated(httptest.NewRequest(http.MethodPut, "/api/vulnerabilities/CVE-2026-1111/status", strings.NewReader(`{"status":"patched"}`)), testUser())
	req = mux.SetURLVars(req, map[string]string{"id": "CVE-2026-1111"})
	w := httptest.NewRecorder()
	h.HandleUpdateStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if store.lastStatus != domain.VulnStatusPatched {
		t.Errorf("expected patched status, got %q", store.lastStatus)
	}
	if len(audit.entries) != 1 || audit.entries[0].action != domain.ActionStatusChange {
		t.Errorf("expected status-change audit entry, got %+v", audit.entries)
	}
}

func TestHandleUpdateStatusRejectsUnknown(t *testing.T) {
	h, _, _, _, _ := newVulnHandler()

	req := authenticated(httptest.NewRequest(http.MethodPut, "/api/vulnerabilities/CVE-2026-1111/status", strings.NewReader(`{"status":"ignored"}`)), testUser())
	req = mux.SetURLVars(req, map[string]string{"id": "CVE-2026-1111"})
	w := httptest.NewRecorder()
	h.HandleUpdateStatus(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleWatch(t *testing.T) {
	h, _, watchlist, engagement, _ := newVulnHandler()

	req := authenticated(httptest.NewRequest(http.MethodPost, "/api/vulnerabilities/CVE-2026-1111/watch", nil), testUser())
	req = mux.SetURLVars(req, map[string]string{"id": "CVE-2026-1111"})
	w := httptest.NewRecorder()
	h.HandleWatch(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(watchlist.added) != 1 || watchlist.added[0] != [2]string{"user-1", "CVE-2026-1111"} {
		t.Errorf("unexpected watchlist state %+v", watchlist.added)
	}
	if len(engagement.events) != 1 || engagement.events[0].Kind != domain.EngagementBookmark {
		t.Errorf("expected bookmark event, got %+v", engagement.events)
	}
}

func TestHandleWatchUnknownRecord(t *testing.T) {
	h, _, watchlist, _, _ := newVulnHandler()

	req := authenticated(httptest.NewRequest(http.MethodPost, "/api/vulnerabilities/CVE-0000-0000/watch", nil), testUser())
	req = mux.SetURLVars(req, map[string]string{"id": "CVE-0000-0000"})
	w := httptest.NewRecorder()
	h.HandleWatch(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if len(watchlist.added) != 0 {
		t.Errorf("watchlist must not change for unknown records")
	}
}

func TestHandleEngagementRejectsUnknownKind(t *testing.T) {
	h, _, _, engagement, _ := newVulnHandler()

	req := authenticated(httptest.NewRequest(http.MethodPost, "/api/engagement", strings.NewReader(`{"kind":"applause","vulnerability_id":"CVE-2026-1111"}`)), testUser())
	w := httptest.NewRecorder()
	h.HandleEngagement(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(engagement.events) != 0 {
		t.Errorf("invalid kinds must not be recorded")
	}
}

func TestHandleEngagement(t *testing.T) {
	h, _, _, engagement, _ := newVulnHandler()

	req := authenticated(httptest.NewRequest(http.MethodPost, "/api/engagement", strings.NewReader(`{"kind":"comment","vulnerability_id":"CVE-2026-1111"}`)), testUser())
	w := httptest.NewRecorder()
	h.HandleEngagement(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if len(engagement.events) != 1 || engagement.events[0].Kind != domain.EngagementComment {
		t.Errorf("expected comment event, got %+v", engagement.events)
	}
}

// --- export handler ---

func TestHandleExportCSV(t *testing.T) {
	store := &stubVulnStore{list: []domain.VulnerabilityRecord{sampleRecord()}}
	audit := &stubAuditService{}
	h := NewExportHandler(store, &stubPostureService{}, audit)

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/export?format=csv", nil), testUser())
	w := httptest.NewRecorder()
	h.HandleExport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "CVE,Title,Severity") {
		t.Errorf("expected CSV header, got %q", w.Body.String()[:40])
	}
	if len(audit.entries) != 1 || audit.entries[0].action != domain.ActionExport {
		t.Errorf("expected export audit entry, got %+v", audit.entries)
	}
}

func TestHandleExportPostureJSON(t *testing.T) {
	posture := &stubPostureService{assessed: samplePosture()}
	h := NewExportHandler(&stubVulnStore{}, posture, &stubAuditService{})

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/export/posture", nil), testUser())
	w := httptest.NewRecorder()
	h.HandleExportPosture(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got domain.SecurityPosture
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ThreatLevel != domain.ThreatLevelHigh {
		t.Errorf("expected HIGH threat level, got %q", got.ThreatLevel)
	}
}

// --- report handler ---

func TestHandlePostureReport(t *testing.T) {
	posture := &stubPostureService{assessed: samplePosture()}
	intel := &stubIntelligenceService{entries: []domain.ExposureEntry{
		{Subject: "openssl", VulnerabilityCount: 3, MaxSeverityScore: 9.8, ExploitCount: 2},
	}}
	h := NewReportHandler(posture, intel, &stubAuditService{}, reporting.NewPDFExporter())

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/reports/posture", nil), testUser())
	w := httptest.NewRecorder()
	h.HandlePostureReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF-") {
		t.Error("expected PDF payload")
	}
}

// --- audit handler ---

func TestHandleGetLogs(t *testing.T) {
	audit := &stubAuditService{logs: []domain.AuditLog{{Action: domain.ActionLogin, Target: "alice"}}}
	h := NewAuditHandler(audit)

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/audit-logs", nil), testUser())
	w := httptest.NewRecorder()
	h.HandleGetLogs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Logs []domain.AuditLog `json:"logs"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Logs) != 1 || body.Logs[0].Target != "alice" {
		t.Errorf("unexpected logs %+v", body.Logs)
	}
}
