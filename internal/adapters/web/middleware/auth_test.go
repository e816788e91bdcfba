package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vulnscope/vulnscope/internal/core/domain"
)

type stubAuthService struct {
	user *domain.User
	err  error

	lastToken string
}

func (s *stubAuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	return "", nil
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error { return nil }

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	s.lastToken = token
	return s.user, s.err
}

func (s *stubAuthService) CreateUser(ctx context.Context, user domain.User, password string) error {
	return nil
}

func TestAuthMiddleware(t *testing.T) {
	svc := &stubAuthService{user: &domain.User{ID: "u-1", Username: "analyst1", Role: domain.RoleAnalyst}}

	var gotUser *domain.User
	handler := AuthMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// No credentials at all
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posture", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", rec.Code)
	}

	// Cookie token
	req := httptest.NewRequest(http.MethodGet, "/api/posture", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-1"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("cookie token: got %d, want 200", rec.Code)
	}
	if svc.lastToken != "tok-1" {
		t.Errorf("validated token = %q, want tok-1", svc.lastToken)
	}
	if gotUser == nil || gotUser.Username != "analyst1" {
		t.Errorf("user not propagated to context: %+v", gotUser)
	}

	// Bearer header fallback
	req = httptest.NewRequest(http.MethodGet, "/api/posture", nil)
	req.Header.Set("Authorization", "Bearer tok-2")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("bearer token: got %d, want 200", rec.Code)
	}
	if svc.lastToken != "tok-2" {
		t.Errorf("validated token = %q, want tok-2", svc.lastToken)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	svc := &stubAuthService{err: errors.New("token expired")}
	handler := AuthMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posture", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "stale"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rec.Code)
	}

	// invalid cookie is cleared
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("stale cookie not cleared")
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		userRole domain.Role
		required domain.Role
		want     int
	}{
		{"admin can do everything", domain.RoleAdmin, domain.RoleAdmin, http.StatusOK},
		{"analyst can act as analyst", domain.RoleAnalyst, domain.RoleAnalyst, http.StatusOK},
		{"analyst cannot act as admin", domain.RoleAnalyst, domain.RoleAdmin, http.StatusForbidden},
		{"viewer cannot act as analyst", domain.RoleViewer, domain.RoleAnalyst, http.StatusForbidden},
		{"viewer can view", domain.RoleViewer, domain.RoleViewer, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RoleMiddleware(tt.required)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			user := &domain.User{ID: "u-1", Role: tt.userRole}
			ctx := context.WithValue(context.Background(), UserContextKey, user)
			req := httptest.NewRequest(http.MethodGet, "/api/admin", nil).WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRoleMiddlewareWithoutUser(t *testing.T) {
	handler := RoleMiddleware(domain.RoleViewer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posture", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rec.Code)
	}
}
