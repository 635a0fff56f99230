package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gamestore-admin/config"
	"gamestore-admin/internal/domain"
	"gamestore-admin/pkg/utils"
)

func init() {
	utils.SetSecret("middleware-test-secret")
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func tokenFor(t *testing.T, id int64, profile string) string {
	t.Helper()
	token, err := utils.GenerateJWT(id, "someone@example.com", profile, time.Hour)
	if err != nil {
		t.Fatalf("expected token, got %v", err)
	}
	return token
}

func TestAdminRejectsMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	Admin(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/v1/coupons", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	want := `{"errors":{"fields":{"base":["` + msgUnauthenticated + `"]}}}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestAdminRejectsGarbageToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/coupons", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	Admin(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminRejectsClientProfile(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/coupons", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, 2, domain.ProfileClient))
	rec := httptest.NewRecorder()
	Admin(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthPutsUserInContext(t *testing.T) {
	var seen *domain.User
	h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: tokenFor(t, 7, domain.ProfileAdmin)})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen == nil || seen.ID != 7 || !seen.IsAdmin() {
		t.Fatalf("expected admin user 7 in context, got %+v", seen)
	}
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(t.Context(), 0.001, 1, time.Minute, time.Minute)
	defer rl.Shutdown()
	h := RateLimit(rl)(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 2)
	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 429], got %v", codes)
	}

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a second client, got %d", rec.Code)
	}
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func TestRateLimitLetsThroughWhenLimiterFails(t *testing.T) {
	rec := httptest.NewRecorder()
	RateLimit(brokenLimiter{})(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := &config.Config{AllowedOrigin: "http://admin.local, http://other.local"}
	h := NewCORSMiddleware(cfg)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/admin/v1/games", nil)
	req.Header.Set("Origin", "http://other.local")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://other.local" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestLogger(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := getClientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}
}
