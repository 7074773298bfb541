package auth

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, secret, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func TestJWTAuthMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	valid := signTestToken(t, "test-secret", "user-123", time.Now().Add(time.Hour))
	expired := signTestToken(t, "test-secret", "user-123", time.Now().Add(-time.Hour))
	wrongKey := signTestToken(t, "other-secret", "user-123", time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUID    string
	}{
		{name: "valid token", authHeader: "Bearer " + valid, wantStatus: http.StatusOK, wantUID: "user-123"},
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer token", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "expired token", authHeader: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "wrong signing key", authHeader: "Bearer " + wrongKey, wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUID string
			handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUID = UserUID(r)
			}))

			req := httptest.NewRequest("GET", "/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotUID != tt.wantUID {
				t.Errorf("uid = %q, want %q", gotUID, tt.wantUID)
			}
		})
	}
}

func TestOptionalJWTMiddlewareAllowsAnonymous(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	var gotUID string
	handler := OptionalJWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID = UserUID(r)
	}))

	req := httptest.NewRequest("GET", "/events", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || gotUID != "" {
		t.Errorf("anonymous request: status = %d, uid = %q", rec.Code, gotUID)
	}

	req = httptest.NewRequest("GET", "/events", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", "user-456", time.Now().Add(time.Hour)))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if gotUID != "user-456" {
		t.Errorf("authenticated request: uid = %q, want user-456", gotUID)
	}
}
