package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/auth"
	rl "github.com/rogerio-castellano/container-tracker/internal/http/rate_limiter"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(GetSubject(r)))
}

func TestAuthMiddleware(t *testing.T) {
	secret := []byte("secret")
	valid, err := auth.GenerateToken(secret, "operator", "admin", time.Hour)
	if err != nil {
		t.Fatalf("could not generate token: %v", err)
	}
	forged, _ := auth.GenerateToken([]byte("other"), "operator", "admin", time.Hour)
	expired, _ := auth.GenerateToken(secret, "operator", "admin", -time.Minute)

	tests := []struct {
		name    string
		header  string
		code    int
		subject string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "operator"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
	}

	h := AuthMiddleware(secret)(http.HandlerFunc(okHandler))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/movements/m1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, w.Code)
			}
			if tt.code == http.StatusOK && w.Body.String() != tt.subject {
				t.Errorf("expected subject %q, got %q", tt.subject, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_OpenWithoutSecret(t *testing.T) {
	h := AuthMiddleware(nil)(http.HandlerFunc(okHandler))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/movements/m1", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(rl.New(1, 2))(http.HandlerFunc(okHandler))

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/movements", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 200, 200, 429, got %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/movements", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected another client to pass, got %d", w.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/movements", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["path"] != "/movements" {
		t.Errorf("unexpected fields %v", fields)
	}
}
