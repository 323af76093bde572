package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pulse-works/pulse/pkg/middleware"
)

func corsConfig(origins ...string) *middleware.CORSConfig {
	return &middleware.CORSConfig{
		Enabled:        true,
		Origins:        origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	handler := middleware.CORS(corsConfig("*"))(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", res.StatusCode)
	}

	body, _ := io.ReadAll(res.Body)
	if len(body) != 0 {
		t.Errorf("preflight body: got %q, want empty", body)
	}

	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin: got %q, want *", got)
	}
	if res.Header.Get("Access-Control-Allow-Methods") == "" {
		t.Error("allow-methods header missing")
	}

	if called {
		t.Error("preflight must not reach the next handler")
	}
}

func TestCORSOriginMatching(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantHeader string
	}{
		{
			name:       "exact origin allowed",
			origins:    []string{"https://app.example.com"},
			origin:     "https://app.example.com",
			wantHeader: "https://app.example.com",
		},
		{
			name:       "unknown origin denied",
			origins:    []string{"https://app.example.com"},
			origin:     "https://evil.example.com",
			wantHeader: "",
		},
		{
			name:       "wildcard allows any",
			origins:    []string{"*"},
			origin:     "https://anywhere.example.com",
			wantHeader: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(corsConfig(tt.origins...))(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				}),
			)

			req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("allow-origin: got %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestCORSWildcardSuppressesCredentials(t *testing.T) {
	cfg := corsConfig("*")
	cfg.AllowCredentials = true

	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("allow-credentials: got %q, want unset with wildcard origin", got)
	}
}

func TestCORSDisabledPassesThrough(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: false}

	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status: got %d, want passthrough 418", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin: got %q, want unset when disabled", got)
	}
}
