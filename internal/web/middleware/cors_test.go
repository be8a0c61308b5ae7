package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsTestHandler() http.Handler {
	return CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORS_LocalhostAlwaysAllowed(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/attendance", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	recorder := httptest.NewRecorder()

	corsTestHandler().ServeHTTP(recorder, req)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected localhost origin to be allowed, got '%s'", got)
	}
}

func TestCORS_UnknownOriginNotEchoed(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/attendance", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	recorder := httptest.NewRecorder()

	corsTestHandler().ServeHTTP(recorder, req)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header for unknown origin, got '%s'", got)
	}
}

func TestCORS_AllowedOriginFromEnv(t *testing.T) {
	t.Setenv("WEB_ALLOWED_ORIGINS", "https://hr.example.com, https://intranet.example.com")

	req := httptest.NewRequest("GET", "/api/v1/attendance", nil)
	req.Header.Set("Origin", "https://hr.example.com")
	recorder := httptest.NewRecorder()

	corsTestHandler().ServeHTTP(recorder, req)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "https://hr.example.com" {
		t.Errorf("expected whitelisted origin to be allowed, got '%s'", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	req := httptest.NewRequest("OPTIONS", "/api/v1/attendance", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	recorder := httptest.NewRecorder()

	called := false
	handler := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected status 200 for preflight, got %d", recorder.Code)
	}
	if called {
		t.Error("expected preflight not to reach the next handler")
	}
}
