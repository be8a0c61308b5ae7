package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/attendance-log/internal/config"
	"github.com/kozaktomas/attendance-log/internal/database/mock"
	"github.com/kozaktomas/attendance-log/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	blobs, err := storage.NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create blob store: %v", err)
	}

	cfg := &config.Config{
		Limits: config.LimitsConfig{
			MaxImageBytes: 10 * 1024 * 1024,
			MaxBodyBytes:  16 * 1024 * 1024,
		},
	}
	return NewServer(cfg, 0, "127.0.0.1", mock.NewMockAttendanceStore(), blobs)
}

func TestServer_HealthRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	s.Router().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", recorder.Code)
	}
}

func TestServer_AttendanceRoutesWired(t *testing.T) {
	s := newTestServer(t)

	body := `{"employeeId":"E1","image":"data:image/png;base64,AAAA","location":{"latitude":12.9,"longitude":77.6}}`
	req := httptest.NewRequest("POST", "/api/v1/attendance", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	s.Router().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d\nBody: %s", recorder.Code, recorder.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/v1/attendance", nil)
	recorder = httptest.NewRecorder()
	s.Router().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	var resp struct {
		Records []json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Records) != 1 {
		t.Errorf("expected 1 record, got %d", len(resp.Records))
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/unknown", nil)
	recorder := httptest.NewRecorder()
	s.Router().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", recorder.Code)
	}
}
