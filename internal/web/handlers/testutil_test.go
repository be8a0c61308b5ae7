package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kozaktomas/attendance-log/internal/config"
	"github.com/kozaktomas/attendance-log/internal/database/mock"
	"github.com/kozaktomas/attendance-log/internal/storage"
)

// testLimits creates upload limits for testing
func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		MaxImageBytes: 10 * 1024 * 1024,
		MaxBodyBytes:  16 * 1024 * 1024,
	}
}

// setupAttendanceTest creates a handler backed by a mock store and a real
// blob store in a temp directory
func setupAttendanceTest(t *testing.T) (*mock.MockAttendanceStore, *storage.BlobStore, *AttendanceHandler) {
	t.Helper()

	mockStore := mock.NewMockAttendanceStore()
	blobs, err := storage.NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create blob store: %v", err)
	}

	handler := NewAttendanceHandler(mockStore, blobs, testLimits())
	return mockStore, blobs, handler
}

// countBlobFiles returns the number of files in the blob directory
func countBlobFiles(t *testing.T, blobs *storage.BlobStore) int {
	t.Helper()
	entries, err := os.ReadDir(blobs.Dir())
	if err != nil {
		t.Fatalf("failed to read blob directory: %v", err)
	}
	return len(entries)
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertFailureResponse checks the standard {success:false, error} failure shape
func assertFailureResponse(t *testing.T, recorder *httptest.ResponseRecorder) {
	t.Helper()
	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	parseJSONResponse(t, recorder, &result)
	if result.Success {
		t.Error("expected success=false in failure response")
	}
	if result.Error == "" {
		t.Error("expected non-empty error message in failure response")
	}
}
