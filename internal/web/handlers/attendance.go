package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/kozaktomas/attendance-log/internal/config"
	"github.com/kozaktomas/attendance-log/internal/database"
	"github.com/kozaktomas/attendance-log/internal/storage"
)

// AttendanceHandler handles attendance capture and retrieval endpoints.
type AttendanceHandler struct {
	store  database.AttendanceStore
	blobs  *storage.BlobStore
	limits config.LimitsConfig
	now    func() time.Time
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(store database.AttendanceStore, blobs *storage.BlobStore, limits config.LimitsConfig) *AttendanceHandler {
	return &AttendanceHandler{
		store:  store,
		blobs:  blobs,
		limits: limits,
		now:    time.Now,
	}
}

type locationPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type createRequest struct {
	EmployeeID string           `json:"employeeId"`
	Image      string           `json:"image"`
	Location   *locationPayload `json:"location"`
}

type locationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type recordResponse struct {
	ID           int64            `json:"id"`
	EmployeeID   string           `json:"employeeId"`
	Image        string           `json:"image,omitempty"`
	ImageMissing bool             `json:"imageMissing"`
	Location     locationResponse `json:"location"`
	Timestamp    string           `json:"timestamp"`
}

// stripDataURIHeader removes an optional "data:image/png;base64," style
// prefix, leaving the raw base64 payload.
func stripDataURIHeader(s string) string {
	if i := strings.LastIndex(s, ","); i >= 0 {
		return s[i+1:]
	}
	return s
}

// validateCreateRequest checks field presence and coordinate ranges.
// Returns a client-facing message for the first violation found.
func validateCreateRequest(req *createRequest) string {
	if strings.TrimSpace(req.EmployeeID) == "" {
		return "employeeId is required"
	}
	if req.Image == "" {
		return "image is required"
	}
	if req.Location == nil || req.Location.Latitude == nil || req.Location.Longitude == nil {
		return "location with latitude and longitude is required"
	}
	if lat := *req.Location.Latitude; lat < -90 || lat > 90 {
		return "latitude out of range [-90, 90]"
	}
	if lon := *req.Location.Longitude; lon < -180 || lon > 180 {
		return "longitude out of range [-180, 180]"
	}
	return ""
}

// Create handles POST /attendance. The blob is written before the metadata
// row is inserted, so a visible row always resolves to a durably stored
// photo. All validation and decoding happens before any side effect.
func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.limits.MaxBodyBytes)

	var req createRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateCreateRequest(&req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	payload, err := base64.StdEncoding.DecodeString(stripDataURIHeader(req.Image))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid image encoding")
		return
	}
	if len(payload) == 0 {
		respondError(w, http.StatusBadRequest, "image payload is empty")
		return
	}
	if int64(len(payload)) > h.limits.MaxImageBytes {
		respondError(w, http.StatusBadRequest, "image payload too large")
		return
	}

	info := storage.Sniff(payload)
	ref := storage.NewRef(info.ContentType)

	if err := h.blobs.Write(ref, payload); err != nil {
		log.Printf("blob write failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	rec := &database.AttendanceRecord{
		EmployeeID:  strings.TrimSpace(req.EmployeeID),
		ImageRef:    ref,
		Latitude:    *req.Location.Latitude,
		Longitude:   *req.Location.Longitude,
		ContentType: info.ContentType,
		Width:       info.Width,
		Height:      info.Height,
		TakenAt:     h.now().UTC(),
	}
	if err := h.store.Insert(r.Context(), rec); err != nil {
		// The blob is an orphan now; reap it so it doesn't leak.
		if rmErr := h.blobs.Remove(ref); rmErr != nil {
			log.Printf("failed to remove orphaned blob %s: %v", ref, rmErr)
		}
		log.Printf("attendance insert failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      rec.ID,
	})
}

// List handles GET /attendance. Every record is returned ordered by id
// ascending; a record whose blob cannot be read carries imageMissing
// instead of failing the whole listing.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context())
	if err != nil {
		log.Printf("attendance list failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		resp := recordResponse{
			ID:         rec.ID,
			EmployeeID: rec.EmployeeID,
			Location: locationResponse{
				Latitude:  rec.Latitude,
				Longitude: rec.Longitude,
			},
			Timestamp: rec.TakenAt.UTC().Format(time.RFC3339),
		}

		payload, err := h.blobs.Read(rec.ImageRef)
		switch {
		case err == nil:
			resp.Image = "data:" + rec.ContentType + ";base64," + base64.StdEncoding.EncodeToString(payload)
		case errors.Is(err, storage.ErrNotFound):
			resp.ImageMissing = true
		default:
			log.Printf("blob read failed for %s: %v", rec.ImageRef, err)
			resp.ImageMissing = true
		}

		out = append(out, resp)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"records": out,
	})
}
