package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/attendance-log/internal/database"
	"github.com/kozaktomas/attendance-log/internal/storage"
	"github.com/kozaktomas/attendance-log/internal/web/handlers"
)

func (s *Server) setupRoutes(store database.AttendanceStore, blobs *storage.BlobStore) {
	attendanceHandler := handlers.NewAttendanceHandler(store, blobs, s.config.Limits)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/attendance", attendanceHandler.Create)
		r.Get("/attendance", attendanceHandler.List)
	})
}
