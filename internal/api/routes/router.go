package routes

import (
	"net/http"

	"github.com/zatekoja/voicebyte/internal/api/handlers"
	"github.com/zatekoja/voicebyte/internal/api/middleware"
	"github.com/zatekoja/voicebyte/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	intakeHandler *handlers.IntakeHandler
	adminHandler  *handlers.AdminHandler
	sseHandler    *handlers.SSEHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router. sseHandler may be nil when queue events
// are disabled.
func NewRouter(
	intakeHandler *handlers.IntakeHandler,
	adminHandler *handlers.AdminHandler,
	sseHandler *handlers.SSEHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		intakeHandler:  intakeHandler,
		adminHandler:   adminHandler,
		sseHandler:     sseHandler,
		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Kiosk intake
	r.mux.HandleFunc("GET /health", r.intakeHandler.Health)
	r.mux.HandleFunc("POST /detect-language", r.intakeHandler.DetectLanguage)
	r.mux.HandleFunc("POST /extract", r.intakeHandler.Extract)
	r.mux.HandleFunc("POST /process", r.intakeHandler.Process)
	r.mux.HandleFunc("GET /patients", r.intakeHandler.ListPatients)

	// Doctor dashboard
	admin := r.adminHandler.RequireKey
	r.mux.HandleFunc("GET /admin/queue", admin(r.adminHandler.Queue))
	r.mux.HandleFunc("POST /admin/call", admin(r.adminHandler.Call))
	r.mux.HandleFunc("POST /admin/seen", admin(r.adminHandler.Seen))
	r.mux.HandleFunc("GET /admin/stats", admin(r.adminHandler.Stats))
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /admin/events", admin(r.sseHandler.StreamQueueUpdates))
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
