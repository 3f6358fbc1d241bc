package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NickRemizov/face-review/internal/facecache"
	"github.com/NickRemizov/face-review/internal/overlay"
	"github.com/NickRemizov/face-review/internal/persistence"
	"github.com/NickRemizov/face-review/internal/recognition"
	"github.com/NickRemizov/face-review/internal/web/handlers"
)

func (s *Server) setupRoutes(rec *recognition.Client, store *persistence.Client, cache *facecache.Cache, renderer *overlay.Renderer) {
	// Create handlers
	facesHandler := handlers.NewFacesHandler(rec, store, cache)
	overlayHandler := handlers.NewOverlayHandler(store, cache, renderer)
	framingHandler := handlers.NewFramingHandler(s.config.Presentation.Framing)
	auditHandler := handlers.NewAuditHandler(s.auditCtrl)
	peopleHandler := handlers.NewPeopleHandler(store)
	configHandler := handlers.NewConfigHandler(s.config)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Review session (single active session)
		r.Post("/review/session", s.reviewHandler.OpenSession)
		r.Get("/review/session", s.reviewHandler.GetSession)
		r.Delete("/review/session", s.reviewHandler.CloseSession)
		r.Post("/review/session/next", s.reviewHandler.Next)
		r.Post("/review/session/previous", s.reviewHandler.Previous)
		r.Post("/review/session/faces/{faceId}/remove", s.reviewHandler.RemoveFace)
		r.Post("/review/session/assign", s.reviewHandler.Assign)
		r.Post("/review/session/reject", s.reviewHandler.Reject)
		r.Post("/review/session/people", s.reviewHandler.CreatePerson)
		r.Get("/review/session/people", s.reviewHandler.FilterPeople)

		// Face data
		r.Post("/photos/faces/hydrate", facesHandler.Hydrate)
		r.Get("/photos/{uid}/faces", facesHandler.GetPhotoFaces)
		r.Get("/photos/{uid}/stats", facesHandler.GetPhotoStats)
		r.Post("/photos/{uid}/detect", facesHandler.Detect)
		r.Put("/faces/{id}", facesHandler.Update)
		r.Delete("/faces/{id}", facesHandler.Delete)

		// Overlay rendering and click resolution
		r.Get("/photos/{uid}/overlay", overlayHandler.Render)
		r.Post("/photos/{uid}/hittest", overlayHandler.HitTest)

		// Thumbnail framing
		r.Post("/framing", framingHandler.Compute)

		// Consistency audit
		r.Post("/audit/run", auditHandler.Run)
		r.Get("/audit", auditHandler.Get)
		r.Post("/audit/people/{id}/fix", auditHandler.FixPerson)
		r.Post("/audit/fix-all", auditHandler.FixAll)

		// People catalog
		r.Get("/people", peopleHandler.List)

		// Stats
		r.Get("/stats", facesHandler.AllStats)

		// Config
		r.Get("/config", configHandler.Get)
	})

	// Placeholder page; the gallery SPA embeds the workspace from its own origin.
	s.router.Get("/", s.serveIndex)
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Face Review</title>
    <style>
        body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1a1a2e; color: #eee; }
        .container { text-align: center; }
        h1 { color: #00d9ff; }
        p { color: #aaa; }
        a { color: #00d9ff; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Face Review</h1>
        <p>This service backs the gallery's face-review workspace.</p>
        <p>API is available at <a href="/api/v1/health">/api/v1/health</a></p>
    </div>
</body>
</html>`))
}
