package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/NickRemizov/face-review/internal/audit"
	"github.com/NickRemizov/face-review/internal/config"
	"github.com/NickRemizov/face-review/internal/facecache"
	"github.com/NickRemizov/face-review/internal/overlay"
	"github.com/NickRemizov/face-review/internal/persistence"
	"github.com/NickRemizov/face-review/internal/recognition"
	"github.com/NickRemizov/face-review/internal/web/handlers"
	"github.com/NickRemizov/face-review/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server

	reviewHandler *handlers.ReviewHandler
	auditCtrl     *audit.Controller
}

// NewServer creates a new web server wired to the recognition and gallery
// services from the configuration.
func NewServer(cfg *config.Config, port int, host string) (*Server, error) {
	rec, err := recognition.New(cfg.Recognition.URL, cfg.Recognition.Token)
	if err != nil {
		return nil, fmt.Errorf("creating recognition client: %w", err)
	}
	store, err := persistence.New(cfg.Gallery.URL, cfg.Gallery.Token)
	if err != nil {
		return nil, fmt.Errorf("creating gallery client: %w", err)
	}

	cache := facecache.New(store)
	auditCtrl := audit.NewController(store, cfg.RevealInterval())

	palette, err := overlay.ParsePalette(cfg.Presentation.Overlay.Palette)
	if err != nil {
		log.Printf("invalid overlay palette, falling back to default: %v", err)
		palette = nil
	}
	renderer := overlay.NewRenderer(palette)

	r := chi.NewRouter()
	s := &Server{
		config:        cfg,
		router:        r,
		reviewHandler: handlers.NewReviewHandler(rec, store, cache),
		auditCtrl:     auditCtrl,
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(2 * time.Minute))
	r.Use(middleware.CORS())

	s.setupRoutes(rec, store, cache, renderer)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // overlay rendering on large originals
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")

	// Tear down controller state so no background task outlives the server.
	s.reviewHandler.Close()
	s.auditCtrl.Close()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}
