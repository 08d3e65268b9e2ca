// Package server exposes the rental application flow over HTTP: submitting
// and retrieving applications, rendering artifacts, and uploading the
// supporting documents the legal-questions step asks for.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/storage"
)

const defaultMaxUpload = 10 << 20

// Server wires the storage and render collaborators behind the HTTP API.
type Server struct {
	store      storage.Store
	files      storage.Files
	registry   *render.Registry
	letterhead render.Letterhead
	format     string
	maxUpload  int64
	log        *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithFiles wires the backend for uploaded supporting documents.
func WithFiles(files storage.Files) Option {
	return func(s *Server) { s.files = files }
}

// WithLetterhead overrides the letterhead on rendered artifacts.
func WithLetterhead(lh render.Letterhead) Option {
	return func(s *Server) { s.letterhead = lh }
}

// WithFormat sets the default artifact format. Defaults to "pdf".
func WithFormat(format string) Option {
	return func(s *Server) {
		if format != "" {
			s.format = format
		}
	}
}

// WithMaxUpload caps the accepted upload size in bytes.
func WithMaxUpload(limit int64) Option {
	return func(s *Server) {
		if limit > 0 {
			s.maxUpload = limit
		}
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New creates a server over the given store and renderer registry.
func New(store storage.Store, registry *render.Registry, opts ...Option) *Server {
	s := &Server{
		store:      store,
		registry:   registry,
		letterhead: render.DefaultLetterhead,
		format:     "pdf",
		maxUpload:  defaultMaxUpload,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Route("/rental-applications", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Get("/", s.handleList)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Patch("/", s.handlePatch)
				r.Get("/document", s.handleDocument)
			})
		})
		r.Post("/upload", s.handleUpload)
		r.Get("/files/{filename}", s.handleFile)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
