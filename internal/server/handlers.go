package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/fieldpath"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/storage"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/validation"
)

// handleCreate accepts a complete application, validates it in full, and
// stores it as submitted. Validation problems come back as 422 with the
// per-field findings.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var app application.Application
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&app); err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed application document")
		return
	}

	if res := validation.ValidateAll(app); !res.Valid {
		s.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "application failed validation",
			"validation": res,
		})
		return
	}

	rec, err := s.store.Create(r.Context(), app)
	if err == nil {
		rec, err = s.store.Update(r.Context(), rec.ID, app, application.StatusSubmitted)
	}
	if err != nil {
		s.log.Error("store application", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "could not store application")
		return
	}
	s.respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list applications", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "could not list applications")
		return
	}
	s.respondJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

type patchRequest struct {
	Application map[string]any `json:"application,omitempty"`
	Status      string         `json:"status,omitempty"`
}

// handlePatch merges a partial document into the stored application and/or
// moves its status. The merge preserves untouched fields the same way the
// wizard's own step updates do.
func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed patch")
		return
	}

	app := rec.Application
	if req.Application != nil {
		base, err := application.ToMap(app)
		if err != nil {
			s.log.Error("encode stored application", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, "could not apply patch")
			return
		}
		app, err = application.FromMap(fieldpath.Merge(base, req.Application))
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "patch contains unknown fields")
			return
		}
	}

	status := rec.Status
	if req.Status != "" {
		switch application.Status(req.Status) {
		case application.StatusDraft, application.StatusSubmitted,
			application.StatusApproved, application.StatusRejected:
			status = application.Status(req.Status)
		default:
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.Status))
			return
		}
	}

	updated, err := s.store.Update(r.Context(), rec.ID, app, status)
	if err != nil {
		s.log.Error("update application", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "could not update application")
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

// handleDocument renders the stored application as a downloadable artifact.
// The format query selects the renderer; the server default applies
// otherwise. HTML responses are served inline so the browser opens the
// preview instead of downloading it, and ?disposition=inline forces the same
// for any format.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.format
	}
	renderer, err := s.registry.Get(format)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
		return
	}

	bytes, err := renderer.Render(r.Context(), rec.Application, render.Options{Letterhead: s.letterhead})
	if err != nil {
		s.log.Error("render artifact", zap.String("format", format), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "could not render document")
		return
	}

	disposition := "attachment"
	if format == "html" || r.URL.Query().Get("disposition") == "inline" {
		disposition = "inline"
	}

	filename := render.SuggestFilename(rec.Application, extFor(format))
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(bytes)
}

// handleUpload accepts one multipart file and stores it under a
// uuid-prefixed name so concurrent uploads of "lease.pdf" never collide.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.files == nil {
		s.respondError(w, http.StatusNotImplemented, "file uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.respondError(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	name := uuid.NewString() + "-" + sanitizeFilename(header.Filename)
	stored := storage.File{
		Name:        name,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	if err := s.files.Put(r.Context(), stored); err != nil {
		s.log.Error("store upload", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]any{
		"filename": name,
		"size":     len(data),
	})
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	if s.files == nil {
		s.respondError(w, http.StatusNotImplemented, "file uploads are not configured")
		return
	}

	name := chi.URLParam(r, "filename")
	file, err := s.files.Get(r.Context(), name)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "file not found")
		return
	}
	if err != nil {
		s.log.Error("fetch file", zap.String("name", name), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "could not fetch file")
		return
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (storage.Stored, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "application id must be a number")
		return storage.Stored{}, false
	}
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "application not found")
		return storage.Stored{}, false
	}
	if err != nil {
		s.log.Error("fetch application", zap.Int("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "could not fetch application")
		return storage.Stored{}, false
	}
	return rec, true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func extFor(format string) string {
	if format == "text" {
		return "txt"
	}
	return format
}

// sanitizeFilename keeps the client's base name but strips anything that
// could traverse paths or break headers.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
