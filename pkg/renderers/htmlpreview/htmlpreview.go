// Package htmlpreview renders the application as a standalone HTML page, used
// by the review step and the server's preview endpoint. Applicant-entered
// text is sanitized before it reaches the template, and signature images are
// only embedded when the data URL decodes to a real PNG.
package htmlpreview

import (
	"context"
	"fmt"
	"io"
	"io/fs"

	gotemplate "github.com/goliatone/go-template"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/signature"
)

// TemplateRenderer mirrors the go-template engine contract the preview page
// renders through.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templateFS fs.FS
	templates  TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template engine implementation.
func WithTemplateRenderer(templates TemplateRenderer) Option {
	return func(cfg *config) {
		if templates != nil {
			cfg.templates = templates
		}
	}
}

// Renderer implements render.Renderer for HTML.
type Renderer struct {
	policy    *bluemonday.Policy
	templates TemplateRenderer
}

// New returns an HTML renderer with a strict sanitization policy: any markup
// typed into a free-text field is stripped, not rendered.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templates
	if templates == nil {
		if cfg.templateFS == nil {
			return nil, fmt.Errorf("htmlpreview: no template bundle configured")
		}
		engine, err := gotemplate.NewRenderer(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("htmlpreview: configure template engine: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		policy:    bluemonday.StrictPolicy(),
		templates: templates,
	}, nil
}

// MustNew is New panicking on error, for wiring the built-in bundle where
// construction cannot fail.
func MustNew(options ...Option) *Renderer {
	r, err := New(options...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Name() string { return "html" }

func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render builds the page. Every populated section appears; empty ones are
// skipped.
func (r *Renderer) Render(ctx context.Context, app application.Application, opts render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lh := opts.Letterhead
	if lh == (render.Letterhead{}) {
		lh = render.DefaultLetterhead
	}

	sections := make([]any, 0, 8)
	for _, section := range render.Sections(app) {
		if len(section.Lines) == 0 && len(section.Signatures) == 0 {
			continue
		}
		lines := make([]any, 0, len(section.Lines))
		for _, line := range section.Lines {
			lines = append(lines, map[string]any{
				"label": line.Label,
				"value": r.policy.Sanitize(line.Value),
			})
		}
		signatures := make([]any, 0, len(section.Signatures))
		for _, sig := range section.Signatures {
			entry := map[string]any{
				"title":   sig.Title,
				"name":    r.policy.Sanitize(sig.Name),
				"date":    sig.Date,
				"bitmap":  "",
				"present": false,
			}
			// Only a verified PNG data URL may become an img src; anything
			// else shows as unsigned rather than injecting a URL.
			if _, ok := signature.DecodePNG(sig.Bitmap); ok {
				entry["bitmap"] = sig.Bitmap
				entry["present"] = true
			}
			signatures = append(signatures, entry)
		}
		sections = append(sections, map[string]any{
			"title":      section.Title,
			"lines":      lines,
			"signatures": signatures,
		})
	}

	out, err := r.templates.RenderTemplate("templates/preview.html", map[string]any{
		"letterhead": map[string]any{
			"title":       lh.Title,
			"addressLine": lh.AddressLine,
			"phone":       lh.Phone,
		},
		"sections":   sections,
		"termsTitle": render.TermsTitle,
		"terms":      render.Terms,
	})
	if err != nil {
		return nil, fmt.Errorf("htmlpreview: render page: %w", err)
	}
	return []byte(out), nil
}
