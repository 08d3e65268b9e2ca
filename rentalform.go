// Package rentalform assembles the rental application wizard: the typed
// application document, the per-step validators, the signature pad, and the
// renderers that turn a completed application into a downloadable artifact.
// The root package re-exports the pieces most integrations need.
package rentalform

import (
	"context"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/renderers/htmlpreview"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/renderers/pdf"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/renderers/text"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/validation"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/wizard"
)

// Application is the root document built up across the wizard steps.
type Application = application.Application

// Role identifies which party a per-role record belongs to.
type Role = application.Role

// Wizard drives the seven-step flow.
type Wizard = wizard.Wizard

// ValidationResult carries per-field findings from a step validator.
type ValidationResult = validation.Result

// Letterhead is the header printed on rendered artifacts.
type Letterhead = render.Letterhead

// Artifact is a rendered document plus its download metadata.
type Artifact = render.Artifact

// NewWizard creates a wizard on step one. See the wizard package for the
// available options.
func NewWizard(opts ...wizard.Option) *Wizard {
	return wizard.New(opts...)
}

// DefaultRegistry returns a registry with every built-in renderer: "pdf",
// "text", and "html".
func DefaultRegistry() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(pdf.New())
	registry.MustRegister(text.New())
	registry.MustRegister(htmlpreview.MustNew())
	return registry
}

// GeneratePDF renders an application as a PDF with the given letterhead,
// returning the bytes and the suggested download filename. It is the simplest
// entry point for callers that hold a complete document and only want the
// artifact.
func GeneratePDF(ctx context.Context, app Application, lh Letterhead) (Artifact, error) {
	renderer := pdf.New()
	bytes, err := renderer.Render(ctx, app, render.Options{Letterhead: lh})
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Bytes:       bytes,
		Filename:    render.SuggestFilename(app, "pdf"),
		ContentType: renderer.ContentType(),
	}, nil
}
