// Package render defines the contract between the wizard and the paper-like
// document backends, plus the registry used to pick one by name.
package render

import (
	"context"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
)

// Letterhead is the fixed header printed at the top of every artifact.
type Letterhead struct {
	Title       string
	AddressLine string
	Phone       string
}

// Options carries per-render instructions shared by all backends.
type Options struct {
	// Letterhead overrides the default letterhead when non-zero.
	Letterhead Letterhead
}

// Renderer turns a (complete or partial) application into a printable
// artifact. Every section with data must appear in full; pagination and
// wrapping are the renderer's problem, truncation is forbidden.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, app application.Application, opts Options) ([]byte, error)
}
