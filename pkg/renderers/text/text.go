// Package text renders the application as plain text. It is the reference
// backend: every section the richer formats print appears here in an easily
// assertable form, which also makes it the preview of choice for terminals.
package text

import (
	"context"
	"strings"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
)

// Renderer implements render.Renderer for plain text.
type Renderer struct{}

// New returns a text renderer.
func New() *Renderer { return &Renderer{} }

func (r *Renderer) Name() string { return "text" }

func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes the full document: letterhead, every populated section in
// order, then the terms block. Nothing present on the application is omitted.
func (r *Renderer) Render(ctx context.Context, app application.Application, opts render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lh := opts.Letterhead
	if lh == (render.Letterhead{}) {
		lh = render.DefaultLetterhead
	}

	var b strings.Builder
	writeCentered(&b, lh.Title)
	writeCentered(&b, lh.AddressLine)
	writeCentered(&b, lh.Phone)
	b.WriteString("\n")

	for _, section := range render.Sections(app) {
		if len(section.Lines) == 0 && len(section.Signatures) == 0 {
			continue
		}
		title := strings.ToUpper(section.Title)
		b.WriteString(title + "\n")
		b.WriteString(strings.Repeat("-", len([]rune(title))) + "\n")
		for _, line := range section.Lines {
			b.WriteString(line.Label + ": " + line.Value + "\n")
		}
		for _, sig := range section.Signatures {
			b.WriteString(sig.Title + ": " + sig.Name)
			if sig.Date != "" {
				b.WriteString(", signed " + sig.Date)
			}
			if sig.Bitmap != "" {
				b.WriteString(" [signature on file]")
			} else {
				b.WriteString(" [not signed]")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.ToUpper(render.TermsTitle) + "\n")
	b.WriteString(strings.Repeat("-", len(render.TermsTitle)) + "\n")
	for _, term := range render.Terms {
		b.WriteString("* " + term + "\n")
	}

	return []byte(b.String()), nil
}

func writeCentered(b *strings.Builder, line string) {
	if line == "" {
		return
	}
	const width = 72
	pad := (width - len([]rune(line))) / 2
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(line + "\n")
}
