// Package pdf renders the application as the letter-sized PDF applicants
// download after submitting. Captured signature bitmaps are embedded as
// images; everything else is text laid out to mirror the paper form.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/signature"
)

const (
	marginMM    = 18.0
	labelWidth  = 52.0
	sigImgW     = 60.0
	sigImgH     = 20.0
	bodySize    = 10.0
	sectionSize = 11.5
	titleSize   = 15.0
)

// Renderer implements render.Renderer for PDF output.
type Renderer struct{}

// New returns a PDF renderer.
func New() *Renderer { return &Renderer{} }

func (r *Renderer) Name() string { return "pdf" }

func (r *Renderer) ContentType() string { return "application/pdf" }

// Render produces the complete document. Sections wrap and paginate as
// needed; no populated field is ever dropped or truncated.
func (r *Renderer) Render(ctx context.Context, app application.Application, opts render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lh := opts.Letterhead
	if lh == (render.Letterhead{}) {
		lh = render.DefaultLetterhead
	}

	doc := gofpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(marginMM, marginMM, marginMM)
	doc.SetAutoPageBreak(true, marginMM)
	doc.AddPage()

	// The core fonts are cp1252; translate so em-dashes and bullets in
	// section titles and free-text fields survive.
	w := writer{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	w.letterhead(lh)
	for _, section := range render.Sections(app) {
		if len(section.Lines) == 0 && len(section.Signatures) == 0 {
			continue
		}
		w.sectionTitle(section.Title)
		for _, line := range section.Lines {
			w.line(line)
		}
		for i, sig := range section.Signatures {
			w.signature(sig, i)
		}
		doc.Ln(3)
	}
	w.terms()

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type writer struct {
	doc *gofpdf.Fpdf
	tr  func(string) string
}

func (w writer) letterhead(lh render.Letterhead) {
	w.doc.SetFont("Helvetica", "B", titleSize)
	w.doc.CellFormat(0, 8, w.tr(lh.Title), "", 1, "C", false, 0, "")
	w.doc.SetFont("Helvetica", "", bodySize)
	if lh.AddressLine != "" {
		w.doc.CellFormat(0, 5, w.tr(lh.AddressLine), "", 1, "C", false, 0, "")
	}
	if lh.Phone != "" {
		w.doc.CellFormat(0, 5, w.tr(lh.Phone), "", 1, "C", false, 0, "")
	}
	w.doc.Ln(4)
}

func (w writer) sectionTitle(title string) {
	w.doc.SetFont("Helvetica", "B", sectionSize)
	w.doc.CellFormat(0, 7, w.tr(title), "B", 1, "L", false, 0, "")
	w.doc.Ln(1)
}

func (w writer) line(line render.Line) {
	w.doc.SetFont("Helvetica", "B", bodySize)
	w.doc.CellFormat(labelWidth, 5.5, w.tr(line.Label), "", 0, "L", false, 0, "")
	w.doc.SetFont("Helvetica", "", bodySize)
	// MultiCell wraps long values (addresses, explanations) onto further
	// lines instead of clipping them at the page edge.
	w.doc.MultiCell(0, 5.5, w.tr(line.Value), "", "L", false)
}

func (w writer) signature(sig render.SignatureBlock, ordinal int) {
	w.doc.SetFont("Helvetica", "B", bodySize)
	w.doc.CellFormat(labelWidth, 5.5, w.tr(sig.Title), "", 0, "L", false, 0, "")
	w.doc.SetFont("Helvetica", "", bodySize)
	caption := sig.Name
	if sig.Date != "" {
		caption += ", " + sig.Date
	}
	w.doc.CellFormat(0, 5.5, w.tr(caption), "", 1, "L", false, 0, "")

	raw, ok := signature.DecodePNG(sig.Bitmap)
	if !ok {
		return
	}
	imgName := fmt.Sprintf("signature-%s-%d", sig.Role, ordinal)
	w.doc.RegisterImageOptionsReader(imgName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(raw))
	w.doc.ImageOptions(imgName, marginMM+labelWidth, w.doc.GetY()+1, sigImgW, sigImgH,
		false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	w.doc.Ln(sigImgH + 3)
}

func (w writer) terms() {
	w.sectionTitle(render.TermsTitle)
	w.doc.SetFont("Helvetica", "", bodySize-1)
	for _, term := range render.Terms {
		w.doc.MultiCell(0, 5, w.tr("• "+term), "", "L", false)
	}
}
