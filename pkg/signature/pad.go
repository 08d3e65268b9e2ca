// Package signature converts free-hand pointer input into the bitmap string
// embedded in the application document. The stroke model is input-device
// agnostic: mouse and touch events feed the same three calls.
package signature

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
)

// DataURLPrefix marks a captured bitmap. An empty string is the "not signed"
// sentinel.
const DataURLPrefix = "data:image/png;base64,"

const (
	defaultWidth  = 400
	defaultHeight = 128
	strokeRadius  = 1.0
)

// Point is a pad-relative coordinate.
type Point struct {
	X float64
	Y float64
}

// Pad accumulates strokes and rasterizes them to a PNG on demand. It is not
// safe for concurrent use; the wizard is single-threaded by design.
type Pad struct {
	width   int
	height  int
	strokes [][]Point
	current []Point
	drawing bool
}

// NewPad returns a pad with the given canvas size in pixels. Non-positive
// dimensions fall back to the defaults.
func NewPad(width, height int) *Pad {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &Pad{width: width, height: height}
}

// StrokeStart begins a stroke at the given point.
func (p *Pad) StrokeStart(x, y float64) {
	p.drawing = true
	p.current = []Point{{X: x, Y: y}}
}

// StrokeMove extends the in-progress stroke. Calls outside a stroke are
// ignored, matching pointer-move events arriving after the button is released.
func (p *Pad) StrokeMove(x, y float64) {
	if !p.drawing {
		return
	}
	p.current = append(p.current, Point{X: x, Y: y})
}

// StrokeEnd completes the stroke and returns the current bitmap as a data URL.
func (p *Pad) StrokeEnd() string {
	if !p.drawing {
		return p.DataURL()
	}
	p.drawing = false
	if len(p.current) > 0 {
		p.strokes = append(p.strokes, p.current)
	}
	p.current = nil
	return p.DataURL()
}

// Clear discards every stroke and returns the empty-string sentinel.
func (p *Pad) Clear() string {
	p.strokes = nil
	p.current = nil
	p.drawing = false
	return ""
}

// Empty reports whether nothing has been drawn.
func (p *Pad) Empty() bool {
	return len(p.strokes) == 0
}

// DataURL rasterizes the accumulated strokes into a PNG and returns it as a
// base64 data URL, or an empty string when the pad is blank.
func (p *Pad) DataURL() string {
	if p.Empty() {
		return ""
	}
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	ink := color.RGBA{A: 255}
	for _, stroke := range p.strokes {
		if len(stroke) == 1 {
			stamp(img, stroke[0], ink)
			continue
		}
		for i := 1; i < len(stroke); i++ {
			drawSegment(img, stroke[i-1], stroke[i], ink)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		// Encoding an in-memory RGBA image cannot fail in practice; treat it
		// as a blank pad rather than surfacing an error to the wizard.
		return ""
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// drawSegment stamps discs along the segment so strokes render with round
// caps and joins, the way the original canvas pad configured its context.
func drawSegment(img *image.RGBA, from, to Point, ink color.RGBA) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Hypot(dx, dy)
	steps := int(dist*2) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		stamp(img, Point{X: from.X + dx*t, Y: from.Y + dy*t}, ink)
	}
}

func stamp(img *image.RGBA, at Point, ink color.RGBA) {
	minX := int(math.Floor(at.X - strokeRadius))
	maxX := int(math.Ceil(at.X + strokeRadius))
	minY := int(math.Floor(at.Y - strokeRadius))
	maxY := int(math.Ceil(at.Y + strokeRadius))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !image.Pt(x, y).In(img.Bounds()) {
				continue
			}
			if math.Hypot(float64(x)-at.X, float64(y)-at.Y) <= strokeRadius+0.5 {
				img.SetRGBA(x, y, ink)
			}
		}
	}
}

// DecodePNG extracts the raw PNG bytes from a captured bitmap string. It
// returns false for the empty sentinel or anything that is not a PNG data URL.
func DecodePNG(dataURL string) ([]byte, bool) {
	if len(dataURL) <= len(DataURLPrefix) || dataURL[:len(DataURLPrefix)] != DataURLPrefix {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[len(DataURLPrefix):])
	if err != nil {
		return nil, false
	}
	return raw, true
}
