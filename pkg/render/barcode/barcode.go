// Package barcode renders Code 39 barcodes as SVG.
//
// Labels are encoded without a check character. Text that standard Code 39
// cannot carry (lower case letters, underscores) falls back to the full
// ASCII extension, which scanners configured for it decode transparently.
//
//	svg, err := barcode.RenderSVG("TLR-01-01-A-01", barcode.WithFontSize(16))
//
// Sizes are in millimetres except the caption font size, which is in
// points. The defaults match common 4x2 inch thermal label stock.
package barcode

import (
	"bytes"
	"fmt"
	"html"
	"image/color"

	"github.com/boombuler/barcode/code39"

	"github.com/ThomasStivers/labeller/pkg/errors"
)

// Default dimensions of a rendered barcode.
const (
	DefaultModuleWidth  = 0.2  // mm per narrow module
	DefaultModuleHeight = 15.0 // mm bar height
	DefaultQuietZone    = 6.5  // mm margin left and right
	DefaultFontSize     = 16   // pt caption size
	DefaultTextDistance = 5.0  // mm between bars and caption baseline

	ptToMM = 25.4 / 72
)

// Option adjusts how [RenderSVG] draws a barcode.
type Option func(*renderer)

type renderer struct {
	moduleWidth  float64
	moduleHeight float64
	quietZone    float64
	fontSize     int
	textDistance float64
	caption      bool
}

// WithModuleWidth sets the width of a narrow bar in millimetres.
func WithModuleWidth(mm float64) Option { return func(r *renderer) { r.moduleWidth = mm } }

// WithModuleHeight sets the bar height in millimetres.
func WithModuleHeight(mm float64) Option { return func(r *renderer) { r.moduleHeight = mm } }

// WithQuietZone sets the blank margin left and right of the bars in
// millimetres. Scanners need at least ten narrow modules of margin.
func WithQuietZone(mm float64) Option { return func(r *renderer) { r.quietZone = mm } }

// WithFontSize sets the caption size in points.
func WithFontSize(pt int) Option { return func(r *renderer) { r.fontSize = pt } }

// WithoutCaption omits the human readable label text under the bars.
func WithoutCaption() Option { return func(r *renderer) { r.caption = false } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		moduleWidth:  DefaultModuleWidth,
		moduleHeight: DefaultModuleHeight,
		quietZone:    DefaultQuietZone,
		fontSize:     DefaultFontSize,
		textDistance: DefaultTextDistance,
		caption:      true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Bars returns the module pattern of text, true for a dark module.
func Bars(text string) ([]bool, error) {
	if text == "" {
		return nil, errors.New(errors.ErrCodeInvalidLabel, "barcode text cannot be empty")
	}
	bc, err := code39.Encode(text, false, false)
	if err != nil {
		bc, err = code39.Encode(text, false, true)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLabel, err, "cannot encode %q as Code 39", text)
	}

	b := bc.Bounds()
	bars := make([]bool, 0, b.Dx())
	for x := b.Min.X; x < b.Max.X; x++ {
		bars = append(bars, dark(bc.At(x, b.Min.Y)))
	}
	return bars, nil
}

func dark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r+g+b < 3*0x8000
}

// RenderSVG draws text as a Code 39 barcode with an optional caption.
func RenderSVG(text string, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	if r.moduleWidth <= 0 || r.moduleHeight <= 0 || r.quietZone < 0 || r.fontSize < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "barcode dimensions must be positive")
	}

	bars, err := Bars(text)
	if err != nil {
		return nil, err
	}

	width := 2*r.quietZone + float64(len(bars))*r.moduleWidth
	height := r.moduleHeight
	if r.caption {
		height += r.textDistance + float64(r.fontSize)*ptToMM
	}
	// Top margin keeps the bars clear of the label edge.
	top := 1.0
	height += 2 * top

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.3f %.3f" width="%.3fmm" height="%.3fmm">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="%.3f" height="%.3f" fill="white"/>`+"\n", width, height)

	buf.WriteString(`  <g fill="black">` + "\n")
	for start := 0; start < len(bars); {
		if !bars[start] {
			start++
			continue
		}
		end := start
		for end < len(bars) && bars[end] {
			end++
		}
		fmt.Fprintf(&buf, `    <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f"/>`+"\n",
			r.quietZone+float64(start)*r.moduleWidth, top, float64(end-start)*r.moduleWidth, r.moduleHeight)
		start = end
	}
	buf.WriteString("  </g>\n")

	if r.caption {
		fmt.Fprintf(&buf, `  <text x="%.3f" y="%.3f" font-family="monospace" font-size="%.3f" text-anchor="middle">%s</text>`+"\n",
			width/2, top+r.moduleHeight+r.textDistance, float64(r.fontSize)*ptToMM, html.EscapeString(text))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}
