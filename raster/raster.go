// Package raster paints a drawing.Image into a PNG.
package raster

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/jsphweid/staffnote/drawing"
	"golang.org/x/image/colornames"
)

type Options struct {
	// Pixels per drawing unit.
	Scale float64
	// Background colour name; "" or "transparent" leaves it clear.
	Background string
}

func DefaultOptions() Options {
	return Options{
		Scale:      2,
		Background: "white",
	}
}

// WritePNG rasterises img and encodes it to w.
func WritePNG(img *drawing.Image, w io.Writer, opts Options) error {
	if opts.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", opts.Scale)
	}
	dc := Paint(img, opts)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Paint draws img onto a new context sized to the image times opts.Scale.
func Paint(img *drawing.Image, opts Options) *gg.Context {
	width := int(math.Ceil(img.Width * opts.Scale))
	height := int(math.Ceil(img.Height * opts.Scale))
	dc := gg.NewContext(width, height)
	if bg, ok := ParseColor(opts.Background); ok {
		dc.SetColor(bg)
		dc.Clear()
	}
	dc.Scale(opts.Scale, opts.Scale)

	img.Walk(func(el drawing.Element) {
		switch el := el.(type) {
		case *drawing.Line:
			dc.DrawLine(el.From.X, el.From.Y, el.To.X, el.To.Y)
			stroke(dc, el.Stroke)
		case *drawing.Circle:
			dc.DrawCircle(el.Center.X, el.Center.Y, el.R)
			fillAndStroke(dc, el.Fill, el.Stroke)
		case *drawing.Polyline:
			for i, p := range el.Points {
				if i == 0 {
					dc.MoveTo(p.X, p.Y)
				} else {
					dc.LineTo(p.X, p.Y)
				}
			}
			fillAndStroke(dc, el.Fill, el.Stroke)
		}
	})
	return dc
}

// ParseColor understands CSS colour names and #rrggbb. It returns false for
// "", "none" and "transparent".
func ParseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "transparent":
		return nil, false
	}
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	var r, g, b uint8
	if n, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil && n == 3 {
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
	}
	return nil, false
}

// SVG paints shapes black when no fill is given; do the same here.
func fillAndStroke(dc *gg.Context, fill string, s drawing.Stroke) {
	c, ok := color.Color(color.Black), true
	if fill != "" {
		c, ok = ParseColor(fill)
	}
	if ok {
		dc.SetColor(c)
		dc.FillPreserve()
	}
	stroke(dc, s)
}

func stroke(dc *gg.Context, s drawing.Stroke) {
	c, ok := ParseColor(s.Color)
	if !ok || s.Width == 0 {
		// SVG does not stroke without a colour or width either
		dc.ClearPath()
		return
	}
	dc.SetColor(c)
	dc.SetLineWidth(s.Width)
	dc.SetLineCap(lineCap(s.Cap))
	dc.SetLineJoin(lineJoin(s.Join))
	dc.Stroke()
}

func lineCap(name string) gg.LineCap {
	switch name {
	case "round":
		return gg.LineCapRound
	case "square":
		return gg.LineCapSquare
	}
	return gg.LineCapButt
}

func lineJoin(name string) gg.LineJoin {
	if name == "round" {
		return gg.LineJoinRound
	}
	return gg.LineJoinBevel
}
