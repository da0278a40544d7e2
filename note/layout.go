package note

import (
	"github.com/jsphweid/staffnote/config"
	"github.com/jsphweid/staffnote/drawing"
	"seehuhn.de/go/geom/vec"
)

// middle of the staff; pitches below it get their stem pointing up
const midPitch Pitch = 4

// Layout maps validated notes to coordinates. It only reads its
// configuration, so one Layout can be shared freely.
type Layout struct {
	cfg config.Layout
}

func NewLayout(cfg config.Layout) Layout {
	return Layout{cfg: cfg}
}

func (l Layout) Config() config.Layout {
	return l.cfg
}

// Position returns the y axis of a pitch.
func (l Layout) Position(p Pitch) float64 {
	return l.cfg.Positions[p]
}

func (l Layout) Orientation(p Pitch) Orientation {
	if p < midPitch {
		return Up
	}
	return Down
}

// PairOrientation decides the stem direction of a beamed pair. The first
// note always decides; p2 is accepted but never consulted, and existing
// drawings rely on that.
func (l Layout) PairOrientation(p1, p2 Pitch) Orientation {
	return l.Orientation(p1)
}

// StemX moves x to the side of the notehead the stem is drawn on.
func (l Layout) StemX(x float64, o Orientation) float64 {
	if o == Up {
		return x + l.cfg.SideDistance
	}
	return x - l.cfg.SideDistance
}

// StemEndY returns the y axis of the far end of a stem starting at y.
func (l Layout) StemEndY(y float64, o Orientation) float64 {
	if o == Up {
		return y - l.cfg.StemLength
	}
	return y + l.cfg.StemLength
}

// StaffWidth is one unit for quarters and eighths and two for halves.
func (l Layout) StaffWidth(d Duration) float64 {
	if d == Half {
		return l.cfg.UnitWidth * 2
	}
	return l.cfg.UnitWidth
}

func (l Layout) noteStroke() drawing.Stroke {
	return drawing.Stroke{Color: l.cfg.NoteColor, Width: l.cfg.NoteStrokeWidth}
}

func (l Layout) Notehead(x, y float64, d Duration) *drawing.Circle {
	center := vec.Vec2{X: x, Y: y}
	if d == Half {
		return drawing.NewCircle(center, l.cfg.HalfRadius, "transparent", l.noteStroke())
	}
	return drawing.NewCircle(center, l.cfg.BlackRadius, l.cfg.NoteColor, drawing.Stroke{})
}

// Stem draws the stem of a notehead centered at (x, y).
func (l Layout) Stem(x, y float64, o Orientation) *drawing.Line {
	stroke := l.noteStroke()
	stroke.Cap = "round"
	sx := l.StemX(x, o)
	return drawing.NewLine(vec.Vec2{X: sx, Y: y}, vec.Vec2{X: sx, Y: l.StemEndY(y, o)}, stroke)
}

// Beam draws both stems of a pair and the bar joining their ends as one
// open polyline.
func (l Layout) Beam(x1, y1, x2, y2 float64, o Orientation) *drawing.Polyline {
	stroke := l.noteStroke()
	stroke.Join = "round"
	sx1, sx2 := l.StemX(x1, o), l.StemX(x2, o)
	points := []vec.Vec2{
		{X: sx1, Y: y1},
		{X: sx1, Y: l.StemEndY(y1, o)},
		{X: sx2, Y: l.StemEndY(y2, o)},
		{X: sx2, Y: y2},
	}
	return drawing.NewPolyline(points, "none", stroke)
}

// HalfOrQuarter returns the notehead and stem of a single note.
func (l Layout) HalfOrQuarter(n Descriptor) []drawing.Element {
	x, y := l.cfg.CenterX, l.Position(n.Pitch)
	o := l.Orientation(n.Pitch)
	return []drawing.Element{
		l.Notehead(x, y, n.Duration),
		l.Stem(x, y, o),
	}
}

// EighthPair returns two noteheads and the beam joining them.
func (l Layout) EighthPair(n1, n2 Descriptor) []drawing.Element {
	x1 := l.cfg.CenterX - l.cfg.EighthOffset
	x2 := l.cfg.CenterX + l.cfg.EighthOffset
	y1, y2 := l.Position(n1.Pitch), l.Position(n2.Pitch)
	o := l.PairOrientation(n1.Pitch, n2.Pitch)
	return []drawing.Element{
		l.Notehead(x1, y1, Eighth),
		l.Notehead(x2, y2, Eighth),
		l.Beam(x1, y1, x2, y2, o),
	}
}

// Staff returns the five staff lines, each spanning the full width.
func (l Layout) Staff(width float64) []drawing.Element {
	stroke := drawing.Stroke{Color: l.cfg.StaffColor, Width: l.cfg.StaffStrokeWidth}
	lines := make([]drawing.Element, 0, len(l.cfg.StaffLines))
	for _, y := range l.cfg.StaffLines {
		lines = append(lines, drawing.NewLine(vec.Vec2{X: 0, Y: y}, vec.Vec2{X: width, Y: y}, stroke))
	}
	return lines
}
