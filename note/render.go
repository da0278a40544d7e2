package note

import (
	"errors"

	"github.com/jsphweid/staffnote/config"
	"github.com/jsphweid/staffnote/diag"
	"github.com/jsphweid/staffnote/drawing"
)

// Group classes of a rendered image.
const (
	StaffGroup = "staff"
	NoteGroup  = "note"
)

// Renderer draws notes. It holds no per-call state and is safe for
// concurrent use as long as its Sink is.
type Renderer struct {
	layout Layout
	sink   diag.Sink
}

// NewRenderer returns a Renderer for the given layout. Refused requests are
// reported to sink; a nil sink discards them.
func NewRenderer(cfg config.Layout, sink diag.Sink) *Renderer {
	if sink == nil {
		sink = diag.Discard
	}
	return &Renderer{layout: NewLayout(cfg), sink: sink}
}

func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render draws a half or quarter note, or, with note2 set, a pair of beamed
// eighths. Requests that fail Validate are reported to the sink and
// returned as a *ValidationError with no image.
func (r *Renderer) Render(note Descriptor, note2 *Descriptor) (*drawing.Image, error) {
	if err := Validate(note, note2); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				r.sink.Report(p)
			}
		}
		return nil, err
	}

	var notes []drawing.Element
	switch note.Duration {
	case Eighth:
		if note2 != nil && note2.Duration == Eighth {
			notes = r.layout.EighthPair(note, *note2)
		}
		// a lone eighth never gets past Validate, there is no glyph for it
	default:
		notes = r.layout.HalfOrQuarter(note)
	}

	width := r.layout.StaffWidth(note.Duration)
	return drawing.NewImage(width, r.layout.cfg.Height,
		drawing.NewGroup(StaffGroup, r.layout.Staff(width)...),
		drawing.NewGroup(NoteGroup, notes...),
	), nil
}

// RenderPair draws two beamed eighth notes.
func (r *Renderer) RenderPair(first, second Descriptor) (*drawing.Image, error) {
	return r.Render(first, &second)
}

// RenderAll accepts one or two descriptors, the shape requests arrive in
// from JSON and MIDI.
func (r *Renderer) RenderAll(notes []Descriptor) (*drawing.Image, error) {
	switch len(notes) {
	case 1:
		return r.Render(notes[0], nil)
	case 2:
		return r.Render(notes[0], &notes[1])
	}
	return nil, ErrNoteCount
}
