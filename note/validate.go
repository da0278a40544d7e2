package note

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

var (
	ErrInvalidPitch    = errors.New("invalid pitch")
	ErrInvalidDuration = errors.New("invalid duration combination")

	// ErrNoteCount is returned by RenderAll for anything but one or two notes.
	ErrNoteCount = errors.New("expected one note or a pair of notes")
)

var validPitches = []Pitch{1, 2, 3, 4, 5, 6, 7}

// ValidationError is returned for a request that cannot be drawn. It
// matches ErrInvalidPitch and/or ErrInvalidDuration with errors.Is.
type ValidationError struct {
	// one human readable line per violation
	Problems []string
	kinds    []error
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() []error {
	return e.kinds
}

func (e *ValidationError) add(kind error, format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
	e.kinds = append(e.kinds, kind)
}

// Validate reports whether note, or the pair note and note2, can be drawn.
// A single note must be a half or quarter; a pair must be two eighths.
func Validate(note Descriptor, note2 *Descriptor) error {
	var verr ValidationError
	if note2 != nil {
		if !slices.Contains(validPitches, note.Pitch) || !slices.Contains(validPitches, note2.Pitch) {
			verr.add(ErrInvalidPitch, "A note's pitch must be an integer from %d to %d. These notes' pitches: %d, %d",
				MinPitch, MaxPitch, note.Pitch, note2.Pitch)
		}
		if note.Duration != Eighth || note2.Duration != Eighth {
			verr.add(ErrInvalidDuration, "Only eighth notes can be drawn in pairs. These notes' durations: %q, %q",
				note.Duration, note2.Duration)
		}
	} else {
		if !slices.Contains(validPitches, note.Pitch) {
			verr.add(ErrInvalidPitch, "A note's pitch must be an integer from %d to %d. This note's pitch: %d",
				MinPitch, MaxPitch, note.Pitch)
		}
		if note.Duration != Half && note.Duration != Quarter {
			verr.add(ErrInvalidDuration, "A single note's duration must be %q or %q. This note's duration: %q",
				Half, Quarter, note.Duration)
		}
	}

	if len(verr.Problems) > 0 {
		return &verr
	}
	return nil
}
