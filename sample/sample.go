// Package sample picks random notes for demos.
package sample

import (
	"math/rand"

	"github.com/jsphweid/staffnote/note"
)

// Random returns one half or quarter note, or a pair of eighths. A quarter
// of the draws are pairs, a quarter halves and the rest quarters.
func Random(r *rand.Rand) []note.Descriptor {
	roll := r.Float64()
	switch {
	case roll < 0.25:
		return []note.Descriptor{
			{Pitch: rollPitch(r), Duration: note.Eighth},
			{Pitch: rollPitch(r), Duration: note.Eighth},
		}
	case roll > 0.75:
		return []note.Descriptor{{Pitch: rollPitch(r), Duration: note.Half}}
	}
	return []note.Descriptor{{Pitch: rollPitch(r), Duration: note.Quarter}}
}

func rollPitch(r *rand.Rand) note.Pitch {
	return note.Pitch(r.Intn(int(note.MaxPitch-note.MinPitch)+1)) + note.MinPitch
}
