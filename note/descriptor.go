// Package note turns a pitch and a duration into a drawing of the note on a
// five line staff.
package note

import (
	"fmt"
	"strings"
)

// Pitch is a step on the C major scale, counted up from the bottom staff
// line. Renderable pitches are 1 through 7.
type Pitch int

const (
	MinPitch Pitch = 1
	MaxPitch Pitch = 7
)

// the bottom staff line (slot 0) up to the top staff line (slot 8)
var scale = [9]struct {
	name string
	key  uint8
}{
	{"E4", 64},
	{"F4", 65},
	{"G4", 67},
	{"A4", 69},
	{"B4", 71},
	{"C5", 72},
	{"D5", 74},
	{"E5", 76},
	{"F5", 77},
}

func (p Pitch) inTable() bool {
	return p >= 0 && int(p) < len(scale)
}

// Name returns the scientific pitch name, e.g. "A4".
func (p Pitch) Name() string {
	if !p.inTable() {
		return fmt.Sprintf("pitch(%d)", int(p))
	}
	return scale[p].name
}

// Key returns the MIDI key number. It returns false for pitches with no
// slot on the staff.
func (p Pitch) Key() (uint8, bool) {
	if !p.inTable() {
		return 0, false
	}
	return scale[p].key, true
}

// PitchForKey is the inverse of Key.
func PitchForKey(key uint8) (Pitch, bool) {
	for i, s := range scale {
		if s.key == key {
			return Pitch(i), true
		}
	}
	return 0, false
}

// Duration is a note value. Unrecognised strings are kept as they are so
// they can be reported by Validate.
type Duration string

const (
	Half    Duration = "half"
	Quarter Duration = "quarter"
	Eighth  Duration = "eighth"
)

var durationAliases = map[string]Duration{
	"half":    Half,
	"2n":      Half,
	"quarter": Quarter,
	"4n":      Quarter,
	"eighth":  Eighth,
	"8n":      Eighth,
}

// DurationNames returns every accepted spelling mapped to the duration it
// stands for.
func DurationNames() map[string]Duration {
	res := make(map[string]Duration, len(durationAliases))
	for k, v := range durationAliases {
		res[k] = v
	}
	return res
}

// ParseDuration accepts the long names and the "2n", "4n", "8n" shorthand,
// in any case.
func ParseDuration(s string) (Duration, error) {
	if d, ok := durationAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return Duration(s), fmt.Errorf("unknown duration %q", s)
}

func (d *Duration) UnmarshalText(text []byte) error {
	// unknown values are kept verbatim for the validator
	*d, _ = ParseDuration(string(text))
	return nil
}

// Descriptor is the input for one note.
type Descriptor struct {
	Pitch    Pitch    `json:"pitch"`
	Duration Duration `json:"duration"`
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s %s", d.Pitch.Name(), d.Duration)
}

// Orientation is the direction a stem points in.
type Orientation int

const (
	Up Orientation = iota
	Down
)

func (o Orientation) String() string {
	if o == Up {
		return "up"
	}
	return "down"
}
