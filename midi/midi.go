package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/staffnote/note"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	Resolution = smf.MetricTicks(960)
	channel    = 0
	velocity   = 100
)

var ErrNoNotes = errors.New("no notes on the staff")

// Ticks returns the length of d in ticks at Resolution.
func Ticks(d note.Duration) (uint32, error) {
	quarter := Resolution.Ticks4th()
	switch d {
	case note.Half:
		return quarter * 2, nil
	case note.Quarter:
		return quarter, nil
	case note.Eighth:
		return quarter / 2, nil
	}
	return 0, fmt.Errorf("no length for duration %q", d)
}

// durationFor snaps a length in ticks to the nearest duration we can draw.
func durationFor(ticks, quarter uint32) note.Duration {
	switch {
	case ticks*4 < quarter*3:
		return note.Eighth
	case ticks*2 < quarter*3:
		return note.Quarter
	}
	return note.Half
}

// Export writes notes one after another on a single track.
func Export(notes []note.Descriptor) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = Resolution

	var tr smf.Track
	for _, n := range notes {
		key, ok := n.Pitch.Key()
		if !ok {
			return nil, fmt.Errorf("pitch %d has no key", n.Pitch)
		}
		length, err := Ticks(n.Duration)
		if err != nil {
			return nil, err
		}
		tr.Add(0, midi.NoteOn(channel, key, velocity))
		tr.Add(length, midi.NoteOff(channel, key))
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("add track: %w", err)
	}
	return s, nil
}

func WriteFile(path string, notes []note.Descriptor) error {
	s, err := Export(notes)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create midi file: %w", err)
	}
	defer f.Close()

	if _, err := s.WriteTo(f); err != nil {
		return fmt.Errorf("write midi file: %w", err)
	}
	return f.Close()
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s, e = nil, errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("Error reading midi file... %w", err)
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (*smf.SMF, error) {
	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("Error parsing midi file... %w", err)
	}
	return res, nil
}

type sounding struct {
	start  uint64
	key    uint8
	length uint32
}

// Notes returns every note on the staff, ordered by start time, then key.
// Keys off the C major scale between E4 and F5 are skipped.
func Notes(s *smf.SMF) ([]note.Descriptor, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.New("only metric time formats are supported")
	}

	var found []sounding
	for _, track := range s.Tracks {
		var absTicks uint64
		started := make(map[uint8]uint64)
		for _, event := range track {
			absTicks += uint64(event.Delta)
			msg := midi.Message(event.Message)
			var ch, key, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				started[key] = absTicks
			case msg.GetNoteEnd(&ch, &key):
				start, ok := started[key]
				if !ok {
					continue
				}
				delete(started, key)
				found = append(found, sounding{start: start, key: key, length: uint32(absTicks - start)})
			}
		}
	}

	res := descriptors(found, mt.Ticks4th())
	if len(res) == 0 {
		return nil, ErrNoNotes
	}
	return res, nil
}

func descriptors(found []sounding, quarter uint32) []note.Descriptor {
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].start != found[j].start {
			return found[i].start < found[j].start
		}
		return found[i].key < found[j].key
	})

	var res []note.Descriptor
	for _, s := range found {
		p, ok := note.PitchForKey(s.key)
		if !ok {
			continue
		}
		res = append(res, note.Descriptor{Pitch: p, Duration: durationFor(s.length, quarter)})
	}
	return res
}

// FirstGroup picks what to draw from a run of notes: an eighth followed by
// another eighth is drawn as a pair, anything else on its own.
func FirstGroup(notes []note.Descriptor) []note.Descriptor {
	if len(notes) == 0 {
		return nil
	}
	if len(notes) > 1 && notes[0].Duration == note.Eighth && notes[1].Duration == note.Eighth {
		return notes[:2]
	}
	return notes[:1]
}
