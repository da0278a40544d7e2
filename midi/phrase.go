package midi

import (
	"sync"

	"github.com/jsphweid/staffnote/note"
)

// Phrase collects notes played live. Times are the millisecond timestamps
// a MIDI in port delivers.
type Phrase struct {
	quarterMs uint32

	mu      sync.Mutex
	started map[uint8]int32
	found   []sounding
}

// NewPhrase times notes against a quarter note at bpm beats per minute.
func NewPhrase(bpm float64) *Phrase {
	if bpm <= 0 {
		bpm = 120
	}
	return &Phrase{
		quarterMs: uint32(60000 / bpm),
		started:   make(map[uint8]int32),
	}
}

func (p *Phrase) NoteOn(key uint8, ms int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started[key] = ms
}

func (p *Phrase) NoteOff(key uint8, ms int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	start, ok := p.started[key]
	if !ok {
		return
	}
	delete(p.started, key)
	var length uint32
	if ms > start {
		length = uint32(ms - start)
	}
	p.found = append(p.found, sounding{start: uint64(start), key: key, length: length})
}

// Take returns the finished notes in playing order and forgets them. Notes
// still held down stay for the next call.
func (p *Phrase) Take() []note.Descriptor {
	p.mu.Lock()
	found := p.found
	p.found = nil
	p.mu.Unlock()
	return descriptors(found, p.quarterMs)
}
