// Package diag carries human readable diagnostics (mostly refused render
// requests) to wherever the caller wants them.
package diag

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/bep/debounce"
)

type Sink interface {
	Report(msg string)
}

// Discard drops every message.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(string) {}

// LogSink writes each message as one log line.
type LogSink struct {
	Logger *log.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{Logger: log.New(os.Stderr, "staffnote: ", log.LstdFlags)}
}

func (s *LogSink) Report(msg string) {
	s.Logger.Println(msg)
}

// Recorder keeps every message in memory.
type Recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *Recorder) Report(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

// Messages returns a copy of what has been reported so far.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

// Debounced buffers messages and forwards them once no new message has
// arrived for the quiet period. Runs of the same message are forwarded once
// with a repeat count.
type Debounced struct {
	next     Sink
	debounce func(f func())

	mu      sync.Mutex
	pending []string
}

func NewDebounced(next Sink, quiet time.Duration) *Debounced {
	return &Debounced{
		next:     next,
		debounce: debounce.New(quiet),
	}
}

func (d *Debounced) Report(msg string) {
	d.mu.Lock()
	d.pending = append(d.pending, msg)
	d.mu.Unlock()
	d.debounce(d.Flush)
}

// Flush forwards whatever is buffered right away.
func (d *Debounced) Flush() {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, msg := range coalesce(pending) {
		d.next.Report(msg)
	}
}

func coalesce(msgs []string) []string {
	var res []string
	for i := 0; i < len(msgs); {
		j := i + 1
		for j < len(msgs) && msgs[j] == msgs[i] {
			j++
		}
		if n := j - i; n > 1 {
			res = append(res, fmt.Sprintf("%s (x%d)", msgs[i], n))
		} else {
			res = append(res, msgs[i])
		}
		i = j
	}
	return res
}
