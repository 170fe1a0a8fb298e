// Package observ measures the phases of a formatter run for --timings.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured step of a run.
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
	// Aggregate phases overlap others and are left out of the total.
	Aggregate bool
}

// Timer collects phases in the order they finish. It is safe for concurrent
// use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

// NewTimer returns an empty Timer.
func NewTimer() *Timer { return &Timer{} }

// Track starts measuring name. The returned stop function records the phase
// with note; calling it again has no effect.
func (t *Timer) Track(name string) (stop func(note string)) {
	start := time.Now()
	var once sync.Once
	return func(note string) {
		once.Do(func() { t.record(Phase{Name: name, Dur: time.Since(start), Note: note}) })
	}
}

// Add records an aggregate phase, e.g. time summed over workers.
func (t *Timer) Add(name string, d time.Duration, note string) {
	t.record(Phase{Name: name, Dur: d, Note: note, Aggregate: true})
}

func (t *Timer) record(p Phase) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, p)
}

// Phases returns a copy of the recorded phases.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

// PhaseReport is the serializable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
	Aggregate  bool    `json:"aggregate,omitempty"`
}

// Report aggregates all phases.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report converts the phases to milliseconds.
func (t *Timer) Report() Report {
	phases := t.Phases()
	if len(phases) == 0 {
		return Report{}
	}
	var r Report
	for _, p := range phases {
		ms := millis(p.Dur)
		if !p.Aggregate {
			r.TotalMS += ms
		}
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: ms, Note: p.Note, Aggregate: p.Aggregate})
	}
	return r
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		line := fmt.Sprintf("  %-16s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  // " + p.Note
		}
		sb.WriteString(line + "\n")
	}
	fmt.Fprintf(&sb, "  %-16s %8.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
