package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	stop := tm.Track("config")
	stop("asmfmt.toml")
	stop("ignored")
	tm.Add("files", 3*time.Millisecond, "3 files")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "config" || report.Phases[0].Note != "asmfmt.toml" || report.Phases[1].Note != "3 files" {
		t.Fatalf("unexpected report %+v", report)
	}
	if !report.Phases[1].Aggregate || report.TotalMS >= 3 {
		t.Fatalf("aggregate phase counted in total: %+v", report)
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "config", "// asmfmt.toml", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimerConcurrentAdd(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track("file")("")
		}()
	}
	wg.Wait()
	if n := len(tm.Phases()); n != 8 {
		t.Fatalf("expected 8 phases, got %d", n)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("expected empty report, got %+v", r)
	}
	var nilTimer *Timer
	nilTimer.Add("x", time.Second, "")
	if nilTimer.Phases() != nil {
		t.Fatalf("nil timer recorded a phase")
	}
}
