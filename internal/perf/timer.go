// ABOUTME: Region timers for the trace profiler
// ABOUTME: Start captures the installed profiler once; End is a no-op when profiling is off

package perf

import "time"

// Timer measures one region. The zero Timer is valid and does nothing.
type Timer struct {
	p     *Profiler
	label string
	start time.Time
}

// Start begins timing label if a profiler is installed.
func Start(label string) Timer {
	p := active.Load()
	if p == nil {
		return Timer{}
	}
	return Timer{p: p, label: label, start: time.Now()}
}

// End records the elapsed time since Start.
func (t Timer) End() {
	if t.p == nil {
		return
	}
	t.p.send(record{label: t.label, start: t.start, dur: time.Since(t.start)})
}

// Region is shorthand for deferred timing:
//
//	defer perf.Region("App.tick")()
func Region(label string) func() {
	return Start(label).End
}
