// ABOUTME: Tests for the trace profiler: document shape, label escaping, aggregates and queue bounds
// ABOUTME: Drop-oldest behaviour is tested on a profiler whose collector is never started

package perf

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type traceDoc struct {
	OtherData   map[string]any `json:"otherData"`
	TraceEvents []struct {
		Cat  string  `json:"cat"`
		Dur  float64 `json:"dur"`
		Name string  `json:"name"`
		Ph   string  `json:"ph"`
		Pid  int     `json:"pid"`
		Tid  int     `json:"tid"`
		Ts   float64 `json:"ts"`
	} `json:"traceEvents"`
}

func decodeTrace(t *testing.T, data []byte) traceDoc {
	t.Helper()
	var doc traceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("trace is not valid JSON: %v\n%s", err, data)
	}
	return doc
}

func TestProfiler_EmptyDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != `{"otherData":{},"traceEvents":[]}` {
		t.Errorf("empty trace = %q", got)
	}
}

func TestProfiler_RecordsEvents(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	start := p.origin.Add(2 * time.Millisecond)
	p.send(record{label: "App.tick", start: start, dur: 1500 * time.Microsecond})
	p.send(record{label: `Scene "update"`, start: start, dur: time.Millisecond})
	p.send(record{label: "App.tick", start: start, dur: 500 * time.Microsecond})

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}

	doc := decodeTrace(t, buf.Bytes())
	if len(doc.TraceEvents) != 3 {
		t.Fatalf("got %d events, want 3", len(doc.TraceEvents))
	}

	ev := doc.TraceEvents[0]
	if ev.Name != "App.tick" || ev.Cat != "function" || ev.Ph != "X" {
		t.Errorf("unexpected first event: %+v", ev)
	}
	if ev.Dur != 1500 {
		t.Errorf("dur = %v µs, want 1500", ev.Dur)
	}
	if ev.Ts != 2000 {
		t.Errorf("ts = %v µs, want 2000", ev.Ts)
	}
	if doc.TraceEvents[1].Name != `Scene "update"` {
		t.Errorf("quoted label not round-tripped: %q", doc.TraceEvents[1].Name)
	}

	sum := p.Summary()
	tick := sum["App.tick"]
	if tick.Count != 2 || tick.Total != 2*time.Millisecond || tick.Max != 1500*time.Microsecond {
		t.Errorf("App.tick stats = %+v", tick)
	}
}

func TestProfiler_SendAfterCloseIgnored(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}

	// Must not panic on the closed queue.
	p.send(record{label: "late", start: time.Now()})

	if err := p.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestProfiler_DropsOldestWhenFull(t *testing.T) {
	t.Parallel()

	p := newProfiler(&bytes.Buffer{}, WithQueueSize(2))

	for _, label := range []string{"a", "b", "c", "d"} {
		p.send(record{label: label})
	}

	if got := p.Dropped(); got != 2 {
		t.Errorf("Dropped() = %d, want 2", got)
	}
	first, second := <-p.records, <-p.records
	if first.label != "c" || second.label != "d" {
		t.Errorf("queue kept %q,%q, want newest c,d", first.label, second.label)
	}
}

// Tests below touch the process-wide switch and do not run in parallel.

func TestStart_Disabled(t *testing.T) {
	if Enabled() {
		t.Fatal("profiler unexpectedly installed")
	}

	tm := Start("noop")
	if tm.p != nil {
		t.Error("Start returned a live timer while disabled")
	}
	tm.End()
	Region("noop")()
}

func TestEnable_WritesTraceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")

	p, err := Enable(path)
	if err != nil {
		t.Fatal(err)
	}
	if !Enabled() {
		t.Fatal("Enable did not install the profiler")
	}

	func() {
		defer Region("outer")()
		Start("inner").End()
	}()

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if Enabled() {
		t.Error("Close did not uninstall the profiler")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := decodeTrace(t, data)
	if len(doc.TraceEvents) != 2 {
		t.Fatalf("got %d events, want 2", len(doc.TraceEvents))
	}
	// inner ends first
	if doc.TraceEvents[0].Name != "inner" || doc.TraceEvents[1].Name != "outer" {
		t.Errorf("event order = %q, %q", doc.TraceEvents[0].Name, doc.TraceEvents[1].Name)
	}
}

func TestEnable_BadPath(t *testing.T) {
	_, err := Enable(filepath.Join(t.TempDir(), "missing", "trace.json"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
	if Enabled() {
		t.Error("failed Enable installed a profiler")
	}
}
