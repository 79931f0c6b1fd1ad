// ABOUTME: Background trace profiler: timed regions are queued to a collector goroutine
// ABOUTME: Writes Chrome trace JSON with easyjson's jwriter; disabled regions cost one atomic load

package perf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mailru/easyjson/jwriter"
)

// DefaultQueueSize bounds the number of records waiting for the collector.
const DefaultQueueSize = 4096

// active is the process-wide switch. nil means profiling is disabled.
var active atomic.Pointer[Profiler]

type record struct {
	label string
	start time.Time
	dur   time.Duration
}

// LabelStats aggregates every record collected under one label.
type LabelStats struct {
	Count int
	Total time.Duration
	Max   time.Duration
}

// Profiler collects timed regions and streams them to a trace document.
type Profiler struct {
	origin  time.Time
	records chan record
	done    chan struct{}
	out     io.Writer
	closer  io.Closer

	// mu guards closed against sends racing with Close.
	mu     sync.RWMutex
	closed bool

	dropped atomic.Int64

	// Owned by the collector until done is closed.
	stats map[string]LabelStats
	err   error
}

// Option configures a Profiler.
type Option func(*Profiler)

// WithQueueSize sets how many records may wait for the collector before
// the oldest are dropped.
func WithQueueSize(n int) Option {
	return func(p *Profiler) {
		if n > 0 {
			p.records = make(chan record, n)
		}
	}
}

func newProfiler(w io.Writer, opts ...Option) *Profiler {
	p := &Profiler{
		origin:  time.Now(),
		records: make(chan record, DefaultQueueSize),
		done:    make(chan struct{}),
		out:     w,
		stats:   make(map[string]LabelStats),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// New starts a collector writing the trace document to w. It does not
// enable the process-wide switch; see Install.
func New(w io.Writer, opts ...Option) *Profiler {
	p := newProfiler(w, opts...)
	go p.collect()
	return p
}

// Enable creates the trace file at path, starts a collector and installs
// it as the process-wide profiler. Close writes out the document.
func Enable(path string, opts ...Option) (*Profiler, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	p := New(f, opts...)
	p.closer = f
	p.Install()
	return p, nil
}

// Install makes p the target of Start.
func (p *Profiler) Install() {
	active.Store(p)
}

// Enabled reports whether a profiler is installed.
func Enabled() bool {
	return active.Load() != nil
}

// Dropped returns how many records were discarded because the queue was full.
func (p *Profiler) Dropped() int64 {
	return p.dropped.Load()
}

// send queues r, discarding the oldest queued record when full.
func (p *Profiler) send(r record) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return
	}
	for {
		select {
		case p.records <- r:
			return
		default:
		}
		select {
		case <-p.records:
			p.dropped.Add(1)
		default:
		}
	}
}

// Close uninstalls p, drains the queue, terminates the trace document and
// closes the trace file if p owns it. Safe to call more than once.
func (p *Profiler) Close() error {
	active.CompareAndSwap(p, nil)

	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.records)
	}
	p.mu.Unlock()

	<-p.done

	if p.closer != nil {
		if err := p.closer.Close(); err != nil && p.err == nil {
			p.err = fmt.Errorf("closing trace file: %w", err)
		}
		p.closer = nil
	}
	return p.err
}

// Summary returns per-label aggregates. It blocks until Close has
// drained the collector.
func (p *Profiler) Summary() map[string]LabelStats {
	<-p.done
	out := make(map[string]LabelStats, len(p.stats))
	for k, v := range p.stats {
		out[k] = v
	}
	return out
}

func (p *Profiler) collect() {
	defer close(p.done)

	bw := bufio.NewWriter(p.out)
	var jw jwriter.Writer
	jw.RawString(`{"otherData":{},"traceEvents":[`)

	first := true
	for r := range p.records {
		if !first {
			jw.RawByte(',')
		}
		first = false
		writeEvent(&jw, r, p.origin)

		s := p.stats[r.label]
		s.Count++
		s.Total += r.dur
		s.Max = max(s.Max, r.dur)
		p.stats[r.label] = s

		p.dump(&jw, bw)
	}

	jw.RawString(`]}`)
	p.dump(&jw, bw)
	if p.err == nil {
		if err := bw.Flush(); err != nil {
			p.err = fmt.Errorf("flushing trace: %w", err)
		}
	}
}

// dump moves buffered JSON to w. After the first write error the rest of
// the document is discarded so the buffer cannot grow without bound.
func (p *Profiler) dump(jw *jwriter.Writer, w io.Writer) {
	if p.err != nil {
		w = io.Discard
	}
	if _, err := jw.DumpTo(w); err != nil && p.err == nil {
		p.err = fmt.Errorf("writing trace: %w", err)
	}
}

// writeEvent appends one complete ("ph":"X") trace event. Times are in
// microseconds relative to the profiler's creation.
func writeEvent(jw *jwriter.Writer, r record, origin time.Time) {
	jw.RawString(`{"cat":"function","dur":`)
	jw.Float64(float64(r.dur.Nanoseconds()) / 1000)
	jw.RawString(`,"name":`)
	jw.String(r.label)
	jw.RawString(`,"ph":"X","pid":0,"tid":0,"ts":`)
	jw.Float64(float64(r.start.Sub(origin).Nanoseconds()) / 1000)
	jw.RawByte('}')
}
