package perf

import (
	"fmt"
	"math"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/gitz/internal/logging"
)

const (
	sampleWindow      = 256
	defaultIntervalMs = 5000
)

// window keeps the most recent durations of a timer in a ring.
type window struct {
	samples []time.Duration
	next    int
	full    bool
}

func (w *window) add(d time.Duration) {
	if w.samples == nil {
		w.samples = make([]time.Duration, sampleWindow)
	}
	w.samples[w.next] = d
	w.next = (w.next + 1) % len(w.samples)
	if w.next == 0 {
		w.full = true
	}
}

func (w *window) values() []time.Duration {
	if w.full {
		return w.samples
	}
	return w.samples[:w.next]
}

type timer struct {
	count    int64
	total    time.Duration
	min, max time.Duration
	recent   window
}

type timerSummary struct {
	name     string
	count    int64
	avg      time.Duration
	min, max time.Duration
	p95      time.Duration
}

type counterSummary struct {
	name  string
	value int64
}

// registry holds the timers and counters of the current reporting period.
type registry struct {
	mu       sync.Mutex
	timers   map[string]*timer
	counters map[string]int64
}

func newRegistry() *registry {
	return &registry{timers: map[string]*timer{}, counters: map[string]int64{}}
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64
	lastLog     atomic.Int64

	current = newRegistry()
)

func init() {
	enabled.Store(isEnabled())
	logInterval.Store(int64(defaultLogInterval()))
}

// Enabled reports whether profiling is enabled (GITZ_PROFILE).
func Enabled() bool {
	return enabled.Load()
}

// Time returns a function that records elapsed time when invoked.
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		Record(name, time.Since(start))
	}
}

// Stopwatch records the duration of consecutive steps of one operation,
// each under "<name>.<step>".
type Stopwatch struct {
	name string
	last time.Time
}

// Start begins a stopwatch for name.
func Start(name string) *Stopwatch {
	return &Stopwatch{name: name, last: time.Now()}
}

// Step records the time since the previous step (or Start).
func (s *Stopwatch) Step(step string) {
	if s == nil {
		return
	}
	now := time.Now()
	Record(s.name+"."+step, now.Sub(s.last))
	s.last = now
}

// Record adds a duration sample to the timer name.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	current.mu.Lock()
	t, ok := current.timers[name]
	if !ok {
		t = &timer{}
		current.timers[name] = t
	}
	t.count++
	t.total += d
	if t.count == 1 || d < t.min {
		t.min = d
	}
	t.max = max(t.max, d)
	t.recent.add(d)
	current.mu.Unlock()

	maybeLog()
}

// Count adds delta to the counter name.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	current.mu.Lock()
	current.counters[name] += delta
	current.mu.Unlock()

	maybeLog()
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if lastLog.CompareAndSwap(last, now) {
		logSummary("PERF")
	}
}

// Flush logs the current period immediately and starts a new one.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	prefix := "PERF SUMMARY"
	if reason = strings.TrimSpace(reason); reason != "" {
		prefix = fmt.Sprintf("%s %s", prefix, reason)
	}
	logSummary(prefix)
}

func logSummary(prefix string) {
	timers, counters := current.drain()
	for _, s := range timers {
		logging.Info("%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.name, s.count, s.avg, s.p95, s.min, s.max)
	}
	for _, c := range counters {
		logging.Info("%s %s count=%d", prefix, c.name, c.value)
	}
}

// drain summarizes the period sorted by name and resets the registry.
// Timers and counters that saw nothing are left out.
func (r *registry) drain() ([]timerSummary, []counterSummary) {
	r.mu.Lock()
	timers, counters := r.timers, r.counters
	r.timers, r.counters = map[string]*timer{}, map[string]int64{}
	r.mu.Unlock()

	ts := make([]timerSummary, 0, len(timers))
	for name, t := range timers {
		if t.count == 0 {
			continue
		}
		ts = append(ts, timerSummary{
			name:  name,
			count: t.count,
			avg:   t.total / time.Duration(t.count),
			min:   t.min,
			max:   t.max,
			p95:   percentile(t.recent.values(), 0.95),
		})
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].name < ts[j].name })

	cs := make([]counterSummary, 0, len(counters))
	for name, v := range counters {
		if v != 0 {
			cs = append(cs, counterSummary{name: name, value: v})
		}
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].name < cs[j].name })
	return ts, cs
}

// percentile returns the nearest-rank q-th percentile of samples.
func percentile(samples []time.Duration, q float64) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	rank := int(math.Ceil(q*float64(len(sorted)))) - 1
	return sorted[min(max(rank, 0), len(sorted)-1)]
}

func isEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GITZ_PROFILE"))) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func defaultLogInterval() time.Duration {
	ms := defaultIntervalMs
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv("GITZ_PROFILE_INTERVAL_MS"))); err == nil && v > 0 {
		ms = v
	}
	return time.Duration(ms) * time.Millisecond
}
