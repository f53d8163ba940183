package highlight

import (
	"errors"
	"time"

	"github.com/andyrewlee/gitz/internal/perf"
)

// RetryDelay is how long a host waits before asking again after a
// degenerate visible range.
const RetryDelay = 50 * time.Millisecond

// ErrDegenerateRange is returned when the host reports a visible range that
// cannot be real yet (see VisibleRange.Degenerate).
var ErrDegenerateRange = errors.New("highlight: viewport not laid out")

// Cache remembers which lines of one buffer version have been annotated.
type Cache struct {
	version int
	done    map[int]bool
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{done: make(map[int]bool)}
}

// Reset clears the cache and binds it to version.
func (c *Cache) Reset(version int) {
	c.version = version
	c.done = make(map[int]bool)
}

// Version returns the buffer version the cache belongs to.
func (c *Cache) Version() int {
	return c.version
}

// Marked reports whether line was annotated.
func (c *Cache) Marked(line int) bool {
	return c.done[line]
}

// Mark records line as annotated.
func (c *Cache) Mark(line int) {
	c.done[line] = true
}

// Len returns the number of annotated lines.
func (c *Cache) Len() int {
	return len(c.done)
}

// Annotator lazily applies a RuleSet to the visible lines of a buffer.
type Annotator struct {
	rules RuleSet
	cache *Cache
	// skip, when set, excludes lines from the lazy pass without marking
	// them as annotated.
	skip func(line int) bool
}

// NewAnnotator creates an annotator for rules.
func NewAnnotator(rules RuleSet) *Annotator {
	return &Annotator{rules: rules, cache: NewCache()}
}

// SetSkip installs a predicate for lines the lazy pass must leave alone.
func (a *Annotator) SetSkip(skip func(line int) bool) {
	a.skip = skip
}

// Reset invalidates all cached work. Call it whenever the buffer is replaced.
func (a *Annotator) Reset(buf Buffer) {
	a.cache.Reset(buf.Version)
}

// AnnotateVisible annotates the not-yet-processed lines of vr.
// Lines already processed for this buffer version produce no spans.
func (a *Annotator) AnnotateVisible(buf Buffer, vr VisibleRange) ([]Span, error) {
	if buf.Version != a.cache.Version() {
		a.cache.Reset(buf.Version)
	}
	if vr.Degenerate(buf.Len()) {
		return nil, ErrDegenerateRange
	}
	vr, ok := vr.Clamp(buf.Len())
	if !ok {
		return nil, nil
	}
	defer perf.Time("highlight.visible")()

	var spans []Span
	for i := vr.First; i <= vr.Last; i++ {
		if a.cache.Marked(i) {
			continue
		}
		a.cache.Mark(i)
		if a.skip != nil && a.skip(i) {
			continue
		}
		spans = append(spans, a.annotateLine(buf, i)...)
	}
	perf.Count("highlight.spans", int64(len(spans)))
	return spans, nil
}

func (a *Annotator) annotateLine(buf Buffer, i int) []Span {
	ranges := a.rules.Match(buf.Line(i))
	if len(ranges) == 0 {
		return nil
	}
	sortRanges(ranges)
	spans := make([]Span, 0, len(ranges))
	for _, r := range ranges {
		spans = append(spans, SpanFor(i, r))
	}
	return spans
}
