package highlight

// Layer stores the spans applied to a buffer, indexed by line.
type Layer struct {
	lines map[int][]Range
}

// NewLayer returns an empty layer.
func NewLayer() *Layer {
	return &Layer{lines: make(map[int][]Range)}
}

// Reset drops every span.
func (l *Layer) Reset() {
	l.lines = make(map[int][]Range)
}

// Add stores spans. Adding an identical span twice keeps one copy.
func (l *Layer) Add(spans ...Span) {
	for _, s := range spans {
		if s.End <= s.Start {
			continue
		}
		r := Range{Start: s.Start, End: s.End, Category: s.Category}
		if containsRange(l.lines[s.Line], r) {
			continue
		}
		l.lines[s.Line] = append(l.lines[s.Line], r)
		sortRanges(l.lines[s.Line])
	}
}

// ClearCategory removes every span of category c.
func (l *Layer) ClearCategory(c Category) {
	for line, ranges := range l.lines {
		kept := ranges[:0]
		for _, r := range ranges {
			if r.Category != c {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			delete(l.lines, line)
			continue
		}
		l.lines[line] = kept
	}
}

// At returns the spans of line, sorted by start.
func (l *Layer) At(line int) []Range {
	return l.lines[line]
}

// Has reports whether line carries any span of one of the given categories.
// With no categories it reports whether the line carries any span at all.
func (l *Layer) Has(line int, categories ...Category) bool {
	ranges := l.lines[line]
	if len(categories) == 0 {
		return len(ranges) > 0
	}
	for _, r := range ranges {
		for _, c := range categories {
			if r.Category == c {
				return true
			}
		}
	}
	return false
}

// Count returns the number of spans of category c.
func (l *Layer) Count(c Category) int {
	n := 0
	for _, ranges := range l.lines {
		for _, r := range ranges {
			if r.Category == c {
				n++
			}
		}
	}
	return n
}

// Run is a maximal stretch of a line painted with one category.
type Run struct {
	Start    int
	End      int
	Category Category
}

// Runs flattens overlapping ranges for a line of length n into contiguous
// runs. Where ranges overlap, the higher category wins.
func Runs(n int, ranges []Range) []Run {
	if n <= 0 {
		return nil
	}
	cats := make([]Category, n)
	for _, r := range ranges {
		start, end := r.Start, r.End
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			if r.Category > cats[i] {
				cats[i] = r.Category
			}
		}
	}
	var runs []Run
	start := 0
	for i := 1; i <= n; i++ {
		if i == n || cats[i] != cats[start] {
			runs = append(runs, Run{Start: start, End: i, Category: cats[start]})
			start = i
		}
	}
	return runs
}

func containsRange(ranges []Range, r Range) bool {
	for _, existing := range ranges {
		if existing == r {
			return true
		}
	}
	return false
}
