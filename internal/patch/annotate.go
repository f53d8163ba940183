package patch

import (
	"regexp"
	"strings"

	"github.com/andyrewlee/gitz/internal/highlight"
	"github.com/andyrewlee/gitz/internal/perf"
)

// LineRules tags the per-line diff body: hunk headers, removed and added
// lines.
func LineRules() highlight.RuleSet {
	return highlight.RuleSet{
		highlight.PrefixRule(regexp.MustCompile(`^@@`), highlight.CategoryHunkHeader),
		highlight.PrefixRule(regexp.MustCompile(`^-`), highlight.CategoryOldLine),
		highlight.PrefixRule(regexp.MustCompile(`^\+`), highlight.CategoryNewLine),
	}
}

// HeaderSpans scans the whole buffer once for the commit header block, its
// diffstat and the per-file diff headers.
//
// The commit header runs from a "commit " line to the next "diff" line (or
// the end). When it contains a "---" separator, the lines up to and
// including the separator are commit-header and the rest is the diffstat
// body. A diff header runs from a "diff " line up to its "---"/"+++"
// markers, which are left to the line pass as removed/added lines. It also
// ends at a hunk or the next diff.
func HeaderSpans(buf highlight.Buffer) []highlight.Span {
	lines := buf.Lines()
	n := len(lines)
	var spans []highlight.Span

	whole := func(i int, c highlight.Category) {
		if lines[i] == "" {
			return
		}
		spans = append(spans, highlight.Span{Line: i, Start: 0, End: len(lines[i]), Category: c})
	}

	for i := 0; i < n; {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "commit "):
			end := i + 1
			for end < n && !strings.HasPrefix(lines[end], "diff") {
				end++
			}
			sep := -1
			for j := i + 1; j < end; j++ {
				if lines[j] == "---" {
					sep = j
					break
				}
			}
			headerEnd := end - 1
			if sep >= 0 {
				headerEnd = sep
			}
			for j := i; j <= headerEnd; j++ {
				whole(j, highlight.CategoryCommitHeader)
			}
			for j := headerEnd + 1; j < end && sep >= 0; j++ {
				whole(j, highlight.CategoryCommitStat)
				if stat, ok := ParseStatLine(lines[j]); ok {
					for _, r := range stat.Ranges() {
						spans = append(spans, highlight.SpanFor(j, r))
					}
				}
			}
			i = end

		case strings.HasPrefix(line, "diff"):
			whole(i, highlight.CategoryDiffHeader)
			j := i + 1
			for j < n && !endsDiffHeader(lines[j]) {
				whole(j, highlight.CategoryDiffHeader)
				j++
			}
			i = j

		default:
			i++
		}
	}
	return spans
}

func endsDiffHeader(line string) bool {
	for _, prefix := range []string{"---", "+++", "@@", "diff", "commit "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Annotator highlights `git show --patch-with-stat` output. The header pass
// runs once per load; the lazy pass only touches lines the header pass left
// untagged.
type Annotator struct {
	lines  *highlight.Annotator
	header map[int]bool
}

// NewAnnotator creates a commit view annotator.
func NewAnnotator() *Annotator {
	a := &Annotator{
		lines:  highlight.NewAnnotator(LineRules()),
		header: make(map[int]bool),
	}
	a.lines.SetSkip(a.IsHeader)
	return a
}

// Load resets the annotator for buf and returns the header spans.
func (a *Annotator) Load(buf highlight.Buffer) []highlight.Span {
	defer perf.Time("patch.header")()
	a.lines.Reset(buf)
	a.header = make(map[int]bool)
	spans := HeaderSpans(buf)
	for _, s := range spans {
		a.header[s.Line] = true
	}
	return spans
}

// IsHeader reports whether the header pass tagged line.
func (a *Annotator) IsHeader(line int) bool {
	return a.header[line]
}

// AnnotateVisible tags hunk headers and added/removed lines in vr.
func (a *Annotator) AnnotateVisible(buf highlight.Buffer, vr highlight.VisibleRange) ([]highlight.Span, error) {
	return a.lines.AnnotateVisible(buf, vr)
}
