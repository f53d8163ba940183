package history

import (
	"reflect"
	"strings"
	"testing"

	"github.com/andyrewlee/gitz/internal/highlight"
)

func textOf(line string, r highlight.Range) string {
	return line[r.Start:r.End]
}

func rangesByCategory(line string, ranges []highlight.Range) map[highlight.Category][]string {
	out := map[highlight.Category][]string{}
	for _, r := range ranges {
		out[r.Category] = append(out[r.Category], textOf(line, r))
	}
	return out
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		matched    bool
		graph      string
		hash       string
		decoration string
		summary    string
	}{
		{
			name:       "decorated commit",
			line:       "* a1b2c3d (HEAD -> main, tag: v1.0, origin/main) Fix bug",
			matched:    true,
			graph:      "* ",
			hash:       "a1b2c3d",
			decoration: "(HEAD -> main, tag: v1.0, origin/main)",
			summary:    "Fix bug",
		},
		{
			name:    "plain commit on a side branch",
			line:    "| * 0123456789 Add feature",
			matched: true,
			graph:   "| * ",
			hash:    "0123456789",
			summary: "Add feature",
		},
		{
			name:    "merge art only",
			line:    "|\\  ",
			matched: true,
			graph:   "|\\  ",
		},
		{
			name:    "hash too short",
			line:    "* abc12 nope",
			matched: false,
		},
		{
			name:    "empty line",
			line:    "",
			matched: false,
		},
		{
			name:    "binary junk",
			line:    "\x00\xff\xfe",
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ParseLine(tt.line)
			if m.Matched() != tt.matched {
				t.Fatalf("Matched() = %v, want %v", m.Matched(), tt.matched)
			}
			if !tt.matched {
				if m.HasHash() {
					t.Fatalf("unmatched line must not report a hash")
				}
				return
			}
			if got := textOf(tt.line, m.Graph); got != tt.graph {
				t.Errorf("graph = %q, want %q", got, tt.graph)
			}
			if got := m.HashText(); got != tt.hash {
				t.Errorf("hash = %q, want %q", got, tt.hash)
			}
			if got := m.DecorationText(); got != tt.decoration {
				t.Errorf("decoration = %q, want %q", got, tt.decoration)
			}
			if got := m.text(m.Summary); got != tt.summary {
				t.Errorf("summary = %q, want %q", got, tt.summary)
			}
		})
	}
}

func TestParseLineSpansOrderedPrefix(t *testing.T) {
	lines := []string{
		"* a1b2c3d (HEAD -> main, tag: v1.0, origin/main) Fix bug",
		"| | * 1234567abc Refactor",
		"* | deadbeef (feature) WIP",
		"|/  ",
	}
	for _, line := range lines {
		m := ParseLine(line)
		parts := []highlight.Range{m.Graph, m.Hash, m.Decoration}
		end := 0
		for _, p := range parts {
			if p.Empty() {
				continue
			}
			if p.Start < end {
				t.Fatalf("%q: part %+v overlaps previous end %d", line, p, end)
			}
			if p.Start > end+1 {
				t.Fatalf("%q: gap before part %+v (previous end %d)", line, p, end)
			}
			end = p.End
		}
		if m.Graph.Start != 0 {
			t.Fatalf("%q: graph must start the line", line)
		}
		if !m.Summary.Empty() && m.Summary.Start != end+1 {
			t.Fatalf("%q: summary starts at %d, expected %d", line, m.Summary.Start, end+1)
		}
	}
}

func TestRulesScenario(t *testing.T) {
	line := "* a1b2c3d (HEAD -> main, tag: v1.0, origin/main) Fix bug"
	got := rangesByCategory(line, Rules().Match(line))

	want := map[highlight.Category][]string{
		highlight.CategoryGraph:       {"* "},
		highlight.CategorySHA:         {"a1b2c3d"},
		highlight.CategoryDecoration:  {"(HEAD -> main, tag: v1.0, origin/main)"},
		highlight.CategoryHead:        {"HEAD ->"},
		highlight.CategoryLocalBranch: {"main"},
		highlight.CategoryTagName:     {"tag: v1.0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rules().Match() = %v, want %v", got, want)
	}
}

func TestRulesGraphOnlyLine(t *testing.T) {
	line := "| |\\"
	ranges := Rules().Match(line)
	if len(ranges) != 1 || ranges[0].Category != highlight.CategoryGraph {
		t.Fatalf("expected a single graph range, got %+v", ranges)
	}
}

func TestRefRangesSlashExclusion(t *testing.T) {
	tests := []struct {
		decoration string
		local      []string
	}{
		{"(main)", []string{"main"}},
		{"(origin/main)", nil},
		{"(feature/x, dev)", []string{"dev"}},
		{"(HEAD -> feature/x)", []string{"feature/x"}},
		{"(HEAD, origin/HEAD, release)", []string{"HEAD", "release"}},
		{"(tag: v2/rc1, tag: v2)", nil},
		{"(a,b)", []string{"a", "b"}},
	}
	for _, tt := range tests {
		line := "* abcdef1 " + tt.decoration + " msg"
		got := rangesByCategory(line, Rules().Match(line))[highlight.CategoryLocalBranch]
		if !reflect.DeepEqual(got, tt.local) {
			t.Errorf("%s: local-branch = %q, want %q", tt.decoration, got, tt.local)
		}
		for _, name := range got {
			if strings.Contains(name, "/") && !strings.HasPrefix(tt.decoration, "(HEAD ->") {
				t.Errorf("%s: entry with slash tagged local: %q", tt.decoration, name)
			}
		}
	}
}

func TestRulesTotalOnOddInput(t *testing.T) {
	inputs := []string{"", "(", "* abcdef1 () x", "* abcdef1 (,) x", "* abcdef1 (HEAD ->) x", strings.Repeat("|", 500)}
	for _, in := range inputs {
		for _, r := range Rules().Match(in) {
			if r.Start < 0 || r.End > len(in) || r.Empty() {
				t.Fatalf("invalid range %+v for %q", r, in)
			}
		}
	}
}

func TestFindHead(t *testing.T) {
	lines := []string{
		"* 1111111 (origin/HEADLESS) one",
		"* 2222222 (feature) two",
		"| * 3333333 (HEAD -> main) three",
		"* 4444444 (HEAD) four",
	}
	idx, ok := FindHead(lines)
	if !ok || idx != 2 {
		t.Fatalf("FindHead() = %d, %v; want 2, true", idx, ok)
	}

	idx, ok = FindHead(lines[3:])
	if !ok || idx != 0 {
		t.Fatalf("expected detached HEAD to be found, got %d %v", idx, ok)
	}

	if _, ok := FindHead(lines[:2]); ok {
		t.Fatalf("expected no HEAD in first two lines")
	}
}

func TestSelectionSpan(t *testing.T) {
	line := "| * abcdef1 (dev) msg"
	span, ok := SelectionSpan(7, line)
	if !ok {
		t.Fatalf("expected selection span")
	}
	if span.Line != 7 || line[span.Start:span.End] != "abcdef1" || span.Category != highlight.CategorySelected {
		t.Fatalf("unexpected selection span %+v", span)
	}
	if _, ok := SelectionSpan(0, "|/"); ok {
		t.Fatalf("graph-only line must not be selectable")
	}
}

func TestFilterIsSubsequence(t *testing.T) {
	lines := []string{"* a Fix", "| * b fix", "|/", "* c Fixup"}

	got := FilterLines(lines, "Fix")
	want := []string{"* a Fix", "* c Fixup"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterLines() = %q, want %q", got, want)
	}

	if got := FilterLines(lines, ""); !reflect.DeepEqual(got, lines) {
		t.Fatalf("empty query must return lines unchanged, got %q", got)
	}
	if got := Filter(lines, "nothing"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
	if got := Filter(lines, "|"); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("Filter() = %v, want [1 2]", got)
	}
}
