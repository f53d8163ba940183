package patch

import (
	"regexp"

	"github.com/andyrewlee/gitz/internal/highlight"
)

// statPattern matches a diffstat file line: " <file> | <count> <+++><--->".
// Binary entries (" <file> | Bin 0 -> 12 bytes") only expose the file name.
var (
	statPattern    = regexp.MustCompile(`^ (\S.*?) +\| +(\d+)(?: (\+*)(-*))?\s*$`)
	binStatPattern = regexp.MustCompile(`^ (\S.*?) +\| +Bin\b`)
)

// StatLine is a parsed diffstat entry. Count, Added and Removed are empty
// ranges when absent.
type StatLine struct {
	Filename highlight.Range
	Count    highlight.Range
	Added    highlight.Range
	Removed  highlight.Range
}

// ParseStatLine parses one diffstat file line.
func ParseStatLine(line string) (StatLine, bool) {
	if loc := statPattern.FindStringSubmatchIndex(line); loc != nil {
		return StatLine{
			Filename: rangeOf(loc, 1, highlight.CategoryStatFilename),
			Count:    rangeOf(loc, 2, highlight.CategoryNone),
			Added:    rangeOf(loc, 3, highlight.CategoryStatAdded),
			Removed:  rangeOf(loc, 4, highlight.CategoryStatRemoved),
		}, true
	}
	if loc := binStatPattern.FindStringSubmatchIndex(line); loc != nil {
		return StatLine{Filename: rangeOf(loc, 1, highlight.CategoryStatFilename)}, true
	}
	return StatLine{}, false
}

// Ranges returns the tagged parts of the entry. The count stays untagged.
func (s StatLine) Ranges() []highlight.Range {
	var out []highlight.Range
	for _, r := range []highlight.Range{s.Filename, s.Added, s.Removed} {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}

func rangeOf(loc []int, n int, c highlight.Category) highlight.Range {
	if 2*n+1 >= len(loc) || loc[2*n] < 0 {
		return highlight.Range{Category: c}
	}
	return highlight.Range{Start: loc[2*n], End: loc[2*n+1], Category: c}
}
