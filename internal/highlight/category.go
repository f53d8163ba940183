package highlight

// Category identifies the semantic class of a span of text.
// Higher values win when spans overlap.
type Category int

const (
	CategoryNone Category = iota

	// History log
	CategoryGraph
	CategorySHA
	CategoryDecoration
	CategoryTagName
	CategoryHead
	CategoryLocalBranch
	CategoryRemoteBranch

	// Commit view
	CategoryCommitStat
	CategoryCommitHeader
	CategoryStatFilename
	CategoryStatAdded
	CategoryStatRemoved
	CategoryDiffHeader
	CategoryOldLine
	CategoryNewLine
	CategoryHunkHeader

	// Interaction
	CategorySelected
	CategoryFound
)

var categoryNames = map[Category]string{
	CategoryNone:         "none",
	CategoryGraph:        "graph",
	CategorySHA:          "sha",
	CategoryDecoration:   "decoration",
	CategoryTagName:      "tag-name",
	CategoryHead:         "head",
	CategoryLocalBranch:  "local-branch",
	CategoryRemoteBranch: "remote-branch",
	CategoryCommitStat:   "commit-stat",
	CategoryCommitHeader: "commit-header",
	CategoryStatFilename: "stat-filename",
	CategoryStatAdded:    "stat-added",
	CategoryStatRemoved:  "stat-removed",
	CategoryDiffHeader:   "diff-header",
	CategoryOldLine:      "old-line",
	CategoryNewLine:      "new-line",
	CategoryHunkHeader:   "hunk-header",
	CategorySelected:     "selected",
	CategoryFound:        "found",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCategory resolves a category from its name.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return c, true
		}
	}
	return CategoryNone, false
}

// Categories returns every category except CategoryNone, in precedence order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames)-1)
	for c := CategoryGraph; c <= CategoryFound; c++ {
		out = append(out, c)
	}
	return out
}
