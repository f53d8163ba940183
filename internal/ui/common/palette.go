package common

import (
	"image/color"
	"sort"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/andyrewlee/gitz/internal/highlight"
)

// lineTint is how far removed/added line backgrounds lean from the view
// background towards the line's foreground.
const lineTint = 0.1

// CategoryStyle is the rendering of one highlight category.
type CategoryStyle struct {
	Fg   color.Color
	Bg   color.Color
	Bold bool
	// FullLine paints Bg across the whole row, not just the text.
	FullLine bool
}

// Palette maps highlight categories to their rendering.
type Palette map[highlight.Category]CategoryStyle

// Style returns the lipgloss style for c. Unknown categories render plain.
func (p Palette) Style(c highlight.Category) lipgloss.Style {
	s := lipgloss.NewStyle()
	cs, ok := p[c]
	if !ok {
		return s
	}
	if cs.Fg != nil {
		s = s.Foreground(cs.Fg)
	}
	if cs.Bg != nil {
		s = s.Background(cs.Bg)
	}
	if cs.Bold {
		s = s.Bold(true)
	}
	return s
}

// LineBackground returns the row background for c, if it has one.
func (p Palette) LineBackground(c highlight.Category) (color.Color, bool) {
	cs, ok := p[c]
	if !ok || !cs.FullLine || cs.Bg == nil {
		return nil, false
	}
	return cs.Bg, true
}

// BasePalette is the built-in category palette, tinted against the theme
// background.
func BasePalette(theme Theme) Palette {
	hex := lipgloss.Color
	p := Palette{
		highlight.CategoryGraph:        {Fg: hex("#1abc9c")},
		highlight.CategorySHA:          {Fg: hex("#dfaf8f")},
		highlight.CategoryDecoration:   {Fg: hex("#dca3a3")},
		highlight.CategoryHead:         {Fg: hex("#93e0e3")},
		highlight.CategoryLocalBranch:  {Fg: hex("#72d5a3")},
		highlight.CategoryRemoteBranch: {Fg: hex("#dca3a3")},
		highlight.CategoryTagName:      {Fg: hex("#f0dfaf")},
		highlight.CategorySelected:     {Fg: hex("#111111"), Bg: hex("#dfaf8f"), Bold: true},
		highlight.CategoryOldLine:      {Fg: hex("#dca3a3"), FullLine: true},
		highlight.CategoryNewLine:      {Fg: hex("#72d5a3"), FullLine: true},
		highlight.CategoryHunkHeader:   {Fg: hex("#a6acb9")},
		highlight.CategoryDiffHeader:   {Fg: hex("#c695c6")},
		highlight.CategoryCommitHeader: {Fg: hex("#a6acb9")},
		highlight.CategoryCommitStat:   {Fg: hex("#a6acb9")},
		highlight.CategoryStatFilename: {Fg: hex("#dfaf8f")},
		highlight.CategoryStatAdded:    {Fg: hex("#72d5a3")},
		highlight.CategoryStatRemoved:  {Fg: hex("#dca3a3")},
		highlight.CategoryFound:        {Fg: hex("#111111"), Bg: hex("#f0dfaf")},
	}
	p.tint(theme.Colors.Background)
	return p
}

// chromaTokens maps categories to the chroma token type that colors them.
var chromaTokens = map[highlight.Category]chroma.TokenType{
	highlight.CategoryGraph:        chroma.Comment,
	highlight.CategorySHA:          chroma.LiteralNumber,
	highlight.CategoryDecoration:   chroma.NameDecorator,
	highlight.CategoryHead:         chroma.NameBuiltin,
	highlight.CategoryLocalBranch:  chroma.NameFunction,
	highlight.CategoryRemoteBranch: chroma.NameNamespace,
	highlight.CategoryTagName:      chroma.LiteralString,
	highlight.CategoryOldLine:      chroma.GenericDeleted,
	highlight.CategoryNewLine:      chroma.GenericInserted,
	highlight.CategoryHunkHeader:   chroma.GenericSubheading,
	highlight.CategoryDiffHeader:   chroma.GenericHeading,
	highlight.CategoryCommitHeader: chroma.CommentPreproc,
	highlight.CategoryCommitStat:   chroma.Comment,
	highlight.CategoryStatFilename: chroma.NameAttribute,
	highlight.CategoryStatAdded:    chroma.GenericInserted,
	highlight.CategoryStatRemoved:  chroma.GenericDeleted,
}

// ChromaPalette derives the palette from a named chroma style. Categories
// whose token has no color in the style keep the base palette entry.
// ok is false when the style does not exist.
func ChromaPalette(name string, theme Theme) (Palette, bool) {
	st, ok := styles.Registry[name]
	if !ok || st == nil {
		return nil, false
	}
	p := BasePalette(theme)
	for cat, tt := range chromaTokens {
		entry := st.Get(tt)
		if !entry.Colour.IsSet() {
			continue
		}
		cs := p[cat]
		cs.Fg = lipgloss.Color(entry.Colour.String())
		cs.Bold = entry.Bold == chroma.Yes
		p[cat] = cs
	}

	sel := p[highlight.CategorySelected]
	sel.Fg = theme.Colors.Background
	sel.Bg = p[highlight.CategorySHA].Fg
	p[highlight.CategorySelected] = sel

	found := p[highlight.CategoryFound]
	found.Fg = theme.Colors.Background
	found.Bg = theme.Colors.Warning
	if hl := st.Get(chroma.LineHighlight); hl.Background.IsSet() {
		found.Fg = nil
		found.Bg = lipgloss.Color(hl.Background.String())
	}
	p[highlight.CategoryFound] = found

	p.tint(theme.Colors.Background)
	return p, true
}

// PaletteFor picks the palette for theme, honoring an explicit chroma style
// override.
func PaletteFor(theme Theme, chromaStyle string) Palette {
	name := chromaStyle
	if name == "" {
		name = theme.Chroma
	}
	if name != "" {
		if p, ok := ChromaPalette(name, theme); ok {
			return p
		}
	}
	return BasePalette(theme)
}

// Override replaces category foregrounds by category name. Row tints follow
// the new colour. It returns the names that are not categories, sorted.
func (p Palette) Override(colors map[string]string, bg color.Color) []string {
	var unknown []string
	for name, hex := range colors {
		c, ok := highlight.ParseCategory(name)
		if !ok || c == highlight.CategoryNone {
			unknown = append(unknown, name)
			continue
		}
		cs := p[c]
		cs.Fg = lipgloss.Color(hex)
		if cs.FullLine {
			cs.Bg = Lerp(bg, cs.Fg, lineTint)
		}
		p[c] = cs
	}
	sort.Strings(unknown)
	return unknown
}

// ChromaStyleExists reports whether name is a registered chroma style.
func ChromaStyleExists(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

func (p Palette) tint(bg color.Color) {
	for cat, cs := range p {
		if !cs.FullLine || cs.Fg == nil {
			continue
		}
		cs.Bg = Lerp(bg, cs.Fg, lineTint)
		p[cat] = cs
	}
}

// Lerp blends from a towards b by t in RGB space.
func Lerp(a, b color.Color, t float64) color.Color {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return b
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return ca.BlendRgb(cb, t).Clamped()
}
