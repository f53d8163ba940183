package common

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

// ThemeID identifies a color theme.
type ThemeID string

const (
	// Dark themes
	ThemeZenburn    ThemeID = "zenburn"
	ThemeTokyoNight ThemeID = "tokyo-night"
	ThemeDracula    ThemeID = "dracula"
	ThemeNord       ThemeID = "nord"
	ThemeGruvbox    ThemeID = "gruvbox"
	ThemeMonokai    ThemeID = "monokai"

	// Light themes
	ThemeSolarizedLight ThemeID = "solarized-light"
	ThemeGitHubLight    ThemeID = "github-light"
)

// ThemeColors defines all colors used by the application.
type ThemeColors struct {
	// Base palette
	Background    color.Color
	Foreground    color.Color
	Muted         color.Color
	Border        color.Color
	BorderFocused color.Color

	// Semantic colors
	Primary   color.Color
	Secondary color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Info      color.Color

	// Surface colors for layering
	Surface0 color.Color
	Surface1 color.Color

	// Selection/highlight
	Selection color.Color
	Highlight color.Color
}

// Theme represents a complete color theme.
type Theme struct {
	ID     ThemeID
	Name   string
	Dark   bool
	Colors ThemeColors
	// Chroma names the chroma style whose token colors drive the text
	// categories. Empty keeps the built-in category palette.
	Chroma string
}

// themeSpec is the compact form of a theme: hex colors in ThemeColors
// field order.
type themeSpec struct {
	id     ThemeID
	name   string
	dark   bool
	chroma string
	hex    [15]string
}

var themeSpecs = []themeSpec{
	{ThemeZenburn, "Zenburn", true, "", [15]string{
		"#2d2d2d", "#dcdccc", "#7f9f7f", "#3f3f3f", "#93e0e3",
		"#93e0e3", "#c695c6", "#72d5a3", "#f0dfaf", "#dca3a3", "#8cd0d3",
		"#2d2d2d", "#383838", "#4f4f4f", "#5f5f5f",
	}},
	{ThemeTokyoNight, "Tokyo Night", true, "tokyonight-night", [15]string{
		"#1a1b26", "#a9b1d6", "#565f89", "#292e42", "#7aa2f7",
		"#7aa2f7", "#bb9af7", "#9ece6a", "#e0af68", "#f7768e", "#7dcfff",
		"#1a1b26", "#1f2335", "#33467c", "#3d59a1",
	}},
	{ThemeDracula, "Dracula", true, "dracula", [15]string{
		"#282a36", "#f8f8f2", "#6272a4", "#44475a", "#bd93f9",
		"#bd93f9", "#ff79c6", "#50fa7b", "#f1fa8c", "#ff5555", "#8be9fd",
		"#282a36", "#343746", "#44475a", "#6272a4",
	}},
	{ThemeNord, "Nord", true, "nord", [15]string{
		"#2e3440", "#d8dee9", "#4c566a", "#3b4252", "#88c0d0",
		"#88c0d0", "#b48ead", "#a3be8c", "#ebcb8b", "#bf616a", "#81a1c1",
		"#2e3440", "#3b4252", "#434c5e", "#4c566a",
	}},
	{ThemeGruvbox, "Gruvbox", true, "gruvbox", [15]string{
		"#282828", "#ebdbb2", "#928374", "#3c3836", "#fe8019",
		"#fe8019", "#d3869b", "#b8bb26", "#fabd2f", "#fb4934", "#83a598",
		"#282828", "#3c3836", "#504945", "#665c54",
	}},
	{ThemeMonokai, "Monokai", true, "monokai", [15]string{
		"#272822", "#f8f8f2", "#75715e", "#3e3d32", "#a6e22e",
		"#a6e22e", "#ae81ff", "#a6e22e", "#e6db74", "#f92672", "#66d9ef",
		"#272822", "#3e3d32", "#49483e", "#75715e",
	}},
	{ThemeSolarizedLight, "Solarized Light", false, "solarized-light", [15]string{
		"#fdf6e3", "#657b83", "#93a1a1", "#eee8d5", "#268bd2",
		"#268bd2", "#6c71c4", "#859900", "#b58900", "#dc322f", "#2aa198",
		"#fdf6e3", "#eee8d5", "#eee8d5", "#e4ddc8",
	}},
	{ThemeGitHubLight, "GitHub Light", false, "github", [15]string{
		"#ffffff", "#24292f", "#6e7781", "#d0d7de", "#0969da",
		"#0969da", "#8250df", "#1a7f37", "#9a6700", "#cf222e", "#0550ae",
		"#ffffff", "#f6f8fa", "#ddf4ff", "#fff8c5",
	}},
}

func (s themeSpec) theme() Theme {
	c := func(i int) color.Color { return lipgloss.Color(s.hex[i]) }
	return Theme{
		ID:     s.id,
		Name:   s.name,
		Dark:   s.dark,
		Chroma: s.chroma,
		Colors: ThemeColors{
			Background:    c(0),
			Foreground:    c(1),
			Muted:         c(2),
			Border:        c(3),
			BorderFocused: c(4),
			Primary:       c(5),
			Secondary:     c(6),
			Success:       c(7),
			Warning:       c(8),
			Error:         c(9),
			Info:          c(10),
			Surface0:      c(11),
			Surface1:      c(12),
			Selection:     c(13),
			Highlight:     c(14),
		},
	}
}

// AvailableThemes returns all predefined themes, dark first.
func AvailableThemes() []Theme {
	out := make([]Theme, 0, len(themeSpecs))
	for _, s := range themeSpecs {
		out = append(out, s.theme())
	}
	return out
}

// GetTheme returns a theme by ID, defaulting to Zenburn.
func GetTheme(id ThemeID) Theme {
	for _, s := range themeSpecs {
		if s.id == id {
			return s.theme()
		}
	}
	return themeSpecs[0].theme()
}

// NextTheme returns the theme after id in AvailableThemes, wrapping around.
func NextTheme(id ThemeID) Theme {
	for i, s := range themeSpecs {
		if s.id == id {
			return themeSpecs[(i+1)%len(themeSpecs)].theme()
		}
	}
	return themeSpecs[0].theme()
}

var (
	currentMu    sync.RWMutex
	currentTheme = themeSpecs[0].theme()
)

// SetCurrentTheme switches the theme used by the color accessors.
func SetCurrentTheme(id ThemeID) {
	t := GetTheme(id)
	currentMu.Lock()
	currentTheme = t
	currentMu.Unlock()
}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return currentTheme
}

func colors() ThemeColors { return CurrentTheme().Colors }

func ColorBackground() color.Color { return colors().Background }
func ColorForeground() color.Color { return colors().Foreground }
