package common

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Styles contains all the application styles
type Styles struct {
	// Layout - Pane borders and structure
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	PaneTitle   lipgloss.Style

	// Text hierarchy
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Inputs
	Prompt      lipgloss.Style
	InputBox    lipgloss.Style
	FocusedText lipgloss.Style

	// Commit pane toggle ("show full commit")
	Toggle lipgloss.Style

	// Help bar
	Help          lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Toast notifications
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastWarning lipgloss.Style
	ToastInfo    lipgloss.Style
}

// DefaultStyles returns the styles for the current theme.
func DefaultStyles() Styles {
	return StylesFor(CurrentTheme())
}

// StylesFor builds the styles for theme.
func StylesFor(theme Theme) Styles {
	c := theme.Colors
	return Styles{
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Border),
		FocusedPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.BorderFocused),
		PaneTitle: lipgloss.NewStyle().
			Foreground(c.Muted).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(c.Primary).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(c.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(c.Muted),
		Bold: lipgloss.NewStyle().
			Foreground(c.Foreground).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(c.Primary).
			Bold(true),
		InputBox: lipgloss.NewStyle().
			Foreground(c.Foreground).
			Background(c.Surface1),
		FocusedText: lipgloss.NewStyle().
			Foreground(c.Foreground),

		Toggle: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(c.Background).
			Background(c.Secondary).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(c.Muted),
		HelpKey: lipgloss.NewStyle().
			Foreground(c.Primary),
		HelpDesc: lipgloss.NewStyle().
			Foreground(c.Muted),
		HelpSeparator: lipgloss.NewStyle().
			Foreground(c.Border),

		Error: lipgloss.NewStyle().
			Foreground(c.Error),
		Success: lipgloss.NewStyle().
			Foreground(c.Success),
		Warning: lipgloss.NewStyle().
			Foreground(c.Warning),
		Info: lipgloss.NewStyle().
			Foreground(c.Info),

		ToastSuccess: lipgloss.NewStyle().
			Padding(0, 1).
			Background(c.Success).
			Foreground(c.Background),
		ToastError: lipgloss.NewStyle().
			Padding(0, 1).
			Background(c.Error).
			Foreground(c.Background),
		ToastWarning: lipgloss.NewStyle().
			Padding(0, 1).
			Background(c.Warning).
			Foreground(c.Background),
		ToastInfo: lipgloss.NewStyle().
			Padding(0, 1).
			Background(c.Info).
			Foreground(c.Background),
	}
}

// RenderHelpBar renders key:desc pairs on one line, truncated to width.
func RenderHelpBar(s Styles, items []HelpBinding, width int) string {
	lines := WrapHelpItems(renderHelpItems(s, items), width)
	return s.Help.MaxWidth(width).Render(lines[0])
}

func renderHelpItems(s Styles, items []HelpBinding) []string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, RenderHelpItem(s, item.Key, item.Desc))
	}
	return parts
}

// RenderHelpItem renders a single help item for inline help bars
func RenderHelpItem(styles Styles, key, desc string) string {
	return styles.HelpKey.Render(key) + styles.HelpDesc.Render(":"+desc)
}

// WrapHelpItems wraps pre-rendered help items into multiple lines constrained by width.
func WrapHelpItems(items []string, width int) []string {
	if len(items) == 0 {
		return []string{""}
	}
	if width <= 0 {
		return []string{strings.Join(items, "  ")}
	}

	var lines []string
	current := ""
	currentWidth := 0
	sep := "  "
	sepWidth := lipgloss.Width(sep)

	for _, item := range items {
		itemWidth := lipgloss.Width(item)
		if current == "" {
			current = item
			currentWidth = itemWidth
			continue
		}
		if currentWidth+sepWidth+itemWidth <= width {
			current += sep + item
			currentWidth += sepWidth + itemWidth
			continue
		}
		lines = append(lines, current)
		current = item
		currentWidth = itemWidth
	}

	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}
