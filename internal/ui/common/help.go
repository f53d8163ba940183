package common

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/gitz/internal/keymap"
)

// HelpSection represents a group of keybindings
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// HelpBinding represents a single keybinding
type HelpBinding struct {
	Key  string
	Desc string
}

// HelpOverlay manages the help overlay display
type HelpOverlay struct {
	visible  bool
	width    int
	height   int
	styles   Styles
	sections []HelpSection

	scrollOffset int
}

// NewHelpOverlay creates a help overlay listing km's bindings.
func NewHelpOverlay(km keymap.KeyMap) *HelpOverlay {
	return &HelpOverlay{
		styles:   DefaultStyles(),
		sections: HelpSections(km),
	}
}

// HelpSections groups the keymap's actions for display, in ActionInfos order.
func HelpSections(km keymap.KeyMap) []HelpSection {
	var sections []HelpSection
	index := map[string]int{}
	for _, info := range keymap.ActionInfos() {
		i, ok := index[info.Group]
		if !ok {
			i = len(sections)
			index[info.Group] = i
			sections = append(sections, HelpSection{Title: info.Group})
		}
		sections[i].Bindings = append(sections[i].Bindings, HelpBinding{
			Key:  km.Binding(info.Action).Help().Key,
			Desc: info.Desc,
		})
	}
	return sections
}

// SetStyles updates the help overlay styles (for theme changes).
func (h *HelpOverlay) SetStyles(styles Styles) {
	h.styles = styles
}

// Show shows the help overlay and resets scrolling
func (h *HelpOverlay) Show() {
	h.visible = true
	h.scrollOffset = 0
}

// Hide hides the help overlay
func (h *HelpOverlay) Hide() {
	h.visible = false
	h.scrollOffset = 0
}

// Toggle toggles the help overlay visibility
func (h *HelpOverlay) Toggle() {
	if h.visible {
		h.Hide()
		return
	}
	h.Show()
}

// Visible returns whether the help overlay is visible
func (h *HelpOverlay) Visible() bool {
	return h.visible
}

// SetSize sets the overlay size
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// Update handles input while the overlay is open. Any key that is not a
// scroll key closes it.
func (h *HelpOverlay) Update(msg tea.Msg) (*HelpOverlay, tea.Cmd) {
	if !h.visible {
		return h, nil
	}
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		if msg.Button == tea.MouseWheelUp {
			h.scroll(-1)
		} else if msg.Button == tea.MouseWheelDown {
			h.scroll(1)
		}
	case tea.KeyPressMsg:
		switch msg.String() {
		case "j", "down":
			h.scroll(1)
		case "k", "up":
			h.scroll(-1)
		default:
			h.Hide()
		}
	}
	return h, nil
}

func (h *HelpOverlay) lines() []string {
	keyStyle := h.styles.HelpKey.Width(16)
	var lines []string
	for i, section := range h.sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, h.styles.Bold.Render(section.Title))
		for _, b := range section.Bindings {
			lines = append(lines, "  "+keyStyle.Render(b.Key)+h.styles.Body.Render(b.Desc))
		}
	}
	return lines
}

func (h *HelpOverlay) maxVisible() int {
	// Border, title, blank line and footer.
	n := h.height - 6
	if n < 3 {
		n = 3
	}
	return n
}

func (h *HelpOverlay) scroll(delta int) {
	limit := len(h.lines()) - h.maxVisible()
	h.scrollOffset = max(0, min(limit, h.scrollOffset+delta))
}

// View renders the help box, or "" when hidden.
func (h *HelpOverlay) View() string {
	if !h.visible {
		return ""
	}
	boxWidth := 56
	if h.width > 0 && boxWidth > h.width-4 {
		boxWidth = max(20, h.width-4)
	}

	all := h.lines()
	start := min(h.scrollOffset, max(0, len(all)-1))
	end := min(len(all), start+h.maxVisible())

	body := []string{h.styles.Title.Render("gitz keys"), ""}
	body = append(body, all[start:end]...)
	footer := "any key to close"
	if end < len(all) {
		footer = "j/k scroll · " + footer
	}
	body = append(body, h.styles.Muted.Render(footer))

	return h.styles.FocusedPane.
		Padding(0, 1).
		Width(boxWidth).
		Render(strings.Join(body, "\n"))
}
