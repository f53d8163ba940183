package common

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/andyrewlee/gitz/internal/messages"
)

// toastDurations keeps errors on screen longer than confirmations.
var toastDurations = map[messages.ToastLevel]time.Duration{
	messages.ToastInfo:    3 * time.Second,
	messages.ToastSuccess: 3 * time.Second,
	messages.ToastWarning: 4 * time.Second,
	messages.ToastError:   5 * time.Second,
}

// ToastDismissed is sent when a toast may have expired.
type ToastDismissed struct{}

// ToastModel holds the single toast shown in the status line. A newer toast
// replaces the current one.
type ToastModel struct {
	current   *messages.Toast
	showUntil time.Time
	styles    Styles
	now       func() time.Time
}

// NewToastModel creates an empty toast model.
func NewToastModel() *ToastModel {
	return &ToastModel{
		styles: DefaultStyles(),
		now:    time.Now,
	}
}

// SetStyles updates the toast styles (for theme changes).
func (m *ToastModel) SetStyles(styles Styles) {
	m.styles = styles
}

// ShowMessage shows msg for its level's duration and schedules the dismiss
// check.
func (m *ToastModel) ShowMessage(msg messages.Toast) tea.Cmd {
	d, ok := toastDurations[msg.Level]
	if !ok {
		msg.Level = messages.ToastInfo
		d = toastDurations[messages.ToastInfo]
	}
	m.current = &msg
	m.showUntil = m.now().Add(d)
	return SafeTick(d, func(time.Time) tea.Msg {
		return ToastDismissed{}
	})
}

// ShowInfo shows an info toast.
func (m *ToastModel) ShowInfo(message string) tea.Cmd {
	return m.ShowMessage(messages.Toast{Message: message, Level: messages.ToastInfo})
}

// ShowWarning shows a warning toast.
func (m *ToastModel) ShowWarning(message string) tea.Cmd {
	return m.ShowMessage(messages.Toast{Message: message, Level: messages.ToastWarning})
}

// Update drops the toast once its time is up. Ticks from replaced toasts
// arrive early and are ignored.
func (m *ToastModel) Update(msg tea.Msg) (*ToastModel, tea.Cmd) {
	if _, ok := msg.(ToastDismissed); ok && !m.now().Before(m.showUntil) {
		m.current = nil
	}
	return m, nil
}

// View renders the toast with its level icon.
func (m *ToastModel) View() string {
	if !m.Visible() {
		m.current = nil
		return ""
	}

	var style lipgloss.Style
	var icon string
	switch m.current.Level {
	case messages.ToastSuccess:
		style, icon = m.styles.ToastSuccess, "✓ "
	case messages.ToastError:
		style, icon = m.styles.ToastError, "✗ "
	case messages.ToastWarning:
		style, icon = m.styles.ToastWarning, "! "
	default:
		style, icon = m.styles.ToastInfo, "i "
	}
	return style.Render(icon + m.current.Message)
}

// Visible reports whether a toast is showing.
func (m *ToastModel) Visible() bool {
	return m.current != nil && m.now().Before(m.showUntil)
}
