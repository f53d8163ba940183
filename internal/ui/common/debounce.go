package common

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// DebounceFired is delivered when a debounced action's delay has elapsed.
// It is stale unless Token matches the debouncer's latest token.
type DebounceFired struct {
	ID    string
	Token int
}

// Debouncer implements cancel-and-reschedule on top of tea ticks. Each Bump
// invalidates every earlier pending tick.
type Debouncer struct {
	id    string
	delay time.Duration
	token int
}

// NewDebouncer creates a debouncer. id distinguishes debouncers that share
// one Update loop.
func NewDebouncer(id string, delay time.Duration) *Debouncer {
	return &Debouncer{id: id, delay: delay}
}

// Bump schedules a new tick and invalidates pending ones. A zero delay
// fires immediately.
func (d *Debouncer) Bump() tea.Cmd {
	d.token++
	msg := DebounceFired{ID: d.id, Token: d.token}
	if d.delay <= 0 {
		return func() tea.Msg { return msg }
	}
	return SafeTick(d.delay, func(time.Time) tea.Msg { return msg })
}

// Cancel invalidates any pending tick.
func (d *Debouncer) Cancel() {
	d.token++
}

// Fired reports whether msg is the latest tick of this debouncer.
func (d *Debouncer) Fired(msg DebounceFired) bool {
	return msg.ID == d.id && msg.Token == d.token
}
