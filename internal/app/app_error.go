package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/messages"
)

// handleErrorMessage keeps the latest error for the status line. It stays
// until a later history load succeeds.
func (a *App) handleErrorMessage(msg messages.Error) tea.Cmd {
	if msg.Err == nil {
		return nil
	}
	if !msg.Logged {
		logging.Error("%s: %v", msg.Context, msg.Err)
	}
	a.err = msg.Err
	return nil
}
