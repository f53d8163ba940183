package common

import (
	"os/exec"
	"runtime"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/messages"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = CopyToClipboard

// CopyToClipboard writes text to the system clipboard with a macOS pbcopy fallback.
func CopyToClipboard(text string) error {
	// Prioritize pbcopy on macOS as it is more reliable in various environments.
	if runtime.GOOS == "darwin" {
		cmd := exec.Command("pbcopy")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	// Fallback to library for other OS or if pbcopy fails.
	return clipboard.WriteAll(text)
}

// CopyCmd copies text off the event loop and reports the result as a toast.
func CopyCmd(text, what string) tea.Cmd {
	if text == "" {
		return nil
	}
	return SafeCmd(func() tea.Msg {
		if err := clipboardWrite(text); err != nil {
			logging.Warn("clipboard: %v", err)
			return messages.Toast{Message: "Could not copy " + what + ": " + err.Error(), Level: messages.ToastError}
		}
		return messages.Toast{Message: "Copied " + what + " " + text, Level: messages.ToastSuccess}
	})
}
