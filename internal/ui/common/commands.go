package common

import (
	"fmt"
	"runtime/debug"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/messages"
)

// recoverAs turns a panic in a command body into a messages.Error tagged
// with where.
func recoverAs(where string, msg *tea.Msg) {
	r := recover()
	if r == nil {
		return
	}
	logging.Error("panic in %s: %v\n%s", where, r, debug.Stack())
	*msg = messages.Error{Err: fmt.Errorf("%s panic: %v", where, r), Context: where, Logged: true}
}

// SafeCmd wraps a command with panic recovery. Git loads run through it so
// a parser bug surfaces as an error instead of killing the program.
func SafeCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer recoverAs("command", &msg)
		return cmd()
	}
}

// SafeTick is tea.Tick with panic recovery in fn.
func SafeTick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	if fn == nil {
		return nil
	}
	return tea.Tick(d, func(t time.Time) (msg tea.Msg) {
		defer recoverAs("tick", &msg)
		return fn(t)
	})
}

// ReportError logs err once and returns the Error message for the status
// line together with an error toast. toastMessage defaults to err's text.
func ReportError(context string, err error, toastMessage string) tea.Cmd {
	if err == nil {
		return nil
	}
	logging.Error("Error in %s: %v", context, err)
	if toastMessage == "" {
		toastMessage = err.Error()
	}
	return tea.Batch(
		func() tea.Msg { return messages.Error{Err: err, Context: context, Logged: true} },
		func() tea.Msg { return messages.Toast{Message: toastMessage, Level: messages.ToastError} },
	)
}
