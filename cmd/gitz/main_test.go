package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func TestMouseWheelThrottle(t *testing.T) {
	lastMouseWheelEvent = time.Time{}

	wheel := tea.MouseWheelMsg{X: 10, Y: 10, Button: tea.MouseWheelDown}
	if mouseEventFilter(nil, wheel) == nil {
		t.Fatalf("expected first wheel event to pass through")
	}
	if mouseEventFilter(nil, wheel) != nil {
		t.Fatalf("expected second wheel event to be throttled")
	}
}

func TestMouseMotionDropped(t *testing.T) {
	if mouseEventFilter(nil, tea.MouseMotionMsg{X: 1, Y: 1}) != nil {
		t.Fatalf("motion events are not used")
	}
	click := tea.MouseClickMsg{X: 1, Y: 1, Button: tea.MouseLeft}
	if mouseEventFilter(nil, click) == nil {
		t.Fatalf("clicks must pass through")
	}
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		argv   []string
		code   int
		stdout string
		stderr string
	}{
		{"version", []string{"--version"}, 0, "gitz dev", ""},
		{"help", []string{"-h"}, 0, "usage: gitz", ""},
		{"bad flag", []string{"--nope"}, 2, "", "unknown flag"},
		{"missing dir", []string{"/does/not/exist/gitz"}, 1, "", "gitz:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.argv, &stdout, &stderr); code != tt.code {
				t.Fatalf("run() = %d, want %d (stderr %q)", code, tt.code, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.stdout) {
				t.Fatalf("stdout = %q, want %q", stdout.String(), tt.stdout)
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Fatalf("stderr = %q, want %q", stderr.String(), tt.stderr)
			}
		})
	}
}
