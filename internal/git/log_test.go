package git

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestLogArgs(t *testing.T) {
	base := []string{"log", "--oneline", "--graph", "--decorate", "--all", "--color=never"}
	if got := LogArgs(nil); !reflect.DeepEqual(got, base) {
		t.Fatalf("LogArgs(nil) = %v", got)
	}
	got := LogArgs([]string{"src"})
	want := append(append([]string{}, base...), "--", "src")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LogArgs(src) = %v, want %v", got, want)
	}
}

func TestShowArgs(t *testing.T) {
	got := ShowArgs("abc1234", "")
	if got[0] != "show" || got[1] != "abc1234" || !contains(got, "--patch-with-stat") {
		t.Fatalf("ShowArgs() = %v", got)
	}
	for _, a := range got {
		if strings.HasPrefix(a, "--relative") {
			t.Fatalf("unscoped show must not pass --relative: %v", got)
		}
	}
	if scoped := ShowArgs("abc1234", "src"); !contains(scoped, "--relative=src") {
		t.Fatalf("scoped ShowArgs() = %v", scoped)
	}
}

func TestScope(t *testing.T) {
	tests := []struct {
		pathspec []string
		want     string
	}{
		{nil, ""},
		{[]string{"src"}, "src"},
		{[]string{" docs/ "}, "docs/"},
		{[]string{"."}, ""},
		{[]string{"*.go"}, ""},
		{[]string{":(exclude)vendor"}, ""},
		{[]string{"a", "b"}, ""},
	}
	for _, tt := range tests {
		if got := Scope(tt.pathspec); got != tt.want {
			t.Errorf("Scope(%q) = %q, want %q", tt.pathspec, got, tt.want)
		}
	}
}

func TestLogAndShow(t *testing.T) {
	repo := initRepo(t)
	writeFile(t, repo, "src/main.go", "package main\n")
	runGit(t, repo, "add", ".")
	runGit(t, repo, "commit", "-m", "Add main")
	runGit(t, repo, "tag", "v1.0")

	ctx := context.Background()
	out, err := Log(ctx, repo, nil)
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 history lines, got %q", out)
	}
	if !strings.Contains(lines[0], "HEAD -> main") || !strings.Contains(lines[0], "tag: v1.0") {
		t.Fatalf("first line lacks decorations: %q", lines[0])
	}

	scoped, err := Log(ctx, repo, []string{"src"})
	if err != nil {
		t.Fatalf("Log(src) error = %v", err)
	}
	if strings.Count(scoped, "\n") != 0 || !strings.Contains(scoped, "Add main") {
		t.Fatalf("scoped log = %q", scoped)
	}

	hash := runGit(t, repo, "rev-parse", "--short", "HEAD")
	show, err := Show(ctx, repo, hash, "")
	if err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	for _, want := range []string{"commit ", "\n---\n", " src/main.go | 1 +", "diff --git a/src/main.go", "+package main"} {
		if !strings.Contains(show, want) {
			t.Fatalf("Show() output missing %q:\n%s", want, show)
		}
	}

	relative, err := Show(ctx, repo, hash, "src")
	if err != nil {
		t.Fatalf("Show(scoped) error = %v", err)
	}
	if !strings.Contains(relative, "diff --git a/main.go b/main.go") {
		t.Fatalf("scoped show should print relative paths:\n%s", relative)
	}
}

func TestShowUnknownRevision(t *testing.T) {
	repo := initRepo(t)
	if _, err := Show(context.Background(), repo, "deadbeefdeadbeef", ""); err == nil {
		t.Fatalf("expected error for unknown revision")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
