package git

import (
	"context"
	"strings"
)

// LogArgs returns the arguments for the history listing.
func LogArgs(pathspec []string) []string {
	args := []string{"log", "--oneline", "--graph", "--decorate", "--all", "--color=never"}
	if len(pathspec) > 0 {
		args = append(args, "--")
		args = append(args, pathspec...)
	}
	return args
}

// Log returns the decorated graph history of dir, optionally limited to
// pathspec. Surrounding whitespace is stripped.
func Log(ctx context.Context, dir string, pathspec []string) (string, error) {
	return RunGitCtx(ctx, dir, LogArgs(pathspec)...)
}

// ShowArgs returns the arguments for displaying one commit. A non-empty
// scope restricts the patch to that path and prints paths relative to it.
func ShowArgs(sha, scope string) []string {
	args := []string{"show", sha, "--patch-with-stat", "--color=never", "--no-ext-diff"}
	if scope != "" {
		args = append(args, "--relative="+scope)
	}
	return args
}

// Show returns `git show` output for sha with its diffstat.
func Show(ctx context.Context, dir, sha, scope string) (string, error) {
	out, err := RunGitRawCtx(ctx, dir, ShowArgs(sha, scope)...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Scope turns a pathspec into the --relative argument for Show. Only a
// single plain path can scope a diff; anything else yields "".
func Scope(pathspec []string) string {
	if len(pathspec) != 1 {
		return ""
	}
	p := strings.TrimSpace(pathspec[0])
	if p == "" || p == "." || strings.HasPrefix(p, ":") || strings.ContainsAny(p, "*?[") {
		return ""
	}
	return p
}
