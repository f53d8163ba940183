package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/perf"
)

const defaultGitTimeout = 15 * time.Second

// RunGitCtx executes a git command in the specified directory with context.
// Output is trimmed of surrounding whitespace.
func RunGitCtx(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := run(ctx, dir, args)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func run(ctx context.Context, dir string, args []string) ([]byte, error) {
	ctx, cancel := ensureGitTimeout(ctx)
	defer cancel()
	defer perf.Time("git." + subcommand(args))()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = filteredGitEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Debug("git %s (dir=%s)", strings.Join(args, " "), dir)
	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(ctx.Err(), context.Canceled) {
			logging.Warn("git %s: %v", strings.Join(args, " "), ctx.Err())
			return nil, fmt.Errorf("git %s: %w", strings.Join(args, " "), ctx.Err())
		}
		// Include stderr in error for debugging
		if stderr.Len() > 0 {
			gerr := &GitError{
				Command: strings.Join(args, " "),
				Stderr:  stderr.String(),
				Err:     err,
			}
			logging.Warn("%v", gerr)
			return nil, gerr
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

func subcommand(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return "unknown"
}

// GitError wraps git command errors with additional context
type GitError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *GitError) Error() string {
	return "git " + e.Command + ": " + e.Stderr
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// Summary returns the first non-empty stderr line, suitable for a status bar.
func (e *GitError) Summary() string {
	for _, line := range strings.Split(e.Stderr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return "git " + e.Command + " failed"
}

// ErrorSummary returns a one-line description of err for display.
func ErrorSummary(err error) string {
	var ge *GitError
	if errors.As(err, &ge) {
		return ge.Summary()
	}
	return err.Error()
}

// IsGitRepository checks if the given path is a git repository
func IsGitRepository(path string) bool {
	_, err := RunGitCtx(context.Background(), path, "rev-parse", "--git-dir")
	return err == nil
}

// GitDir returns the absolute path of the repository's git directory.
func GitDir(path string) (string, error) {
	dir, err := RunGitCtx(context.Background(), path, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return filepath.Clean(dir), nil
}

// RunGitRawCtx executes a git command and returns stdout untouched.
func RunGitRawCtx(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return run(ctx, dir, args)
}

func ensureGitTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultGitTimeout)
}

func filteredGitEnv() []string {
	// Filter out GIT_ environment variables to ensure we run against the target repo
	// and ignore any parent git process environment (e.g. when running in hooks)
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "GIT_DIR=") &&
			!strings.HasPrefix(e, "GIT_WORK_TREE=") &&
			!strings.HasPrefix(e, "GIT_INDEX_FILE=") {
			env = append(env, e)
		}
	}
	return env
}
