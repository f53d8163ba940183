package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"

	"github.com/andyrewlee/gitz/internal/app"
	"github.com/andyrewlee/gitz/internal/config"
	"github.com/andyrewlee/gitz/internal/git"
	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/perf"
	"github.com/andyrewlee/gitz/internal/safego"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	args, err := config.ParseArgs(argv)
	switch {
	case errors.Is(err, config.ErrHelp):
		fmt.Fprintln(stdout, config.Usage)
		return 0
	case err != nil:
		fmt.Fprintf(stderr, "gitz: %v\n\n%s\n", err, config.Usage)
		return 2
	}
	if args.ShowVersion {
		fmt.Fprintf(stdout, "gitz %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	dir, err := config.ResolveDir(args.Dir)
	if err != nil {
		fmt.Fprintf(stderr, "gitz: %v\n", err)
		return 1
	}
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(stderr, "gitz: stdin and stdout must be a terminal")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "gitz: loading config: %v\n", err)
		return 1
	}
	cfg.RepoDir = dir
	cfg.Pathspec = args.Pathspec
	return runTUI(cfg, stderr)
}

func runTUI(cfg *config.Config, stderr io.Writer) int {
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(stderr, "Warning: could not create %s: %v\n", cfg.Paths.Home, err)
	}
	level := logging.ParseLevel(cfg.LogLevel, logging.LevelInfo)
	if err := logging.Initialize(cfg.Paths.LogsRoot, level); err != nil {
		fmt.Fprintf(stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("Starting gitz %s in %s", version, cfg.RepoDir)
	if !git.IsGitRepository(cfg.RepoDir) {
		logging.Warn("%s is not a git repository", cfg.RepoDir)
	}
	if cfg.Scoped() {
		logging.Info("History limited to %q", cfg.Pathspec)
	}
	if perf.Enabled() {
		logging.Info("Profiling enabled")
	}
	safego.SetPanicHandler(func(name string, _ any, _ []byte) {
		perf.Flush("panic in " + name)
	})
	startPprof()

	a := app.New(cfg)
	p := tea.NewProgram(
		a,
		tea.WithFilter(mouseEventFilter),
	)
	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		fmt.Fprintf(stderr, "Error running gitz: %v\n", err)
		if path := logging.GetLogPath(); path != "" {
			fmt.Fprintf(stderr, "See %s for details\n", path)
		}
		a.Shutdown()
		return 1
	}
	a.Shutdown()

	logging.Info("gitz shutdown complete")
	return 0
}

var lastMouseWheelEvent time.Time

// mouseEventFilter drops motion events and throttles wheel bursts.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseMotionMsg:
		return nil
	case tea.MouseWheelMsg:
		now := time.Now()
		if now.Sub(lastMouseWheelEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseWheelEvent = now
	}
	return msg
}

func startPprof() {
	raw := strings.TrimSpace(os.Getenv("GITZ_PPROF"))
	if raw == "" {
		return
	}
	switch strings.ToLower(raw) {
	case "0", "false", "no":
		return
	}
	addr := raw
	if raw == "1" || strings.ToLower(raw) == "true" {
		addr = "127.0.0.1:6060"
	} else if _, err := strconv.Atoi(raw); err == nil {
		addr = "127.0.0.1:" + raw
	}

	safego.Go("pprof", func() {
		logging.Info("pprof listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logging.Warn("pprof server stopped: %v", err)
		}
	})
}
