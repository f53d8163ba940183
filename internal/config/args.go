package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrHelp is returned when -h or --help is given.
var ErrHelp = errors.New("help requested")

// Args is the parsed command line: gitz [flags] [dir] [-- pathspec...]
type Args struct {
	Dir         string
	Pathspec    []string
	ShowVersion bool
}

// Usage is printed for -h and argument errors.
const Usage = `usage: gitz [--version] [dir] [-- <pathspec>...]

Browse the history of the git repository at dir (default: current directory).
A pathspec limits the history; a single path also scopes the commit diff.`

// ParseArgs parses the command line (without the program name).
func ParseArgs(argv []string) (Args, error) {
	var a Args
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			for _, p := range argv[i+1:] {
				if strings.TrimSpace(p) != "" {
					a.Pathspec = append(a.Pathspec, p)
				}
			}
			return a, nil
		case arg == "--version" || arg == "-v":
			a.ShowVersion = true
		case arg == "-h" || arg == "--help":
			return a, ErrHelp
		case strings.HasPrefix(arg, "-") && arg != "-":
			return a, fmt.Errorf("unknown flag %q", arg)
		case a.Dir == "":
			a.Dir = arg
		default:
			return a, fmt.Errorf("unexpected argument %q (use -- before a pathspec)", arg)
		}
	}
	return a, nil
}

// ResolveDir turns dir into an absolute path, defaulting to the working
// directory. The directory must exist.
func ResolveDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}
