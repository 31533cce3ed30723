package termprobe

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Platform is the host abstraction Probe calls into.
// Implementations must be safe for concurrent use and must not block.
type Platform interface {
	// LookupEnv reports the value of an environment variable and whether it is set.
	LookupEnv(key string) (string, bool)
	// IsTerminal reports whether standard output is an interactive terminal.
	IsTerminal() bool
	// Width returns the terminal column count, if known.
	Width() (int, bool)
}

// systemPlatform reads the process environment and os.Stdout.
type systemPlatform struct {
	file *os.File
}

// System returns the Platform backed by the real process and os.Stdout.
func System() Platform {
	return systemPlatform{file: os.Stdout}
}

// SystemFor returns a Platform that inspects f instead of os.Stdout.
func SystemFor(f *os.File) Platform {
	return systemPlatform{file: f}
}

func (s systemPlatform) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (s systemPlatform) IsTerminal() bool {
	if s.file == nil {
		return false
	}
	fd := s.file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (s systemPlatform) Width() (int, bool) {
	// COLUMNS is set by most shells and is more reliable inside multiplexers
	if cols, ok := columnsFromEnv(s); ok {
		return cols, true
	}
	if s.file == nil {
		return 0, false
	}
	w, _, err := term.GetSize(int(s.file.Fd())) //nolint:gosec // G115: Fd() fits in int on supported platforms
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}

// Static is a fixed Platform. The zero value is a non-terminal with an empty
// environment.
type Static struct {
	Terminal bool
	Columns  int
	Env      map[string]string
}

// LookupEnv returns values from Env.
func (s Static) LookupEnv(key string) (string, bool) {
	v, ok := s.Env[key]
	return v, ok
}

// IsTerminal returns Terminal.
func (s Static) IsTerminal() bool {
	return s.Terminal
}

// Width returns Columns, or the COLUMNS entry of Env when Columns is zero.
func (s Static) Width() (int, bool) {
	if s.Columns > 0 {
		return s.Columns, true
	}
	return columnsFromEnv(s)
}

func columnsFromEnv(p interface {
	LookupEnv(string) (string, bool)
}) (int, bool) {
	raw, ok := p.LookupEnv(EnvColumns)
	if !ok {
		return 0, false
	}
	cols, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || cols <= 0 {
		return 0, false
	}
	return cols, true
}
