package termprobe

import (
	"fmt"
	"strings"
)

// Environment variable names consulted by Probe.
const (
	// EnvNoColor disables color when present, whatever its value.
	EnvNoColor = "NO_COLOR"
	// EnvForceColor enables color when present, whatever its value.
	EnvForceColor = "FORCE_COLOR"
	// EnvColumns overrides the detected terminal width.
	EnvColumns = "COLUMNS"
)

// DefaultWidth is used when the terminal width cannot be determined.
const DefaultWidth = 80

// ColorMode is the caller's explicit color preference.
type ColorMode int

const (
	// ColorAuto defers to environment signals and terminal detection.
	ColorAuto ColorMode = iota
	// ColorAlways enables color even when output is not a terminal.
	ColorAlways
	// ColorNever disables color unconditionally.
	ColorNever
)

// String returns the flag spelling of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses "auto", "always" or "never" (case-insensitive).
// An empty string is treated as auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "force", "on":
		return ColorAlways, nil
	case "never", "off", "none":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode: %s (valid options: auto, always, never)", s)
	}
}

// Snapshot is the probed state of the output environment.
// It is computed once and never mutated.
type Snapshot struct {
	IsTerminal    bool
	ColorEnabled  bool
	TerminalWidth int
}

// Probe inspects the platform and returns a Snapshot.
func Probe(p Platform, mode ColorMode) Snapshot {
	isTerminal := p.IsTerminal()
	return Snapshot{
		IsTerminal:    isTerminal,
		ColorEnabled:  colorEnabled(p, mode, isTerminal),
		TerminalWidth: width(p, isTerminal),
	}
}

// Width re-queries the terminal width. It returns DefaultWidth when output is
// not a terminal or the size is unavailable.
func Width(p Platform) int {
	return width(p, p.IsTerminal())
}

func colorEnabled(p Platform, mode ColorMode, isTerminal bool) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	}
	if _, ok := p.LookupEnv(EnvNoColor); ok {
		return false
	}
	if _, ok := p.LookupEnv(EnvForceColor); ok {
		return true
	}
	return isTerminal
}

func width(p Platform, isTerminal bool) int {
	if !isTerminal {
		return DefaultWidth
	}
	if w, ok := p.Width(); ok && w > 0 {
		return w
	}
	return DefaultWidth
}
