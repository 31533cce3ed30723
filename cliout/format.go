package cliout

import (
	"fmt"
	"strings"

	"github.com/jongio/smith-core/termprobe"
)

// Format represents the output format.
type Format string

const (
	// FormatAuto picks summary on a terminal and JSON otherwise.
	// It is never the format that actually gets rendered.
	FormatAuto Format = "auto"
	// FormatJSON is the machine-readable format: pretty-printed JSON with sorted keys.
	FormatJSON Format = "json"
	// FormatSummary is one line per field with long values shortened.
	FormatSummary Format = "summary"
	// FormatDetailed is a titled block with full values.
	FormatDetailed Format = "detailed"
	// FormatCompact is a single line of key=value pairs.
	FormatCompact Format = "compact"
	// FormatMinimal keeps only status-like fields on a single line.
	FormatMinimal Format = "minimal"
)

// ValidFormats returns every format accepted by ParseFormat, auto first.
func ValidFormats() []Format {
	return []Format{FormatAuto, FormatJSON, FormatSummary, FormatDetailed, FormatCompact, FormatMinimal}
}

// ParseFormat parses a format name. An empty string is auto.
// "machine" is accepted as an alias for json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json", "machine":
		return FormatJSON, nil
	case "summary":
		return FormatSummary, nil
	case "detailed":
		return FormatDetailed, nil
	case "compact":
		return FormatCompact, nil
	case "minimal":
		return FormatMinimal, nil
	default:
		return FormatAuto, fmt.Errorf("invalid output format: %s (valid options: %s)", s, formatList())
	}
}

func formatList() string {
	names := make([]string, 0, len(ValidFormats()))
	for _, f := range ValidFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// IsConcrete reports whether f can be rendered directly (anything but auto or unset).
func (f Format) IsConcrete() bool {
	switch f {
	case FormatJSON, FormatSummary, FormatDetailed, FormatCompact, FormatMinimal:
		return true
	default:
		return false
	}
}

// String implements pflag.Value.
func (f *Format) String() string {
	if f == nil || *f == "" {
		return string(FormatAuto)
	}
	return string(*f)
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}

// Resolve turns a requested format into a concrete one.
//
// A set forced format wins unconditionally; an empty or auto forced format
// counts as unset. Auto becomes summary on a terminal and JSON otherwise.
// Resolve is pure and is meant to be called for every render, never cached.
func Resolve(requested, forced Format, env termprobe.Snapshot) Format {
	if forced.IsConcrete() {
		return forced
	}
	if requested.IsConcrete() {
		return requested
	}
	if env.IsTerminal {
		return FormatSummary
	}
	return FormatJSON
}
