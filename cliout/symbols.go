package cliout

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"

	"github.com/jongio/smith-core/termprobe"
)

// Symbol is a glyph with an ASCII fallback for terminals that can't display Unicode.
type Symbol struct {
	Unicode string
	ASCII   string
}

// For returns the Unicode or ASCII form.
func (s Symbol) For(unicode bool) string {
	if unicode {
		return s.Unicode
	}
	return s.ASCII
}

// Symbols used by the renderers.
var (
	SymbolCheck   = Symbol{"✓", "[+]"}
	SymbolCross   = Symbol{"✗", "[-]"}
	SymbolWarning = Symbol{"⚠", "[!]"}
	SymbolInfo    = Symbol{"ℹ", "[i]"}
	SymbolArrow   = Symbol{"→", "->"}
	SymbolDot     = Symbol{"•", "*"}
	SymbolCount   = Symbol{"#", "#"}

	IconSuccess   = Symbol{"✅", "[OK]"}
	IconFailure   = Symbol{"❌", "[FAIL]"}
	IconCancelled = Symbol{"🚫", "[CANCELLED]"}
	IconBulb      = Symbol{"💡", "[?]"}
	IconBook      = Symbol{"📖", "[docs]"}
)

// ProgressBar glyphs.
const (
	BarFilled = "█"
	BarEmpty  = "░"
)

// SupportsUnicode detects whether the terminal can display Unicode properly.
func SupportsUnicode(p termprobe.Platform) bool {
	if runtime.GOOS != "windows" {
		// Unix-like systems generally support Unicode
		return true
	}

	has := func(key string) bool {
		v, ok := p.LookupEnv(key)
		return ok && v != ""
	}

	// Windows Terminal, ConEmu, PowerShell
	if has("WT_SESSION") || has("ConEmuPID") || has("PSModulePath") || has("POWERSHELL_DISTRIBUTION_CHANNEL") {
		return true
	}
	if v, _ := p.LookupEnv("TERM_PROGRAM"); v == "vscode" {
		return true
	}
	if has("TERM") {
		return true
	}

	// Default to ASCII for old Windows Console/CMD
	return false
}

var defaultUnicode = SupportsUnicode(termprobe.System())

// Paint wraps s in the given color attributes when enabled is true.
// It ignores the global color.NoColor switch so that each caller's snapshot decides.
func Paint(enabled bool, s string, attrs ...color.Attribute) string {
	if !enabled || s == "" {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// ProgressBar renders "[████░░░░] 45%" scaled to width.
// Percent outside 0..100 is clamped for the glyphs but printed as given.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = 1
	}
	ratio := percent / 100
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	bar := strings.Repeat(BarFilled, filled) + strings.Repeat(BarEmpty, width-filled)
	return fmt.Sprintf("[%s] %.1f%%", bar, percent)
}

// statusAttrs returns the color for a status-like word.
func statusAttrs(status string) []color.Attribute {
	switch strings.ToLower(status) {
	case "success", "ok", "running", "healthy", "true", "passed", "done":
		return []color.Attribute{color.FgHiGreen}
	case "warning", "pending", "starting":
		return []color.Attribute{color.FgHiYellow}
	case "error", "failed", "unhealthy", "false":
		return []color.Attribute{color.FgHiRed}
	default:
		return []color.Attribute{color.FgHiBlue}
	}
}
