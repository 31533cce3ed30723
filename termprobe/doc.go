// Package termprobe answers the three questions every terminal-adaptive
// renderer needs before writing anything: is standard output a terminal,
// should output be colorized, and how wide is the terminal.
//
// # Snapshots
//
// Probe returns an immutable Snapshot. Formatters and progress trackers take
// one snapshot at construction and pass it along explicitly instead of
// consulting global state:
//
//	env := termprobe.Probe(termprobe.System(), termprobe.ColorAuto)
//	if env.IsTerminal {
//	    // interactive rendering
//	}
//
// Terminal width is the one value that may change while a program runs
// (window resize), so callers that redraw repeatedly re-query it with Width.
//
// # Color Precedence
//
// Color is decided in this order:
//   - ColorNever passed by the caller disables color
//   - ColorAlways passed by the caller enables color
//   - NO_COLOR present in the environment disables color
//   - FORCE_COLOR present in the environment enables color
//   - otherwise color follows terminal detection
//
// # Platforms
//
// All environment access goes through the Platform interface. System reads the
// real process environment and standard output; Static is a fixed platform for
// tests and for embedders that already know their environment.
package termprobe
