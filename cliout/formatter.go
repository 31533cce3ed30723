package cliout

import (
	"fmt"
	"io"
	"os"

	"github.com/jongio/smith-core/termprobe"
)

// Options configures a Formatter.
type Options struct {
	// Writer receives printed output. Defaults to os.Stdout.
	Writer io.Writer
	// Platform is probed once at construction. Defaults to termprobe.System().
	Platform termprobe.Platform
	// Color is the caller's explicit color preference.
	Color termprobe.ColorMode
	// ForcedFormat, when concrete, overrides every requested format.
	ForcedFormat Format
}

// Formatter renders structured values and text for one output stream.
// The environment is probed once in NewFormatter; the format is resolved
// afresh on every call. A Formatter is safe for concurrent use.
type Formatter struct {
	out     io.Writer
	env     termprobe.Snapshot
	forced  Format
	unicode bool
}

// NewFormatter probes the environment and returns a Formatter.
func NewFormatter(opts Options) *Formatter {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Platform == nil {
		opts.Platform = termprobe.System()
	}

	env := termprobe.Probe(opts.Platform, opts.Color)
	logger().Debug("formatter created",
		"terminal", env.IsTerminal,
		"color", env.ColorEnabled,
		"width", env.TerminalWidth,
		"forced", string(opts.ForcedFormat))

	return &Formatter{
		out:     opts.Writer,
		env:     env,
		forced:  opts.ForcedFormat,
		unicode: SupportsUnicode(opts.Platform),
	}
}

// Snapshot returns the environment probed at construction.
func (f *Formatter) Snapshot() termprobe.Snapshot {
	return f.env
}

// Writer returns the output writer.
func (f *Formatter) Writer() io.Writer {
	return f.out
}

// Unicode reports whether Unicode glyphs are used.
func (f *Formatter) Unicode() bool {
	return f.unicode
}

// Resolve returns the concrete format for a request.
func (f *Formatter) Resolve(requested Format) Format {
	return Resolve(requested, f.forced, f.env)
}

// Format renders v in the resolved format.
func (f *Formatter) Format(v Value, requested Format) string {
	r := renderer{color: f.env.ColorEnabled, unicode: f.unicode}
	return r.render(v, f.Resolve(requested))
}

// FormatAny converts obj with ValueOf and renders it. When obj cannot be
// converted a diagnostic mapping is rendered instead.
func (f *Formatter) FormatAny(obj any, requested Format) string {
	v, err := ValueOf(obj)
	if err != nil {
		logger().Debug("value conversion failed, rendering fallback", "type", fmt.Sprintf("%T", obj), "error", err)
		v = Mapping(
			F("error", String("serialization failed")),
			F("details", String(err.Error())),
		)
	}
	return f.Format(v, requested)
}

// FormatText renders free text in the resolved format.
func (f *Formatter) FormatText(text string, requested Format) string {
	return RenderText(text, f.Resolve(requested))
}

// Print writes the rendering of v followed by a newline.
func (f *Formatter) Print(v Value, requested Format) error {
	return f.writeLine(f.Format(v, requested))
}

// PrintAny writes the rendering of obj followed by a newline.
func (f *Formatter) PrintAny(obj any, requested Format) error {
	return f.writeLine(f.FormatAny(obj, requested))
}

// PrintText writes the rendering of text followed by a newline.
func (f *Formatter) PrintText(text string, requested Format) error {
	return f.writeLine(f.FormatText(text, requested))
}

func (f *Formatter) writeLine(s string) error {
	if _, err := fmt.Fprintln(f.out, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
