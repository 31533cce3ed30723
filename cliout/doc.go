// Package cliout renders structured values and free text for CLI output,
// switching between human-readable and machine-readable forms depending on
// whether output is attached to a terminal.
//
// # Features
//
//   - Five concrete formats: json, summary, detailed, compact, minimal
//   - Auto format resolution (summary on a terminal, json when piped)
//   - Forced formats that override every request
//   - A generic Value type that keeps field order
//   - Icons and colors only when the probed environment allows color
//   - Unicode detection with ASCII fallbacks for legacy Windows consoles
//
// # Basic Usage
//
//	f := cliout.NewFormatter(cliout.Options{})
//	result := cliout.Mapping(
//	    cliout.F("success", cliout.Bool(true)),
//	    cliout.F("message", cliout.String("done")),
//	    cliout.F("count", cliout.Int(3)),
//	)
//	_ = f.Print(result, cliout.FormatAuto)
//
// On a terminal this prints one line per field; piped, it prints:
//
//	{
//	  "count": 3,
//	  "message": "done",
//	  "success": true
//	}
//
// # Formats
//
//   - json: pretty-printed JSON, keys sorted
//   - summary: "name: value" per line, long strings shortened, collections counted
//   - detailed: "=== Type ===" header and fully expanded values
//   - compact: "success=true | message=done | count=3"
//   - minimal: only status, success, count, total, errors and warnings
//
// # Domain Objects
//
// ValueOf converts any JSON-serializable Go value. Struct fields keep their
// declaration order and the type name becomes the detailed header:
//
//	v, err := cliout.ValueOf(report)
//
// # Design Principles
//
//   - No global format state: every Formatter carries its own snapshot
//   - Rendering never fails; unencodable values produce a diagnostic payload
//   - All printed output goes to the Formatter's writer (stdout by default)
package cliout
