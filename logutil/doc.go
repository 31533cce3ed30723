// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides structured diagnostic logging on top of slog.
//
// Diagnostics always go to stderr by default so that they never interleave
// with rendered output on stdout.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	// Or let the environment decide
//	logutil.SetupFromEnv()
//
//	logutil.Debug("probing terminal", "fd", 1)
//	logutil.Warn("config file ignored", "path", path)
//
// # Component Loggers
//
// Packages log through a component-scoped logger. The component logger looks
// up the global logger on every call, so it follows later Setup calls:
//
//	log := logutil.NewLogger("progress").WithOperation("redraw")
//	log.Debug("tick dropped", "reason", "throttled")
//
// # Environment
//
//   - SMITH_DEBUG=true enables debug logging
//   - SMITH_LOG_LEVEL selects debug, info, warn or error
//   - SMITH_LOG_FORMAT=json switches to JSON output
package logutil
