// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"fmt"
	"io"
	"strings"
	"time"

	pkgbrowser "github.com/pkg/browser"

	"github.com/jongio/smith-core/logutil"
	"github.com/jongio/smith-core/urlutil"
)

// Target represents where documentation links are opened.
type Target string

const (
	// TargetDefault uses the system default browser
	TargetDefault Target = "default"
	// TargetSystem uses the system default browser (alias for TargetDefault)
	TargetSystem Target = "system"
	// TargetNone disables browser launching
	TargetNone Target = "none"
)

// DefaultTimeout bounds how long Launch waits on the launcher process.
const DefaultTimeout = 5 * time.Second

// ValidTargets returns all valid browser target values.
func ValidTargets() []Target {
	return []Target{TargetDefault, TargetSystem, TargetNone}
}

// IsValid checks if a target string is valid.
func IsValid(target string) bool {
	t := Target(target)
	for _, valid := range ValidTargets() {
		if t == valid {
			return true
		}
	}
	return false
}

// ParseTarget converts user input into a Target. Empty input is TargetDefault.
func ParseTarget(s string) (Target, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TargetDefault, nil
	}
	if !IsValid(s) {
		return TargetDefault, fmt.Errorf("invalid browser target: %s (valid options: %s)", s, FormatValidTargets())
	}
	return Target(s), nil
}

// ResolveTarget converts "default" to "system" and respects "none".
func ResolveTarget(target Target) Target {
	if target == TargetNone {
		return TargetNone
	}
	return TargetSystem
}

// LaunchOptions contains options for launching a browser.
type LaunchOptions struct {
	URL     string
	Target  Target
	Timeout time.Duration
	// Done, if set, receives the launch result once the launcher returns or times out.
	Done func(error)
}

// openURL is replaced in tests.
var openURL = pkgbrowser.OpenURL

func init() {
	// Launcher chatter would land in the middle of rendered output.
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard
}

// ValidateURL accepts only absolute http and https URLs with a host.
func ValidateURL(raw string) error {
	if err := urlutil.Validate(raw); err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	return nil
}

// Launch opens the URL in the browser selected by the target.
// It returns immediately; launcher failures are logged, not returned.
func Launch(opts LaunchOptions) error {
	if err := ValidateURL(opts.URL); err != nil {
		return err
	}
	opts.URL = strings.TrimSpace(opts.URL)
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if ResolveTarget(opts.Target) == TargetNone {
		if opts.Done != nil {
			opts.Done(nil)
		}
		return nil
	}

	go func() {
		err := launchSync(opts.URL, opts.Timeout)
		if err != nil {
			logutil.Warn("could not open browser", "url", opts.URL, "error", err)
		}
		if opts.Done != nil {
			opts.Done(err)
		}
	}()

	return nil
}

func launchSync(target string, timeout time.Duration) error {
	open := openURL
	result := make(chan error, 1)
	go func() {
		result <- open(target)
	}()

	select {
	case err := <-result:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("browser launch timed out after %s", timeout)
	}
}

// GetTargetDisplayName returns a human-readable name for the browser target.
func GetTargetDisplayName(target Target) string {
	switch ResolveTarget(target) {
	case TargetNone:
		return "none"
	default:
		return "default browser"
	}
}

// FormatValidTargets returns a comma-separated list of valid targets.
func FormatValidTargets() string {
	targets := ValidTargets()
	strs := make([]string, len(targets))
	for i, t := range targets {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}
