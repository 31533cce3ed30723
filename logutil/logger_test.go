// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerCreatesWithComponent(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	logger := NewLogger("mycomponent")
	if logger.Component() != "mycomponent" {
		t.Errorf("expected component 'mycomponent', got %q", logger.Component())
	}

	logger.Info("hello")
	if !strings.Contains(buf.String(), "component=mycomponent") {
		t.Errorf("expected output to contain component=mycomponent, got: %s", buf.String())
	}
}

func TestComponentLoggerFollowsSetup(t *testing.T) {
	logger := NewLogger("late")

	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)
	logger.Info("after setup")

	if !strings.Contains(buf.String(), "after setup") {
		t.Errorf("logger created before setup should write to the new writer, got: %s", buf.String())
	}
}

func TestWithOperationAndFields(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	logger := NewLogger("progress").WithOperation("redraw").WithFields("style", "bar")
	logger.Warn("slow tick")

	out := buf.String()
	for _, want := range []string{"component=progress", "operation=redraw", "style=bar", "slow tick"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got: %s", want, out)
		}
	}
	if logger.Component() != "progress" {
		t.Errorf("chaining should preserve the component, got %q", logger.Component())
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	parent := NewLogger("comp").WithFields("a", 1)
	_ = parent.WithFields("b", 2)
	parent.Info("parent only")

	if strings.Contains(buf.String(), "b=2") {
		t.Errorf("child fields leaked into parent: %s", buf.String())
	}
}

func TestComponentLogLevels(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(*ComponentLogger, string, ...any)
		level   string
	}{
		{"debug", (*ComponentLogger).Debug, "DEBUG"},
		{"info", (*ComponentLogger).Info, "INFO"},
		{"warn", (*ComponentLogger).Warn, "WARN"},
		{"error", (*ComponentLogger).Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetupLoggerWithWriter(&buf, true, false)

			tt.logFunc(NewLogger("lvl-test"), "level test msg", "k", "v")

			out := buf.String()
			if !strings.Contains(out, tt.level) {
				t.Errorf("expected level %s in output, got: %s", tt.level, out)
			}
			if !strings.Contains(out, "level test msg") {
				t.Errorf("expected message in output, got: %s", out)
			}
		})
	}
}

func TestComponentLoggerStructured(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, true, true)

	NewLogger("json-test").Info("structured msg", "count", 42)

	out := buf.String()
	for _, want := range []string{`"component":"json-test"`, `"msg":"structured msg"`, `"count":42`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in JSON output, got: %s", want, out)
		}
	}
}
