package version

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/jongio/smith-core/cliout"
	"github.com/jongio/smith-core/termprobe"
)

func testInfo() *Info {
	info := New("smith")
	info.Version = "1.2.3"
	info.GitCommit = "abc123"
	info.BuildDate = "2024-01-01"
	return info
}

func staticFormatter(terminal bool) FormatterFunc {
	return func(w io.Writer) *cliout.Formatter {
		return cliout.NewFormatter(cliout.Options{
			Writer:   w,
			Platform: termprobe.Static{Terminal: terminal},
			Color:    termprobe.ColorNever,
		})
	}
}

func runCommand(t *testing.T, info *Info, format *cliout.Format, terminal bool, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewCommand(info, format, staticFormatter(terminal))
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	return buf.String()
}

func TestNew_Defaults(t *testing.T) {
	info := New("smith")
	if info.Version != "0.0.0-dev" {
		t.Errorf("Version = %q", info.Version)
	}
	if info.GitCommit != "unknown" || info.BuildDate != "unknown" {
		t.Errorf("unexpected defaults: %+v", info)
	}
	if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Errorf("runtime fields not set: %+v", info)
	}
}

func TestFillFromBuildInfoKeepsExplicitValues(t *testing.T) {
	info := testInfo().FillFromBuildInfo()
	if info.Version != "1.2.3" || info.GitCommit != "abc123" || info.BuildDate != "2024-01-01" {
		t.Errorf("explicit values overwritten: %+v", info)
	}
}

func TestInfo_String(t *testing.T) {
	want := "smith version 1.2.3 (commit: abc123, built: 2024-01-01)"
	if got := testInfo().String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewCommand_JSONWhenPiped(t *testing.T) {
	out := runCommand(t, testInfo(), nil, false)

	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got["version"] != "1.2.3" || got["gitCommit"] != "abc123" || got["name"] != "smith" {
		t.Errorf("unexpected JSON: %v", got)
	}
}

func TestNewCommand_Detailed(t *testing.T) {
	format := cliout.FormatDetailed
	out := runCommand(t, testInfo(), &format, true)

	if !strings.HasPrefix(out, "=== smith version ===") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "version: 1.2.3") {
		t.Errorf("missing version line:\n%s", out)
	}
}

func TestNewCommand_Compact(t *testing.T) {
	format := cliout.FormatCompact
	out := runCommand(t, testInfo(), &format, true)

	if !strings.HasPrefix(out, "name=smith | version=1.2.3 | gitCommit=abc123") {
		t.Errorf("unexpected compact output: %q", out)
	}
}

func TestNewCommand_Quiet(t *testing.T) {
	out := runCommand(t, testInfo(), nil, true, "--quiet")
	if out != "1.2.3\n" {
		t.Errorf("quiet output = %q", out)
	}
}
