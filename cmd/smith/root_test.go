package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/smith-core/progress"
	"github.com/jongio/smith-core/smitherr"
	"github.com/jongio/smith-core/termprobe"
	"github.com/jongio/smith-core/testutil"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := newApp(strings.NewReader(stdin), &stdout, &stderr)
	a.platform = termprobe.Static{}
	a.errPlatform = termprobe.Static{}
	a.configPath = ""

	err := a.execute(args)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestRenderCompact(t *testing.T) {
	r := run(t, `{"success":true,"message":"done","count":3}`, "render", "--format", "compact")
	require.NoError(t, r.err)
	assert.Equal(t, "success=true | message=done | count=3\n", r.stdout)
}

func TestRenderAutoIsJSONWhenPiped(t *testing.T) {
	r := run(t, `{"status":"ok","count":2}`, "render")
	require.NoError(t, r.err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, "ok", got["status"])
	assert.InDelta(t, 2, got["count"], 0)
}

func TestRenderMinimal(t *testing.T) {
	r := run(t, `{"status":"ok","name":"web","count":5}`, "render", "-o", "minimal")
	require.NoError(t, r.err)
	assert.NotContains(t, r.stdout, "web")
	assert.Contains(t, r.stdout, "ok")
}

func TestRenderText(t *testing.T) {
	r := run(t, "", "render", "--text", "all good", "--format", "json")
	require.NoError(t, r.err)
	assert.JSONEq(t, `{"message":"all good"}`, r.stdout)
}

func TestRenderForceFormatWins(t *testing.T) {
	r := run(t, `{"count":1}`, "render", "--format", "json", "--force-format", "compact")
	require.NoError(t, r.err)
	assert.Equal(t, "count=1\n", r.stdout)
}

func TestRenderInvalidJSON(t *testing.T) {
	r := run(t, "{not json", "render")
	require.Error(t, r.err)
	assert.Equal(t, smitherr.CodeInvalidInput, smitherr.Code(r.err))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stderr), &got))
	assert.Equal(t, smitherr.CodeInvalidInput, got[smitherr.KeyCode])
	assert.Empty(t, r.stdout)
}

func TestInvalidFormatFlag(t *testing.T) {
	r := run(t, "", "render", "--format", "yaml")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "yaml")
}

func TestInvalidColorFlag(t *testing.T) {
	r := run(t, "", "render", "--text", "x", "--color", "sometimes")
	require.Error(t, r.err)
	assert.Equal(t, smitherr.CategoryConfiguration, smitherr.FromError(r.err).Category)
}

func TestConfigFileFormat(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.WriteFile(t, dir, "config.yaml", "output:\n  format: compact\n")

	var stdout, stderr bytes.Buffer
	a := newApp(strings.NewReader(`{"count":4}`), &stdout, &stderr)
	a.platform = termprobe.Static{}
	a.errPlatform = termprobe.Static{}

	require.NoError(t, a.execute([]string{"render", "--config", path}))
	assert.Equal(t, "count=4\n", stdout.String())
}

func TestProgressNonTerminal(t *testing.T) {
	r := run(t, "", "progress", "--total", "3", "--step", "1ms")
	require.NoError(t, r.err)

	lines := strings.Split(strings.TrimRight(r.stdout, "\n"), "\n")
	require.Len(t, lines, 1, "only the final line is written off a terminal")
	assert.Contains(t, lines[0], "Uploaded all chunks")
	assert.NotContains(t, r.stdout, "\r")
}

func TestProgressFailure(t *testing.T) {
	r := run(t, "", "progress", "--total", "4", "--step", "1ms", "--fail")
	require.Error(t, r.err)
	assert.Equal(t, smitherr.CodeNetworkUnavailable, smitherr.Code(r.err))
	assert.Contains(t, r.stdout, "Upload failed")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stderr), &got))
	assert.Equal(t, smitherr.CodeNetworkUnavailable, got[smitherr.KeyCode])
}

func TestProgressBreakerOpens(t *testing.T) {
	r := run(t, "", "progress", "--total", "10", "--step", "1ms", "--fail")
	require.Error(t, r.err)
	assert.Equal(t, smitherr.CodeCircuitOpen, smitherr.Code(r.err))
	assert.Contains(t, r.stderr, uploadHost)
}

func TestProgressMetrics(t *testing.T) {
	r := run(t, "", "progress", "--total", "2", "--step", "1ms", "--metrics", "--format", "compact")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "smith_progress_operations_total{outcome=success}=1")
	assert.Contains(t, r.stdout, "smith_progress_duration_seconds{outcome=success}_count=1")
	assert.NotContains(t, r.stdout, "smith_errors_total")
}

func TestFailureRecordsErrorMetrics(t *testing.T) {
	r := run(t, "", "progress", "--total", "4", "--step", "1ms", "--fail", "--metrics", "--format", "compact")
	require.Error(t, r.err)

	severity := string(smitherr.SeverityForCode(smitherr.CodeNetworkUnavailable))
	assert.Contains(t, r.stdout, "smith_errors_total{category=api,code=API_NETWORK_UNAVAILABLE,severity="+severity+"}=1")
	assert.Contains(t, r.stdout, "smith_progress_operations_total{outcome=failure}=1")
}

func TestUploadCountsBytes(t *testing.T) {
	out := &testutil.SyncBuffer{}
	tracker := progress.New(progress.Options{Output: out, Platform: termprobe.Static{}})
	u := &upload{
		tracker: tracker,
		breaker: smitherr.NewBreaker("test", 3, time.Minute),
		chunk:   make([]byte, 8),
		failAt:  -1,
	}

	require.NoError(t, u.run(context.Background(), progress.StyleSteps, 3, time.Millisecond))
	st := tracker.Status()
	assert.Equal(t, 24, st.Current)
	assert.Equal(t, 24, st.Total)
	assert.InDelta(t, 100.0, st.Percentage, 0.001)
	assert.Empty(t, out.String(), "nothing is drawn off a terminal before Finish")
}

func TestUploadCancelled(t *testing.T) {
	tracker := progress.New(progress.Options{Output: &testutil.SyncBuffer{}, Platform: termprobe.Static{}})
	u := &upload{tracker: tracker, breaker: smitherr.NewBreaker("test", 3, time.Minute), chunk: []byte{0}, failAt: -1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, u.run(ctx, progress.StyleBar, 5, time.Hour), context.Canceled)
}

func TestErrorCommandJSON(t *testing.T) {
	r := run(t, "", "error", "api_rate_limited", "--format", "json")
	require.NoError(t, r.err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, smitherr.CodeRateLimited, got[smitherr.KeyCode])
	assert.Equal(t, false, got[smitherr.KeyFatal])
	assert.NotEmpty(t, got[smitherr.KeySuggestedActions])
}

func TestErrorCommandHuman(t *testing.T) {
	r := run(t, "", "error", "CONFIG_MISSING", "--format", "summary",
		"--details", "no file found", "--docs-url", "https://example.com/config")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "[CONFIG_MISSING]")
	assert.Contains(t, r.stdout, "Details: no file found")
	assert.Contains(t, r.stdout, "Suggested actions:")
	assert.Contains(t, r.stdout, "https://example.com/config")
}

func TestErrorCommandRejectsMalformedDocsURL(t *testing.T) {
	r := run(t, "", "error", "CONFIG_MISSING", "--docs-url", "docs/config.md")
	require.Error(t, r.err)
	assert.Equal(t, smitherr.CodeInvalidInput, smitherr.Code(r.err))
	assert.Empty(t, r.stdout)
}

func TestErrorCommandUnknownCode(t *testing.T) {
	r := run(t, "", "error", "NOPE")
	require.Error(t, r.err)
	assert.Contains(t, r.stderr, "unknown error code")
}

func TestErrorCommandLists(t *testing.T) {
	r := run(t, "", "error", "--format", "json")
	require.NoError(t, r.err)

	var got struct {
		Count int              `json:"count"`
		Codes []map[string]any `json:"codes"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, len(smitherr.Codes()), got.Count)
	assert.Len(t, got.Codes, got.Count)
}

func TestVersionQuiet(t *testing.T) {
	r := run(t, "", "version", "--quiet")
	require.NoError(t, r.err)
	assert.Equal(t, Version+"\n", r.stdout)
}

func TestVersionJSON(t *testing.T) {
	r := run(t, "", "version")
	require.NoError(t, r.err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, "smith", got["name"])
	assert.Equal(t, Version, got["version"])
}
