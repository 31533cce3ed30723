package cliout

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/smith-core/testutil"
)

func sampleResult() Value {
	return Mapping(
		F("success", Bool(true)),
		F("message", String("done")),
		F("count", Int(3)),
	)
}

func TestRenderJSONSortsKeys(t *testing.T) {
	got := Render(sampleResult(), FormatJSON, false)
	want := "{\n  \"count\": 3,\n  \"message\": \"done\",\n  \"success\": true\n}"
	assert.Equal(t, want, got)
}

func TestRenderJSONRoundTrip(t *testing.T) {
	v := Mapping(
		F("name", String("build")),
		F("ratio", Number(0.25)),
		F("tags", Strings("a", "b")),
		F("nested", Mapping(F("ok", Bool(false)), F("none", Null()))),
	)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(Render(v, FormatJSON, false)), &decoded))

	assert.Equal(t, map[string]any{
		"name":  "build",
		"ratio": 0.25,
		"tags":  []any{"a", "b"},
		"nested": map[string]any{
			"ok":   false,
			"none": nil,
		},
	}, decoded)
}

func TestRenderJSONFallback(t *testing.T) {
	v := Mapping(F("ratio", Number(math.NaN())))

	got := Render(v, FormatJSON, false)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "serialization failed", decoded["error"])
	assert.Contains(t, decoded["details"], "NaN")
}

func TestRenderCompact(t *testing.T) {
	assert.Equal(t, "success=true | message=done | count=3", Render(sampleResult(), FormatCompact, false))

	v := Mapping(
		F("greeting", String("hello world")),
		F("items", Strings("a", "b", "c")),
		F("meta", Mapping(F("a", Int(1)), F("b", Int(2)))),
	)
	assert.Equal(t, "greeting=hello_world | items=[3] | meta={2}", Render(v, FormatCompact, true),
		"compact output never carries icons")
}

func TestRenderMinimal(t *testing.T) {
	v := Mapping(
		F("status", String("ok")),
		F("name", String("x")),
		F("count", Int(5)),
	)
	assert.Equal(t, "status: ok | count: 5", Render(v, FormatMinimal, false))

	v = Mapping(
		F("Errors", Strings("e1", "e2")),
		F("detail", String("dropped")),
		F("Total", Int(9)),
	)
	assert.Equal(t, "Errors: 2 | Total: 9", Render(v, FormatMinimal, false))

	assert.Equal(t, "", Render(Mapping(F("name", String("x"))), FormatMinimal, false))
}

func TestRenderSummary(t *testing.T) {
	long := strings.Repeat("a", 60)
	v := Mapping(
		F("description", String(long)),
		F("short", String("fine")),
		F("files", Strings("a", "b", "c")),
		F("env", Mapping(F("A", String("1")))),
		F("count", Int(3)),
	)

	got := Render(v, FormatSummary, false)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "description: "+strings.Repeat("a", 47)+"...", lines[0])
	assert.Equal(t, "short: fine", lines[1])
	assert.Equal(t, "files: [3 items]", lines[2])
	assert.Equal(t, "env: [1 entries]", lines[3])
	assert.Equal(t, "count: 3", lines[4])
}

func TestRenderSummaryExactlyFiftyNotTruncated(t *testing.T) {
	s := strings.Repeat("b", 50)
	assert.Equal(t, "value: "+s, Render(Mapping(F("value", String(s))), FormatSummary, false))
}

func TestRenderSummaryCountsCharactersNotWidth(t *testing.T) {
	wide := strings.Repeat("界", 30)
	assert.Equal(t, "v: "+wide, Render(Mapping(F("v", String(wide))), FormatSummary, false))

	longWide := strings.Repeat("界", 51)
	assert.Equal(t, "v: "+strings.Repeat("界", 47)+"...", Render(Mapping(F("v", String(longWide))), FormatSummary, false))
}

func TestRenderSummaryIconsOnlyWithColor(t *testing.T) {
	plain := Render(sampleResult(), FormatSummary, false)
	assert.NotContains(t, plain, "\x1b[")
	assert.True(t, strings.HasPrefix(plain, "success: true"))

	colored := renderer{color: true, unicode: true}.render(sampleResult(), FormatSummary)
	assert.Contains(t, colored, "\x1b[")
	assert.Equal(t, strings.Join([]string{
		SymbolCheck.Unicode + " success: true",
		SymbolInfo.Unicode + " message: done",
		SymbolCount.Unicode + " count: 3",
	}, "\n"), testutil.StripANSI(colored))

	ascii := renderer{color: true, unicode: false}.render(sampleResult(), FormatSummary)
	assert.Equal(t, strings.Join([]string{
		SymbolCheck.ASCII + " success: true",
		SymbolInfo.ASCII + " message: done",
		SymbolCount.ASCII + " count: 3",
	}, "\n"), testutil.StripANSI(ascii))
}

func TestRenderDetailed(t *testing.T) {
	v := Mapping(
		F("name", String("x")),
		F("notes", String("line1\nline2")),
		F("tags", Strings("a", "b")),
		F("meta", Mapping(F("k", Int(1)))),
		F("empty", Sequence()),
	).Named("Report")

	want := strings.Join([]string{
		"=== Report ===",
		"name: x",
		"notes: line1",
		"    line2",
		"tags:",
		"    - a",
		"    - b",
		"meta:",
		"    k: 1",
		"empty: []",
	}, "\n")
	assert.Equal(t, want, Render(v, FormatDetailed, false))
}

func TestRenderDetailedDefaultHeader(t *testing.T) {
	got := Render(sampleResult(), FormatDetailed, false)
	assert.True(t, strings.HasPrefix(got, "=== Object ===\n"))
}

func TestRenderScalarTopLevel(t *testing.T) {
	assert.Equal(t, "42", Render(Int(42), FormatSummary, false))
	assert.Equal(t, "hello world", Render(String("hello world"), FormatCompact, false))
	assert.Equal(t, "true", Render(Bool(true), FormatMinimal, false))
	assert.Equal(t, "=== Number ===\n1.5", Render(Number(1.5), FormatDetailed, false))
	assert.Equal(t, "null", Render(Null(), FormatJSON, false))
}

func TestRenderSequenceTopLevel(t *testing.T) {
	v := Strings("alpha beta", "gamma")
	assert.Equal(t, "0=alpha_beta | 1=gamma", Render(v, FormatCompact, false))
	assert.Equal(t, "0: alpha beta\n1: gamma", Render(v, FormatSummary, false))
}

func TestRenderNonConcreteFormatFallsBackToJSON(t *testing.T) {
	assert.Equal(t, Render(sampleResult(), FormatJSON, false), Render(sampleResult(), FormatAuto, false))
}

func TestRenderText(t *testing.T) {
	assert.Equal(t, "{\n  \"message\": \"a <b> & c\"\n}", RenderText("a <b> & c", FormatJSON))
	assert.Equal(t, "line one\nline two", RenderText("line one\nline two", FormatSummary))
	assert.Equal(t, "=== Text ===\nhi", RenderText("hi", FormatDetailed))
	assert.Equal(t, "hello world again", RenderText("hello\n  world   again", FormatCompact))
	assert.Equal(t, "a\tb c", RenderText("a\tb\n\nc", FormatCompact), "compact keeps tabs")
	assert.Equal(t, "a b c", RenderText("  a \t b\n c ", FormatMinimal))
}
