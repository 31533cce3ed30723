package cliout

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/jongio/smith-core/logutil"
	"github.com/jongio/smith-core/termprobe"
)

// Rendering limits and separators.
const (
	summaryMaxChars = 50
	ellipsis        = "..."
	inlineSeparator = " | "
	detailIndent    = "    "
	textHeaderName  = "Text"
)

// minimalFields are the only field names (compared lower-case) kept by FormatMinimal.
var minimalFields = map[string]bool{
	"status":   true,
	"success":  true,
	"count":    true,
	"total":    true,
	"errors":   true,
	"warnings": true,
}

func logger() *logutil.ComponentLogger {
	return logutil.NewLogger("cliout")
}

type renderer struct {
	color   bool
	unicode bool
}

// Render renders v in format f. Icons and colors are added only when
// colorEnabled is true. A format that is not concrete renders as JSON.
// Render never fails: a value JSON cannot encode yields a diagnostic object.
func Render(v Value, f Format, colorEnabled bool) string {
	return renderer{color: colorEnabled, unicode: defaultUnicode}.render(v, f)
}

// RenderText renders free text in format f.
func RenderText(text string, f Format) string {
	if !f.IsConcrete() {
		f = Resolve(f, "", termprobe.Snapshot{})
	}
	switch f {
	case FormatJSON:
		return encodeJSON(map[string]string{"message": text})
	case FormatDetailed:
		return header(textHeaderName) + "\n" + text
	case FormatCompact:
		return collapseSpaces(text)
	case FormatMinimal:
		return strings.Join(strings.Fields(text), " ")
	default:
		return text
	}
}

func (r renderer) render(v Value, f Format) string {
	if !f.IsConcrete() {
		f = Resolve(f, "", termprobe.Snapshot{})
	}
	switch f {
	case FormatJSON:
		return encodeJSON(v.Interface())
	case FormatDetailed:
		return r.detailed(v)
	case FormatCompact:
		return compact(v)
	case FormatMinimal:
		return minimal(v)
	default:
		return r.summary(v)
	}
}

// fieldsOf returns the fields to iterate: mapping fields, or sequence items
// named by index.
func fieldsOf(v Value) []Field {
	if v.Kind() == KindMapping {
		return v.Fields()
	}
	items := v.Items()
	fields := make([]Field, len(items))
	for i, item := range items {
		fields[i] = F(strconv.Itoa(i), item)
	}
	return fields
}

func (r renderer) summary(v Value) string {
	if !v.IsComposite() {
		return v.String()
	}
	fields := fieldsOf(v)
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = r.prefix(f) + f.Name + ": " + summaryValue(f.Value)
	}
	return strings.Join(lines, "\n")
}

func summaryValue(v Value) string {
	switch v.Kind() {
	case KindString:
		s := v.Text()
		if utf8.RuneCountInString(s) > summaryMaxChars {
			return string([]rune(s)[:summaryMaxChars-len(ellipsis)]) + ellipsis
		}
		return s
	case KindSequence:
		return "[" + strconv.Itoa(v.Len()) + " items]"
	case KindMapping:
		return "[" + strconv.Itoa(v.Len()) + " entries]"
	default:
		return v.String()
	}
}

func (r renderer) detailed(v Value) string {
	title := header(v.TypeName())
	if r.color {
		title = Paint(true, title, color.Bold)
	}
	if !v.IsComposite() {
		return title + "\n" + v.String()
	}
	fields := fieldsOf(v)
	lines := make([]string, 0, len(fields)+1)
	lines = append(lines, title)
	for _, f := range fields {
		lines = append(lines, r.prefix(f)+labeled(f.Name, f.Value))
	}
	return strings.Join(lines, "\n")
}

// describe is the full multi-line string conversion used by the detailed format.
func describe(v Value) string {
	switch v.Kind() {
	case KindMapping:
		if v.Len() == 0 {
			return "{}"
		}
		lines := make([]string, len(v.Fields()))
		for i, f := range v.Fields() {
			lines[i] = labeled(f.Name, f.Value)
		}
		return strings.Join(lines, "\n")
	case KindSequence:
		if v.Len() == 0 {
			return "[]"
		}
		lines := make([]string, len(v.Items()))
		for i, item := range v.Items() {
			lines[i] = "- " + strings.ReplaceAll(describe(item), "\n", "\n  ")
		}
		return strings.Join(lines, "\n")
	default:
		return v.String()
	}
}

// labeled renders "name: value", keeping block values on the following lines.
func labeled(name string, v Value) string {
	val := detailValue(v)
	if strings.HasPrefix(val, "\n") {
		return name + ":" + val
	}
	return name + ": " + val
}

// detailValue places non-empty composites on their own indented block and
// indents continuation lines of multi-line scalars.
func detailValue(v Value) string {
	if v.IsComposite() && v.Len() > 0 {
		return "\n" + detailIndent + strings.ReplaceAll(describe(v), "\n", "\n"+detailIndent)
	}
	return strings.ReplaceAll(describe(v), "\n", "\n"+detailIndent)
}

func compact(v Value) string {
	if !v.IsComposite() {
		return v.String()
	}
	fields := fieldsOf(v)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name + "=" + compactValue(f.Value)
	}
	return strings.Join(parts, inlineSeparator)
}

func compactValue(v Value) string {
	switch v.Kind() {
	case KindString:
		return strings.ReplaceAll(v.Text(), " ", "_")
	case KindSequence:
		return "[" + strconv.Itoa(v.Len()) + "]"
	case KindMapping:
		return "{" + strconv.Itoa(v.Len()) + "}"
	default:
		return v.String()
	}
}

func minimal(v Value) string {
	if !v.IsComposite() {
		return v.String()
	}
	var parts []string
	for _, f := range fieldsOf(v) {
		if !minimalFields[strings.ToLower(f.Name)] {
			continue
		}
		val := f.Value.String()
		if f.Value.IsComposite() {
			val = strconv.Itoa(f.Value.Len())
		}
		parts = append(parts, f.Name+": "+val)
	}
	return strings.Join(parts, inlineSeparator)
}

// prefix returns the colored icon for a field followed by a space, or nothing
// when color is off.
func (r renderer) prefix(f Field) string {
	if !r.color {
		return ""
	}
	sym, attrs := fieldIcon(f)
	return Paint(true, sym.For(r.unicode), attrs...) + " "
}

func fieldIcon(f Field) (Symbol, []color.Attribute) {
	switch strings.ToLower(f.Name) {
	case "success", "status", "ok":
		word := f.Value.String()
		attrs := statusAttrs(word)
		switch attrs[0] {
		case color.FgHiGreen:
			return SymbolCheck, attrs
		case color.FgHiRed:
			return SymbolCross, attrs
		case color.FgHiYellow:
			return SymbolWarning, attrs
		default:
			return SymbolInfo, attrs
		}
	case "error", "errors":
		return SymbolCross, []color.Attribute{color.FgHiRed}
	case "warning", "warnings":
		return SymbolWarning, []color.Attribute{color.FgHiYellow}
	case "count", "total":
		return SymbolCount, []color.Attribute{color.FgCyan}
	case "message", "description":
		return SymbolInfo, []color.Attribute{color.FgHiBlue}
	default:
		return SymbolDot, []color.Attribute{color.Faint}
	}
}

func header(name string) string {
	return "=== " + name + " ==="
}

func collapseSpaces(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\r' {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// encodeJSON pretty-prints v with sorted keys, substituting a diagnostic
// object when v cannot be encoded.
func encodeJSON(v any) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		logger().Debug("json encoding failed, emitting fallback", "error", err)
		return fallbackJSON(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func fallbackJSON(cause error) string {
	data, _ := json.MarshalIndent(map[string]string{
		"error":   "serialization failed",
		"details": cause.Error(),
	}, "", "  ")
	return string(data)
}
