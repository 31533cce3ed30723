package smitherr

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/jongio/smith-core/cliout"
	"github.com/jongio/smith-core/logutil"
	"github.com/jongio/smith-core/termprobe"
	"github.com/jongio/smith-core/urlutil"
)

// Machine-readable key names.
const (
	KeyCode             = "errorCode"
	KeyUserMessage      = "userMessage"
	KeyTechnicalDetails = "technicalDetails"
	KeySuggestedActions = "suggestedActions"
	KeyDocumentationURL = "documentationURL"
	KeyFatal            = "isFatal"
)

// Value returns the machine-readable field set. Empty optional fields are omitted.
func (e *Error) Value() cliout.Value {
	fields := []cliout.Field{
		cliout.F(KeyCode, cliout.String(e.Code)),
		cliout.F(KeyUserMessage, cliout.String(e.UserMessage)),
	}
	if e.TechnicalDetails != "" {
		fields = append(fields, cliout.F(KeyTechnicalDetails, cliout.String(e.TechnicalDetails)))
	}
	if len(e.SuggestedActions) > 0 {
		fields = append(fields, cliout.F(KeySuggestedActions, cliout.Strings(e.SuggestedActions...)))
	}
	if link := e.documentation(); link != "" {
		fields = append(fields, cliout.F(KeyDocumentationURL, cliout.String(link)))
	}
	fields = append(fields, cliout.F(KeyFatal, cliout.Bool(e.Fatal)))
	return cliout.Mapping(fields...).Named("SmithError")
}

// Render renders err in an already resolved format. JSON yields the flat
// machine-readable object; every other format yields the human block.
// Plain errors render as generic errors. A nil err renders as "".
func Render(err error, f cliout.Format, colorEnabled bool) string {
	return render(FromError(err), f, colorEnabled, cliout.SupportsUnicode(termprobe.System()))
}

// Display resolves the requested format through f and writes err to f's writer.
func Display(f *cliout.Formatter, err error, requested cliout.Format) error {
	e := FromError(err)
	if e == nil {
		return nil
	}
	resolved := f.Resolve(requested)
	logutil.NewLogger("smitherr").Debug("displaying error",
		"code", e.Code,
		"severity", string(SeverityForCode(e.Code)),
		"format", string(resolved))

	out := render(e, resolved, f.Snapshot().ColorEnabled, f.Unicode())
	if _, werr := fmt.Fprintln(f.Writer(), out); werr != nil {
		return fmt.Errorf("failed to write error output: %w", werr)
	}
	return nil
}

// documentation returns the documentation link when it is a valid URL.
func (e *Error) documentation() string {
	if e.DocumentationURL == "" || urlutil.Validate(e.DocumentationURL) != nil {
		return ""
	}
	return strings.TrimSpace(e.DocumentationURL)
}

func render(e *Error, f cliout.Format, colorEnabled, unicode bool) string {
	if e == nil {
		return ""
	}
	if f == cliout.FormatJSON || !f.IsConcrete() {
		return cliout.Render(e.Value(), cliout.FormatJSON, false)
	}
	return human(e, colorEnabled, unicode)
}

func human(e *Error, colorEnabled, unicode bool) string {
	icon, attrs := cliout.SymbolWarning, []color.Attribute{color.FgHiYellow, color.Bold}
	if e.Fatal {
		icon, attrs = cliout.IconFailure, []color.Attribute{color.FgHiRed, color.Bold}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s",
		icon.For(unicode),
		cliout.Paint(colorEnabled, e.UserMessage, attrs...),
		cliout.Paint(colorEnabled, "["+e.Code+"]", color.Faint))

	if e.TechnicalDetails != "" {
		fmt.Fprintf(&b, "\n\nDetails: %s", e.TechnicalDetails)
	}

	if len(e.SuggestedActions) > 0 {
		fmt.Fprintf(&b, "\n\n%s %s", cliout.IconBulb.For(unicode), cliout.Paint(colorEnabled, "Suggested actions:", color.Bold))
		for i, action := range e.SuggestedActions {
			fmt.Fprintf(&b, "\n  %d. %s", i+1, action)
		}
	}

	if link := e.documentation(); link != "" {
		fmt.Fprintf(&b, "\n\n%s Documentation: %s", cliout.IconBook.For(unicode), cliout.Paint(colorEnabled, link, color.FgHiCyan, color.Underline))
	}

	return b.String()
}
