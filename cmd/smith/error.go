package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/smith-core/cliout"
	"github.com/jongio/smith-core/smitherr"
	"github.com/jongio/smith-core/urlutil"
)

func (a *app) errorCommand() *cobra.Command {
	var (
		details  string
		docsURL  string
		openDocs bool
	)

	cmd := &cobra.Command{
		Use:   "error [code]",
		Short: "Display a catalog error, or list the known codes",
		Example: `  smith error
  smith error API_RATE_LIMITED --format json
  smith error CONFIG_MISSING --docs-url https://example.com/docs/config --open-docs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.listCodes()
			}

			code := strings.ToUpper(args[0])
			e, ok := smitherr.Lookup(code)
			if !ok {
				return smitherr.InvalidInput("code", fmt.Sprintf("unknown error code %q", args[0]),
					smitherr.WithSuggestions("Run smith error without arguments to list known codes"))
			}
			if details != "" {
				e.TechnicalDetails = details
			}
			if docsURL != "" {
				if err := urlutil.Validate(docsURL); err != nil {
					return smitherr.InvalidInput("docs-url", err.Error(),
						smitherr.WithSuggestions("Pass an absolute http:// or https:// link"))
				}
				smitherr.WithDocumentation(docsURL)(e)
			}

			if err := smitherr.Display(a.formatter, e, a.format); err != nil {
				return err
			}
			if openDocs {
				return smitherr.OpenDocumentation(e, a.cfg.BrowserTarget())
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&details, "details", "", "Technical details to attach")
	flags.StringVar(&docsURL, "docs-url", "", "Documentation link to attach")
	flags.BoolVar(&openDocs, "open-docs", false, "Open the documentation link in a browser")
	return cmd
}

func (a *app) listCodes() error {
	codes := smitherr.Codes()
	rows := make([]cliout.Value, 0, len(codes))
	for _, code := range codes {
		e, _ := smitherr.Lookup(code)
		rows = append(rows, cliout.Mapping(
			cliout.F("code", cliout.String(code)),
			cliout.F("category", cliout.String(e.Category.String())),
			cliout.F("severity", cliout.String(string(smitherr.SeverityForCode(code)))),
			cliout.F("retry", cliout.Bool(smitherr.ShouldRetry(e))),
			cliout.F("retryDelay", cliout.String(smitherr.RetryDelay(e).String())),
		))
	}
	return a.formatter.Print(cliout.Mapping(
		cliout.F("count", cliout.Int(int64(len(rows)))),
		cliout.F("codes", cliout.Sequence(rows...)),
	).Named("ErrorCatalog"), a.format)
}
