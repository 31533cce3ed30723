package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jongio/smith-core/cliout"
	"github.com/jongio/smith-core/smitherr"
)

func (a *app) renderCommand() *cobra.Command {
	var text string
	var typeName string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render JSON from stdin, or free text, in the selected format",
		Example: `  echo '{"status":"ok","name":"web","count":5}' | smith render --format minimal
  smith render --text "Deployment   finished" --format compact`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("text") {
				return a.formatter.PrintText(text, a.format)
			}

			data, err := io.ReadAll(a.stdin)
			if err != nil {
				return smitherr.NewSystem("Failed to read standard input",
					smitherr.WithCause(err), smitherr.AsFatal(true))
			}
			v, err := cliout.ParseJSON(data)
			if err != nil {
				return smitherr.InvalidInput("stdin", fmt.Sprintf("not valid JSON: %v", err),
					smitherr.WithSuggestions(
						"Pipe a JSON document into smith render",
						"Use --text to render free text instead",
					))
			}
			if typeName != "" {
				v = v.Named(typeName)
			}
			return a.formatter.Print(v, a.format)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Render this free text instead of reading JSON")
	cmd.Flags().StringVar(&typeName, "type", "", "Type name shown in the detailed header")
	return cmd
}
