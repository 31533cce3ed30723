package version

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jongio/smith-core/cliout"
)

// FormatterFunc builds the formatter used to print to w.
type FormatterFunc func(w io.Writer) *cliout.Formatter

// NewCommand creates a version command. format points at the caller's
// output format flag; nil means auto. newFormatter may be nil.
func NewCommand(info *Info, format *cliout.Format, newFormatter FormatterFunc) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Display %s version information", info.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return err
			}

			requested := cliout.FormatAuto
			if format != nil {
				requested = *format
			}

			var f *cliout.Formatter
			if newFormatter != nil {
				f = newFormatter(cmd.OutOrStdout())
			} else {
				f = cliout.NewFormatter(cliout.Options{Writer: cmd.OutOrStdout()})
			}

			v, err := cliout.ValueOf(info)
			if err != nil {
				return fmt.Errorf("failed to encode version info: %w", err)
			}
			return f.Print(v.Named(info.Name+" version"), requested)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print version number")
	return cmd
}
