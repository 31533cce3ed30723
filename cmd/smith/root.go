package main

import (
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jongio/smith-core/cliout"
	"github.com/jongio/smith-core/config"
	"github.com/jongio/smith-core/logutil"
	"github.com/jongio/smith-core/smitherr"
	"github.com/jongio/smith-core/termprobe"
	"github.com/jongio/smith-core/version"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	platform termprobe.Platform
	// errPlatform probes stderr, where errors are displayed.
	errPlatform termprobe.Platform

	configPath  string
	debug       bool
	format      cliout.Format
	forceFormat cliout.Format
	color       string

	cfg         *config.Config
	formatter   *cliout.Formatter
	showMetrics bool

	registry   *prometheus.Registry
	errMetrics *smitherr.Metrics
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	reg := prometheus.NewRegistry()
	a := &app{
		registry:    reg,
		errMetrics:  smitherr.NewMetrics(reg),
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		platform:    termprobe.System(),
		errPlatform: termprobe.SystemFor(os.Stderr),
		format:      cliout.FormatAuto,
		cfg:         config.Default(),
	}
	if path, err := config.DefaultPath(); err == nil {
		a.configPath = path
	}
	return a
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "smith",
		Short: "Render structured output, progress and errors for the terminal",
		Long: `smith renders structured data in one of several output formats,
drives progress indicators for long operations and displays actionable errors.

Output adapts to where it goes: summaries on a terminal, JSON when piped.

Example:
  echo '{"success":true,"message":"done","count":3}' | smith render --format compact
  smith progress --style spinner --total 50
  smith error API_RATE_LIMITED --format json
  smith progress --fail --metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", a.configPath, "Path to the configuration file")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	flags.VarP(&a.format, "format", "o", "Output format (auto, json, summary, detailed, compact, minimal)")
	flags.Var(&a.forceFormat, "force-format", "Force an output format regardless of --format")
	flags.StringVar(&a.color, "color", "", "Color mode (auto, always, never)")
	flags.BoolVar(&a.showMetrics, "metrics", false, "Print collected metrics when the command ends")

	root.AddCommand(
		a.renderCommand(),
		a.progressCommand(),
		a.errorCommand(),
		version.NewCommand(a.versionInfo(), &a.format, a.newFormatter),
	)
	return root
}

// init loads configuration in precedence order: file, environment, flags.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnvironment(a.platform); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = string(a.format)
	} else {
		a.format = cfg.Format()
	}
	if flags.Changed("force-format") {
		cfg.Output.ForceFormat = string(a.forceFormat)
	}
	if flags.Changed("color") {
		cfg.Output.Color = a.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := cfg.LogConfig(a.stderr)
	if a.debug {
		logCfg.Level = logutil.LevelDebug
	}
	logutil.Setup(logCfg)

	a.formatter = a.newFormatter(a.stdout)
	logutil.NewLogger("cli").Debug("initialized",
		"config", a.configPath,
		"format", string(a.format),
		"command", cmd.Name())
	return nil
}

func (a *app) newFormatter(w io.Writer) *cliout.Formatter {
	return cliout.NewFormatter(a.cfg.FormatterOptions(w, a.platform))
}

func (a *app) versionInfo() *version.Info {
	info := version.New("smith")
	info.Version = Version
	info.GitCommit = GitCommit
	info.BuildDate = BuildDate
	return info.FillFromBuildInfo()
}

// execute runs the command line and displays any failure on stderr.
// With --metrics the collected samples follow on stdout.
func (a *app) execute(args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.Execute()
	if err != nil {
		a.errMetrics.Record(err)
		errFormatter := cliout.NewFormatter(a.cfg.FormatterOptions(a.stderr, a.errPlatform))
		_ = smitherr.Display(errFormatter, err, a.format)
	}
	if a.showMetrics && a.formatter != nil {
		if merr := printMetrics(a.formatter, a.registry, a.format); merr != nil {
			logutil.Warn("could not print metrics", "error", merr)
		}
	}
	return err
}
