// Package cli wires configuration, logging and the inspection run behind a
// single cobra command.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/nconklindev/xlsxprobe/internal/config"
	"github.com/nconklindev/xlsxprobe/internal/errors"
	"github.com/nconklindev/xlsxprobe/internal/logging"
	"github.com/nconklindev/xlsxprobe/internal/probe"
	"github.com/nconklindev/xlsxprobe/internal/report"
	"github.com/nconklindev/xlsxprobe/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type options struct {
	output       string
	sampleRows   int
	previewRows  int
	format       string
	required     string
	detectHeader bool
	noColor      bool
	interactive  bool
	verbose      bool
}

// Execute runs the root command and exits non-zero only when the command
// itself could not run. Inspection failures are reported on stdout.
func Execute(info BuildInfo) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand(info).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func NewRootCommand(info BuildInfo) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "xlsxprobe [path]",
		Short: "Inspect a spreadsheet and check it carries the required touchpoint columns",
		Long: `Inspect a spreadsheet export: list its sheets, preview and profile the
first sheet, check that the required attribution columns are present and save
a JSON sample of the first rows.

Example: xlsxprobe exports/touchpoints.xlsx -o sample.json --required sessionId,channel`,
		Args:          cobra.MaximumNArgs(1),
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args, opts)
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel, opts.verbose)

			if opts.interactive {
				p := tea.NewProgram(ui.InitialModel(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
				if _, err := p.Run(); err != nil {
					return errors.Wrap(err, "interactive session")
				}
				return nil
			}

			out := cmd.OutOrStdout()
			if _, err := probe.Run(cmd.Context(), cfg, out); err != nil {
				log.WithError(err).WithField("code", errors.GetCode(err)).Debug("inspection failed")
				fmt.Fprintln(out, probe.ErrorMessage(err))
			}
			return nil
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("xlsxprobe %s\ncommit: %s\nbuilt: %s\n", info.Version, info.Commit, info.Date))

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Path of the JSON sample file")
	flags.IntVarP(&opts.sampleRows, "sample-rows", "n", 0, "Number of rows to export to the sample file")
	flags.IntVar(&opts.previewRows, "preview-rows", 0, "Number of rows shown in the report preview")
	flags.StringVarP(&opts.format, "format", "f", "", "Report format: text, markdown or toon")
	flags.StringVar(&opts.required, "required", "", "Comma-separated list of required columns")
	flags.BoolVar(&opts.detectHeader, "detect-header", false, "Search the first rows for the header instead of using row 1")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colors in the text report")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Pick the file and browse the report in a terminal UI")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// loadConfig layers flags that were explicitly set on top of the
// environment configuration.
func loadConfig(cmd *cobra.Command, args []string, opts options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if len(args) == 1 {
		cfg.InputPath = args[0]
	}
	if flags.Changed("output") {
		cfg.SamplePath = opts.output
	}
	if flags.Changed("sample-rows") {
		cfg.SampleRows = opts.sampleRows
	}
	if flags.Changed("preview-rows") {
		cfg.PreviewRows = opts.previewRows
	}
	if flags.Changed("format") {
		format, err := report.ParseFormat(opts.format)
		if err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, err, "--format")
		}
		cfg.Format = format
	}
	if flags.Changed("required") {
		cfg.RequiredFields = config.ParseFieldList(opts.required)
	}
	if flags.Changed("detect-header") {
		cfg.DetectHeader = opts.detectHeader
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.noColor
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
