// Package probe runs one inspection: load the workbook, profile it, check
// the required fields, print the report and export the JSON sample.
package probe

import (
	"context"
	"fmt"
	"io"

	"github.com/nconklindev/xlsxprobe/internal/checker"
	"github.com/nconklindev/xlsxprobe/internal/config"
	"github.com/nconklindev/xlsxprobe/internal/errors"
	"github.com/nconklindev/xlsxprobe/internal/loader"
	"github.com/nconklindev/xlsxprobe/internal/profile"
	"github.com/nconklindev/xlsxprobe/internal/report"
	"github.com/nconklindev/xlsxprobe/internal/sample"
	"github.com/nconklindev/xlsxprobe/internal/types"

	log "github.com/sirupsen/logrus"
)

// Outcome is what a run produced, for callers that want more than the
// printed report.
type Outcome struct {
	Workbook      *types.Workbook
	Summary       *report.Summary
	SamplePath    string
	SampleRecords int
}

// Analyze loads the input and builds the summary without writing anything.
func Analyze(ctx context.Context, cfg *config.Config) (*report.Summary, *types.Workbook, error) {
	logger := log.WithField("path", cfg.InputPath)

	logger.Debug("loading workbook")
	wb, err := loader.Load(cfg.InputPath, loader.Options{DetectHeader: cfg.DetectHeader})
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	logger.WithFields(log.Fields{
		"sheet":   wb.Table.Sheet,
		"rows":    wb.Table.RowCount(),
		"columns": wb.Table.ColumnCount(),
	}).Info("workbook loaded")

	profiles := profile.Columns(wb.Table)
	presence, err := checker.Check(cfg.RequiredFields, wb.Table.Columns)
	if err != nil {
		return nil, nil, err
	}
	hints := checker.SourceHints(presence, wb.Table.Columns)

	logger.WithFields(log.Fields{
		"present": len(presence.Present),
		"similar": len(presence.Similar),
		"missing": len(presence.Missing),
	}).Debug("required fields checked")

	return report.Build(wb, profiles, cfg.RequiredFields, presence, hints, cfg.PreviewRows), wb, nil
}

// Run performs a full inspection and writes the report to w.
func Run(ctx context.Context, cfg *config.Config, w io.Writer) (*Outcome, error) {
	summary, wb, err := Analyze(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := report.Render(w, summary, cfg.Format, report.Options{NoColor: cfg.NoColor}); err != nil {
		return nil, errors.Wrap(err, "rendering report")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	written, err := sample.Write(cfg.SamplePath, wb.Table, cfg.SampleRows)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "\nSample of %d records saved to %s\n", written, cfg.SamplePath)

	return &Outcome{
		Workbook:      wb,
		Summary:       summary,
		SamplePath:    cfg.SamplePath,
		SampleRecords: written,
	}, nil
}

// ErrorMessage is the single line printed when a run fails.
func ErrorMessage(err error) string {
	return fmt.Sprintf("error reading file: %v", err)
}
