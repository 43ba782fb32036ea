// Package report turns a loaded workbook, its column profiles and the
// required-field check into a human-readable report.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nconklindev/xlsxprobe/internal/checker"
	"github.com/nconklindev/xlsxprobe/internal/errors"
	"github.com/nconklindev/xlsxprobe/internal/types"
)

const DefaultPreviewRows = 5

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatTOON     Format = "toon"
)

// ParseFormat accepts text, markdown (or md) and toon, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "toon":
		return FormatTOON, nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unknown report format %q (want text, markdown or toon)", s))
	}
}

// Summary is everything the report shows, gathered once so each renderer
// only formats.
type Summary struct {
	Path     string
	Sheets   []types.SheetInfo
	Sheet    string
	Rows     int
	Columns  []string
	Preview  []types.Record
	Profiles []types.ColumnProfile
	Required []string
	Presence checker.Result
	Hints    []checker.SourceHint
}

func Build(wb *types.Workbook, profiles []types.ColumnProfile, required []string, presence checker.Result, hints []checker.SourceHint, previewRows int) *Summary {
	return &Summary{
		Path:     wb.Path,
		Sheets:   wb.Sheets,
		Sheet:    wb.Table.Sheet,
		Rows:     wb.Table.RowCount(),
		Columns:  wb.Table.Columns,
		Preview:  wb.Table.Head(previewRows),
		Profiles: profiles,
		Required: required,
		Presence: presence,
		Hints:    hints,
	}
}

func (s *Summary) SheetNames() []string {
	names := make([]string, 0, len(s.Sheets))
	for _, sh := range s.Sheets {
		names = append(names, sh.Name)
	}
	return names
}

type Options struct {
	NoColor bool
}

// Render writes the summary to w in the given format.
func Render(w io.Writer, s *Summary, format Format, opts Options) error {
	var out string
	switch format {
	case FormatText, "":
		out = renderText(w, s, opts)
	case FormatMarkdown:
		out = renderMarkdown(s)
	case FormatTOON:
		var err error
		out, err = renderTOON(s)
		if err != nil {
			return errors.SerializationFailed(err)
		}
	default:
		return errors.InvalidInput(fmt.Sprintf("unknown report format %q", format))
	}

	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

// quoted renders names the way the report lists them: ['a', 'b'].
func quoted(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "'" + n + "'"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
