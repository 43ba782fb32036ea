package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const maxCellWidth = 24

func renderText(w io.Writer, s *Summary, opts Options) string {
	st := newStyles(lipgloss.NewRenderer(w), opts.NoColor)
	var b strings.Builder

	b.WriteString(st.Title.Render("Spreadsheet report: " + s.Path))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Sheets available: %s\n", quoted(s.SheetNames())))
	if len(s.Sheets) > 0 {
		rows := make([][]string, 0, len(s.Sheets))
		for _, sh := range s.Sheets {
			visible := "yes"
			if !sh.Visible {
				visible = "no"
			}
			rows = append(rows, []string{sh.Name, strconv.Itoa(sh.Rows), strconv.Itoa(sh.Columns), visible})
		}
		b.WriteString(st.table([]string{"Sheet", "Rows", "Columns", "Visible"}, rows))
		b.WriteString("\n")
	}

	b.WriteString(st.Heading.Render(fmt.Sprintf("Table info (sheet '%s')", s.Sheet)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(s.Columns)))

	b.WriteString(st.Heading.Render("Available columns"))
	b.WriteString("\n")
	if len(s.Columns) == 0 {
		b.WriteString(st.Muted.Render("(no columns)"))
		b.WriteString("\n")
	}
	for i, col := range s.Columns {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, col))
	}

	b.WriteString(st.Heading.Render(fmt.Sprintf("First %d rows", len(s.Preview))))
	b.WriteString("\n")
	if len(s.Preview) == 0 || len(s.Columns) == 0 {
		b.WriteString(st.Muted.Render("(no rows)"))
		b.WriteString("\n")
	} else {
		headers := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			headers[i] = truncate(c, maxCellWidth)
		}
		rows := make([][]string, 0, len(s.Preview))
		for _, rec := range s.Preview {
			row := make([]string, len(rec.Values))
			for i, v := range rec.Values {
				if v.IsNull() {
					row[i] = "NaN"
					continue
				}
				row[i] = truncate(v.String(), maxCellWidth)
			}
			rows = append(rows, row)
		}
		b.WriteString(st.table(headers, rows))
		b.WriteString("\n")
	}

	if len(s.Profiles) > 0 {
		b.WriteString(st.Heading.Render("Data types"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(s.Profiles))
		for _, p := range s.Profiles {
			rows = append(rows, []string{p.Name, p.Type})
		}
		b.WriteString(st.table([]string{"Column", "Type"}, rows))
		b.WriteString("\n")

		b.WriteString(st.Heading.Render("Null values"))
		b.WriteString("\n")
		rows = rows[:0]
		for _, p := range s.Profiles {
			rows = append(rows, []string{p.Name, strconv.Itoa(p.NullCount)})
		}
		b.WriteString(st.table([]string{"Column", "Nulls"}, rows))
		b.WriteString("\n")

		rows = rows[:0]
		for _, p := range s.Profiles {
			if n := p.Numeric; n != nil {
				rows = append(rows, []string{
					p.Name, strconv.Itoa(n.Count), formatFloat(n.Mean), formatFloat(n.StdDev),
					formatFloat(n.Min), formatFloat(n.Median), formatFloat(n.Max),
				})
			}
		}
		if len(rows) > 0 {
			b.WriteString(st.Heading.Render("Numeric columns"))
			b.WriteString("\n")
			b.WriteString(st.table([]string{"Column", "Count", "Mean", "Std", "Min", "Median", "Max"}, rows))
			b.WriteString("\n")
		}
	}

	b.WriteString(st.Heading.Render("Required fields"))
	b.WriteString("\n")
	for _, sim := range s.Presence.Similar {
		b.WriteString(st.Warning.Render(fmt.Sprintf("Field '%s' not found, but similar fields found: %s", sim.Field, quoted(sim.Columns))))
		b.WriteString("\n")
	}
	if s.Presence.AllPresent() {
		b.WriteString(st.Success.Render("All required fields are present!"))
	} else {
		b.WriteString(st.Error.Render("Required fields not found: " + quoted(s.Presence.Missing)))
	}
	b.WriteString("\n")

	if len(s.Hints) > 0 {
		b.WriteString(st.Heading.Render("Source columns"))
		b.WriteString("\n")
		for _, h := range s.Hints {
			b.WriteString(fmt.Sprintf("'%s' is normally derived from '%s', found as '%s'\n", h.Field, h.Source, h.Column))
		}
	}

	return b.String()
}

func (st styles) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			return st.Cell
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

// formatFloat prints up to four decimals without trailing zeros.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 4, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
