package report

import (
	"fmt"
	"strconv"
	"strings"
)

func renderMarkdown(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Spreadsheet Report\n\n")
	b.WriteString(fmt.Sprintf("File: `%s`\n\n", s.Path))

	b.WriteString("## Sheets\n\n")
	b.WriteString("| Name | Rows | Columns | Visible |\n")
	b.WriteString("| --- | ---: | ---: | --- |\n")
	for _, sh := range s.Sheets {
		b.WriteString(fmt.Sprintf("| %s | %d | %d | %t |\n", escapeMarkdownCell(sh.Name), sh.Rows, sh.Columns, sh.Visible))
	}

	b.WriteString(fmt.Sprintf("\n## Table `%s`\n\n", escapeMarkdownCell(s.Sheet)))
	b.WriteString(fmt.Sprintf("- Rows: %d\n", s.Rows))
	b.WriteString(fmt.Sprintf("- Columns: %d\n", len(s.Columns)))

	if len(s.Profiles) > 0 {
		b.WriteString("\n### Columns\n\n")
		b.WriteString("| # | Name | Type | Nulls | Non-null |\n")
		b.WriteString("| ---: | --- | --- | ---: | ---: |\n")
		for idx, p := range s.Profiles {
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %d | %d |\n", idx+1, escapeMarkdownCell(p.Name), p.Type, p.NullCount, p.NonNull))
		}
	}

	if len(s.Preview) > 0 && len(s.Columns) > 0 {
		b.WriteString(fmt.Sprintf("\n### First %d rows\n\n", len(s.Preview)))
		writeMarkdownRow(&b, s.Columns)
		sep := make([]string, len(s.Columns))
		for i := range sep {
			sep[i] = "---"
		}
		writeMarkdownRow(&b, sep)
		for _, rec := range s.Preview {
			cells := make([]string, len(rec.Values))
			for i, v := range rec.Values {
				cells[i] = v.String()
			}
			writeMarkdownRow(&b, cells)
		}
	}

	numeric := false
	for _, p := range s.Profiles {
		if p.Numeric == nil {
			continue
		}
		if !numeric {
			b.WriteString("\n### Numeric columns\n\n")
			b.WriteString("| Name | Count | Mean | Std | Min | Median | Max |\n")
			b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: | ---: |\n")
			numeric = true
		}
		n := p.Numeric
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			escapeMarkdownCell(p.Name), strconv.Itoa(n.Count), formatFloat(n.Mean), formatFloat(n.StdDev),
			formatFloat(n.Min), formatFloat(n.Median), formatFloat(n.Max)))
	}

	b.WriteString("\n## Required fields\n\n")
	b.WriteString("| Field | Status | Similar columns |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, fm := range s.Presence.Fields {
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			escapeMarkdownCell(fm.Field), fm.Status, escapeMarkdownCell(strings.Join(fm.Columns, ", "))))
	}
	b.WriteString("\n")
	if s.Presence.AllPresent() {
		b.WriteString("All required fields are present.\n")
	} else {
		b.WriteString(fmt.Sprintf("Missing: %s\n", strings.Join(s.Presence.Missing, ", ")))
	}

	if len(s.Hints) > 0 {
		b.WriteString("\n### Source columns\n\n")
		for _, h := range s.Hints {
			b.WriteString(fmt.Sprintf("- `%s` ← `%s` (found as `%s`)\n", h.Field, h.Source, h.Column))
		}
	}

	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	for i, c := range cells {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(escapeMarkdownCell(c))
	}
	b.WriteString(" |\n")
}

func escapeMarkdownCell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", " ")
	return v
}
