package report

import (
	"strings"

	toon "github.com/mateuszkardas/toon-go"
)

func renderTOON(s *Summary) (string, error) {
	return toon.Marshal(toonPayload(s), nil)
}

// toonPayload flattens the summary into maps and scalars. List-valued
// fields are joined with "|" to keep rows tabular.
func toonPayload(s *Summary) map[string]interface{} {
	sheets := make([]map[string]interface{}, 0, len(s.Sheets))
	for _, sh := range s.Sheets {
		sheets = append(sheets, map[string]interface{}{
			"name":    sh.Name,
			"rows":    sh.Rows,
			"columns": sh.Columns,
			"visible": sh.Visible,
		})
	}

	columns := make([]map[string]interface{}, 0, len(s.Profiles))
	for idx, p := range s.Profiles {
		col := map[string]interface{}{
			"idx":        idx + 1,
			"name":       p.Name,
			"type":       p.Type,
			"null_count": p.NullCount,
			"mean":       "",
			"min":        "",
			"max":        "",
		}
		if p.Numeric != nil {
			col["mean"] = formatFloat(p.Numeric.Mean)
			col["min"] = formatFloat(p.Numeric.Min)
			col["max"] = formatFloat(p.Numeric.Max)
		}
		columns = append(columns, col)
	}

	required := make([]map[string]interface{}, 0, len(s.Presence.Fields))
	for _, fm := range s.Presence.Fields {
		required = append(required, map[string]interface{}{
			"field":   fm.Field,
			"status":  fm.Status.String(),
			"similar": strings.Join(fm.Columns, "|"),
		})
	}

	return map[string]interface{}{
		"file":     s.Path,
		"sheet":    s.Sheet,
		"rows":     s.Rows,
		"sheets":   sheets,
		"columns":  columns,
		"required": required,
		"missing":  strings.Join(s.Presence.Missing, "|"),
	}
}
