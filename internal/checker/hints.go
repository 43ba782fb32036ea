package checker

import "strings"

// sourceColumns maps a required field to the raw export column it is
// normally derived from.
var sourceColumns = map[string]string{
	"channel":    "utm_source",
	"campaign":   "utm_campaign",
	"medium":     "utm_medium",
	"content":    "utm_content",
	"created_at": "createdAt",
	"sessionId":  "sessionId",
}

type SourceHint struct {
	Field  string
	Source string // expected raw column name
	Column string // the column actually found
}

// SourceHints returns, for every field that is not present, the raw source
// column it maps from when the table carries that column. Matching is
// case-insensitive. Hints are advisory and never change a field's status.
func SourceHints(res Result, present []string) []SourceHint {
	var hints []SourceHint
	for _, fm := range res.Fields {
		if fm.Status == StatusPresent {
			continue
		}
		source, ok := sourceColumns[fm.Field]
		if !ok {
			continue
		}
		for _, col := range present {
			if strings.EqualFold(col, source) {
				hints = append(hints, SourceHint{Field: fm.Field, Source: source, Column: col})
				break
			}
		}
	}
	return hints
}
