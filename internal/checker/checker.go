// Package checker decides, for a list of required column names, which are
// present in a table, which only have a loosely similar column, and which
// are missing.
package checker

import (
	"strings"

	"github.com/nconklindev/xlsxprobe/internal/errors"
)

// RequiredFields are the columns a touchpoint export is expected to carry.
var RequiredFields = []string{"sessionId", "channel", "created_at", "campaign", "medium", "content"}

type Status int

const (
	StatusPresent Status = iota
	StatusSimilar
	StatusMissing
)

func (s Status) String() string {
	switch s {
	case StatusPresent:
		return "present"
	case StatusSimilar:
		return "similar-found"
	default:
		return "missing"
	}
}

type FieldMatch struct {
	Field   string
	Status  Status
	Columns []string // similar columns, only for StatusSimilar
}

type SimilarMatch struct {
	Field   string
	Columns []string
}

// Result keeps every required field in its original order. Present, Similar
// and Missing partition the required list.
type Result struct {
	Fields  []FieldMatch
	Present []string
	Similar []SimilarMatch
	Missing []string
}

// AllPresent reports whether no field ended up missing. Similar-found fields
// do not count as missing.
func (r Result) AllPresent() bool {
	return len(r.Missing) == 0
}

// SimilarMap returns the similar matches keyed by required field.
func (r Result) SimilarMap() map[string][]string {
	out := make(map[string][]string, len(r.Similar))
	for _, s := range r.Similar {
		out[s.Field] = s.Columns
	}
	return out
}

// Check classifies each required field against the present columns. A field
// is present on an exact, case-sensitive match. Otherwise every column whose
// lowercase form contains the lowercase field is a similar match. A field
// with neither is missing.
func Check(required, present []string) (Result, error) {
	if len(required) == 0 {
		return Result{}, errors.InvalidInput("required field list is empty")
	}

	exact := make(map[string]struct{}, len(present))
	lowered := make([]string, len(present))
	for i, col := range present {
		exact[col] = struct{}{}
		lowered[i] = strings.ToLower(col)
	}

	res := Result{Fields: make([]FieldMatch, 0, len(required))}
	for _, field := range required {
		if _, ok := exact[field]; ok {
			res.Fields = append(res.Fields, FieldMatch{Field: field, Status: StatusPresent})
			res.Present = append(res.Present, field)
			continue
		}

		needle := strings.ToLower(field)
		var similar []string
		for i, col := range lowered {
			if strings.Contains(col, needle) {
				similar = append(similar, present[i])
			}
		}

		if len(similar) > 0 {
			res.Fields = append(res.Fields, FieldMatch{Field: field, Status: StatusSimilar, Columns: similar})
			res.Similar = append(res.Similar, SimilarMatch{Field: field, Columns: similar})
			continue
		}

		res.Fields = append(res.Fields, FieldMatch{Field: field, Status: StatusMissing})
		res.Missing = append(res.Missing, field)
	}

	return res, nil
}
