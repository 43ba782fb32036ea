// Package profile computes per-column facts about a loaded table: the
// inferred type, how many values are null and, for numeric columns, a small
// statistical summary.
package profile

import (
	"github.com/nconklindev/xlsxprobe/internal/types"

	"github.com/montanaflynn/stats"
)

// Columns profiles every column of table, in column order.
func Columns(table *types.Table) []types.ColumnProfile {
	profiles := make([]types.ColumnProfile, len(table.Columns))
	for c, name := range table.Columns {
		profiles[c] = column(table, c, name)
	}
	return profiles
}

// NullCounts returns the null count of each column, in column order.
func NullCounts(table *types.Table) []int {
	counts := make([]int, len(table.Columns))
	for _, row := range table.Rows {
		for c, v := range row {
			if v.IsNull() {
				counts[c]++
			}
		}
	}
	return counts
}

func column(table *types.Table, c int, name string) types.ColumnProfile {
	p := types.ColumnProfile{Name: name}

	kind := types.KindNull
	mixed := false
	var numbers []float64
	for _, row := range table.Rows {
		v := row[c]
		if v.IsNull() {
			p.NullCount++
			continue
		}
		p.NonNull++
		if kind == types.KindNull {
			kind = v.Kind
		} else if kind != v.Kind {
			mixed = true
		}
		if v.Kind == types.KindNumber {
			numbers = append(numbers, v.Num)
		}
	}

	switch {
	case p.NonNull == 0:
		p.Type = types.ColumnTypeEmpty
	case mixed:
		p.Type = types.ColumnTypeMixed
	default:
		p.Type = kind.String()
	}

	if p.Type == types.KindNumber.String() {
		p.Numeric = summarize(numbers)
	}
	return p
}

func summarize(data stats.Float64Data) *types.NumericSummary {
	if len(data) == 0 {
		return nil
	}
	s := &types.NumericSummary{Count: len(data)}
	s.Mean, _ = stats.Mean(data)
	s.StdDev, _ = stats.StandardDeviationSample(data)
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	s.Median, _ = stats.Median(data)
	return s
}
