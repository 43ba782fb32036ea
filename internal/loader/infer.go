package loader

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nconklindev/xlsxprobe/internal/types"

	"github.com/xuri/excelize/v2"
)

// naValues are the cell texts read as null, on top of the empty string.
var naValues = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

var (
	plainNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	dateShape   = regexp.MustCompile(`\d[/:]\d|\d-\d|\d-[A-Za-z]|[A-Za-z]-\d`)

	// Layouts tried, in order, on text cells.
	dateLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"2006/01/02 15:04:05",
		"2006/01/02",
	}
)

// inferXLSXCell types a cell from its stored type and its formatted and raw
// text. Text cells stay strings whatever they contain. Excel stores dates as
// serial numbers, so a numeric raw value whose formatted text looks like a
// date is converted back to a time.
func inferXLSXCell(formatted, raw string, stored excelize.CellType, date1904 bool) types.Value {
	if formatted == "" && raw == "" {
		return types.Null()
	}

	switch stored {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return textValue(formatted)
	case excelize.CellTypeBool:
		switch formatted {
		case "TRUE":
			return types.Bool(true)
		case "FALSE":
			return types.Bool(false)
		}
		return textValue(formatted)
	case excelize.CellTypeError:
		return textValue(formatted)
	}

	trimmedRaw := strings.TrimSpace(raw)
	if plainNumber.MatchString(trimmedRaw) {
		n, err := strconv.ParseFloat(trimmedRaw, 64)
		if err == nil {
			if !isNumericText(formatted) && dateShape.MatchString(formatted) {
				if t, err := excelize.ExcelDateToTime(n, date1904); err == nil {
					return types.Date(t.Round(time.Millisecond))
				}
			}
			if isNumericText(formatted) {
				return types.Number(n)
			}
		}
	}

	// Formula results with a text value are stored as text too.
	if stored == excelize.CellTypeFormula {
		return textValue(formatted)
	}
	return inferString(formatted)
}

// textValue keeps s as a string unless it is empty or an NA marker.
func textValue(s string) types.Value {
	if s == "" || naValues[s] {
		return types.Null()
	}
	return types.String(s)
}

// inferText types a CSV field.
func inferText(s string) types.Value {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "true") {
		return types.Bool(true)
	}
	if strings.EqualFold(trimmed, "false") {
		return types.Bool(false)
	}
	if plainNumber.MatchString(trimmed) {
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return types.Number(n)
		}
	}
	return inferString(s)
}

// inferString handles text that is not a number: nulls, ISO-like dates,
// everything else stays a string. Dates parsed from text keep their
// original spelling for display.
func inferString(s string) types.Value {
	if s == "" || naValues[s] {
		return types.Null()
	}
	if t, ok := parseDate(strings.TrimSpace(s)); ok {
		v := types.Date(t)
		v.Str = s
		return v
	}
	return types.String(s)
}

func parseDate(s string) (time.Time, bool) {
	if len(s) < len("2006-01-02") || !dateShape.MatchString(s) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isNumericText reports whether a formatted cell reads as a number once
// grouping separators, currency and percent signs are removed.
func isNumericText(s string) bool {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '%', '$', '€', '£', '¥', ' ', '(', ')', '\u00a0':
			return -1
		}
		return r
	}, s)
	cleaned = strings.TrimPrefix(cleaned, "R")
	return cleaned != "" && plainNumber.MatchString(cleaned)
}
