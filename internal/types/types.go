package types

import (
	"math"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// DateLayout is how dates are stringified in reports and the JSON sample.
const DateLayout = "2006-01-02 15:04:05"

type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindDate
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a single cell after type inference. A date parsed from text keeps
// its original spelling in Str.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Time time.Time
	Bool bool
}

func Null() Value { return Value{Kind: KindNull} }
func String(s string) Value { return Value{Kind: KindString, Str: s} }
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String returns the display form. Null renders as an empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate:
		if v.Str != "" {
			return v.Str
		}
		return v.Time.Format(DateLayout)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// MarshalJSON emits native JSON for strings, numbers, booleans and null, and
// falls back to the display string for dates and non-finite numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.String())
	}
}

// Table is the first sheet of a workbook: ordered columns and ordered rows.
// Every row has exactly len(Columns) values.
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]Value
}

func (t *Table) RowCount() int { return len(t.Rows) }
func (t *Table) ColumnCount() int { return len(t.Columns) }

// Record returns row i as an ordered record.
func (t *Table) Record(i int) Record {
	return Record{Columns: t.Columns, Values: t.Rows[i]}
}

// Head returns up to n records from the top of the table.
func (t *Table) Head(n int) []Record {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, t.Record(i))
	}
	return out
}

// Record is one row keyed by column name. It marshals as a JSON object whose
// keys follow column order.
type Record struct {
	Columns []string
	Values  []Value
}

func (r Record) Get(column string) (Value, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return Value{}, false
}

func (r Record) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')

		val := Null()
		if i < len(r.Values) {
			val = r.Values[i]
		}
		raw, err := val.MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(raw)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

type SheetInfo struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Visible bool   `json:"visible"`
}

// Workbook is what the loader hands back: every sheet's shape plus the parsed
// first sheet.
type Workbook struct {
	Path   string
	Sheets []SheetInfo
	Table  *Table
}

func (w *Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		names = append(names, s.Name)
	}
	return names
}

type NumericSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

const (
	ColumnTypeEmpty = "empty"
	ColumnTypeMixed = "mixed"
)

type ColumnProfile struct {
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	NullCount int             `json:"null_count"`
	NonNull   int             `json:"non_null"`
	Numeric   *NumericSummary `json:"numeric,omitempty"`
}
