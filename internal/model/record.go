package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// RawRecord one decoded input row: column name -> raw cell value
type RawRecord map[string]any

// Value returns the trimmed string form of a column value.
// Missing and nil values yield "".
func (r RawRecord) Value(column string) string {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(CellString(v))
}

// CellString coerces a primitive cell value into its textual form.
// Integral floats are written without a fraction ("12", not "12.000000").
func CellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Table decoded tabular input: ordered header plus records
type Table struct {
	Header  []string    `json:"header"`
	Records []RawRecord `json:"records"`
}

// NewTable builds a table from records only; the header is taken from the
// first record in sorted key order so that lookups stay deterministic.
func NewTable(records []RawRecord) *Table {
	t := &Table{Records: records}
	if len(records) > 0 {
		for k := range records[0] {
			t.Header = append(t.Header, k)
		}
		sort.Strings(t.Header)
	}
	return t
}
