package model

import "testing"

func TestRawRecordValue(t *testing.T) {
	t.Parallel()

	r := RawRecord{
		"id":    "  42 ",
		"float": 12.0,
		"frac":  1.5,
		"int":   7,
		"nil":   nil,
		"bool":  true,
	}
	cases := map[string]string{
		"id":      "42",
		"float":   "12",
		"frac":    "1.5",
		"int":     "7",
		"nil":     "",
		"bool":    "true",
		"missing": "",
	}
	for col, want := range cases {
		if got := r.Value(col); got != want {
			t.Fatalf("Value(%q)=%q, want %q", col, got, want)
		}
	}
}

func TestNewTableSortsHeader(t *testing.T) {
	t.Parallel()

	tbl := NewTable([]RawRecord{{"Seats": "A1", "Booking": "1"}})
	if len(tbl.Header) != 2 || tbl.Header[0] != "Booking" || tbl.Header[1] != "Seats" {
		t.Fatalf("Header=%v", tbl.Header)
	}
	if len(NewTable(nil).Header) != 0 {
		t.Fatalf("expected empty header")
	}
}
