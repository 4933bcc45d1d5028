package parser

import (
	"errors"
	"testing"

	"boardseq/internal/model"
)

func TestSeatParser_ValidLabels(t *testing.T) {
	t.Parallel()

	p := NewSeatParser(model.DefaultLayout(), 25)
	cases := []struct {
		token  string
		letter byte
		row    int
	}{
		{"A1", 'A', 1},
		{"c12", 'C', 12},
		{"c007", 'C', 7},
		{"A03", 'A', 3},
		{"F25", 'F', 25},
		{"A 3", 'A', 3},
		{"  b4  ", 'B', 4},
	}
	for _, tc := range cases {
		seat, err := p.Parse(tc.token, "1")
		if err != nil {
			t.Fatalf("Parse(%q) err=%v", tc.token, err)
		}
		if seat.Letter != tc.letter || seat.Row != tc.row {
			t.Fatalf("Parse(%q)=%c%d, want %c%d", tc.token, seat.Letter, seat.Row, tc.letter, tc.row)
		}
	}
}

func TestSeatParser_Rejections(t *testing.T) {
	t.Parallel()

	p := NewSeatParser(model.DefaultLayout(), 25)
	cases := []struct {
		token string
		kind  SeatErrorKind
		want  string
	}{
		{"12", InvalidLabel, "Booking 7: invalid seat label '12'"},
		{"A", InvalidLabel, "Booking 7: invalid seat label 'A'"},
		{"AB1", InvalidLabel, "Booking 7: invalid seat label 'AB1'"},
		{"A0", InvalidLabel, "Booking 7: invalid seat label 'A0'"},
		{"A1B", InvalidLabel, "Booking 7: invalid seat label 'A1B'"},
		{"A26", InvalidNumber, "Booking 7: invalid seat number 'A26'"},
		{"A99999999999999999999", InvalidNumber, "Booking 7: invalid seat number 'A99999999999999999999'"},
		{"Z9", OutOfRange, "Booking 7: Out of bound row range: Z9"},
		{"g1", OutOfRange, "Booking 7: Out of bound row range: g1"},
	}
	for _, tc := range cases {
		_, err := p.Parse(tc.token, "7")
		var se *SeatError
		if !errors.As(err, &se) {
			t.Fatalf("Parse(%q) err=%v, want *SeatError", tc.token, err)
		}
		if se.Kind != tc.kind {
			t.Fatalf("Parse(%q) kind=%v, want %v", tc.token, se.Kind, tc.kind)
		}
		if se.Error() != tc.want {
			t.Fatalf("Parse(%q) warning=%q, want %q", tc.token, se.Error(), tc.want)
		}
	}
}

func TestSeatParser_RowCheckedBeforeLetter(t *testing.T) {
	t.Parallel()

	p := NewSeatParser(model.DefaultLayout(), 25)
	_, err := p.Parse("Z99", "3")
	if err == nil || err.Error() != "Booking 3: invalid seat number 'Z99'" {
		t.Fatalf("Parse(Z99) err=%v", err)
	}
}

func TestSeatParser_EmptyToken(t *testing.T) {
	t.Parallel()

	p := NewSeatParser(model.DefaultLayout(), 0)
	if p.MaxRow() != DefaultMaxRow {
		t.Fatalf("MaxRow=%d, want %d", p.MaxRow(), DefaultMaxRow)
	}
	if _, err := p.Parse("   ", "1"); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("err=%v, want ErrEmptyToken", err)
	}
}

func TestSeatKey(t *testing.T) {
	t.Parallel()

	p := NewSeatParser(model.DefaultLayout(), 40)
	seat, err := p.Parse("d030", "1")
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if got := seat.Key(); got != "D30" {
		t.Fatalf("Key=%q, want D30", got)
	}
	if seat.Raw != "d030" {
		t.Fatalf("Raw=%q", seat.Raw)
	}
}
