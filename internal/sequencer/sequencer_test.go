package sequencer

import (
	"reflect"
	"sync"
	"testing"

	"boardseq/internal/model"
)

func buildTable(rows ...[2]any) *model.Table {
	t := &model.Table{Header: []string{"Booking_ID", "Seats"}}
	for _, r := range rows {
		t.Records = append(t.Records, model.RawRecord{"Booking_ID": r[0], "Seats": r[1]})
	}
	return t
}

func newDefault(t *testing.T) *Sequencer {
	t.Helper()
	s, err := New(DefaultOptions())
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	return s
}

func newWith(t *testing.T, edit func(*Options)) *Sequencer {
	t.Helper()
	opts := DefaultOptions()
	edit(&opts)
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	return s
}

func bookingIDs(entries []model.SequenceEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.BookingID)
	}
	return ids
}

func expectIDs(t *testing.T, res model.Result, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if got := bookingIDs(res.Sequence); !reflect.DeepEqual(got, want) {
		t.Fatalf("sequence=%v, want %v", got, want)
	}
}

func expectWarnings(t *testing.T, res model.Result, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if !reflect.DeepEqual(res.Warnings, want) {
		t.Fatalf("warnings=%q, want %q", res.Warnings, want)
	}
}

func TestRun_FarthestRowFirst(t *testing.T) {
	t.Parallel()

	res := newDefault(t).Run(buildTable(
		[2]any{"1", "A1,B1"},
		[2]any{"2", "F5"},
	))

	want := []model.SequenceEntry{
		{Seq: 1, BookingID: "2", Reason: "window, farthestRow=5"},
		{Seq: 2, BookingID: "1", Reason: "window, farthestRow=1"},
	}
	if !reflect.DeepEqual(res.Sequence, want) {
		t.Fatalf("sequence=%+v, want %+v", res.Sequence, want)
	}
	expectWarnings(t, res)
	if res.RowRange != "A-F" || !reflect.DeepEqual(res.WindowLetters, []string{"A", "F"}) {
		t.Fatalf("rowRange=%q windowLetters=%v", res.RowRange, res.WindowLetters)
	}
}

func TestRun_ClassBreaksRowTie(t *testing.T) {
	t.Parallel()

	res := newDefault(t).Run(buildTable(
		[2]any{"10", "C9"},
		[2]any{"2", "A9"},
	))

	expectIDs(t, res, "2", "10")
	if got := res.Sequence[1].Reason; got != "aisle, farthestRow=9" {
		t.Fatalf("reason=%q", got)
	}
}

func TestRun_DuplicateSeatIsAdvisory(t *testing.T) {
	t.Parallel()

	res := newDefault(t).Run(buildTable(
		[2]any{"1", "B5"},
		[2]any{"2", "B5,A1"},
	))

	expectWarnings(t, res, "Seat B5 is duplicated in Booking 1 and 2")
	expectIDs(t, res, "1", "2")
}

func TestRun_EmptySheet(t *testing.T) {
	t.Parallel()

	s := newDefault(t)
	for _, table := range []*model.Table{nil, {Header: []string{"Booking_ID", "Seats"}}} {
		res := s.Run(table)
		if res.Sequence == nil || len(res.Sequence) != 0 {
			t.Fatalf("sequence=%#v, want empty non-nil", res.Sequence)
		}
		expectWarnings(t, res, WarnEmptySheet)
	}
}

func TestRun_BookingWithOnlyBadSeatsIsExcluded(t *testing.T) {
	t.Parallel()

	res := newDefault(t).Run(buildTable(
		[2]any{"3", "Z99"},
		[2]any{"4", "A2"},
	))

	expectIDs(t, res, "4")
	expectWarnings(t, res,
		"Booking 3: invalid seat number 'Z99'",
		"Booking 3 skipped: no valid seats",
	)
}

func TestRun_SkipWarningCanBeDisabled(t *testing.T) {
	t.Parallel()

	s := newWith(t, func(o *Options) { o.WarnEmptyBookings = false })
	res := s.Run(buildTable([2]any{"3", "Z9"}))
	expectIDs(t, res)
	expectWarnings(t, res, "Booking 3: Out of bound row range: Z9")
}

func TestRun_MissingColumn(t *testing.T) {
	t.Parallel()

	table := &model.Table{
		Header:  []string{"Booking_ID", "Passenger"},
		Records: []model.RawRecord{{"Booking_ID": "1", "Passenger": "x"}},
	}
	res := newDefault(t).Run(table)
	expectIDs(t, res)
	expectWarnings(t, res, WarnMissingColumn)
}

func TestRun_HeaderFromRecords(t *testing.T) {
	t.Parallel()

	table := &model.Table{Records: []model.RawRecord{
		{"booking id": "1", "seat list": "C2"},
		{"booking id": "2", "seat list": "C4"},
	}}
	expectIDs(t, newDefault(t).Run(table), "2", "1")
}

func TestRun_RowLevelWarnings(t *testing.T) {
	t.Parallel()

	res := newDefault(t).Run(buildTable(
		[2]any{"", "A1"},
		[2]any{"5", "  "},
		[2]any{"6", nil},
		[2]any{"7", "a1;;A01|b2, ,x"},
	))

	expectWarnings(t, res,
		"Row 2: missing BookingID or Seats",
		"Row 3: missing BookingID or Seats",
		"Row 4: missing BookingID or Seats",
		"Booking 7: invalid seat label 'x'",
	)
	expectIDs(t, res, "7")
	if got := res.Sequence[0].Reason; got != "middle, farthestRow=2" {
		t.Fatalf("reason=%q", got)
	}
}

func TestRun_RowsWithSameBookingAreMerged(t *testing.T) {
	t.Parallel()

	res := newDefault(t).Run(buildTable(
		[2]any{"1", "C2"},
		[2]any{"2", "C3"},
		[2]any{"1", "A8"},
	))

	expectIDs(t, res, "1", "2")
	expectWarnings(t, res)
}

func TestRun_NumericCellValues(t *testing.T) {
	t.Parallel()

	res := newDefault(t).Run(buildTable(
		[2]any{12.0, "A3"},
		[2]any{int64(9), "A3"},
	))
	expectIDs(t, res, "9", "12")
}

func TestRun_DerivedLayout(t *testing.T) {
	t.Parallel()

	s := newWith(t, func(o *Options) { o.Classification = ClassificationDerived })
	res := s.Run(buildTable(
		[2]any{"3", "C3"},
		[2]any{"1", "B3"},
		[2]any{"2", "D3"},
	))

	if !reflect.DeepEqual(res.WindowLetters, []string{"B", "D"}) {
		t.Fatalf("windowLetters=%v", res.WindowLetters)
	}
	expectIDs(t, res, "1", "2", "3")
	if got := res.Sequence[2].Reason; got != "aisle, farthestRow=3" {
		t.Fatalf("reason=%q", got)
	}
}

func TestRun_NearestRowFirst(t *testing.T) {
	t.Parallel()

	s := newWith(t, func(o *Options) { o.RowOrder = NearestRowFirst })
	res := s.Run(buildTable(
		[2]any{"1", "A1,B1"},
		[2]any{"2", "F5"},
		[2]any{"3", "C1"},
	))
	expectIDs(t, res, "1", "3", "2")
}

func TestRun_IdempotentAndGapless(t *testing.T) {
	t.Parallel()

	table := buildTable(
		[2]any{"b", "C4"},
		[2]any{"a", "C4"},
		[2]any{"10", "E7,A7"},
		[2]any{"9", "F7"},
		[2]any{"007", "D2"},
		[2]any{"7", "D2"},
	)
	s := newDefault(t)
	first := s.Run(table)
	second := s.Run(table)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("runs differ:\n%+v\n%+v", first, second)
	}
	expectIDs(t, first, "9", "10", "a", "b", "007", "7")
	for i, e := range first.Sequence {
		if e.Seq != i+1 {
			t.Fatalf("entry %d has Seq=%d", i, e.Seq)
		}
	}
}

func TestRun_MixedIDsIgnoreInputOrder(t *testing.T) {
	t.Parallel()

	s := newDefault(t)
	orders := [][]string{
		{"10", "9", "1a"},
		{"1a", "9", "10"},
		{"9", "1a", "10"},
	}
	for _, ids := range orders {
		rows := make([][2]any, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, [2]any{id, "A3"})
		}
		expectIDs(t, s.Run(buildTable(rows...)), "9", "10", "1a")
	}
}

func TestRun_ConcurrentRunsDoNotShareState(t *testing.T) {
	t.Parallel()

	s := newDefault(t)
	table := buildTable(
		[2]any{"1", "B5"},
		[2]any{"2", "B5"},
	)

	var wg sync.WaitGroup
	results := make([]model.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Run(table)
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		expectWarnings(t, res, "Seat B5 is duplicated in Booking 1 and 2")
		expectIDs(t, res, "1", "2")
	}
}

func TestNew_RejectsBadOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Classification = "diagonal"
	if _, err := New(opts); err == nil {
		t.Fatalf("expected error for classification %q", opts.Classification)
	}

	opts = DefaultOptions()
	opts.Layout.Window = []byte{'A', 'Q'}
	if _, err := New(opts); err == nil {
		t.Fatalf("expected error for window letter outside range")
	}
}

func TestColumnCandidates(t *testing.T) {
	t.Parallel()

	s := newWith(t, func(o *Options) {
		o.BookingCandidates = []string{"PNR Code"}
		o.SeatCandidates = nil
	})
	booking, seats := s.ColumnCandidates()
	if !reflect.DeepEqual(booking, []string{"pnrcode"}) {
		t.Fatalf("booking candidates=%v", booking)
	}
	if !reflect.DeepEqual(seats, []string{"seats", "seat", "seatlabel"}) {
		t.Fatalf("seat candidates=%v", seats)
	}
}

func TestCompareBookingIDs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		sign int
	}{
		{"2", "10", -1},
		{"100000000000000000000001", "99", 1},
		{"10", "9a", -1},
		{"9", "1a", -1},
		{"1a", "10", 1},
		{"A2", "B1", -1},
		{"007", "7", -1},
		{"x", "x", 0},
	}
	for _, tc := range cases {
		got := CompareBookingIDs(tc.a, tc.b)
		if sign(got) != tc.sign {
			t.Fatalf("CompareBookingIDs(%q, %q)=%d, want sign %d", tc.a, tc.b, got, tc.sign)
		}
		if back := CompareBookingIDs(tc.b, tc.a); sign(back) != -tc.sign {
			t.Fatalf("CompareBookingIDs(%q, %q)=%d, not antisymmetric", tc.b, tc.a, back)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
