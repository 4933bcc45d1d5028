package sequencer

import (
	"errors"
	"fmt"

	"boardseq/internal/model"
	"boardseq/internal/parser"
)

// Normalized bookings built from the input rows
type Normalized struct {
	Bookings []*model.Booking // first-appearance order, at least one seat each
	Warnings []string
	Letters  []byte // letters of accepted seats, in discovery order
}

// normalizer per-run state; never shared between runs
type normalizer struct {
	parser    *parser.SeatParser
	columns   parser.ColumnMapping
	warnEmpty bool

	seatUsage map[string]string
	byID      map[string]*model.Booking
	order     []*model.Booking
	warnings  []string
	letters   []byte
}

// Normalize aggregates records into bookings. Row numbers in warnings are
// sheet rows: the header is row 1, so record i is row i+2.
func Normalize(records []model.RawRecord, columns parser.ColumnMapping, seats *parser.SeatParser, warnEmpty bool) Normalized {
	n := &normalizer{
		parser:    seats,
		columns:   columns,
		warnEmpty: warnEmpty,
		seatUsage: make(map[string]string),
		byID:      make(map[string]*model.Booking),
	}
	for i, rec := range records {
		n.addRecord(i+2, rec)
	}
	return n.finish()
}

func (n *normalizer) addRecord(row int, rec model.RawRecord) {
	bookingID := rec.Value(n.columns.Booking)
	seatList := rec.Value(n.columns.Seats)
	if bookingID == "" || seatList == "" {
		n.warnf("Row %d: missing BookingID or Seats", row)
		return
	}

	bk, ok := n.byID[bookingID]
	if !ok {
		bk = &model.Booking{ID: bookingID, Row: row}
		n.byID[bookingID] = bk
		n.order = append(n.order, bk)
	}

	for _, token := range parser.SplitSeatList(seatList) {
		seat, err := n.parser.Parse(token, bookingID)
		if err != nil {
			if !errors.Is(err, parser.ErrEmptyToken) {
				n.warnings = append(n.warnings, err.Error())
			}
			continue
		}

		key := seat.Key()
		if bk.HasSeat(key) {
			continue
		}
		bk.Seats = append(bk.Seats, seat)
		n.letters = append(n.letters, seat.Letter)

		if prev, ok := n.seatUsage[key]; ok && prev != bookingID {
			n.warnf("Seat %s is duplicated in Booking %s and %s", key, prev, bookingID)
		}
		n.seatUsage[key] = bookingID
	}
}

func (n *normalizer) finish() Normalized {
	out := Normalized{Letters: n.letters}
	for _, bk := range n.order {
		if len(bk.Seats) == 0 {
			if n.warnEmpty {
				n.warnf("Booking %s skipped: no valid seats", bk.ID)
			}
			continue
		}
		out.Bookings = append(out.Bookings, bk)
	}
	out.Warnings = n.warnings
	return out
}

func (n *normalizer) warnf(format string, args ...any) {
	n.warnings = append(n.warnings, fmt.Sprintf(format, args...))
}
