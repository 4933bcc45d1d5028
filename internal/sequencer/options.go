package sequencer

import (
	"fmt"
	"strings"

	"boardseq/internal/model"
	"boardseq/internal/parser"
)

// Classification how seat letters are assigned to priority classes
type Classification string

const (
	// ClassificationFixed uses the configured window/middle/aisle letters.
	ClassificationFixed Classification = "fixed"
	// ClassificationDerived treats the first and last observed letters as window seats.
	ClassificationDerived Classification = "derived"
)

// RowOrder direction of the farthest-row comparison
type RowOrder string

const (
	// FarthestRowFirst bookings seated farther back go first.
	FarthestRowFirst RowOrder = "farthest_first"
	// NearestRowFirst bookings seated nearer the front go first.
	NearestRowFirst RowOrder = "nearest_first"
)

// Options sequencing configuration
type Options struct {
	Layout            model.LetterLayout
	MaxRow            int
	Classification    Classification
	RowOrder          RowOrder
	BookingCandidates []string
	SeatCandidates    []string
	WarnEmptyBookings bool
}

// DefaultOptions A..F fixed layout, rows 1..25, farthest row first.
func DefaultOptions() Options {
	return Options{
		Layout:            model.DefaultLayout(),
		MaxRow:            parser.DefaultMaxRow,
		Classification:    ClassificationFixed,
		RowOrder:          FarthestRowFirst,
		BookingCandidates: parser.DefaultBookingCandidates,
		SeatCandidates:    parser.DefaultSeatCandidates,
		WarnEmptyBookings: true,
	}
}

// ParseClassification accepts "fixed" or "derived" (case-insensitive); "" means fixed.
func ParseClassification(s string) (Classification, error) {
	switch Classification(strings.ToLower(strings.TrimSpace(s))) {
	case "", ClassificationFixed:
		return ClassificationFixed, nil
	case ClassificationDerived:
		return ClassificationDerived, nil
	}
	return "", fmt.Errorf("unknown classification %q", s)
}

// ParseRowOrder accepts "farthest_first" or "nearest_first"; "" means farthest first.
func ParseRowOrder(s string) (RowOrder, error) {
	switch RowOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", FarthestRowFirst:
		return FarthestRowFirst, nil
	case NearestRowFirst:
		return NearestRowFirst, nil
	}
	return "", fmt.Errorf("unknown row order %q", s)
}
