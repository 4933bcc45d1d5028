package sequencer

import (
	"strings"

	"boardseq/internal/model"
)

// ranked booking with its precomputed rank
type ranked struct {
	booking *model.Booking
	rank    model.Rank
}

// compareRanked orders a before b when the result is negative.
func compareRanked(a, b ranked, order RowOrder) int {
	if a.rank.FarthestRow != b.rank.FarthestRow {
		if order == NearestRowFirst {
			return a.rank.FarthestRow - b.rank.FarthestRow
		}
		return b.rank.FarthestRow - a.rank.FarthestRow
	}
	if a.rank.Class != b.rank.Class {
		return int(a.rank.Class) - int(b.rank.Class)
	}
	return CompareBookingIDs(a.booking.ID, b.booking.ID)
}

// CompareBookingIDs compares all-digit ids numerically (any length) and
// other ids lexicographically. All-digit ids sort before any other id, which
// keeps the order transitive when both kinds are mixed. Numerically equal ids
// such as "7" and "007" fall back to string order.
func CompareBookingIDs(a, b string) int {
	numA, numB := isDigits(a), isDigits(b)
	switch {
	case numA && numB:
		if c := compareNumeric(a, b); c != 0 {
			return c
		}
	case numA:
		return -1
	case numB:
		return 1
	}
	return strings.Compare(a, b)
}

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
