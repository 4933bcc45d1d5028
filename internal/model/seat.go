package model

import "strconv"

// SeatClass seat letter priority class; lower is more privileged
type SeatClass int

const (
	ClassWindow       SeatClass = 1
	ClassMiddle       SeatClass = 2
	ClassAisle        SeatClass = 3
	ClassUnclassified SeatClass = 4
)

// String returns the lower-case class name.
func (c SeatClass) String() string {
	switch c {
	case ClassWindow:
		return "window"
	case ClassMiddle:
		return "middle"
	case ClassAisle:
		return "aisle"
	default:
		return "unclassified"
	}
}

// Seat a parsed seat label
type Seat struct {
	Letter byte   // 'A'..'Z'
	Row    int    // 1..MaxRow
	Raw    string // original token
}

// Key normalized seat key, e.g. "C7"
func (s Seat) Key() string {
	return string(s.Letter) + strconv.Itoa(s.Row)
}

// Booking seats held by one booking id
type Booking struct {
	ID    string
	Seats []Seat
	Row   int // first sheet row (header is row 1) that mentioned the booking
}

// HasSeat reports whether a seat with the same key is already held.
func (b *Booking) HasSeat(key string) bool {
	for _, s := range b.Seats {
		if s.Key() == key {
			return true
		}
	}
	return false
}

// Rank composite sort key of a booking
type Rank struct {
	FarthestRow int
	Class       SeatClass
}
