package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"boardseq/internal/model"
)

// DefaultMaxRow highest seat row accepted when none is configured
const DefaultMaxRow = 25

// letter, optional spaces, optional leading zeros, row without leading zero
var seatLabelPattern = regexp.MustCompile(`^([A-Za-z])\s*0*([1-9][0-9]*)$`)

// ErrEmptyToken an empty token left over from splitting; callers ignore it
var ErrEmptyToken = errors.New("empty seat token")

// SeatErrorKind reason a seat token was rejected
type SeatErrorKind int

const (
	InvalidLabel SeatErrorKind = iota + 1
	InvalidNumber
	OutOfRange
)

// SeatError a rejected seat token; Error() is the user-facing warning
type SeatError struct {
	Kind      SeatErrorKind
	BookingID string
	Token     string
}

func (e *SeatError) Error() string {
	switch e.Kind {
	case InvalidNumber:
		return fmt.Sprintf("Booking %s: invalid seat number '%s'", e.BookingID, e.Token)
	case OutOfRange:
		return fmt.Sprintf("Booking %s: Out of bound row range: %s", e.BookingID, e.Token)
	default:
		return fmt.Sprintf("Booking %s: invalid seat label '%s'", e.BookingID, e.Token)
	}
}

// SeatParser turns seat tokens into seats for one letter layout
type SeatParser struct {
	layout model.LetterLayout
	maxRow int
}

// NewSeatParser creates a parser; maxRow <= 0 means DefaultMaxRow.
func NewSeatParser(layout model.LetterLayout, maxRow int) *SeatParser {
	if maxRow <= 0 {
		maxRow = DefaultMaxRow
	}
	return &SeatParser{layout: layout, maxRow: maxRow}
}

// MaxRow highest accepted row number
func (p *SeatParser) MaxRow() int {
	return p.maxRow
}

// Parse parses one token. It returns ErrEmptyToken for blank input and a
// *SeatError for every other rejection.
func (p *SeatParser) Parse(token, bookingID string) (model.Seat, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Seat{}, ErrEmptyToken
	}

	m := seatLabelPattern.FindStringSubmatch(token)
	if m == nil {
		return model.Seat{}, &SeatError{Kind: InvalidLabel, BookingID: bookingID, Token: token}
	}

	letter := strings.ToUpper(m[1])[0]
	// Atoi fails only on overflow here, which is out of range anyway
	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 || row > p.maxRow {
		return model.Seat{}, &SeatError{Kind: InvalidNumber, BookingID: bookingID, Token: token}
	}

	if !p.layout.Contains(letter) {
		return model.Seat{}, &SeatError{Kind: OutOfRange, BookingID: bookingID, Token: token}
	}

	return model.Seat{Letter: letter, Row: row, Raw: token}, nil
}
