package parser

import "strings"

// Logical columns the sequencer needs from a sheet.
const (
	ColumnBooking = "booking"
	ColumnSeats   = "seats"
)

// DefaultBookingCandidates header fragments tried, in order, for the booking id column
var DefaultBookingCandidates = []string{"bookingid", "booking", "id"}

// DefaultSeatCandidates header fragments tried, in order, for the seat list column
var DefaultSeatCandidates = []string{"seats", "seat", "seatlabel"}

// ColumnResolver maps logical columns onto real sheet headers
type ColumnResolver struct {
	candidates map[string][]string
}

// ColumnMapping resolved header names
type ColumnMapping struct {
	Booking string `json:"booking"`
	Seats   string `json:"seats"`
}

// NewColumnResolver creates a resolver; nil or empty candidate lists fall back to the defaults.
func NewColumnResolver(bookingCandidates, seatCandidates []string) *ColumnResolver {
	if len(bookingCandidates) == 0 {
		bookingCandidates = DefaultBookingCandidates
	}
	if len(seatCandidates) == 0 {
		seatCandidates = DefaultSeatCandidates
	}
	return &ColumnResolver{
		candidates: map[string][]string{
			ColumnBooking: normalizeAll(bookingCandidates),
			ColumnSeats:   normalizeAll(seatCandidates),
		},
	}
}

// Candidates normalized candidate fragments for a logical column
func (r *ColumnResolver) Candidates(column string) []string {
	return r.candidates[column]
}

// Resolve finds both columns. ok is false when either is missing. The seat
// column is never the header already taken by the booking column.
func (r *ColumnResolver) Resolve(header []string) (ColumnMapping, bool) {
	booking, okBooking := MatchColumn(header, r.candidates[ColumnBooking])
	rest := header
	if okBooking {
		rest = make([]string, 0, len(header))
		for _, h := range header {
			if h != booking {
				rest = append(rest, h)
			}
		}
	}
	seats, okSeats := MatchColumn(rest, r.candidates[ColumnSeats])
	return ColumnMapping{Booking: booking, Seats: seats}, okBooking && okSeats
}

// MatchColumn tries candidates in priority order and returns the first header
// whose normalized form contains the candidate.
func MatchColumn(header []string, candidates []string) (string, bool) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = NormalizeColumnName(h)
	}
	for _, cand := range candidates {
		cand = NormalizeColumnName(cand)
		if cand == "" {
			continue
		}
		for i, col := range normalized {
			if col != "" && strings.Contains(col, cand) {
				return header[i], true
			}
		}
	}
	return "", false
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := NormalizeColumnName(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}
