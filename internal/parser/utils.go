package parser

import (
	"regexp"
	"strings"
)

var (
	columnNoise    = regexp.MustCompile(`[\s_\-]+`)
	seatSeparators = regexp.MustCompile(`[,;|]+`)
)

// NormalizeColumnName lower-cases a header and strips whitespace, underscores and hyphens
// ("Booking_ID", "booking id" and "BOOKING-ID" all become "bookingid").
func NormalizeColumnName(name string) string {
	return columnNoise.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "")
}

// SplitSeatList splits a seat cell on runs of comma, semicolon or pipe and
// drops the empty pieces.
func SplitSeatList(s string) []string {
	parts := seatSeparators.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
