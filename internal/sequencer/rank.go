package sequencer

import "boardseq/internal/model"

// RankBooking computes (farthest row, best class within that row).
// A booking without seats ranks as row 0, unclassified.
func RankBooking(bk *model.Booking, layout model.LetterLayout) model.Rank {
	rank := model.Rank{Class: model.ClassUnclassified}
	for _, s := range bk.Seats {
		if s.Row > rank.FarthestRow {
			rank.FarthestRow = s.Row
			rank.Class = layout.Class(s.Letter)
			continue
		}
		if s.Row == rank.FarthestRow {
			if c := layout.Class(s.Letter); c < rank.Class {
				rank.Class = c
			}
		}
	}
	return rank
}
