package sequencer

import (
	"fmt"
	"slices"

	"boardseq/internal/model"
	"boardseq/internal/parser"
)

// Fatal-to-request warnings.
const (
	WarnEmptySheet    = "Excel Sheet is empty"
	WarnMissingColumn = "Missing booking/seat column"
)

// Sequencer computes boarding sequences. It holds only immutable options and
// is safe for concurrent use; every Run gets its own bookkeeping.
type Sequencer struct {
	opts     Options
	resolver *parser.ColumnResolver
	seats    *parser.SeatParser
}

// New validates opts and creates a Sequencer.
func New(opts Options) (*Sequencer, error) {
	if opts.MaxRow <= 0 {
		opts.MaxRow = parser.DefaultMaxRow
	}
	if opts.Layout.Min == 0 || opts.Layout.Max == 0 {
		opts.Layout = model.DefaultLayout()
	}
	l := opts.Layout
	layout, err := model.NewLayout(l.Min, l.Max, l.Window, l.Middle, l.Aisle)
	if err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	opts.Layout = layout
	if opts.Classification, err = ParseClassification(string(opts.Classification)); err != nil {
		return nil, err
	}
	if opts.RowOrder, err = ParseRowOrder(string(opts.RowOrder)); err != nil {
		return nil, err
	}

	return &Sequencer{
		opts:     opts,
		resolver: parser.NewColumnResolver(opts.BookingCandidates, opts.SeatCandidates),
		seats:    parser.NewSeatParser(opts.Layout, opts.MaxRow),
	}, nil
}

// Options effective options after defaults were applied
func (s *Sequencer) Options() Options {
	return s.opts
}

// ColumnCandidates normalized header fragments the resolver tries, in order.
func (s *Sequencer) ColumnCandidates() (booking, seats []string) {
	return s.resolver.Candidates(parser.ColumnBooking), s.resolver.Candidates(parser.ColumnSeats)
}

// Run executes the whole pipeline over one decoded table. Nothing is returned
// as an error: problems are reported through Result.Warnings.
func (s *Sequencer) Run(table *model.Table) model.Result {
	if table == nil || len(table.Records) == 0 {
		return model.EmptyResult(WarnEmptySheet)
	}

	header := table.Header
	if len(header) == 0 {
		header = model.NewTable(table.Records).Header
	}
	columns, ok := s.resolver.Resolve(header)
	if !ok {
		return model.EmptyResult(WarnMissingColumn)
	}

	norm := Normalize(table.Records, columns, s.seats, s.opts.WarnEmptyBookings)

	layout := s.opts.Layout
	if s.opts.Classification == ClassificationDerived {
		layout = model.DeriveLayout(s.opts.Layout, norm.Letters)
	}

	warnings := norm.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return model.Result{
		Sequence:      Sequence(norm.Bookings, layout, s.opts.RowOrder),
		Warnings:      warnings,
		RowRange:      layout.RowRange(),
		WindowLetters: layout.WindowLetters(),
	}
}

// Sequence ranks and totally orders bookings. Seq numbers are 1..N.
// Bookings without seats are ignored.
func Sequence(bookings []*model.Booking, layout model.LetterLayout, order RowOrder) []model.SequenceEntry {
	items := make([]ranked, 0, len(bookings))
	for _, bk := range bookings {
		if len(bk.Seats) == 0 {
			continue
		}
		items = append(items, ranked{booking: bk, rank: RankBooking(bk, layout)})
	}

	slices.SortStableFunc(items, func(a, b ranked) int {
		return compareRanked(a, b, order)
	})

	out := make([]model.SequenceEntry, 0, len(items))
	for i, it := range items {
		out = append(out, model.SequenceEntry{
			Seq:       i + 1,
			BookingID: it.booking.ID,
			Reason:    fmt.Sprintf("%s, farthestRow=%d", it.rank.Class, it.rank.FarthestRow),
		})
	}
	return out
}
