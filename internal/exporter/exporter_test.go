package exporter

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"boardseq/internal/model"
)

func TestExport_SequenceAndWarnings(t *testing.T) {
	t.Parallel()

	res := model.Result{
		Sequence: []model.SequenceEntry{
			{Seq: 1, BookingID: "2", Reason: "window, farthestRow=5"},
			{Seq: 2, BookingID: "1", Reason: "window, farthestRow=1"},
		},
		Warnings:      []string{"Booking 3: invalid seat number 'Z99'"},
		RowRange:      "A-F",
		WindowLetters: []string{"A", "F"},
	}

	var last ProgressEvent
	f, err := NewExporter().Export(res, func(evt ProgressEvent) { last = evt })
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	defer f.Close()

	if last.Percent != 100 || last.Stage != "done" {
		t.Fatalf("last progress=%+v", last)
	}

	rows, err := f.GetRows(SequenceSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if rows[0][1] != "Booking_ID" || rows[1][1] != "2" || rows[2][0] != "2" {
		t.Fatalf("unexpected sequence rows: %v", rows)
	}
	if rows[4][1] != "A-F" {
		t.Fatalf("row range row: %v", rows[4])
	}

	warnings, err := f.GetRows(WarningsSheet)
	if err != nil {
		t.Fatalf("GetRows warnings failed: %v", err)
	}
	if len(warnings) != 2 || warnings[1][1] != res.Warnings[0] {
		t.Fatalf("unexpected warning rows: %v", warnings)
	}
}

func TestExportToFile_NoWarningsSheetWhenClean(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.xlsx")
	res := model.Result{Sequence: []model.SequenceEntry{{Seq: 1, BookingID: "A"}}}
	if err := NewExporter().ExportToFile(res, path); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(WarningsSheet); idx != -1 {
		t.Fatalf("unexpected %s sheet", WarningsSheet)
	}
}

func TestExport_ErrorReturnsNoWorkbook(t *testing.T) {
	t.Parallel()

	res := model.Result{
		Sequence: []model.SequenceEntry{{Seq: 1, BookingID: "1"}},
		Warnings: []string{"Row 3: missing BookingID or Seats"},
	}

	cases := []*Exporter{
		{sequenceSheet: "Seq/1", warningsSheet: WarningsSheet},
		{sequenceSheet: SequenceSheet, warningsSheet: "Warn[1]"},
	}
	for _, e := range cases {
		f, err := e.Export(res, nil)
		if err == nil {
			t.Fatalf("Export with sheets %q/%q: expected error", e.sequenceSheet, e.warningsSheet)
		}
		if f != nil {
			t.Fatalf("Export returned a workbook alongside err=%v", err)
		}
	}
}

func TestExportToFile_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.xlsx")
	res := model.Result{Sequence: []model.SequenceEntry{{Seq: 1, BookingID: "1"}}}
	if err := NewExporter().ExportToFile(res, path); err == nil {
		t.Fatalf("expected save error for %s", path)
	}
}
