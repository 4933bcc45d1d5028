package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"boardseq/internal/model"
)

// Sheet names of an exported workbook.
const (
	SequenceSheet = "Sequence"
	WarningsSheet = "Warnings"
)

// Exporter writes sequencing results to xlsx
type Exporter struct {
	sequenceSheet string
	warningsSheet string
}

// NewExporter creates an exporter
func NewExporter() *Exporter {
	return &Exporter{sequenceSheet: SequenceSheet, warningsSheet: WarningsSheet}
}

// Export builds a workbook with the sequence and, when present, the warnings.
func (e *Exporter) Export(res model.Result, progress func(ProgressEvent)) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := e.fill(f, res, progress); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// fill writes the sequence and warnings sheets into f
func (e *Exporter) fill(f *excelize.File, res model.Result, progress func(ProgressEvent)) error {
	report := newProgressReporter(progress, len(res.Sequence)+len(res.Warnings))
	report.emit("sequence")
	if err := f.SetSheetName("Sheet1", e.sequenceSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := writeRow(f, e.sequenceSheet, 1, []interface{}{"Seq", "Booking_ID", "Reason"}); err != nil {
		return err
	}
	_ = f.SetRowStyle(e.sequenceSheet, 1, 1, headerStyle)

	for i, entry := range res.Sequence {
		if err := writeRow(f, e.sequenceSheet, i+2, []interface{}{entry.Seq, entry.BookingID, entry.Reason}); err != nil {
			return err
		}
		report.row("sequence")
	}
	_ = f.SetColWidth(e.sequenceSheet, "A", "A", 8)
	_ = f.SetColWidth(e.sequenceSheet, "B", "B", 20)
	_ = f.SetColWidth(e.sequenceSheet, "C", "C", 30)

	if res.RowRange != "" {
		info := len(res.Sequence) + 3
		_ = writeRow(f, e.sequenceSheet, info, []interface{}{"Row range", res.RowRange})
		if len(res.WindowLetters) > 0 {
			row := []interface{}{"Window letters"}
			for _, l := range res.WindowLetters {
				row = append(row, l)
			}
			_ = writeRow(f, e.sequenceSheet, info+1, row)
		}
	}

	if len(res.Warnings) > 0 {
		if _, err := f.NewSheet(e.warningsSheet); err != nil {
			return fmt.Errorf("create sheet: %w", err)
		}
		if err := writeRow(f, e.warningsSheet, 1, []interface{}{"#", "Warning"}); err != nil {
			return err
		}
		_ = f.SetRowStyle(e.warningsSheet, 1, 1, headerStyle)
		for i, w := range res.Warnings {
			if err := writeRow(f, e.warningsSheet, i+2, []interface{}{i + 1, w}); err != nil {
				return err
			}
			report.row("warnings")
		}
		_ = f.SetColWidth(e.warningsSheet, "B", "B", 60)
	}

	report.finish()
	return nil
}

// ExportToFile exports and saves the workbook at path.
func (e *Exporter) ExportToFile(res model.Result, path string) error {
	f, err := e.Export(res, nil)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}
