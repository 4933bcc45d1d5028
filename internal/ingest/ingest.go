package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"boardseq/internal/model"
)

var (
	// ErrUnsupportedFormat the file is neither a workbook nor csv
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoSheet the workbook has no worksheet
	ErrNoSheet = errors.New("workbook has no sheets")
)

// Format input file format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DetectFormat picks the decoder from the file extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
}

// Decode reads an uploaded file into a table.
func Decode(r io.Reader, filename string) (*model.Table, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatCSV:
		return DecodeCSV(r)
	default:
		return DecodeXLSX(r)
	}
}

// DecodeXLSX reads the first worksheet; row 1 is the header.
func DecodeXLSX(r io.Reader) (*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return tableFromRows(rows), nil
}

// DecodeCSV reads comma separated text; row 1 is the header.
func DecodeCSV(r io.Reader) (*model.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return tableFromRows(rows), nil
}

// tableFromRows turns a header row plus data rows into records. Blank header
// cells and fully blank data rows are dropped.
func tableFromRows(rows [][]string) *model.Table {
	t := &model.Table{Header: []string{}, Records: []model.RawRecord{}}
	if len(rows) == 0 {
		return t
	}

	header := rows[0]
	colIndex := make(map[int]string, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		colIndex[i] = col
		t.Header = append(t.Header, col)
	}

	for _, row := range rows[1:] {
		rec := make(model.RawRecord, len(colIndex))
		blank := true
		for i, cell := range row {
			col, ok := colIndex[i]
			if !ok {
				continue
			}
			rec[col] = cell
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		t.Records = append(t.Records, rec)
	}
	return t
}
