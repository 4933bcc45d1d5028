package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	v1 "boardseq/internal/api/v1"
	"boardseq/internal/exporter"
	"boardseq/internal/ingest"
	"boardseq/internal/model"
	"boardseq/internal/sequencer"
	"boardseq/internal/util"
)

type sequenceFlags struct {
	xlsx   string
	asJSON bool
	open   bool
}

func newSequenceCmd() *cobra.Command {
	var f sequenceFlags
	cmd := &cobra.Command{
		Use:   "sequence <file>",
		Short: "Compute the boarding sequence of an xlsx or csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := loadConfig()
			opts, err := cfg.Sequencing.Options()
			if err != nil {
				return fmt.Errorf("sequencing config: %w", err)
			}
			seq, err := sequencer.New(opts)
			if err != nil {
				return err
			}

			res, err := sequenceFile(seq, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				renderResult(out, res)
			}

			if f.xlsx == "" {
				return nil
			}
			if err := exporter.NewExporter().ExportToFile(res, f.xlsx); err != nil {
				return fmt.Errorf("export %s: %w", f.xlsx, err)
			}
			if !f.asJSON {
				fmt.Fprintf(out, "written %s\n", f.xlsx)
			}
			if f.open {
				if abs, err := filepath.Abs(f.xlsx); err == nil {
					_ = util.OpenWithFallback(abs)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "also write the sequence to this workbook")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&f.open, "open", false, "open the written workbook")
	return cmd
}

// sequenceFile decodes path and runs it through seq. A file that cannot be
// decoded yields the same result the API returns for it.
func sequenceFile(seq *sequencer.Sequencer, path string) (model.Result, error) {
	if _, err := ingest.DetectFormat(path); err != nil {
		return model.Result{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return model.Result{}, err
	}
	defer file.Close()

	tbl, err := ingest.Decode(file, filepath.Base(path))
	if err != nil {
		return model.EmptyResult(v1.WarnUnreadable), nil
	}
	return seq.Run(tbl), nil
}

// renderResult sequence table followed by warnings
func renderResult(w io.Writer, res model.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Seq", "Booking_ID", "Reason"})
	for _, e := range res.Sequence {
		t.AppendRow(table.Row{e.Seq, e.BookingID, e.Reason})
	}
	if res.RowRange != "" {
		t.AppendFooter(table.Row{"", "rows", res.RowRange})
	}
	t.Render()

	if len(res.Warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d warning(s):\n", len(res.Warnings))
	for _, msg := range res.Warnings {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}
