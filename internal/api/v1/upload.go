package v1

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"boardseq/internal/ingest"
	"boardseq/internal/model"
)

// Upload-level warnings.
const (
	WarnNoFile       = "No file uploaded"
	WarnUnreadable   = "Excel file could not be read"
	WarnFileTooLarge = "File is too large"
)

// processed one uploaded file after sequencing
type processed struct {
	filename string
	result   model.Result
	run      *model.RunSummary
}

// Upload computes the sequence for an uploaded sheet
// POST /api/upload (multipart, field "file")
func (h *Handler) Upload(c *gin.Context) {
	p := h.process(c)
	if p.run != nil {
		c.Header("X-Run-ID", p.run.ID)
	}
	c.JSON(http.StatusOK, p.result)
}

// process reads the multipart file, runs the sequencer and records the run.
// Every failure is reported as a warning in the result.
func (h *Handler) process(c *gin.Context) processed {
	fh, err := c.FormFile("file")
	if err != nil {
		return processed{result: model.EmptyResult(WarnNoFile)}
	}
	if fh.Size > h.opts.MaxUploadBytes {
		return processed{filename: fh.Filename, result: model.EmptyResult(WarnFileTooLarge)}
	}

	f, err := fh.Open()
	if err != nil {
		return processed{filename: fh.Filename, result: model.EmptyResult(WarnUnreadable)}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.opts.MaxUploadBytes+1))
	if err != nil {
		return processed{filename: fh.Filename, result: model.EmptyResult(WarnUnreadable)}
	}
	if int64(len(data)) > h.opts.MaxUploadBytes {
		return processed{filename: fh.Filename, result: model.EmptyResult(WarnFileTooLarge)}
	}

	table, err := ingest.Decode(bytes.NewReader(data), fh.Filename)
	if err != nil {
		if !errors.Is(err, ingest.ErrUnsupportedFormat) {
			log.Printf("decode %s: %v", fh.Filename, err)
		}
		return processed{filename: fh.Filename, result: model.EmptyResult(WarnUnreadable)}
	}

	res := h.seq.Run(table)
	p := processed{filename: fh.Filename, result: res}

	if h.runs != nil {
		sum := sha256.Sum256(data)
		run, err := h.runs.CreateRun(c.Request.Context(), model.RunSummary{
			Filename:      fh.Filename,
			FileHash:      hex.EncodeToString(sum[:]),
			RecordCount:   len(table.Records),
			SequenceCount: len(res.Sequence),
			WarningCount:  len(res.Warnings),
		})
		if err != nil {
			log.Printf("record run for %s: %v", fh.Filename, err)
		} else {
			p.run = &run
		}
	}
	return p
}
