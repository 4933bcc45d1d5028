package v1

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"boardseq/internal/exporter"
	"boardseq/internal/model"
)

const downloadTTL = 10 * time.Minute

// ExportResponse export result with its download link
type ExportResponse struct {
	Token       string       `json:"token"`
	Filename    string       `json:"filename"`
	DownloadURL string       `json:"downloadUrl"`
	Result      model.Result `json:"result"`
}

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Export sequences an uploaded sheet and prepares an xlsx download
// POST /api/export (multipart, field "file")
func (h *Handler) Export(c *gin.Context) {
	p := h.process(c)
	if len(p.result.Sequence) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "nothing to export", "result": p.result})
		return
	}

	resp, err := h.writeExport(c, p, nil)
	if err != nil {
		log.Printf("export %s: %v", p.filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportStream same as Export but reports progress as server-sent events
// POST /api/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	p := h.process(c)
	send(exportProgressEvent{
		Type:    "start",
		Message: "sequence computed",
		Data: map[string]any{
			"filename": p.filename,
			"bookings": len(p.result.Sequence),
			"warnings": len(p.result.Warnings),
		},
		Timestamp: time.Now(),
	})
	if len(p.result.Sequence) == 0 {
		send(exportProgressEvent{
			Type:      "error",
			Message:   "nothing to export",
			Data:      p.result,
			Timestamp: time.Now(),
		})
		return
	}

	lastPercent := -1
	progressFn := func(evt exporter.ProgressEvent) {
		if evt.Percent == lastPercent {
			return
		}
		lastPercent = evt.Percent
		send(exportProgressEvent{
			Type:      "progress",
			Message:   evt.Stage,
			Data:      map[string]any{"percent": evt.Percent, "rows": evt.Rows},
			Timestamp: time.Now(),
		})
	}

	resp, err := h.writeExport(c, p, progressFn)
	if err != nil {
		send(exportProgressEvent{
			Type:      "error",
			Message:   "export failed: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}

	send(exportProgressEvent{
		Type:      "done",
		Message:   "export ready",
		Data:      resp,
		Timestamp: time.Now(),
	})
}

func (h *Handler) writeExport(c *gin.Context, p processed, progress func(exporter.ProgressEvent)) (ExportResponse, error) {
	f, err := h.exporter.Export(p.result, progress)
	if err != nil {
		return ExportResponse{}, err
	}
	defer f.Close()

	if err := os.MkdirAll(h.opts.ExportDir, 0755); err != nil {
		return ExportResponse{}, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(h.opts.ExportDir, fmt.Sprintf("boardseq_export_%s.xlsx", uuid.New().String()))
	if err := f.SaveAs(path); err != nil {
		_ = os.Remove(path)
		return ExportResponse{}, fmt.Errorf("save export: %w", err)
	}

	filename := exportFilename(p.filename)
	token := h.downloads.register(path, filename, downloadTTL)

	prefix := "/api"
	if strings.HasPrefix(c.Request.URL.Path, "/api/v1/") {
		prefix = "/api/v1"
	}
	return ExportResponse{
		Token:       token,
		Filename:    filename,
		DownloadURL: fmt.Sprintf("%s/export/download/%s", prefix, token),
		Result:      p.result,
	}, nil
}

// DownloadExport serves an exported workbook once
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.claim(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	if _, err := os.Stat(item.path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "export file missing"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.path)

	_ = os.Remove(item.path)
}

// exportFilename "bookings.xlsx" -> "bookings-sequence.xlsx"
func exportFilename(upload string) string {
	base := strings.TrimSuffix(filepath.Base(upload), filepath.Ext(upload))
	if base == "" || base == "." {
		base = "boarding"
	}
	return base + "-sequence.xlsx"
}

func buildExportContentDisposition(filename string) string {
	ascii := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", ascii, url.PathEscape(filename))
}
