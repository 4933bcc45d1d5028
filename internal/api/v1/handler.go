package v1

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"boardseq/internal/exporter"
	"boardseq/internal/model"
	"boardseq/internal/sequencer"
)

// RunStore run history used by the handlers; may be nil
type RunStore interface {
	CreateRun(ctx context.Context, run model.RunSummary) (model.RunSummary, error)
	GetRun(ctx context.Context, id string) (model.RunSummary, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error)
	CountRuns(ctx context.Context) (int, error)
}

// Options handler settings
type Options struct {
	MaxUploadBytes int64
	ExportDir      string // where exported workbooks wait for download
}

// Handler API handler
type Handler struct {
	seq       *sequencer.Sequencer
	runs      RunStore
	exporter  *exporter.Exporter
	downloads *downloadRegistry
	opts      Options
}

// NewHandler creates the API handler
func NewHandler(seq *sequencer.Sequencer, runs RunStore, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.ExportDir == "" {
		opts.ExportDir = os.TempDir()
	}
	return &Handler{
		seq:       seq,
		runs:      runs,
		exporter:  exporter.NewExporter(),
		downloads: newDownloadRegistry(),
		opts:      opts,
	}
}

// RegisterRoutes registers the API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)
	router.GET("/layout", h.GetLayout)

	// sequencing
	router.POST("/upload", h.Upload)

	// export
	router.POST("/export", h.Export)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)

	// run history
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id", h.GetRun)
}
