package v1

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boardseq/internal/model"
	"boardseq/internal/store"
)

// StatusResponse service status
type StatusResponse struct {
	Runs           int    `json:"runs"`
	LastRunAt      string `json:"lastRunAt"`
	RowRange       string `json:"rowRange"`
	PendingExports int    `json:"pendingExports"`
}

// GetStatus service status
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		RowRange:       h.seq.Options().Layout.RowRange(),
		PendingExports: h.downloads.size(),
	}
	if h.runs != nil {
		n, err := h.runs.CountRuns(c.Request.Context())
		if err != nil {
			log.Printf("count runs: %v", err)
		}
		resp.Runs = n
		if recent, err := h.runs.ListRuns(c.Request.Context(), 1); err == nil && len(recent) > 0 {
			resp.LastRunAt = recent[0].CreatedAt
		}
	}
	c.JSON(http.StatusOK, resp)
}

// LayoutResponse active sequencing configuration
type LayoutResponse struct {
	Layout            model.LetterLayout `json:"layout"`
	Summary           string             `json:"summary"`
	MaxRow            int                `json:"maxRow"`
	Classification    string             `json:"classification"`
	RowOrder          string             `json:"rowOrder"`
	BookingCandidates []string           `json:"bookingColumns"`
	SeatCandidates    []string           `json:"seatColumns"`
	WarnEmptyBookings bool               `json:"warnEmptyBookings"`
}

// GetLayout active layout and rules
// GET /api/layout
func (h *Handler) GetLayout(c *gin.Context) {
	opts := h.seq.Options()
	bookingCols, seatCols := h.seq.ColumnCandidates()
	c.JSON(http.StatusOK, LayoutResponse{
		Layout:            opts.Layout,
		Summary:           opts.Layout.Describe(),
		MaxRow:            opts.MaxRow,
		Classification:    string(opts.Classification),
		RowOrder:          string(opts.RowOrder),
		BookingCandidates: bookingCols,
		SeatCandidates:    seatCols,
		WarnEmptyBookings: opts.WarnEmptyBookings,
	})
}

// ListRuns recent runs, newest first
// GET /api/runs?limit=N
func (h *Handler) ListRuns(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusOK, gin.H{"items": []any{}})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.runs.ListRuns(c.Request.Context(), limit)
	if err != nil {
		log.Printf("list runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": runs})
}

// GetRun one run summary
// GET /api/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	run, err := h.runs.GetRun(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		log.Printf("get run %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run"})
		return
	}
	c.JSON(http.StatusOK, run)
}
