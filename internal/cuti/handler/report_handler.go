package handler

import (
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/service"
	"github.com/gin-gonic/gin"
)

// ReportHandler exposes the aggregation engine.
type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// parseWindow reads start_date/end_date query params, defaulting to the
// current calendar month.
func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)

	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			BadRequest(c, "start_date must be YYYY-MM-DD")
			return start, end, false
		}
		start = t
	}
	if e := c.Query("end_date"); e != "" {
		t, err := time.Parse("2006-01-02", e)
		if err != nil {
			BadRequest(c, "end_date must be YYYY-MM-DD")
			return start, end, false
		}
		end = t
	}

	return start, end, true
}

// Statistics GET /api/v1/reports/statistics?start_date=&end_date=
func (h *ReportHandler) Statistics(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	stats, err := h.svc.Statistics(c.Request.Context(), start, end)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, stats)
}

// Export GET /api/v1/reports/statistics/export?start_date=&end_date=
func (h *ReportHandler) Export(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	f, filename, err := h.svc.Export(c.Request.Context(), start, end)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	writeWorkbook(c, f, filename)
}
