package handler

import (
	"strconv"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes landing-page metrics.
type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Metrics GET /api/v1/dashboard/metrics
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.svc.Metrics(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, metrics)
}

// Quarterly GET /api/v1/dashboard/quarterly?year=
func (h *DashboardHandler) Quarterly(c *gin.Context) {
	year := time.Now().Year()
	if y := c.Query("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil && v > 0 {
			year = v
		}
	}

	quarters, err := h.svc.Quarterly(c.Request.Context(), year)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, quarters)
}
