package handler

import (
	"strconv"

	"github.com/bitfantasy/cuti/internal/cuti/service"
	"github.com/gin-gonic/gin"
)

// AuditHandler exposes the audit trail.
type AuditHandler struct {
	svc *service.AuditService
}

func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func auditParams(c *gin.Context) (int, string) {
	limit := 0
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			limit = v
		}
	}
	return limit, c.Query("q")
}

// List GET /api/v1/audit-logs?limit=&q=
func (h *AuditHandler) List(c *gin.Context) {
	limit, query := auditParams(c)
	logs, err := h.svc.List(c.Request.Context(), limit, query)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, logs)
}

// Export GET /api/v1/audit-logs/export?limit=&q=
func (h *AuditHandler) Export(c *gin.Context) {
	limit, query := auditParams(c)
	f, filename, err := h.svc.Export(c.Request.Context(), limit, query)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	writeWorkbook(c, f, filename)
}
