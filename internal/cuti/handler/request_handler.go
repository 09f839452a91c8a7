package handler

import (
	"errors"

	"github.com/bitfantasy/cuti/internal/cuti/entity"
	"github.com/bitfantasy/cuti/internal/cuti/repository"
	"github.com/bitfantasy/cuti/internal/cuti/service"
	"github.com/gin-gonic/gin"
)

// RequestHandler exposes the leave request lifecycle.
type RequestHandler struct {
	svc         *service.LeaveService
	attachments *service.AttachmentService
}

func NewRequestHandler(svc *service.LeaveService, attachments *service.AttachmentService) *RequestHandler {
	return &RequestHandler{svc: svc, attachments: attachments}
}

// List GET /api/v1/requests?status=&q=&page=&page_size=
func (h *RequestHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	status := c.Query("status")
	query := c.Query("q")

	requests, total, err := h.svc.List(c.Request.Context(), page, pageSize, status, query)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	Success(c, ListResponse{
		Items: requests,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	})
}

// Counts GET /api/v1/requests/counts
func (h *RequestHandler) Counts(c *gin.Context) {
	counts, err := h.svc.Counts(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, counts)
}

// Create POST /api/v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	var req service.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	request, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, request)
}

// Get GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	request, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "permohonan tidak dijumpai")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, request)
}

type resolveRequest struct {
	Remark string `json:"remark"`
}

// Approve POST /api/v1/requests/:id/approve
func (h *RequestHandler) Approve(c *gin.Context) {
	h.resolve(c, entity.StatusApproved)
}

// Reject POST /api/v1/requests/:id/reject
func (h *RequestHandler) Reject(c *gin.Context) {
	h.resolve(c, entity.StatusRejected)
}

func (h *RequestHandler) resolve(c *gin.Context, status string) {
	var req resolveRequest
	// Body is optional on approval
	_ = c.ShouldBindJSON(&req)

	request, err := h.svc.Resolve(c.Request.Context(), c.Param("id"), status, req.Remark, GetUserID(c), GetUserName(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "permohonan tidak dijumpai")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, request)
}

// Cancel POST /api/v1/requests/:id/cancel
func (h *RequestHandler) Cancel(c *gin.Context) {
	request, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserName(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "permohonan tidak dijumpai")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, request)
}

// Calendar GET /api/v1/requests/calendar?status=&q=
func (h *RequestHandler) Calendar(c *gin.Context) {
	data, err := h.svc.Calendar(c.Request.Context(), c.Query("status"), c.Query("q"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, data)
}

// UploadAttachment POST /api/v1/requests/:id/attachment
func (h *RequestHandler) UploadAttachment(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer src.Close()

	request, err := h.attachments.Upload(c.Request.Context(), c.Param("id"),
		file.Filename, file.Header.Get("Content-Type"), src, file.Size)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "permohonan tidak dijumpai")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, request)
}

// DownloadAttachment GET /api/v1/requests/:id/attachment
func (h *RequestHandler) DownloadAttachment(c *gin.Context) {
	reader, contentType, size, err := h.attachments.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, service.ErrNoAttachment) {
			NotFound(c, "lampiran tidak dijumpai")
			return
		}
		InternalError(c, err.Error())
		return
	}
	defer reader.Close()

	c.DataFromReader(200, size, contentType, reader, nil)
}
