package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/repository"
	"github.com/bitfantasy/cuti/internal/cuti/service"
	"github.com/gin-gonic/gin"
)

// PersonnelHandler exposes the roster.
type PersonnelHandler struct {
	svc *service.PersonnelService
}

func NewPersonnelHandler(svc *service.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{svc: svc}
}

// List GET /api/v1/personnel?q=
func (h *PersonnelHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, list)
}

// Create POST /api/v1/personnel
func (h *PersonnelHandler) Create(c *gin.Context) {
	var req service.CreatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "name is required")
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, p)
}

// Get GET /api/v1/personnel/:id
func (h *PersonnelHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "anggota tidak dijumpai")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, p)
}

// Update PUT /api/v1/personnel/:id
func (h *PersonnelHandler) Update(c *gin.Context) {
	var req service.UpdatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "anggota tidak dijumpai")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, p)
}

// Delete DELETE /api/v1/personnel/:id
func (h *PersonnelHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "anggota tidak dijumpai")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// Report GET /api/v1/personnel/:id/leave-report?year=
func (h *PersonnelHandler) Report(c *gin.Context) {
	year := time.Now().Year()
	if y := c.Query("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil && v > 0 {
			year = v
		}
	}

	report, err := h.svc.Report(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "anggota tidak dijumpai")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, report)
}
