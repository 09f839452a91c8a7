package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/analytics"
	"github.com/bitfantasy/cuti/internal/cuti/entity"
	"github.com/bitfantasy/cuti/internal/cuti/repository"
	"github.com/bitfantasy/cuti/internal/cuti/sse"
	"gorm.io/gorm"
)

// LeaveService owns the leave request lifecycle, including the balance
// ledger applied on approval.
type LeaveService struct {
	db        *gorm.DB
	requests  *repository.LeaveRequestRepository
	personnel *repository.PersonnelRepository
	audit     *AuditService
	report    *ReportService
}

func NewLeaveService(db *gorm.DB, requests *repository.LeaveRequestRepository, personnel *repository.PersonnelRepository, audit *AuditService, report *ReportService) *LeaveService {
	return &LeaveService{
		db:        db,
		requests:  requests,
		personnel: personnel,
		audit:     audit,
		report:    report,
	}
}

// CreateLeaveRequest is a leave submission. Dates are calendar dates in
// 2006-01-02 form.
type CreateLeaveRequest struct {
	UserID             string `json:"user_id"`
	UserName           string `json:"user_name"`
	UserRank           string `json:"user_rank"`
	UserPlatoon        string `json:"user_platoon"`
	LeaveType          string `json:"leave_type"`
	LeaveAddress       string `json:"leave_address"`
	StartDate          string `json:"start_date" binding:"required"`
	EndDate            string `json:"end_date" binding:"required"`
	Purpose            string `json:"purpose"`
	ContactNumber      string `json:"contact_number"`
	ReplacementOfficer string `json:"replacement_officer"`
	SpouseName         string `json:"spouse_name"`
	ChildrenNames      string `json:"children_names"`
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Create stores a new submission in the Pending state. An inverted date
// range is accepted; it degrades to an empty contribution downstream.
func (s *LeaveService) Create(ctx context.Context, req *CreateLeaveRequest) (*entity.LeaveRequest, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("tarikh mula tidak sah: %w", err)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("tarikh tamat tidak sah: %w", err)
	}

	request := &entity.LeaveRequest{
		ID:                 generateID(),
		UserID:             req.UserID,
		UserName:           req.UserName,
		UserRank:           req.UserRank,
		UserPlatoon:        req.UserPlatoon,
		LeaveType:          req.LeaveType,
		LeaveAddress:       req.LeaveAddress,
		StartDate:          start,
		EndDate:            end,
		Purpose:            req.Purpose,
		ContactNumber:      req.ContactNumber,
		ReplacementOfficer: req.ReplacementOfficer,
		SpouseName:         req.SpouseName,
		ChildrenNames:      req.ChildrenNames,
		Status:             entity.StatusPending,
	}
	request.ApplyDefaults()

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("simpan permohonan: %w", err)
	}

	sse.PublishRequestUpdate(request.ID, "created")
	s.report.InvalidateCache(ctx)

	return request, nil
}

func (s *LeaveService) Get(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	return s.requests.FindByID(ctx, id)
}

func (s *LeaveService) List(ctx context.Context, page, pageSize int, status, query string) ([]entity.LeaveRequest, int64, error) {
	return s.requests.List(ctx, page, pageSize, status, query)
}

// Counts returns the status tab counters.
func (s *LeaveService) Counts(ctx context.Context) (map[string]int64, error) {
	byStatus, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range byStatus {
		total += c
	}

	return map[string]int64{
		"All":       total,
		"Pending":   byStatus[entity.StatusPending],
		"Approved":  byStatus[entity.StatusApproved],
		"Rejected":  byStatus[entity.StatusRejected],
		"Cancelled": byStatus[entity.StatusCancelled],
	}, nil
}

// Resolve moves a request to Approved or Rejected. Reversals between the
// two resolved states are allowed; Cancelled is terminal. On the
// transition into Approved the matching personnel balance is decremented
// in the same transaction, once. A later reversal never refunds the days.
func (s *LeaveService) Resolve(ctx context.Context, id, newStatus, remark, adminID, adminName string) (*entity.LeaveRequest, error) {
	if newStatus != entity.StatusApproved && newStatus != entity.StatusRejected {
		return nil, fmt.Errorf("status tidak sah: %s", newStatus)
	}

	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status == entity.StatusCancelled {
		return nil, errors.New("permohonan telah dibatalkan")
	}
	if newStatus == entity.StatusRejected && strings.TrimSpace(remark) == "" {
		return nil, errors.New("catatan diperlukan untuk penolakan")
	}

	oldStatus := req.Status

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if newStatus == entity.StatusApproved && oldStatus != entity.StatusApproved {
			days := analytics.SpanDays(req.StartDate, req.EndDate)
			col, mapped := entity.BalanceColumnByType[req.LeaveType]
			// Unmapped type, missing reference or malformed range: the
			// ledger is a silent no-op.
			if days > 0 && mapped && req.UserID != "" {
				if err := tx.Model(&entity.Personnel{}).
					Where("id = ?", req.UserID).
					UpdateColumn(col, gorm.Expr(col+" - ?", days)).Error; err != nil {
					return err
				}
			}
		}

		now := time.Now()
		req.Status = newStatus
		req.Remark = remark
		req.ResolvedAt = &now
		req.ResolvedBy = adminName
		return tx.Save(req).Error
	})
	if err != nil {
		return nil, fmt.Errorf("kemaskini permohonan: %w", err)
	}

	action := entity.ActionApproveLeave
	verb := "meluluskan"
	if newStatus == entity.StatusRejected {
		action = entity.ActionRejectLeave
		verb = "menolak"
	}
	remarkText := remark
	if remarkText == "" {
		remarkText = "Tiada"
	}
	details := fmt.Sprintf(
		"Tindakan %s permohonan %s bagi anggota %s (Tarikh Mohon: %s). Status permohonan dikemaskini daripada '%s' kepada '%s'. Catatan Admin: %s",
		verb, req.LeaveType, req.UserName, req.CreatedAt.Format("02/01/2006"),
		oldStatus, newStatus, remarkText,
	)
	s.audit.Log(ctx, action, req.ID, req.UserName, adminName, adminID, details)

	sse.PublishRequestUpdate(req.ID, strings.ToLower(newStatus))
	s.report.InvalidateCache(ctx)

	return req, nil
}

// Cancel withdraws a pending request on behalf of the requester.
func (s *LeaveService) Cancel(ctx context.Context, id, actorID, actorName string) (*entity.LeaveRequest, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != entity.StatusPending {
		return nil, errors.New("hanya permohonan menunggu boleh dibatalkan")
	}

	req.Status = entity.StatusCancelled
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("kemaskini permohonan: %w", err)
	}

	s.audit.Log(ctx, entity.ActionCancelLeave, req.ID, req.UserName, actorName, actorID,
		fmt.Sprintf("Permohonan %s bagi anggota %s dibatalkan.", req.LeaveType, req.UserName))

	sse.PublishRequestUpdate(req.ID, "cancelled")
	s.report.InvalidateCache(ctx)

	return req, nil
}

// CalendarData is everything the calendar view renders.
type CalendarData struct {
	Requests []entity.LeaveRequest `json:"requests"`
	Counts   map[string]int        `json:"counts"`
}

// Calendar returns all requests with Malay status-tab counters, filtered
// by status label and applicant name.
func (s *LeaveService) Calendar(ctx context.Context, statusLabel, query string) (*CalendarData, error) {
	all, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{"Semua": len(all)}
	for _, label := range entity.StatusLabels {
		counts[label] = 0
	}
	for _, r := range all {
		if label, ok := entity.StatusLabels[r.Status]; ok {
			counts[label]++
		}
	}

	filtered := make([]entity.LeaveRequest, 0, len(all))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, r := range all {
		if statusLabel != "" && statusLabel != "Semua" && entity.StatusLabels[r.Status] != statusLabel {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.UserName), q) {
			continue
		}
		filtered = append(filtered, r)
	}

	return &CalendarData{Requests: filtered, Counts: counts}, nil
}
