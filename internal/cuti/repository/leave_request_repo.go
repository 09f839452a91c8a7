package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/entity"
	"gorm.io/gorm"
)

// LeaveRequestRepository persists leave requests.
type LeaveRequestRepository struct {
	db *gorm.DB
}

func NewLeaveRequestRepository(db *gorm.DB) *LeaveRequestRepository {
	return &LeaveRequestRepository{db: db}
}

func (r *LeaveRequestRepository) Create(ctx context.Context, req *entity.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *LeaveRequestRepository) FindByID(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	var req entity.LeaveRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *LeaveRequestRepository) Update(ctx context.Context, req *entity.LeaveRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// List returns requests newest first. Status filters exactly
// (case-insensitive); query matches the applicant name.
func (r *LeaveRequestRepository) List(ctx context.Context, page, pageSize int, status, query string) ([]entity.LeaveRequest, int64, error) {
	var (
		requests []entity.LeaveRequest
		total    int64
	)

	q := r.db.WithContext(ctx).Model(&entity.LeaveRequest{})
	if status != "" && status != "All" {
		q = q.Where("LOWER(status) = LOWER(?)", status)
	}
	if query != "" {
		q = q.Where("user_name ILIKE ?", "%"+query+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// ListAll returns every request, newest first, for calendar rendering.
func (r *LeaveRequestRepository) ListAll(ctx context.Context) ([]entity.LeaveRequest, error) {
	var requests []entity.LeaveRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// ListApprovedOverlapping returns approved requests whose span intersects
// [start, end]. The aggregation engine filters and clips further.
func (r *LeaveRequestRepository) ListApprovedOverlapping(ctx context.Context, start, end time.Time) ([]entity.LeaveRequest, error) {
	var requests []entity.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusApproved).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Find(&requests).Error
	return requests, err
}

// ListApprovedStartingBetween returns approved requests whose start date
// falls inside [from, to], used by the quarterly chart and the per-person
// yearly usage report.
func (r *LeaveRequestRepository) ListApprovedStartingBetween(ctx context.Context, from, to time.Time) ([]entity.LeaveRequest, error) {
	var requests []entity.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{entity.StatusApproved, entity.StatusLegacyApproved}).
		Where("start_date >= ? AND start_date <= ?", from, to).
		Find(&requests).Error
	return requests, err
}

// ListApprovedForUserInYear returns a member's approved requests starting
// in the given calendar year.
func (r *LeaveRequestRepository) ListApprovedForUserInYear(ctx context.Context, userID string, year int) ([]entity.LeaveRequest, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC)

	var requests []entity.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status IN ?", []string{entity.StatusApproved, entity.StatusLegacyApproved}).
		Where("start_date >= ? AND start_date <= ?", from, to).
		Find(&requests).Error
	return requests, err
}

// CountByStatus returns request counts per lifecycle state.
func (r *LeaveRequestRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Cnt    int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.LeaveRequest{}).
		Select("status, COUNT(*) as cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Cnt
	}
	return counts, nil
}

// CountOnLeave returns the number of approved requests covering the given
// day.
func (r *LeaveRequestRepository) CountOnLeave(ctx context.Context, day time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.LeaveRequest{}).
		Where("status = ?", entity.StatusApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count, err
}
