package service

import (
	"context"
	"math"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/analytics"
	"github.com/bitfantasy/cuti/internal/cuti/entity"
	"github.com/bitfantasy/cuti/internal/cuti/repository"
)

// DashboardService computes the landing-page metrics.
type DashboardService struct {
	requests *repository.LeaveRequestRepository
}

func NewDashboardService(requests *repository.LeaveRequestRepository) *DashboardService {
	return &DashboardService{requests: requests}
}

// Metrics are the four dashboard cards.
type Metrics struct {
	Pending      int64 `json:"pending"`
	OnLeaveToday int64 `json:"on_leave_today"`
	Total        int64 `json:"total"`
	ApprovalRate int   `json:"approval_rate"`
}

func (s *DashboardService) Metrics(ctx context.Context) (*Metrics, error) {
	byStatus, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range byStatus {
		total += c
	}

	onLeave, err := s.requests.CountOnLeave(ctx, analytics.DayOf(time.Now()))
	if err != nil {
		return nil, err
	}

	approved := byStatus[entity.StatusApproved]
	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(approved) / float64(total) * 100))
	}

	return &Metrics{
		Pending:      byStatus[entity.StatusPending],
		OnLeaveToday: onLeave,
		Total:        total,
		ApprovalRate: rate,
	}, nil
}

// QuarterDays is one bar of the quarterly chart.
type QuarterDays struct {
	Quarter string `json:"quarter"`
	Days    int    `json:"days"`
}

// Quarterly buckets approved leave-days by the quarter the request starts
// in, using the full request span.
func (s *DashboardService) Quarterly(ctx context.Context, year int) ([]QuarterDays, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC)

	requests, err := s.requests.ListApprovedStartingBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var quarters [4]int
	for _, r := range requests {
		days := analytics.SpanDays(r.StartDate, r.EndDate)
		if days <= 0 {
			continue
		}
		q := (int(r.StartDate.Month()) - 1) / 3
		quarters[q] += days
	}

	out := make([]QuarterDays, 4)
	labels := [4]string{"Q1", "Q2", "Q3", "Q4"}
	for i := range quarters {
		out[i] = QuarterDays{Quarter: labels[i], Days: quarters[i]}
	}
	return out, nil
}
