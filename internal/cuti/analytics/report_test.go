package analytics

import (
	"testing"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/entity"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func approvedReq(name, rank, leaveType, address, start, end string) entity.LeaveRequest {
	return entity.LeaveRequest{
		UserName:     name,
		UserRank:     rank,
		LeaveType:    leaveType,
		LeaveAddress: address,
		StartDate:    date(start),
		EndDate:      date(end),
		Status:       entity.StatusApproved,
	}
}

func TestBuildStatisticsBucketSums(t *testing.T) {
	reqs := []entity.LeaveRequest{
		approvedReq("Ali", "Mejar", "Cuti Tahunan", "Ipoh", "2024-01-10", "2024-01-14"),
		approvedReq("Ali", "Mejar", "Cuti Sakit", "", "2024-01-20", "2024-01-22"),
		approvedReq("Abu", "Koperal Udara", "Cuti Tahunan", "", "2024-01-30", "2024-02-02"),
	}
	win := Window{Start: date("2024-01-01"), End: date("2024-02-29")}

	stats := BuildStatistics(reqs, win, date("2024-06-01"))

	// Requests fully inside the window: bucket totals must sum to the sum
	// of inclusive request spans.
	sum := 0
	for _, b := range stats.Monthly {
		sum += b.Total
	}
	if sum != 12 {
		t.Errorf("sum of bucket totals = %d, want 12", sum)
	}
	if stats.TotalLeaveDays != 12 {
		t.Errorf("TotalLeaveDays = %d, want 12", stats.TotalLeaveDays)
	}

	if len(stats.Monthly) != 2 {
		t.Fatalf("expected 2 month buckets, got %d", len(stats.Monthly))
	}
	jan, feb := stats.Monthly[0], stats.Monthly[1]
	if jan.Month != "2024-01" || feb.Month != "2024-02" {
		t.Fatalf("buckets out of order: %s, %s", jan.Month, feb.Month)
	}
	if jan.Total != 10 || feb.Total != 2 {
		t.Errorf("bucket totals = %d/%d, want 10/2", jan.Total, feb.Total)
	}

	// A multi-month request contributes to every month it spans.
	if jan.LLP != 2 || feb.LLP != 2 {
		t.Errorf("LLP days = %d/%d, want 2/2", jan.LLP, feb.LLP)
	}
	if jan.Officer != 8 {
		t.Errorf("officer days in Jan = %d, want 8", jan.Officer)
	}

	if stats.TypeTotals["Cuti Tahunan"] != 9 || stats.TypeTotals["Cuti Sakit"] != 3 {
		t.Errorf("type totals = %v", stats.TypeTotals)
	}
	if len(stats.Top3Types) == 0 || stats.Top3Types[0].Type != "Cuti Tahunan" || stats.Top3Types[0].Days != 9 {
		t.Errorf("top type = %+v", stats.Top3Types)
	}

	// Per-person totals: A(5 days) + B(3 days) for the same person.
	if len(stats.TopAbsentees) == 0 {
		t.Fatal("expected absentee ranking")
	}
	if top := stats.TopAbsentees[0]; top.Name != "Ali" || top.Days != 8 {
		t.Errorf("top absentee = %+v, want Ali with 8 days", top)
	}
	if stats.DistinctPersons != 2 {
		t.Errorf("DistinctPersons = %d, want 2", stats.DistinctPersons)
	}
}

func TestBuildStatisticsZeroFillsEmptyMonths(t *testing.T) {
	// A single February request over a three-month window still yields
	// one bucket per calendar month, with the quiet months zeroed.
	reqs := []entity.LeaveRequest{
		approvedReq("Ali", "Sarjan", "Cuti Tahunan", "", "2024-02-10", "2024-02-12"),
	}
	win := Window{Start: date("2024-01-01"), End: date("2024-03-31")}

	stats := BuildStatistics(reqs, win, date("2024-06-01"))

	if len(stats.Monthly) != 3 {
		t.Fatalf("expected 3 month buckets, got %d", len(stats.Monthly))
	}
	for i, want := range []string{"2024-01", "2024-02", "2024-03"} {
		if stats.Monthly[i].Month != want {
			t.Errorf("bucket %d month = %s, want %s", i, stats.Monthly[i].Month, want)
		}
	}
	for i, want := range []string{"Jan 24", "Feb 24", "Mac 24"} {
		if stats.Monthly[i].Label != want {
			t.Errorf("bucket %d label = %q, want %q", i, stats.Monthly[i].Label, want)
		}
	}
	if stats.Monthly[0].Total != 0 || stats.Monthly[2].Total != 0 {
		t.Errorf("empty months should stay zero, got %d/%d", stats.Monthly[0].Total, stats.Monthly[2].Total)
	}
	if stats.Monthly[1].Total != 3 {
		t.Errorf("February total = %d, want 3", stats.Monthly[1].Total)
	}
	if stats.Monthly[0].Types == nil || len(stats.Monthly[0].Types) != 0 {
		t.Errorf("empty month types = %v, want empty map", stats.Monthly[0].Types)
	}
}

func TestBuildStatisticsMalayMonthLabels(t *testing.T) {
	reqs := []entity.LeaveRequest{
		approvedReq("Ali", "Sarjan", "Cuti Tahunan", "", "2024-08-05", "2024-08-05"),
	}
	win := Window{Start: date("2024-05-01"), End: date("2024-12-31")}

	stats := BuildStatistics(reqs, win, date("2024-06-01"))

	want := []string{"Mei 24", "Jun 24", "Jul 24", "Ogo 24", "Sep 24", "Okt 24", "Nov 24", "Dis 24"}
	if len(stats.Monthly) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(stats.Monthly))
	}
	for i, w := range want {
		if stats.Monthly[i].Label != w {
			t.Errorf("bucket %d label = %q, want %q", i, stats.Monthly[i].Label, w)
		}
	}
}

func TestBuildStatisticsClipsDayMetricsOnly(t *testing.T) {
	// 2024-02-27..03-02 overlaps a March window by two days.
	reqs := []entity.LeaveRequest{
		approvedReq("Ali", "Sarjan", "Cuti Tahunan", "", "2024-02-27", "2024-03-02"),
	}
	win := Window{Start: date("2024-03-01"), End: date("2024-03-31")}

	stats := BuildStatistics(reqs, win, date("2024-06-01"))

	if stats.TotalLeaveDays != 2 {
		t.Errorf("clipped day count = %d, want 2", stats.TotalLeaveDays)
	}
	if stats.TotalRequests != 1 {
		t.Errorf("TotalRequests = %d, want 1", stats.TotalRequests)
	}
	// Per-person totals stay unclipped.
	if stats.TopAbsentees[0].Days != 5 {
		t.Errorf("absentee days = %d, want unclipped 5", stats.TopAbsentees[0].Days)
	}
}

func TestBuildStatisticsIgnoresOutOfWindowAndUnapproved(t *testing.T) {
	reqs := []entity.LeaveRequest{
		approvedReq("Ali", "Sarjan", "Cuti Tahunan", "", "2024-01-01", "2024-01-05"),
		{UserName: "Abu", Status: entity.StatusPending, StartDate: date("2024-03-10"), EndDate: date("2024-03-12")},
		{UserName: "Adam", Status: entity.StatusRejected, StartDate: date("2024-03-10"), EndDate: date("2024-03-12")},
	}
	win := Window{Start: date("2024-03-01"), End: date("2024-03-31")}

	stats := BuildStatistics(reqs, win, date("2024-06-01"))

	if stats.TotalRequests != 0 || stats.TotalLeaveDays != 0 {
		t.Errorf("expected empty stats, got requests=%d days=%d", stats.TotalRequests, stats.TotalLeaveDays)
	}
}

func TestBuildStatisticsPeakDay(t *testing.T) {
	reqs := []entity.LeaveRequest{
		approvedReq("Ali", "Sarjan", "Cuti Tahunan", "", "2024-03-01", "2024-03-05"),
		approvedReq("Abu", "Koperal", "Cuti Tahunan", "", "2024-03-03", "2024-03-07"),
		approvedReq("Adam", "Leftenan", "Cuti Sakit", "", "2024-03-04", "2024-03-04"),
	}
	win := Window{Start: date("2024-03-01"), End: date("2024-03-31")}

	stats := BuildStatistics(reqs, win, date("2024-06-01"))

	if stats.Peak.Date != "04/03/24" || stats.Peak.Count != 3 {
		t.Errorf("peak = %+v, want 04/03/24 with count 3", stats.Peak)
	}
}

func TestBuildStatisticsDerivedMetrics(t *testing.T) {
	// Five persons on leave the same day: strength floors at 50, peak 5.
	reqs := make([]entity.LeaveRequest, 0, 5)
	names := []string{"Ali", "Abu", "Adam", "Bakri", "Chandran"}
	for _, n := range names {
		reqs = append(reqs, approvedReq(n, "Sarjan", "Cuti Tahunan", "", "2024-05-10", "2024-05-10"))
	}
	win := Window{Start: date("2024-05-01"), End: date("2024-05-31")}

	stats := BuildStatistics(reqs, win, date("2024-06-01"))

	if stats.EstimatedStrength != 50 {
		t.Errorf("EstimatedStrength = %d, want 50", stats.EstimatedStrength)
	}
	if stats.ReadinessPct != 90 {
		t.Errorf("ReadinessPct = %d, want 90", stats.ReadinessPct)
	}
	if stats.RecallCapacityPct != 100 {
		t.Errorf("RecallCapacityPct = %d, want 100", stats.RecallCapacityPct)
	}
}

func TestBuildStatisticsReviewFlagBoundary(t *testing.T) {
	reqs := []entity.LeaveRequest{
		// 15 days: flagged. 14 days: not.
		approvedReq("Ali", "Sarjan", "Cuti Tahunan", "", "2024-04-01", "2024-04-15"),
		approvedReq("Abu", "Koperal", "Cuti Tahunan", "", "2024-04-01", "2024-04-14"),
	}
	win := Window{Start: date("2024-04-01"), End: date("2024-04-30")}

	stats := BuildStatistics(reqs, win, date("2024-06-01"))

	byName := map[string]Absentee{}
	for _, a := range stats.TopAbsentees {
		byName[a.Name] = a
	}
	if byName["Ali"].Flag != FlagReview {
		t.Errorf("15 days should flag %s, got %s", FlagReview, byName["Ali"].Flag)
	}
	if byName["Abu"].Flag != FlagNormal {
		t.Errorf("14 days should stay %s, got %s", FlagNormal, byName["Abu"].Flag)
	}
}

func TestBuildStatisticsOverseasAndReturning(t *testing.T) {
	now := date("2024-05-20")
	reqs := []entity.LeaveRequest{
		approvedReq("Ali", "Sarjan", "Cuti Tahunan", "Jeddah, Saudi Arabia", "2024-05-18", "2024-05-24"),
		approvedReq("Abu", "Koperal", "Cuti Sakit", "Kuala Lumpur", "2024-05-01", "2024-05-03"),
	}
	win := Window{Start: date("2024-05-01"), End: date("2024-05-31")}

	stats := BuildStatistics(reqs, win, now)

	if stats.OverseasCount != 1 {
		t.Errorf("OverseasCount = %d, want 1", stats.OverseasCount)
	}
	if stats.SickLeaveCount != 1 {
		t.Errorf("SickLeaveCount = %d, want 1", stats.SickLeaveCount)
	}
	if stats.ReturningWithinWeek != 1 {
		t.Errorf("ReturningWithinWeek = %d, want 1", stats.ReturningWithinWeek)
	}
}

func TestBuildStatisticsAppliesDefaults(t *testing.T) {
	reqs := []entity.LeaveRequest{
		{StartDate: date("2024-03-10"), EndDate: date("2024-03-11"), Status: entity.StatusApproved},
	}
	win := Window{Start: date("2024-03-01"), End: date("2024-03-31")}

	stats := BuildStatistics(reqs, win, date("2024-06-01"))

	if stats.TypeTotals[entity.DefaultLeaveType] != 2 {
		t.Errorf("expected default leave type bucket, got %v", stats.TypeTotals)
	}
	if stats.TopAbsentees[0].Name != entity.DefaultUserName {
		t.Errorf("expected default user name, got %q", stats.TopAbsentees[0].Name)
	}
	if stats.Monthly[0].LLP != 2 {
		t.Errorf("default rank should classify LLP, got %+v", stats.Monthly[0])
	}
}

func TestSpanDaysMalformedRange(t *testing.T) {
	if got := SpanDays(date("2024-03-10"), date("2024-03-08")); got != -1 {
		t.Errorf("SpanDays inverted = %d, want -1", got)
	}
	if got := SpanDays(date("2024-03-10"), date("2024-03-10")); got != 1 {
		t.Errorf("SpanDays single day = %d, want 1", got)
	}
}
