package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/entity"
)

// Absentee flags.
const (
	FlagReview = "SEMAKAN"
	FlagNormal = "NORMAL"

	// ReviewThresholdDays marks an absentee for review when their
	// cumulative days are strictly greater than this.
	ReviewThresholdDays = 14

	// MinEstimatedStrength floors the strength heuristic, which also
	// guards the readiness ratios against division by zero.
	MinEstimatedStrength = 50

	topAbsenteeLimit = 5
	topTypeLimit     = 3
	recentLimit      = 10
)

// Window is the inclusive report date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// malayMonths holds Malay month abbreviations, indexed by time.Month.
var malayMonths = [13]string{
	"", "Jan", "Feb", "Mac", "Apr", "Mei", "Jun",
	"Jul", "Ogo", "Sep", "Okt", "Nov", "Dis",
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %02d", malayMonths[t.Month()], t.Year()%100)
}

// MonthBucket aggregates leave-days for one calendar month inside the
// window. A multi-month request contributes to every month it spans.
type MonthBucket struct {
	Month   string         `json:"month"` // 2006-01
	Label   string         `json:"label"` // Mac 06
	Total   int            `json:"total"`
	Officer int            `json:"officer"`
	LLP     int            `json:"llp"`
	Types   map[string]int `json:"types"`
}

// Absentee is one row of the frequent-leave ranking.
type Absentee struct {
	Name string `json:"name"`
	Rank string `json:"rank"`
	Days int    `json:"days"`
	Flag string `json:"flag"`
}

// TypeCount is a leave type with its total day count.
type TypeCount struct {
	Type string `json:"type"`
	Days int    `json:"days"`
}

// PeakDay is the single day with the highest concurrent absence count.
type PeakDay struct {
	Date  string `json:"date"` // 02/01/06
	Count int    `json:"count"`
}

// Statistics is the full aggregation output for one report window.
type Statistics struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	TotalRequests     int `json:"total_requests"`
	TotalLeaveDays    int `json:"total_leave_days"`
	DistinctPersons   int `json:"distinct_persons"`
	OverseasCount     int `json:"overseas_count"`
	SickLeaveCount    int `json:"sick_leave_count"`
	OfficialDutyCount int `json:"official_duty_count"`

	Monthly      []MonthBucket  `json:"monthly"`
	TypeTotals   map[string]int `json:"type_totals"`
	Top3Types    []TypeCount    `json:"top_3_types"`
	TopAbsentees []Absentee     `json:"top_absentees"`
	Peak         PeakDay        `json:"peak_day"`

	EstimatedStrength   int `json:"estimated_strength"`
	ReadinessPct        int `json:"readiness_pct"`
	RecallCapacityPct   int `json:"recall_capacity_pct"`
	ReturningWithinWeek int `json:"returning_within_week"`

	Recent []entity.LeaveRequest `json:"recent"`
}

type personTotal struct {
	rank string
	days int
}

// BuildStatistics aggregates approved leave requests over the window. It
// is a pure function of its inputs: callers re-run it in full whenever the
// snapshot or window changes. Non-approved requests are ignored.
//
// Day-level metrics (month buckets, peak day, total leave days) clip each
// request to the window; per-request counters (overseas, sick, duty) and
// per-person day totals use the full unclipped span. The mismatch is the
// documented reporting policy, kept as-is.
func BuildStatistics(requests []entity.LeaveRequest, win Window, now time.Time) *Statistics {
	winStart := DayOf(win.Start)
	winEnd := EndOfDay(win.End)
	today := DayOf(now)
	weekAhead := today.AddDate(0, 0, 7)

	stats := &Statistics{
		StartDate:  winStart.Format("2006-01-02"),
		EndDate:    DayOf(win.End).Format("2006-01-02"),
		TypeTotals: map[string]int{},
		Monthly:    []MonthBucket{},
		Recent:     []entity.LeaveRequest{},
	}

	// One bucket per calendar month intersecting the window, so months
	// without any leave still appear with zeroed counters.
	monthly := map[string]*MonthBucket{}
	for m := time.Date(winStart.Year(), winStart.Month(), 1, 0, 0, 0, 0, winStart.Location()); !m.After(winEnd); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		monthly[key] = &MonthBucket{
			Month: key,
			Label: monthLabel(m),
			Types: map[string]int{},
		}
	}

	daily := map[string]int{}
	persons := map[string]*personTotal{}
	approved := []entity.LeaveRequest{}

	for _, req := range requests {
		r := req
		r.ApplyDefaults()

		if r.Status != entity.StatusApproved {
			continue
		}
		if r.StartDate.After(winEnd) || r.EndDate.Before(winStart) {
			continue
		}
		approved = append(approved, r)

		stats.TotalRequests++
		if IsOverseas(r.LeaveType, r.LeaveAddress) {
			stats.OverseasCount++
		}
		if IsSickLeave(r.LeaveType) {
			stats.SickLeaveCount++
		}
		if IsOfficialDuty(r.LeaveType) {
			stats.OfficialDutyCount++
		}

		// Per-person totals use the full request span, window or not.
		if p, ok := persons[r.UserName]; ok {
			p.days += SpanDays(r.StartDate, r.EndDate)
		} else {
			persons[r.UserName] = &personTotal{rank: r.UserRank, days: SpanDays(r.StartDate, r.EndDate)}
		}

		endDay := DayOf(r.EndDate)
		if !endDay.Before(today) && !endDay.After(weekAhead) {
			stats.ReturningWithinWeek++
		}

		rankCat := RankCategory(r.UserRank)
		for d := DayOf(r.StartDate); !d.After(endDay); d = d.AddDate(0, 0, 1) {
			if d.Before(winStart) || d.After(winEnd) {
				continue
			}

			stats.TotalLeaveDays++
			daily[d.Format("2006-01-02")]++

			// d is clipped to the window, so its bucket always exists.
			bucket := monthly[d.Format("2006-01")]
			bucket.Total++
			if rankCat == RankOfficer {
				bucket.Officer++
			} else {
				bucket.LLP++
			}
			bucket.Types[r.LeaveType]++
			stats.TypeTotals[r.LeaveType]++
		}
	}

	monthKeys := make([]string, 0, len(monthly))
	for k := range monthly {
		monthKeys = append(monthKeys, k)
	}
	sort.Strings(monthKeys)
	for _, k := range monthKeys {
		stats.Monthly = append(stats.Monthly, *monthly[k])
	}

	// Earliest date wins peak ties.
	dayKeys := make([]string, 0, len(daily))
	for k := range daily {
		dayKeys = append(dayKeys, k)
	}
	sort.Strings(dayKeys)
	for _, k := range dayKeys {
		if daily[k] > stats.Peak.Count {
			d, _ := time.Parse("2006-01-02", k)
			stats.Peak = PeakDay{Date: d.Format("02/01/06"), Count: daily[k]}
		}
	}

	stats.TopAbsentees = topAbsentees(persons)
	stats.Top3Types = topTypes(stats.TypeTotals)
	stats.DistinctPersons = len(persons)

	strength := stats.DistinctPersons * 2
	if strength < MinEstimatedStrength {
		strength = MinEstimatedStrength
	}
	stats.EstimatedStrength = strength
	stats.ReadinessPct = roundPct(strength-stats.Peak.Count, strength)
	stats.RecallCapacityPct = roundPct(strength-stats.OverseasCount, strength)

	// Newest submissions first, capped for the recent-activity panel.
	sort.SliceStable(approved, func(i, j int) bool {
		if approved[i].CreatedAt.Equal(approved[j].CreatedAt) {
			return approved[i].ID < approved[j].ID
		}
		return approved[i].CreatedAt.After(approved[j].CreatedAt)
	})
	if len(approved) > recentLimit {
		approved = approved[:recentLimit]
	}
	stats.Recent = approved

	return stats
}

// topAbsentees ranks persons by cumulative days descending, name ascending
// on ties, and returns the top five with review flags.
func topAbsentees(persons map[string]*personTotal) []Absentee {
	list := make([]Absentee, 0, len(persons))
	for name, p := range persons {
		flag := FlagNormal
		if p.days > ReviewThresholdDays {
			flag = FlagReview
		}
		list = append(list, Absentee{Name: name, Rank: p.rank, Days: p.days, Flag: flag})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Days == list[j].Days {
			return list[i].Name < list[j].Name
		}
		return list[i].Days > list[j].Days
	})
	if len(list) > topAbsenteeLimit {
		list = list[:topAbsenteeLimit]
	}
	return list
}

func topTypes(totals map[string]int) []TypeCount {
	list := make([]TypeCount, 0, len(totals))
	for t, days := range totals {
		list = append(list, TypeCount{Type: t, Days: days})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Days == list[j].Days {
			return list[i].Type < list[j].Type
		}
		return list[i].Days > list[j].Days
	})
	if len(list) > topTypeLimit {
		list = list[:topTypeLimit]
	}
	return list
}

func roundPct(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
