package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/analytics"
	"github.com/bitfantasy/cuti/internal/cuti/repository"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
)

const (
	statsCacheTTL   = time.Minute
	statsVersionKey = "report:stats:ver"
)

// ReportService computes and caches window statistics. The cache is
// best-effort: every Redis failure falls back to a fresh computation.
type ReportService struct {
	requests *repository.LeaveRequestRepository
	rdb      *redis.Client
}

func NewReportService(requests *repository.LeaveRequestRepository, rdb *redis.Client) *ReportService {
	return &ReportService{requests: requests, rdb: rdb}
}

// Statistics aggregates approved requests over [start, end].
func (s *ReportService) Statistics(ctx context.Context, start, end time.Time) (*analytics.Statistics, error) {
	key := s.cacheKey(ctx, start, end)

	if s.rdb != nil {
		if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var cached analytics.Statistics
			if json.Unmarshal(data, &cached) == nil {
				return &cached, nil
			}
		}
	}

	requests, err := s.requests.ListApprovedOverlapping(ctx,
		analytics.DayOf(start), analytics.EndOfDay(end))
	if err != nil {
		return nil, fmt.Errorf("load approved requests: %w", err)
	}

	stats := analytics.BuildStatistics(requests, analytics.Window{Start: start, End: end}, time.Now())

	if s.rdb != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.rdb.Set(ctx, key, data, statsCacheTTL)
		}
	}

	return stats, nil
}

// InvalidateCache bumps the version stamp so every cached window is
// bypassed after a write.
func (s *ReportService) InvalidateCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Incr(ctx, statsVersionKey)
	}
}

func (s *ReportService) cacheKey(ctx context.Context, start, end time.Time) string {
	var ver int64
	if s.rdb != nil {
		ver, _ = s.rdb.Get(ctx, statsVersionKey).Int64()
	}
	return fmt.Sprintf("report:stats:v%d:%s:%s",
		ver, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// Export renders the window statistics as a workbook.
func (s *ReportService) Export(ctx context.Context, start, end time.Time) (*excelize.File, string, error) {
	stats, err := s.Statistics(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	f, err := BuildStatisticsWorkbook(stats)
	if err != nil {
		return nil, "", fmt.Errorf("build workbook: %w", err)
	}

	filename := fmt.Sprintf("Laporan_Cuti_%s_%s.xlsx",
		start.Format("20060102"), end.Format("20060102"))
	return f, filename, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#B0B7C3", Style: 2},
		},
	})
}

// BuildStatisticsWorkbook lays the aggregation result out across three
// sheets: summary metrics, monthly buckets and the frequent-leave ranking.
func BuildStatisticsWorkbook(stats *analytics.Statistics) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Ringkasan")

	style, err := headerStyle(f)
	if err != nil {
		return nil, err
	}

	// Ringkasan
	f.SetCellValue("Ringkasan", "A1", "Metrik")
	f.SetCellValue("Ringkasan", "B1", "Nilai")
	f.SetCellStyle("Ringkasan", "A1", "B1", style)

	summary := []struct {
		label string
		value interface{}
	}{
		{"Tarikh Mula", stats.StartDate},
		{"Tarikh Tamat", stats.EndDate},
		{"Jumlah Permohonan", stats.TotalRequests},
		{"Jumlah Hari Cuti", stats.TotalLeaveDays},
		{"Bilangan Anggota", stats.DistinctPersons},
		{"Cuti Luar Negara", stats.OverseasCount},
		{"Cuti Sakit", stats.SickLeaveCount},
		{"Tanpa Rekod / Kursus", stats.OfficialDutyCount},
		{"Hari Puncak", fmt.Sprintf("%s (%d anggota)", stats.Peak.Date, stats.Peak.Count)},
		{"Anggaran Kekuatan", stats.EstimatedStrength},
		{"Kesiapsiagaan (%)", stats.ReadinessPct},
		{"Keupayaan Panggil Semula (%)", stats.RecallCapacityPct},
		{"Pulang Dalam Seminggu", stats.ReturningWithinWeek},
	}
	for i, row := range summary {
		f.SetCellValue("Ringkasan", fmt.Sprintf("A%d", i+2), row.label)
		f.SetCellValue("Ringkasan", fmt.Sprintf("B%d", i+2), row.value)
	}

	// Bulanan
	f.NewSheet("Bulanan")
	monthHeaders := []string{"Bulan", "Jumlah Hari", "Pegawai", "LLP"}
	for i, h := range monthHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue("Bulanan", col+"1", h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(monthHeaders))
	f.SetCellStyle("Bulanan", "A1", lastCol+"1", style)

	for i, b := range stats.Monthly {
		row := i + 2
		f.SetCellValue("Bulanan", fmt.Sprintf("A%d", row), b.Label)
		f.SetCellValue("Bulanan", fmt.Sprintf("B%d", row), b.Total)
		f.SetCellValue("Bulanan", fmt.Sprintf("C%d", row), b.Officer)
		f.SetCellValue("Bulanan", fmt.Sprintf("D%d", row), b.LLP)
	}

	// Anggota Kerap
	f.NewSheet("Anggota Kerap")
	absHeaders := []string{"Nama", "Pangkat", "Jumlah Hari", "Status"}
	for i, h := range absHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue("Anggota Kerap", col+"1", h)
	}
	lastCol, _ = excelize.ColumnNumberToName(len(absHeaders))
	f.SetCellStyle("Anggota Kerap", "A1", lastCol+"1", style)

	for i, a := range stats.TopAbsentees {
		row := i + 2
		f.SetCellValue("Anggota Kerap", fmt.Sprintf("A%d", row), a.Name)
		f.SetCellValue("Anggota Kerap", fmt.Sprintf("B%d", row), a.Rank)
		f.SetCellValue("Anggota Kerap", fmt.Sprintf("C%d", row), a.Days)
		f.SetCellValue("Anggota Kerap", fmt.Sprintf("D%d", row), a.Flag)
	}

	return f, nil
}
