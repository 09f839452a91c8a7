package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/entity"
	"github.com/bitfantasy/cuti/internal/cuti/repository"
	"github.com/bitfantasy/cuti/internal/cuti/sse"
	"github.com/xuri/excelize/v2"
)

// Audit list limits offered by the UI.
var auditLimits = map[int]bool{50: true, 100: true, 500: true}

const defaultAuditLimit = 100

// AuditService reads and appends the audit trail.
type AuditService struct {
	repo *repository.AuditLogRepository
}

func NewAuditService(repo *repository.AuditLogRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Log appends an entry. Failures are swallowed: the trail never blocks
// the action it records.
func (s *AuditService) Log(ctx context.Context, action, targetID, targetUser, performedBy, performedByID, details string) {
	entry := &entity.AuditLog{
		Action:        action,
		TargetID:      targetID,
		TargetUser:    targetUser,
		PerformedBy:   performedBy,
		PerformedByID: performedByID,
		Details:       details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return
	}
	sse.PublishAuditUpdate(entry.ID)
}

// List returns the newest entries. Limit snaps to the offered values.
func (s *AuditService) List(ctx context.Context, limit int, query string) ([]entity.AuditLog, error) {
	if !auditLimits[limit] {
		limit = defaultAuditLimit
	}
	return s.repo.List(ctx, limit, query)
}

// Export renders the filtered trail as a workbook.
func (s *AuditService) Export(ctx context.Context, limit int, query string) (*excelize.File, string, error) {
	logs, err := s.List(ctx, limit, query)
	if err != nil {
		return nil, "", err
	}

	f, err := BuildAuditWorkbook(logs)
	if err != nil {
		return nil, "", fmt.Errorf("build workbook: %w", err)
	}

	filename := fmt.Sprintf("Audit_Log_%s.xlsx", time.Now().Format("20060102_1504"))
	return f, filename, nil
}

// BuildAuditWorkbook writes the trail into an "Audit Logs" sheet.
func BuildAuditWorkbook(logs []entity.AuditLog) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Audit Logs")

	style, err := headerStyle(f)
	if err != nil {
		return nil, err
	}

	headers := []string{"Masa", "Tindakan", "Dilakukan Oleh", "Butiran"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue("Audit Logs", col+"1", h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle("Audit Logs", "A1", lastCol+"1", style)

	for i, l := range logs {
		row := i + 2
		f.SetCellValue("Audit Logs", fmt.Sprintf("A%d", row), l.CreatedAt.Format("02/01/2006 15:04:05"))
		f.SetCellValue("Audit Logs", fmt.Sprintf("B%d", row), l.Action)
		f.SetCellValue("Audit Logs", fmt.Sprintf("C%d", row), l.PerformedBy)
		f.SetCellValue("Audit Logs", fmt.Sprintf("D%d", row), l.Details)
	}

	return f, nil
}
