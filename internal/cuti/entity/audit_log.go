package entity

import "time"

// Audit action labels.
const (
	ActionApproveLeave = "Kelulusan Cuti"
	ActionRejectLeave  = "Penolakan Cuti"
	ActionCancelLeave  = "Pembatalan Cuti"
	ActionLogin        = "Log Masuk"
)

// AuditLog is an append-only record of an administrative action.
type AuditLog struct {
	ID            string    `gorm:"primaryKey;size:32" json:"id"`
	Action        string    `gorm:"size:100;not null;index" json:"action"`
	TargetID      string    `gorm:"size:32;index" json:"target_id"`
	TargetUser    string    `gorm:"size:255" json:"target_user"`
	PerformedBy   string    `gorm:"size:255" json:"performed_by"`
	PerformedByID string    `gorm:"size:32" json:"performed_by_id"`
	Details       string    `gorm:"type:text" json:"details"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
