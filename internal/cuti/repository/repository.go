package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories is the data-access aggregate.
type Repositories struct {
	LeaveRequest *LeaveRequestRepository
	Personnel    *PersonnelRepository
	AuditLog     *AuditLogRepository
	AdminUser    *AdminUserRepository
}

// NewRepositories wires all repositories onto one DB handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		LeaveRequest: NewLeaveRequestRepository(db),
		Personnel:    NewPersonnelRepository(db),
		AuditLog:     NewAuditLogRepository(db),
		AdminUser:    NewAdminUserRepository(db),
	}
}
