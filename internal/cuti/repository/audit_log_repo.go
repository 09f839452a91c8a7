package repository

import (
	"context"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogRepository persists the append-only audit trail.
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()[:32]
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// List returns the newest entries up to limit. Query searches action,
// performer and details.
func (r *AuditLogRepository) List(ctx context.Context, limit int, query string) ([]entity.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&entity.AuditLog{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("action ILIKE ? OR performed_by ILIKE ? OR details ILIKE ?", like, like, like)
	}

	var logs []entity.AuditLog
	err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// CountAll returns the size of the trail.
func (r *AuditLogRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.AuditLog{}).Count(&count).Error
	return count, err
}
