package service

import (
	"github.com/bitfantasy/cuti/internal/config"
	"github.com/bitfantasy/cuti/internal/cuti/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is the business-logic aggregate.
type Services struct {
	Auth       *AuthService
	Leave      *LeaveService
	Personnel  *PersonnelService
	Report     *ReportService
	Dashboard  *DashboardService
	Audit      *AuditService
	Attachment *AttachmentService
}

// NewServices wires services onto the repositories and shared clients.
func NewServices(db *gorm.DB, repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			// Attachments stay unavailable, the rest of the service runs
			minioClient = nil
		}
	}

	auditSvc := NewAuditService(repos.AuditLog)
	reportSvc := NewReportService(repos.LeaveRequest, rdb)

	return &Services{
		Auth:       NewAuthService(repos.AdminUser, auditSvc, rdb, cfg),
		Leave:      NewLeaveService(db, repos.LeaveRequest, repos.Personnel, auditSvc, reportSvc),
		Personnel:  NewPersonnelService(repos.Personnel, repos.LeaveRequest),
		Report:     reportSvc,
		Dashboard:  NewDashboardService(repos.LeaveRequest),
		Audit:      auditSvc,
		Attachment: NewAttachmentService(repos.LeaveRequest, minioClient, cfg.MinIO.Bucket),
	}
}
