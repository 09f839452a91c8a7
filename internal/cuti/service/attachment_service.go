package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/bitfantasy/cuti/internal/cuti/entity"
	"github.com/bitfantasy/cuti/internal/cuti/repository"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ErrNoAttachment is returned when a request carries no stored file.
var ErrNoAttachment = errors.New("tiada lampiran")

// AttachmentService stores supporting documents in object storage.
type AttachmentService struct {
	requests *repository.LeaveRequestRepository
	client   *minio.Client
	bucket   string
}

func NewAttachmentService(requests *repository.LeaveRequestRepository, client *minio.Client, bucket string) *AttachmentService {
	return &AttachmentService{
		requests: requests,
		client:   client,
		bucket:   bucket,
	}
}

// Upload stores the file and records its object key on the request.
func (s *AttachmentService) Upload(ctx context.Context, requestID, fileName, contentType string, reader io.Reader, size int64) (*entity.LeaveRequest, error) {
	if s.client == nil {
		return nil, errors.New("object storage not configured")
	}

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("attachments/%s/%s%s",
		time.Now().Format("2006/01/02"), uuid.New().String()[:8], filepath.Ext(fileName))

	_, err = s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	req.AttachmentKey = objectName
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("save attachment key: %w", err)
	}

	return req, nil
}

// Download streams the stored file. The caller closes the reader.
func (s *AttachmentService) Download(ctx context.Context, requestID string) (io.ReadCloser, string, int64, error) {
	if s.client == nil {
		return nil, "", 0, errors.New("object storage not configured")
	}

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, "", 0, err
	}
	if req.AttachmentKey == "" {
		return nil, "", 0, ErrNoAttachment
	}

	obj, err := s.client.GetObject(ctx, s.bucket, req.AttachmentKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", 0, fmt.Errorf("get object: %w", err)
	}

	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, "", 0, fmt.Errorf("stat object: %w", err)
	}

	return obj, stat.ContentType, stat.Size, nil
}
