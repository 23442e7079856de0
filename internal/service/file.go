package service

import (
	"context"

	"github.com/anthanhphan/go-file-uploader/internal/config"
	"github.com/anthanhphan/go-file-uploader/internal/domain"
	"github.com/anthanhphan/go-file-uploader/internal/port"
)

// FileServiceImpl is the facade that wires use-case services for per-user
// file storage.
type FileServiceImpl struct {
	cfg   *config.Config
	store port.FileStore

	validator       *validateService
	uploadUseCase   *uploadService
	downloadUseCase *downloadService
}

// Ensure FileServiceImpl implements port.FileService.
var _ port.FileService = (*FileServiceImpl)(nil)

// NewFileService builds the file service facade and all use-case services.
func NewFileService(cfg *config.Config, store port.FileStore) *FileServiceImpl {
	svc := &FileServiceImpl{
		cfg:   cfg,
		store: store,
	}

	svc.validator = newValidateService(svc)
	svc.uploadUseCase = newUploadService(svc)
	svc.downloadUseCase = newDownloadService(svc)

	return svc
}

// UploadFile delegates single-file orchestration to the upload use-case service.
func (s *FileServiceImpl) UploadFile(ctx context.Context, user string, file domain.FileUpload, declaredSize int64) (string, error) {
	return s.uploadUseCase.uploadFile(ctx, user, file, declaredSize)
}

// UploadFiles delegates batch orchestration to the upload use-case service.
func (s *FileServiceImpl) UploadFiles(ctx context.Context, user string, files port.FileSource, declaredSize int64) <-chan domain.UploadResult {
	return s.uploadUseCase.uploadFiles(ctx, user, files, declaredSize)
}

// GetFile delegates retrieval to the download use-case service.
func (s *FileServiceImpl) GetFile(ctx context.Context, user string, fileName string) (*domain.Resource, error) {
	return s.downloadUseCase.getFile(ctx, user, fileName)
}

// ListFiles delegates directory listing to the download use-case service.
func (s *FileServiceImpl) ListFiles(ctx context.Context, user string) ([]string, error) {
	return s.downloadUseCase.listFiles(ctx, user)
}

// maxRequestSize returns the configured request size bound in bytes.
func (s *FileServiceImpl) maxRequestSize() int64 {
	return s.cfg.Upload.MaxRequestSize
}
