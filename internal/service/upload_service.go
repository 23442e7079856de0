package service

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/anthanhphan/go-file-uploader/internal/domain"
	"github.com/anthanhphan/go-file-uploader/internal/errdefs"
	"github.com/anthanhphan/go-file-uploader/internal/port"
	"github.com/anthanhphan/gosdk/logger"
)

// uploadService orchestrates validation and stream persistence for single
// and multi-file uploads.
type uploadService struct {
	core *FileServiceImpl
}

// newUploadService creates the upload use-case service.
func newUploadService(core *FileServiceImpl) *uploadService {
	return &uploadService{core: core}
}

// uploadFile runs the full validation chain, then persists the stream. The
// first failing check aborts before any byte is written.
func (s *uploadService) uploadFile(ctx context.Context, user string, file domain.FileUpload, declaredSize int64) (string, error) {
	logger.Infow("Upload started", "user", user, "file_name", file.Name, "declared_size", declaredSize)

	if err := s.core.validator.validate(user, file.Name, declaredSize); err != nil {
		logger.Warnw("Upload rejected", "user", user, "file_name", file.Name, "error", err.Error())
		return "", err
	}

	path, err := s.transfer(ctx, user, file)
	if err != nil {
		return "", err
	}

	logger.Infow("Upload completed", "user", user, "file_name", file.Name, "path", path)
	return path, nil
}

// uploadFiles validates the user once, then processes files in arrival
// order, yielding stored paths lazily. The first failure ends the sequence;
// files stored before it stay on disk.
func (s *uploadService) uploadFiles(ctx context.Context, user string, files port.FileSource, declaredSize int64) <-chan domain.UploadResult {
	results := make(chan domain.UploadResult)

	go func() {
		defer close(results)

		emit := func(res domain.UploadResult) bool {
			select {
			case results <- res:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if err := s.core.validator.checkUser(user); err != nil {
			logger.Warnw("Batch upload rejected", "user", user, "error", err.Error())
			emit(domain.UploadResult{Err: err})
			return
		}

		logger.Infow("Batch upload started", "user", user, "declared_size", declaredSize)
		stored := 0

		for {
			file, err := files.Next()
			if errors.Is(err, io.EOF) {
				logger.Infow("Batch upload completed", "user", user, "files", stored)
				return
			}
			if err != nil {
				logger.Errorw("Batch upload read failed", "user", user, "error", err.Error())
				emit(domain.UploadResult{Err: errdefs.Internal("Something went wrong")})
				return
			}

			if err := s.core.validator.validateFile(user, file.Name, declaredSize); err != nil {
				logger.Warnw("Batch upload rejected", "user", user, "file_name", file.Name, "error", err.Error())
				emit(domain.UploadResult{Err: err})
				return
			}

			path, err := s.transfer(ctx, user, *file)
			if err != nil {
				emit(domain.UploadResult{Err: err})
				return
			}
			if !emit(domain.UploadResult{Path: path}) {
				return
			}
			stored++
		}
	}()

	return results
}

// transfer streams the file to its target path. I/O failures are opaque to
// the caller: the cause is logged, the client sees a generic transfer error.
// A lost race on the exclusive create surfaces as a duplicate.
func (s *uploadService) transfer(ctx context.Context, user string, file domain.FileUpload) (string, error) {
	path, err := s.core.store.Save(ctx, user, file.Name, file.Content)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", errdefs.FileExists("File with same name exists.")
		}
		logger.Errorw("Transfer failed", "user", user, "file_name", file.Name, "error", err.Error())
		return "", errdefs.TransferFailed("Something went wrong")
	}
	return path, nil
}
