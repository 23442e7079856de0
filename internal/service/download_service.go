package service

import (
	"context"
	"errors"
	"os"

	"github.com/anthanhphan/go-file-uploader/internal/domain"
	"github.com/anthanhphan/go-file-uploader/internal/errdefs"
	"github.com/anthanhphan/gosdk/logger"
)

// downloadService serves stored files back by (user, filename). It is
// strictly read-only: existence checks here never create directories.
type downloadService struct {
	core *FileServiceImpl
}

// newDownloadService creates the download use-case service.
func newDownloadService(core *FileServiceImpl) *downloadService {
	return &downloadService{core: core}
}

// getFile checks the user directory, then the file, then opens it.
func (s *downloadService) getFile(ctx context.Context, user string, fileName string) (*domain.Resource, error) {
	if err := s.checkUserExists(user); err != nil {
		return nil, err
	}

	exists, err := s.core.store.FileExists(user, fileName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errdefs.FileNotFound("File %s does not exists.", fileName)
	}

	res, err := s.core.store.Open(user, fileName)
	if err != nil {
		// The file can vanish between the check and the open.
		if errors.Is(err, os.ErrNotExist) {
			return nil, errdefs.FileNotFound("File %s does not exists.", fileName)
		}
		logger.Errorw("Open failed", "user", user, "file_name", fileName, "error", err.Error())
		return nil, err
	}

	logger.Infow("Download started", "user", user, "file_name", fileName, "size_bytes", res.Size)
	return res, nil
}

// listFiles returns the filenames stored under an existing user's directory.
func (s *downloadService) listFiles(ctx context.Context, user string) ([]string, error) {
	if err := s.checkUserExists(user); err != nil {
		return nil, err
	}
	return s.core.store.List(user)
}

// checkUserExists fails when the user's directory is absent, without
// creating it.
func (s *downloadService) checkUserExists(user string) error {
	exists, err := s.core.store.UserDirExists(user)
	if err != nil {
		return err
	}
	if !exists {
		return errdefs.UserNotFound("User %s does not exists.", user)
	}
	return nil
}
