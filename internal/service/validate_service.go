package service

import (
	"strings"

	"github.com/anthanhphan/go-file-uploader/internal/errdefs"
)

// allowedExtensions is the closed set of permitted upload formats, keyed by
// uppercased extension.
var allowedExtensions = map[string]struct{}{
	"PNG":  {},
	"JPEG": {},
	// JPG is the conventional suffix for JPEG files.
	"JPG": {},
	"PDF":  {},
	"CSV":  {},
	"XLS":  {},
	"DOC":  {},
}

// isAllowedExtension checks the suffix after the last '.' against the
// allowlist, case-insensitively. Names without a dot are rejected.
func isAllowedExtension(fileName string) bool {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToUpper(fileName[idx+1:])]
	return ok
}

// validateService runs the ordered upload checks. Order matters: the
// duplicate check creates the user directory as a side effect, so it must
// stay last for format and size failures to leave no trace on disk.
type validateService struct {
	core *FileServiceImpl
}

// newValidateService creates the validation use-case service.
func newValidateService(core *FileServiceImpl) *validateService {
	return &validateService{core: core}
}

// checkUser rejects an empty user namespace.
func (s *validateService) checkUser(user string) error {
	if user == "" {
		return errdefs.UserNotFound("User can not be Empty.")
	}
	return nil
}

// checkFileName rejects an empty filename.
func (s *validateService) checkFileName(fileName string) error {
	if fileName == "" {
		return errdefs.FileNotFound("File is not selected.")
	}
	return nil
}

// checkFileFormat rejects extensions outside the allowlist.
func (s *validateService) checkFileFormat(fileName string) error {
	if !isAllowedExtension(fileName) {
		return errdefs.FileFormat("Only PNG, JPEG, PDF, CSV, XLS and DOC files are allowed.")
	}
	return nil
}

// checkFileSize rejects a declared request size above the configured maximum.
func (s *validateService) checkFileSize(declaredSize int64) error {
	max := s.core.maxRequestSize()
	if declaredSize > max {
		return errdefs.SizeLimitExceeded(
			"File size should not exceed %dMB and the size of current file is %dMB.",
			toMegabytes(max), toMegabytes(declaredSize),
		)
	}
	return nil
}

// checkDuplicate rejects a filename already stored under the user. Creating
// the user directory is folded in here: a fresh directory cannot hold a
// duplicate, and earlier checks must not create it.
func (s *validateService) checkDuplicate(user string, fileName string) error {
	if _, err := s.core.store.EnsureUserDir(user); err != nil {
		return err
	}
	exists, err := s.core.store.FileExists(user, fileName)
	if err != nil {
		return err
	}
	if exists {
		return errdefs.FileExists("File with same name exists.")
	}
	return nil
}

// validateFile runs the per-file checks in order: filename, format, size,
// duplicate. The first failure short-circuits the rest.
func (s *validateService) validateFile(user string, fileName string, declaredSize int64) error {
	if err := s.checkFileName(fileName); err != nil {
		return err
	}
	if err := s.checkFileFormat(fileName); err != nil {
		return err
	}
	if err := s.checkFileSize(declaredSize); err != nil {
		return err
	}
	return s.checkDuplicate(user, fileName)
}

// validate runs the full chain for a single-file upload: user first, then
// the per-file checks.
func (s *validateService) validate(user string, fileName string, declaredSize int64) error {
	if err := s.checkUser(user); err != nil {
		return err
	}
	return s.validateFile(user, fileName, declaredSize)
}

// toMegabytes truncates a byte count to whole megabytes for error messages.
func toMegabytes(bytes int64) int64 {
	return bytes / (1024 * 1024)
}
