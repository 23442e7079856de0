package port

import (
	"context"
	"io"

	"github.com/anthanhphan/go-file-uploader/internal/domain"
)

//go:generate mockgen -destination=../service/mocks/file_store_mock.go -package=mocks -source=repository.go

// FileStore abstracts the per-user storage layout `<root>/<user>/<filename>`.
// Implementations must be safe for concurrent use across users and tolerate
// races within one user's directory.
type FileStore interface {
	// EnsureUserDir creates the user's directory if missing (idempotent,
	// non-recursive: the root must already exist) and returns its path.
	EnsureUserDir(user string) (string, error)

	// UserDirExists reports whether the user's directory exists. It never
	// creates anything.
	UserDirExists(user string) (bool, error)

	// FileExists reports whether a file is already stored under the user.
	FileExists(user string, fileName string) (bool, error)

	// Save streams src to the user's directory under fileName and returns
	// the stored path. The create is exclusive: an existing file makes Save
	// fail with os.ErrExist rather than overwrite.
	Save(ctx context.Context, user string, fileName string, src io.Reader) (string, error)

	// Open returns a readable resource for a stored file.
	Open(user string, fileName string) (*domain.Resource, error)

	// List returns the filenames stored under the user's directory.
	List(user string) ([]string, error)
}
