package fsstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthanhphan/go-file-uploader/internal/domain"
	"github.com/anthanhphan/go-file-uploader/internal/port"
	"github.com/anthanhphan/gosdk/logger"
)

// copyBufferSize is the chunk size used when streaming uploads to disk.
const copyBufferSize = 32 * 1024

// Store implements port.FileStore on a local filesystem root with one flat
// directory per user.
type Store struct {
	root string
}

var _ port.FileStore = (*Store)(nil)

// New creates the store and the root directory if it does not exist yet.
// User directories are created lazily, the root is not.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %q: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

// safeSegment rejects path segments that would escape the storage layout.
func safeSegment(name string) error {
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid path segment: %q", name)
	}
	return nil
}

func (s *Store) userDir(user string) (string, error) {
	if err := safeSegment(user); err != nil {
		return "", err
	}
	return filepath.Join(s.root, user), nil
}

func (s *Store) filePath(user, fileName string) (string, error) {
	dir, err := s.userDir(user)
	if err != nil {
		return "", err
	}
	if err := safeSegment(fileName); err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// EnsureUserDir creates `<root>/<user>` if missing. The create is
// non-recursive: a missing root is an error, not something to repair here.
func (s *Store) EnsureUserDir(user string) (string, error) {
	dir, err := s.userDir(user)
	if err != nil {
		return "", err
	}
	if err := os.Mkdir(dir, 0o755); err != nil && !os.IsExist(err) {
		return "", fmt.Errorf("failed to create user directory %q: %w", dir, err)
	}
	return dir, nil
}

// UserDirExists reports directory existence without creating anything.
func (s *Store) UserDirExists(user string) (bool, error) {
	dir, err := s.userDir(user)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// FileExists reports whether `<root>/<user>/<fileName>` exists.
func (s *Store) FileExists(user, fileName string) (bool, error) {
	path, err := s.filePath(user, fileName)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Save streams src to the target path. The create is exclusive so that two
// concurrent uploads of the same (user, filename) cannot both win: the loser
// fails with os.ErrExist. A failed copy removes the partial file.
func (s *Store) Save(ctx context.Context, user, fileName string, src io.Reader) (string, error) {
	path, err := s.filePath(user, fileName)
	if err != nil {
		return "", err
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}

	buf := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(dst, readerWithContext(ctx, src), buf); err != nil {
		_ = dst.Close()
		if removeErr := os.Remove(path); removeErr != nil {
			logger.Warnw("Failed to remove partial file", "path", path, "error", removeErr.Error())
		}
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close %q: %w", path, err)
	}
	return path, nil
}

// Open returns the stored file as a resource. Callers close the content.
func (s *Store) Open(user, fileName string) (*domain.Resource, error) {
	path, err := s.filePath(user, fileName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &domain.Resource{
		Name:    fileName,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Content: f,
	}, nil
}

// List returns the filenames under the user's directory.
func (s *Store) List(user string) ([]string, error) {
	dir, err := s.userDir(user)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// ctxReader aborts an in-flight copy when the request context ends.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
