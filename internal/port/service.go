package port

import (
	"context"

	"github.com/anthanhphan/go-file-uploader/internal/domain"
)

// FileSource is a lazy, non-restartable sequence of incoming files. Next
// returns io.EOF when the sequence is exhausted; any other error aborts the
// batch. Files arrive in request order and must be consumed in order.
type FileSource interface {
	Next() (*domain.FileUpload, error)
}

// FileService defines the business logic for per-user file storage.
type FileService interface {
	// UploadFile validates and persists a single file, returning the stored path.
	UploadFile(ctx context.Context, user string, file domain.FileUpload, declaredSize int64) (string, error)

	// UploadFiles validates the user once, then processes files from the
	// source in arrival order. Results are delivered lazily over the returned
	// channel, one per stored file; the first failure is delivered as a
	// result carrying the error and ends the sequence. The channel is closed
	// when the batch finishes or aborts.
	UploadFiles(ctx context.Context, user string, files FileSource, declaredSize int64) <-chan domain.UploadResult

	// GetFile returns a readable resource for an already-stored file.
	GetFile(ctx context.Context, user string, fileName string) (*domain.Resource, error)

	// ListFiles returns the names of the files stored under the user's directory.
	ListFiles(ctx context.Context, user string) ([]string, error)
}
