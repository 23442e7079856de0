package domain

import (
	"io"
	"time"
)

// FileUpload is one incoming file: the client-declared name and the byte
// stream to persist. The stream is single-use and owned by the upload for
// the duration of one call.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// UploadResult is one item of a multi-file upload sequence: either the
// stored path of a persisted file or the failure that ended the batch.
type UploadResult struct {
	Path string
	Err  error
}

// Resource is a retrieved file: an open byte stream plus the metadata the
// transport needs to build its response. Callers must close Content.
type Resource struct {
	// Name is the suggested filename for content-disposition.
	Name    string
	Size    int64
	ModTime time.Time
	Content io.ReadCloser
}
