package port

import (
	"context"
	"io"
	"time"
)

// UploadInput describes one object written to storage.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// PresignInput describes a time-limited download link. Filename, when set,
// becomes the attachment name the browser saves the object under.
type PresignInput struct {
	Bucket   string
	Key      string
	Filename string
	Expiry   time.Duration
}

// ObjectStorage holds comparison inputs and rendered outputs.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	PresignDownload(ctx context.Context, input PresignInput) (string, error)
}
