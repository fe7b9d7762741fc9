// Package archive stores processed outputs in S3-compatible storage.
package archive

import (
	"context"
	"fmt"
	"os"

	"github.com/johananj/geocaption/internal/logger"
	"github.com/johananj/geocaption/pkg/s3client"
)

// Archiver uploads saved outputs, keyed by their input-relative path.
type Archiver struct {
	client *s3client.Client
	retry  RetryConfig
}

// New creates an Archiver over an S3 client.
func New(client *s3client.Client) *Archiver {
	return &Archiver{
		client: client,
		retry:  DefaultRetryConfig(),
	}
}

// Archive uploads the file at localPath under relPath. Existing objects are
// skipped; transient errors are retried with backoff.
func (a *Archiver) Archive(ctx context.Context, localPath, relPath string) error {
	exists, err := a.client.ObjectExists(ctx, relPath)
	if err != nil {
		logger.Warn("Failed to check if %s exists in archive: %v", relPath, err)
	} else if exists {
		logger.Debug("Archive object %s already exists, skipping", relPath)
		return nil
	}

	contentType := s3client.DetectContentType(relPath)

	return RetryWithBackoff(ctx, fmt.Sprintf("archive %s", relPath), func() error {
		f, err := os.Open(localPath)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat output file: %w", err)
		}

		return a.client.UploadFile(ctx, f, relPath, info.Size(), contentType)
	}, a.retry)
}
