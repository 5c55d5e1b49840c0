package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
)

// Archiver uploads reconciled snapshot files to object storage.
type Archiver struct {
	client Client
	bucket string
	prefix string
	region string
}

// NewArchiver creates an archiver writing under prefix in bucket.
func NewArchiver(client Client, cfg Config) *Archiver {
	return &Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		region: cfg.Region,
	}
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// ObjectKey returns the object key for a snapshot file received at the given time.
// Keys are partitioned by UTC day and prefixed with the reception time so that
// receivers recycling history_N.json names never overwrite earlier archives.
func (a *Archiver) ObjectKey(source string, received time.Time) string {
	received = received.UTC()
	name := fmt.Sprintf("%s_%s", received.Format("150405.000"), filepath.Base(source))
	return path.Join(a.prefix, received.Format("2006/01/02"), name)
}

// Archive uploads the raw snapshot payload and returns the object key.
func (a *Archiver) Archive(ctx context.Context, source string, data []byte, received time.Time) (string, error) {
	key := a.ObjectKey(source, received)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return key, nil
}
