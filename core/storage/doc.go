// Package storage provides the object storage archive for reconciled snapshots.
//
// It wraps the MinIO Go client behind a small Client interface (mocked in
// core/storage/mocks) and supports both AWS S3 and self-hosted MinIO instances.
//
// # Archiver
//
// After a snapshot has been committed, the ingest worker hands the raw file to
// Archiver.Archive, which stores it under <prefix>/YYYY/MM/DD/<hhmmss.mmm>_<file>.
// Archiving is optional and never affects the reconciliation outcome.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archiver := storage.NewArchiver(client, cfg.Storage)
//	key, err := archiver.Archive(ctx, path, data, time.Now())
package storage
