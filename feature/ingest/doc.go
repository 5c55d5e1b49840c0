// Package ingest runs the snapshot pipeline for single files: read, decode,
// reconcile, archive, then record metrics and log the summary.
//
// Worker.Run drains the watcher queue with one goroutine, so at most one snapshot
// is in flight. A snapshot that fails to decode or reconcile is logged, counted
// and dropped.
package ingest
