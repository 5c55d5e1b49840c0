// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by the status API.
//
// # Context Awareness
//
// Two helpers attach correlation fields:
//   - WithRayID extracts the RayID from a Fiber context (status API requests).
//   - WithSnapshot tags every line emitted while one snapshot is reconciled.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Watcher started")
//
//	l := logger.WithSnapshot(log, id, "history_3.json")
//	l.Error("Snapshot dropped", zap.Error(err))
package logger
