// Package metrics defines the Prometheus metrics exported by the flight logger.
package metrics
