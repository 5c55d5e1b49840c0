package watcher

// Config holds configuration for the snapshot directory watcher.
type Config struct {
	// Dir is the directory the receiver writes its history files to.
	Dir string `mapstructure:"dir" default:"/run/dump1090-mutability"`
	// Pattern is the regular expression a file's base name must match to be ingested.
	Pattern string `mapstructure:"pattern" default:"^history_\\d+\\.json$"`
	// QueueSize is the number of pending snapshot notifications kept before dropping.
	QueueSize int `mapstructure:"queue_size" default:"16"`
}
