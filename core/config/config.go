package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"flight-logger/core/database"
	"flight-logger/core/logger"
	"flight-logger/core/server"
	"flight-logger/core/storage"
	"flight-logger/core/watcher"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the flight logger configuration, one section per component.
type Config struct {
	Log      logger.Config   `mapstructure:"log"`
	Database database.Config `mapstructure:"database"`
	Watcher  watcher.Config  `mapstructure:"watcher"`
	// Server is the optional status API.
	Server server.Config `mapstructure:"server"`
	// Storage is the optional snapshot archive.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig reads dir/.env (if present) and the environment, applies the struct
// tag defaults and validates the result. Keys are SECTION_KEY, e.g. WATCHER_QUEUE_SIZE.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(Config{}), "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// registerDefaults walks the section types and registers every tagged leaf with its
// `default` tag. Leaves without a default are registered empty so AutomaticEnv sees them.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			registerDefaults(v, field.Type, name)
			continue
		}
		v.SetDefault(name, field.Tag.Get("default"))
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverPostgres, database.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.name: required"))
	}
	if c.Watcher.Dir == "" {
		errs = append(errs, errors.New("watcher.dir: required"))
	}
	if c.Watcher.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("watcher.queue_size: must be at least 1, got %d", c.Watcher.QueueSize))
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		errs = append(errs, errors.New("storage.bucket: required when storage is enabled"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
