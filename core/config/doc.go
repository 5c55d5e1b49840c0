// Package config provides configuration management for the flight logger.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live next to each partial configuration as struct tags.
// LoadConfig validates the result, so an unsupported driver or an empty watch
// directory fails at startup rather than on first use.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Database: driver (mysql, postgres, sqlite), connection details and schema profile
//   - Watcher: snapshot directory, file pattern and queue size
//   - Server: status HTTP server toggle, port and API key
//   - Storage: S3/MinIO snapshot archive settings
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Watcher.Dir)
package config
