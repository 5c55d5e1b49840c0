package cmd

import (
	"context"
	"fmt"
	"time"

	"flight-logger/core/config"
	"flight-logger/core/database"
	"flight-logger/core/logger"
	"flight-logger/core/storage"
	"flight-logger/feature/flights"

	"go.uber.org/zap"
)

// deps holds the dependencies shared by all commands.
type deps struct {
	cfg   *config.Config
	log   *zap.Logger
	store *flights.Store
}

// bootstrap loads configuration, builds the logger and connects the flights store.
func bootstrap() (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	profile, err := flights.GetProfileByName(cfg.Database.Profile)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	l = l.With(zap.String("profile", profile.Name))
	l.Info("Connected to database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))

	return &deps{
		cfg:   cfg,
		log:   l,
		store: flights.NewStore(db, profile),
	}, nil
}

// archiver returns the snapshot archiver, or nil when archiving is disabled.
func (r *deps) archiver(ctx context.Context) (*storage.Archiver, error) {
	if !r.cfg.Storage.Enabled {
		return nil, nil
	}

	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	a := storage.NewArchiver(client, r.cfg.Storage)

	timeout := time.Duration(r.cfg.Storage.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := a.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	r.log.Info("Archiving snapshots", zap.String("bucket", r.cfg.Storage.Bucket), zap.String("prefix", r.cfg.Storage.Prefix))
	return a, nil
}
