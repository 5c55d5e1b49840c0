package status

import (
	"flight-logger/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	apiKey  string
}

// NewFeature creates the status feature. Routes other than /health and /metrics
// require apiKey when it is set.
func NewFeature(reader Reader, stats StatsSource, gatherer prometheus.Gatherer, logger *zap.Logger, apiKey string) *Feature {
	svc := NewService(reader, stats, gatherer, logger)
	return &Feature{handler: NewHandler(svc), apiKey: apiKey}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "status"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterPublicRoutes(app)
	api := app.Group("/", auth.New(auth.Config{ApiKey: f.apiKey}))
	f.handler.RegisterRoutes(api)
	return nil
}
