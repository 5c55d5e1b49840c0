package status

import (
	"errors"
	"strconv"
	"strings"

	"flight-logger/core/logger"
	"flight-logger/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	defaultPositionLimit = 100
	maxPositionLimit     = 1000
)

// Handler handles HTTP requests for the status API.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the routes served without an API key.
func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
	if h.service.gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.service.gatherer, promhttp.HandlerOpts{})))
	}
}

// RegisterRoutes registers the lookup and statistics routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/stats", h.HandleStats)
	app.Get("/schema", h.HandleSchema)
	app.Get("/aircraft/:icao", h.HandleAircraft)
	app.Get("/flights/:callsign", h.HandleFlight)
	app.Get("/flights/:callsign/positions", h.HandlePositions)
}

// HandleHealth reports that the process is up.
// @Summary Health Check
// @Description Reports that the process is up. Does not require an API key.
// @Tags status
// @Produce json
// @Success 200 {object} map[string]string "Status"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleStats returns ingest counters and table sizes.
// @Summary Ingest Statistics
// @Description Returns the ingest worker counters, the last processed snapshot and the row count of each table.
// @Tags status
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Statistics"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	report := fiber.Map{"ingest": h.service.Ingest()}

	if counts, err := h.service.Counts(c.Context()); err != nil {
		l.Error("Failed to count rows", zap.Error(err))
		report["database"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["database"] = counts
	}

	return c.JSON(report)
}

// HandleSchema checks the database schema against the configured profile.
// @Summary Schema Check
// @Description Verifies that every table and column mapped by the configured profile exists in the database.
// @Tags status
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} flights.SchemaReport "Schema Report"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /schema [get]
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Schema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleAircraft returns one aircraft by identity code.
// @Summary Get Aircraft
// @Description Looks up an aircraft by its ICAO hex identity code.
// @Tags flights
// @Produce json
// @Security ApiKeyAuth
// @Param icao path string true "ICAO hex identity code"
// @Success 200 {object} flights.Aircraft "Aircraft"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /aircraft/{icao} [get]
func (h *Handler) HandleAircraft(c *fiber.Ctx) error {
	icao := strings.ToLower(strings.TrimSpace(c.Params("icao")))

	aircraft, err := h.service.Aircraft(c.Context(), icao)
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(aircraft)
}

// HandleFlight returns one flight by callsign.
// @Summary Get Flight
// @Description Looks up a flight by callsign. Surrounding whitespace is ignored.
// @Tags flights
// @Produce json
// @Security ApiKeyAuth
// @Param callsign path string true "Flight callsign"
// @Success 200 {object} flights.Flight "Flight"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /flights/{callsign} [get]
func (h *Handler) HandleFlight(c *fiber.Ctx) error {
	flight, err := h.service.Flight(c.Context(), c.Params("callsign"))
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(flight)
}

// HandlePositions returns the latest positions of a flight, newest first.
// @Summary List Flight Positions
// @Description Returns the flight and its most recent position reports, newest first.
// @Tags flights
// @Produce json
// @Security ApiKeyAuth
// @Param callsign path string true "Flight callsign"
// @Param limit query int false "Maximum number of positions (default 100, max 1000)"
// @Success 200 {object} map[string]interface{} "Flight and positions"
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /flights/{callsign}/positions [get]
func (h *Handler) HandlePositions(c *fiber.Ctx) error {
	limit := defaultPositionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a positive integer"})
		}
		limit = min(n, maxPositionLimit)
	}

	flight, positions, err := h.service.Positions(c.Context(), c.Params("callsign"), limit)
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(fiber.Map{
		"flight":    flight,
		"positions": positions,
	})
}

func (h *Handler) lookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, reconcile.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Lookup failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
