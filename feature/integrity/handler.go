package integrity

import (
	"errors"
	"strings"

	"ge-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/snapshots", h.HandleSnapshotCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Runs the schema check and, when a location is given, the snapshot check.
// @Tags integrity
// @Produce json
// @Param location query string false "Location ID"
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if location := strings.TrimSpace(c.Query("location")); location != "" {
		if units, err := h.service.CheckSnapshots(c.UserContext(), c.Query("company"), location); err != nil {
			report["snapshots"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			report["snapshots"] = units
		}
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the sync tables.
// @Summary Check Schema
// @Description Checks that every sync table carries the columns and types of its model.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Schema drift detected", zap.Strings("errors", report.Errors))
	}

	return c.JSON(report)
}

// HandleSnapshotCheck reports snapshot freshness for a location.
// @Summary Check Snapshots
// @Description Reports the newest snapshot of every unit for a location.
// @Tags integrity
// @Produce json
// @Param location query string true "Location ID"
// @Param company query string false "Company ID"
// @Success 200 {object} map[string]interface{} "Snapshot Report"
// @Failure 400 {object} map[string]string "Missing location"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/snapshots [get]
func (h *Handler) HandleSnapshotCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "location is required"})
	}

	units, err := h.service.CheckSnapshots(c.UserContext(), c.Query("company"), location)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrNoSnapshotStorage) {
			status = fiber.StatusNotImplemented
		}
		l.Error("Snapshot check failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	stale := 0
	for _, u := range units {
		if u.Status != "ok" {
			stale++
		}
	}
	return c.JSON(fiber.Map{
		"status":   "checked",
		"location": location,
		"units":    units,
		"degraded": stale,
	})
}
