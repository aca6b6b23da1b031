package inventory

import (
	"context"
	"errors"
	"strings"

	"ge-sync/core/logger"
	"ge-sync/feature/inventory/sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RunTokenHeader carries an optional caller-supplied run token.
const RunTokenHeader = "X-Run-Token"

// Handler handles HTTP requests for inventory sync.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync", h.HandleSyncAll)
	app.Post("/sync/:bucket", h.HandleSyncBucket)
	app.Get("/sync/:bucket/preview", h.HandlePreview)
}

func (h *Handler) request(c *fiber.Ctx) sync.Request {
	return sync.Request{
		CompanyID:  strings.TrimSpace(c.Query("company")),
		LocationID: c.Query("location"),
		RunToken:   strings.TrimSpace(c.Get(RunTokenHeader)),
		DryRun:     c.QueryBool("dry_run", false),
		Trigger:    "api",
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownBucket), errors.Is(err, ErrMissingLocation):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrBusy):
		status = fiber.StatusConflict
	default:
		logger.WithRayID(h.service.logger, c).Error("Sync request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleSyncBucket reconciles a single bucket.
// @Summary Sync Bucket
// @Description Reconcile one GE bucket (fg, asis, sta, inbound, backhaul, orders) for a location.
// @Tags sync
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param location query string true "Location ID"
// @Param company query string false "Company ID"
// @Param dry_run query bool false "Compute the plan without writing"
// @Param X-Run-Token header string false "Caller run token"
// @Success 200 {object} sync.BucketResult "Bucket result (check success)"
// @Failure 400 {object} map[string]string "Unknown bucket or missing location"
// @Failure 409 {object} map[string]string "Location locked"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/{bucket} [post]
func (h *Handler) HandleSyncBucket(c *fiber.Ctx) error {
	res, err := h.service.SyncBucket(h.context(c), c.Params("bucket"), h.request(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

// HandlePreview returns the plan stats for a bucket without writing.
// @Summary Preview Bucket Sync
// @Description Dry-run a bucket reconciliation and return its stats.
// @Tags sync
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param location query string true "Location ID"
// @Param company query string false "Company ID"
// @Success 200 {object} sync.BucketResult "Preview result"
// @Failure 400 {object} map[string]string "Unknown bucket or missing location"
// @Router /sync/{bucket}/preview [get]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	res, err := h.service.Preview(h.context(c), c.Params("bucket"), h.request(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

// HandleSyncAll runs every bucket in dependency order.
// @Summary Sync All Buckets
// @Description Run FG, ASIS, STA, Inbound, BackHaul and Orders for a location.
// @Tags sync
// @Produce json
// @Param location query string true "Location ID"
// @Param company query string false "Company ID"
// @Param dry_run query bool false "Compute plans without writing"
// @Param X-Run-Token header string false "Caller run token"
// @Success 200 {object} sync.RunResult "Aggregate result (check success)"
// @Failure 400 {object} map[string]string "Missing location"
// @Failure 409 {object} map[string]string "Location locked"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync [post]
func (h *Handler) HandleSyncAll(c *fiber.Ctx) error {
	res, err := h.service.SyncAll(h.context(c), h.request(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) context(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
