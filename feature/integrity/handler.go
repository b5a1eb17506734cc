package integrity

import (
	"asset-sync/core/logger"
	"asset-sync/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.ServerReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/manifest", h.HandleManifestCheck)
	group.Get("/shell", h.HandleShellCheck)
	group.Get("/stale", h.HandleStaleCheck)
	group.Get("/server", h.HandleServerCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Manifest, Shell, Stale, Server).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if mReport, err := h.service.CheckManifest(ctx); err != nil {
		report["manifest"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["manifest"] = mReport
	}

	if missing, err := h.service.CheckShell(ctx); err != nil {
		report["shell"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["shell"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if plan, err := h.service.CheckStale(ctx); err != nil {
		report["stale"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["stale"] = map[string]interface{}{"status": "ok", "summary": plan.Summary, "evictions": plan.Evictions()}
	}

	if h.service.db != nil {
		if srvReport, err := h.service.CheckServer(); err != nil {
			report["server"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			report["server"] = srvReport
		}
	}

	return c.JSON(report)
}

// HandleManifestCheck compares the persisted manifest with the served build.
// @Summary Check Persisted Manifest
// @Description Reports paths added, removed or changed between the persisted manifest and the served build.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.ManifestReport "Manifest Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/manifest [get]
func (h *Handler) HandleManifestCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckManifest(c.Context())
	if err != nil {
		l.Error("Manifest check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleShellCheck checks and optionally fixes the cached shell.
// @Summary Check Shell
// @Description Checks that every shell path has an ok entry in the content cache. Optionally refetches missing paths.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Refetch missing shell paths"
// @Success 200 {object} map[string]interface{} "Shell Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/shell [get]
func (h *Handler) HandleShellCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckShell(c.Context())
	if err != nil {
		l.Error("Shell check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing shell resources detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to restore missing shell resources")
			if err := h.service.FixShell(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix shell",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleStaleCheck reports the entries an activation would evict.
// @Summary Check Stale Entries
// @Description Dry-runs reconciliation of the content cache against the served build. Nothing is deleted.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} reconcile.Plan "Reconciliation Plan"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/stale [get]
func (h *Handler) HandleStaleCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	plan, err := h.service.CheckStale(c.Context())
	if err != nil {
		l.Error("Stale check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Stale check completed",
		zap.Int("entries", plan.Summary.TotalEntries),
		zap.Int("stale", plan.Summary.Evicted))

	return c.JSON(plan)
}

// HandleServerCheck checks server schema integrity.
// @Summary Check Server Schema
// @Description Checks if the cache database schema matches the expected models.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.ServerReport "Server Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/server [get]
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting server schema check")

	report, err := h.service.CheckServer()
	if err != nil {
		l.Error("Server schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
