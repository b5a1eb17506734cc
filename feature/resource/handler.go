package resource

import (
	"asset-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for resources.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the resource routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/resources")
	group.Get("/*", h.HandleGetResourceDetail)
}

// HandleGetResourceDetail returns a detailed report for a single resource.
// @Summary Get Resource Detail
// @Description Get the manifest, cache and staleness report for a resource path. An empty path denotes the document root.
// @Tags resources
// @Accept json
// @Produce json
// @Param path path string true "Resource path (e.g. 'main.dart.js')"
// @Success 200 {object} models.ResourceDetailReport "Resource Detail"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /resources/{path} [get]
func (h *Handler) HandleGetResourceDetail(c *fiber.Ctx) error {
	path := c.Params("*")
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.GetResourceDetail(c.Context(), path)
	if err != nil {
		l.Error("Resource detail check failed", zap.String("path", path), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
