package gateway

import (
	"net/http"

	"asset-sync/core/logger"
	"asset-sync/core/server"
	"asset-sync/feature/synchronizer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"go.uber.org/zap"
)

// SourceHeader names the response header carrying the interception source.
const SourceHeader = "X-Asset-Sync"

// skipped headers are set by fiber from the body or are hop-by-hop.
var skipped = map[string]struct{}{
	"Content-Length":    {},
	"Transfer-Encoding": {},
	"Connection":        {},
	"Keep-Alive":        {},
}

// Handler serves intercepted reads.
type Handler struct {
	sync   *synchronizer.Synchronizer
	logger *zap.Logger
}

// NewHandler creates a new gateway handler.
func NewHandler(sync *synchronizer.Synchronizer, logger *zap.Logger) *Handler {
	return &Handler{sync: sync, logger: logger}
}

// RegisterRoutes registers the catch-all routes. It must be registered last.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.All("/*", h.HandleRequest)
}

// HandleRequest intercepts a read or forwards it to the origin.
func (h *Handler) HandleRequest(c *fiber.Ctx) error {
	if server.IsReserved(c.Path()) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	target := h.sync.Origin() + c.OriginalURL()

	result, err := h.sync.Intercept(c.Context(), c.Method(), target)
	if err != nil {
		logger.WithRayID(h.logger, c).Warn("Intercepted read failed",
			zap.String("url", target), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	if !result.Handled {
		return proxy.Do(c, target)
	}

	resp := result.Response
	for name, values := range resp.Header {
		if _, skip := skipped[http.CanonicalHeaderKey(name)]; skip {
			continue
		}
		for _, v := range values {
			c.Response().Header.Add(name, v)
		}
	}
	c.Set(SourceHeader, string(result.Source))
	return c.Status(resp.Status).Send(resp.Body)
}
