package synchronizer

import (
	"errors"

	"asset-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the sync lifecycle.
type Handler struct {
	service *Synchronizer
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Synchronizer) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Post("/install", h.HandleInstall)
	group.Post("/activate", h.HandleActivate)
	group.Post("/update", h.HandleUpdate)
	group.Post("/message", h.HandleMessage)
}

// MessageRequest is the body of a control message.
type MessageRequest struct {
	Message Message `json:"message"`
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, ErrUnknownMessage):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleStatus returns the lifecycle snapshot.
// @Summary Get Sync Status
// @Description Returns the lifecycle state, the active and candidate build versions and whether reads are claimed.
// @Tags sync
// @Produce json
// @Success 200 {object} Snapshot "Lifecycle Snapshot"
// @Router /sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleInstall installs the candidate build.
// @Summary Install Build
// @Description Fetches every shell path of the candidate build into the staging cache.
// @Tags sync
// @Produce json
// @Success 200 {object} Snapshot "Lifecycle Snapshot"
// @Failure 409 {object} map[string]string "Invalid State"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/install [post]
func (h *Handler) HandleInstall(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Install(c.Context()); err != nil {
		l.Error("Install failed", zap.Error(err))
		return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.service.Status())
}

// HandleActivate activates the installed build.
// @Summary Activate Build
// @Description Reconciles the content cache with the installed build and claims reads.
// @Tags sync
// @Produce json
// @Success 200 {object} ActivationResult "Activation Result"
// @Failure 409 {object} map[string]string "Invalid State"
// @Failure 500 {object} ActivationResult "Rolled Back"
// @Router /sync/activate [post]
func (h *Handler) HandleActivate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.Activate(c.Context())
	if err != nil {
		l.Error("Activation failed", zap.Error(err))
		if result != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(result)
		}
		return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleUpdate runs install followed by activation.
// @Summary Update
// @Description Installs the candidate build and activates it unless it has to wait.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]interface{} "Update Result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/update [post]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.Update(c.Context())
	if err != nil {
		l.Error("Update failed", zap.Error(err))
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"error":      err.Error(),
			"activation": result,
		})
	}
	return c.JSON(fiber.Map{
		"status":     h.service.Status(),
		"activation": result,
	})
}

// HandleMessage dispatches a control message.
// @Summary Send Message
// @Description Sends skipWaiting or downloadOffline to the synchronizer.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body MessageRequest true "Message"
// @Success 200 {object} MessageResult "Message Result"
// @Failure 400 {object} map[string]string "Unknown Message"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/message [post]
func (h *Handler) HandleMessage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.HandleMessage(c.Context(), req.Message)
	if err != nil {
		l.Error("Message failed", zap.String("message", string(req.Message)), zap.Error(err))
		return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
