package report

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/OndraMix/Wiki/core/logger"
)

// Handler handles HTTP requests for reconciliation reports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Get("/fields", h.HandleListFields)
	group.Post("/check", h.HandleCheck)
}

// HandleListFields returns the attribute registry.
// @Summary List Fields
// @Description Get the comparable attribute registry with default settings.
// @Tags report
// @Produce json
// @Success 200 {array} report.FieldInfo "Field Registry"
// @Router /api/fields [get]
func (h *Handler) HandleListFields(c *fiber.Ctx) error {
	return c.JSON(h.service.ListFields())
}

// HandleCheck runs a reconciliation check over the submitted titles.
// @Summary Run Check
// @Description Check the submitted articles against the target editions and return the full report.
// @Tags report
// @Accept json
// @Produce json
// @Param request body report.CheckRequest true "Check Request"
// @Success 200 {object} report.CheckReport "Check Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/check [post]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	report, err := h.service.RunCheck(c.Context(), req)
	if err != nil {
		l.Error("Check failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Check finished",
		zap.Int("articles", len(report.Results)),
		zap.Int("errors", report.Summary.Errors),
	)
	return c.JSON(report)
}
